package payment

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"net/http"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

type Options struct {
	SecretKey string
	// BaseURL overrides the Stripe API host, e.g. for stripe-mock.
	BaseURL            string
	Currency           string
	PaymentMethodTypes []string
	HTTPClient         *http.Client
}

// Client creates payment intents. It keeps no state between calls.
type Client struct {
	intents  paymentintent.Client
	currency string
	methods  []string
}

func NewClient(opts Options) *Client {
	backendCfg := &stripe.BackendConfig{
		LeveledLogger:     slogLogger{},
		MaxNetworkRetries: stripe.Int64(0),
	}
	if opts.BaseURL != "" {
		backendCfg.URL = stripe.String(opts.BaseURL)
	}
	if opts.HTTPClient != nil {
		backendCfg.HTTPClient = opts.HTTPClient
	}

	currency := opts.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	methods := opts.PaymentMethodTypes
	if len(methods) == 0 {
		methods = []string{"card"}
	}

	return &Client{
		intents: paymentintent.Client{
			B:   stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg),
			Key: opts.SecretKey,
		},
		currency: currency,
		methods:  methods,
	}
}

// CreateIntent asks Stripe for a payment intent of amount minor units and
// returns its client secret.
func (c *Client) CreateIntent(ctx context.Context, amount int64) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amount),
		Currency:           stripe.String(c.currency),
		PaymentMethodTypes: stripe.StringSlice(c.methods),
	}
	params.Context = ctx

	intent, err := c.intents.New(params)
	if err != nil {
		return "", fmt.Errorf("payment: create intent: %w", err)
	}
	return intent.ClientSecret, nil
}

// MinorUnits converts a decimal price to the smallest currency unit.
func MinorUnits(price float64) int64 {
	return int64(math.Round(price * 100))
}

// slogLogger routes stripe-go's leveled logging into slog.
type slogLogger struct{}

func (slogLogger) Debugf(format string, v ...interface{}) {
	slog.Debug(fmt.Sprintf(format, v...), "component", "stripe")
}

func (slogLogger) Infof(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), "component", "stripe")
}

func (slogLogger) Warnf(format string, v ...interface{}) {
	slog.Warn(fmt.Sprintf(format, v...), "component", "stripe")
}

func (slogLogger) Errorf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...), "component", "stripe")
}
