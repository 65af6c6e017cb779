package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"carhouse-backend/internal/model"
	"carhouse-backend/internal/payment"
	"carhouse-backend/internal/store"
)

// POST /create-payment-intent
func (h *Handler) CreatePaymentIntent(c *gin.Context) {
	var req model.PaymentIntentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, err)
		return
	}
	secret, err := h.Intents.CreateIntent(c.Request.Context(), payment.MinorUnits(req.Price))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.PaymentIntentResponse{ClientSecret: secret})
}

// CreatePayment stores the payment and then marks the referenced order paid.
// The order update is best effort: its outcome never changes the response,
// unless Tx is set, in which case both writes commit or neither does.
func (h *Handler) CreatePayment(c *gin.Context) {
	pay, err := bindDocument(c)
	if err != nil {
		fail(c, err)
		return
	}

	if h.Tx != nil {
		h.createPaymentAtomic(c, pay)
		return
	}

	ctx := c.Request.Context()
	res, err := h.Payments.InsertOne(ctx, pay)
	if err != nil {
		fail(c, err)
		return
	}
	if err := h.markOrderPaid(ctx, pay); err != nil {
		slog.Warn("Order not marked paid", "payment_id", res.InsertedID, "error", err)
	}
	c.JSON(http.StatusOK, model.NewInsertAck(res))
}

func (h *Handler) createPaymentAtomic(c *gin.Context, pay bson.M) {
	var res *mongo.InsertOneResult
	err := h.Tx.WithTransaction(c.Request.Context(), func(ctx context.Context) error {
		var err error
		if res, err = h.Payments.InsertOne(ctx, pay); err != nil {
			return err
		}
		return h.markOrderPaid(ctx, pay)
	})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewInsertAck(res))
}

// markOrderPaid sets paid and transactionId on the order named by orderId.
// A missing orderId targets a fresh id and so matches no order. A malformed
// orderId is returned as an error, which CreatePayment logs while still
// acknowledging the payment instead of failing the request as a strict id
// parse would.
func (h *Handler) markOrderPaid(ctx context.Context, pay bson.M) error {
	orderID := primitive.NewObjectID()
	if raw, ok := pay["orderId"]; ok && raw != nil {
		hex, isString := raw.(string)
		if !isString {
			return fmt.Errorf("%w: orderId %v", store.ErrInvalidID, raw)
		}
		id, err := store.ParseID(hex)
		if err != nil {
			return err
		}
		orderID = id
	}

	update := bson.M{"$set": bson.M{
		"paid":          true,
		"transactionId": pay["transactionId"],
	}}
	_, err := h.Orders.UpdateOne(ctx, bson.M{"_id": orderID}, update, false)
	return err
}
