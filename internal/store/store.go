package store

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection names inside the car-house database.
const (
	CarsCollection          = "all-cars"
	OrdersCollection        = "orders"
	UsersCollection         = "users"
	ProfileImagesCollection = "user-image"
	ReviewsCollection       = "reviews"
	PaymentsCollection      = "payments"
)

var ErrInvalidID = errors.New("invalid object id")

// Store owns the process-wide client and one handle per collection.
type Store struct {
	client *mongo.Client
	db     *mongo.Database

	Cars          Collection
	Orders        Collection
	Users         Collection
	ProfileImages Collection
	Reviews       Collection
	Payments      Collection
}

// Open builds the client with the Stable API v1. The driver connects lazily,
// so an unreachable deployment surfaces per operation; Open only fails on a
// bad URI or options.
func Open(ctx context.Context, uri, dbName string) (*Store, error) {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri).SetServerAPIOptions(serverAPI))
	if err != nil {
		return nil, fmt.Errorf("store: connect: %w", err)
	}
	return New(client, dbName), nil
}

// Ping checks the deployment is reachable, waiting at most 10 seconds.
func (s *Store) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := s.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("store: ping: %w", err)
	}
	slog.Info("Connected to MongoDB", "database", s.db.Name())
	return nil
}

// New wires the collection handles on an already connected client.
func New(client *mongo.Client, dbName string) *Store {
	db := client.Database(dbName)
	return &Store{
		client:        client,
		db:            db,
		Cars:          NewCollection(db.Collection(CarsCollection)),
		Orders:        NewCollection(db.Collection(OrdersCollection)),
		Users:         NewCollection(db.Collection(UsersCollection)),
		ProfileImages: NewCollection(db.Collection(ProfileImagesCollection)),
		Reviews:       NewCollection(db.Collection(ReviewsCollection)),
		Payments:      NewCollection(db.Collection(PaymentsCollection)),
	}
}

// WithTransaction runs fn inside a session transaction. The context handed
// to fn carries the session and must be used for every write.
func (s *Store) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("store: start session: %w", err)
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})
	if err != nil {
		return fmt.Errorf("store: transaction: %w", err)
	}
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// ParseID converts a hex path segment to an ObjectID.
func ParseID(hex string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, hex)
	}
	return id, nil
}
