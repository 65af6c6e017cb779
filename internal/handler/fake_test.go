package handler

import (
	"context"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"carhouse-backend/internal/store"
)

// memCollection is an in-memory store.Collection supporting top-level
// equality filters and $set updates.
type memCollection struct {
	mu   sync.Mutex
	docs []bson.M
	// err, when set, is returned by every operation.
	err error
}

func newMemCollection() *memCollection {
	return &memCollection{}
}

func toDocument(doc interface{}) (bson.M, error) {
	data, err := bson.Marshal(doc)
	if err != nil {
		return nil, err
	}
	var m bson.M
	if err := bson.Unmarshal(data, &m); err != nil {
		return nil, err
	}
	return store.NormalizeDocument(m), nil
}

func matches(doc, filter bson.M) bool {
	for k, want := range filter {
		if doc[k] != want {
			return false
		}
	}
	return true
}

func copyDoc(doc bson.M) bson.M {
	out := make(bson.M, len(doc))
	for k, v := range doc {
		out[k] = v
	}
	return out
}

func (m *memCollection) Find(_ context.Context, filter interface{}) ([]bson.M, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	out := []bson.M{}
	for _, d := range m.docs {
		if matches(d, filter.(bson.M)) {
			out = append(out, copyDoc(d))
		}
	}
	return out, nil
}

func (m *memCollection) FindOne(_ context.Context, filter interface{}) (bson.M, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for _, d := range m.docs {
		if matches(d, filter.(bson.M)) {
			return copyDoc(d), nil
		}
	}
	return nil, nil
}

func (m *memCollection) InsertOne(_ context.Context, doc interface{}) (*mongo.InsertOneResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	d, err := toDocument(doc)
	if err != nil {
		return nil, err
	}
	if _, ok := d["_id"]; !ok {
		d["_id"] = primitive.NewObjectID()
	}
	m.docs = append(m.docs, d)
	return &mongo.InsertOneResult{InsertedID: d["_id"]}, nil
}

func (m *memCollection) UpdateOne(_ context.Context, filter, update interface{}, upsert bool) (*mongo.UpdateResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	f := filter.(bson.M)
	set := update.(bson.M)["$set"].(bson.M)

	for _, d := range m.docs {
		if matches(d, f) {
			for k, v := range set {
				d[k] = v
			}
			return &mongo.UpdateResult{MatchedCount: 1, ModifiedCount: 1}, nil
		}
	}
	if !upsert {
		return &mongo.UpdateResult{}, nil
	}

	d := copyDoc(f)
	for k, v := range set {
		d[k] = v
	}
	m.docs = append(m.docs, d)
	return &mongo.UpdateResult{UpsertedCount: 1, UpsertedID: d["_id"]}, nil
}

func (m *memCollection) DeleteOne(_ context.Context, filter interface{}) (*mongo.DeleteResult, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	for i, d := range m.docs {
		if matches(d, filter.(bson.M)) {
			m.docs = append(m.docs[:i], m.docs[i+1:]...)
			return &mongo.DeleteResult{DeletedCount: 1}, nil
		}
	}
	return &mongo.DeleteResult{}, nil
}

// MockIntentCreator implements IntentCreator for testing.
type MockIntentCreator struct {
	CreateIntentFunc func(ctx context.Context, amount int64) (string, error)
}

func (m *MockIntentCreator) CreateIntent(ctx context.Context, amount int64) (string, error) {
	if m.CreateIntentFunc != nil {
		return m.CreateIntentFunc(ctx, amount)
	}
	return "", nil
}

// passthroughTx runs fn directly, counting invocations.
type passthroughTx struct {
	calls int
}

func (tx *passthroughTx) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	return fn(ctx)
}

type fixture struct {
	cars, orders, users, profiles, reviews, payments *memCollection
	handler                                           *Handler
}

func newFixture() *fixture {
	f := &fixture{
		cars:     newMemCollection(),
		orders:   newMemCollection(),
		users:    newMemCollection(),
		profiles: newMemCollection(),
		reviews:  newMemCollection(),
		payments: newMemCollection(),
	}
	f.handler = &Handler{
		Collections: Collections{
			Cars:          f.cars,
			Orders:        f.orders,
			Users:         f.users,
			ProfileImages: f.profiles,
			Reviews:       f.reviews,
			Payments:      f.payments,
		},
		Intents: &MockIntentCreator{},
	}
	return f
}
