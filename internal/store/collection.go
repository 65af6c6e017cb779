package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Collection is the subset of collection operations the handlers use.
// Documents come back normalized (see NormalizeDocument).
type Collection interface {
	Find(ctx context.Context, filter interface{}) ([]bson.M, error)
	// FindOne returns a nil document and no error when nothing matches.
	FindOne(ctx context.Context, filter interface{}) (bson.M, error)
	InsertOne(ctx context.Context, doc interface{}) (*mongo.InsertOneResult, error)
	UpdateOne(ctx context.Context, filter, update interface{}, upsert bool) (*mongo.UpdateResult, error)
	DeleteOne(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error)
}

type mongoCollection struct {
	coll *mongo.Collection
}

func NewCollection(coll *mongo.Collection) Collection {
	return &mongoCollection{coll: coll}
}

func (c *mongoCollection) Find(ctx context.Context, filter interface{}) ([]bson.M, error) {
	cur, err := c.coll.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s.Find: %w", c.coll.Name(), err)
	}
	docs := []bson.M{}
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("%s.Find: decode: %w", c.coll.Name(), err)
	}
	for i := range docs {
		docs[i] = NormalizeDocument(docs[i])
	}
	return docs, nil
}

func (c *mongoCollection) FindOne(ctx context.Context, filter interface{}) (bson.M, error) {
	var doc bson.M
	err := c.coll.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%s.FindOne: %w", c.coll.Name(), err)
	}
	return NormalizeDocument(doc), nil
}

func (c *mongoCollection) InsertOne(ctx context.Context, doc interface{}) (*mongo.InsertOneResult, error) {
	res, err := c.coll.InsertOne(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%s.InsertOne: %w", c.coll.Name(), err)
	}
	return res, nil
}

func (c *mongoCollection) UpdateOne(ctx context.Context, filter, update interface{}, upsert bool) (*mongo.UpdateResult, error) {
	res, err := c.coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(upsert))
	if err != nil {
		return nil, fmt.Errorf("%s.UpdateOne: %w", c.coll.Name(), err)
	}
	return res, nil
}

func (c *mongoCollection) DeleteOne(ctx context.Context, filter interface{}) (*mongo.DeleteResult, error) {
	res, err := c.coll.DeleteOne(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("%s.DeleteOne: %w", c.coll.Name(), err)
	}
	return res, nil
}

// NormalizeDocument rewrites BSON binary values to []byte, recursively,
// so that JSON responses carry them as base64 strings.
func NormalizeDocument(doc bson.M) bson.M {
	for k, v := range doc {
		doc[k] = normalizeValue(v)
	}
	return doc
}

func normalizeValue(v interface{}) interface{} {
	switch val := v.(type) {
	case primitive.Binary:
		return val.Data
	case bson.M:
		return NormalizeDocument(val)
	case bson.D:
		m := make(bson.M, len(val))
		for _, e := range val {
			m[e.Key] = normalizeValue(e.Value)
		}
		return m
	case bson.A:
		for i := range val {
			val[i] = normalizeValue(val[i])
		}
		return val
	default:
		return v
	}
}
