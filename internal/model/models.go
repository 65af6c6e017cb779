package model

import "go.mongodb.org/mongo-driver/mongo"

// Listing is a car posted by an admin. Price holds a number when the form
// value parses as one, otherwise the raw text.
type Listing struct {
	Title       string      `bson:"title" json:"title"`
	Brand       string      `bson:"brand" json:"brand"`
	Price       interface{} `bson:"price" json:"price"`
	Description string      `bson:"description" json:"description"`
	Img         []byte      `bson:"img" json:"img"`
}

type ProfileImage struct {
	Image []byte `bson:"image" json:"image"`
	Email string `bson:"email" json:"email"`
}

type PaymentIntentRequest struct {
	Price float64 `json:"price"`
}

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
}

type AdminStatus struct {
	IsAdmin bool `json:"isAdmin"`
}

// InsertAck, UpdateAck and DeleteAck mirror the driver result objects the
// API has always returned to clients.
type InsertAck struct {
	Acknowledged bool        `json:"acknowledged"`
	InsertedID   interface{} `json:"insertedId"`
}

type UpdateAck struct {
	Acknowledged  bool        `json:"acknowledged"`
	MatchedCount  int64       `json:"matchedCount"`
	ModifiedCount int64       `json:"modifiedCount"`
	UpsertedCount int64       `json:"upsertedCount"`
	UpsertedID    interface{} `json:"upsertedId"`
}

type DeleteAck struct {
	Acknowledged bool  `json:"acknowledged"`
	DeletedCount int64 `json:"deletedCount"`
}

func NewInsertAck(res *mongo.InsertOneResult) InsertAck {
	return InsertAck{Acknowledged: true, InsertedID: res.InsertedID}
}

func NewUpdateAck(res *mongo.UpdateResult) UpdateAck {
	return UpdateAck{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
		UpsertedCount: res.UpsertedCount,
		UpsertedID:    res.UpsertedID,
	}
}

func NewDeleteAck(res *mongo.DeleteResult) DeleteAck {
	return DeleteAck{Acknowledged: true, DeletedCount: res.DeletedCount}
}
