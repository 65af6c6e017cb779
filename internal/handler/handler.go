package handler

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"go.mongodb.org/mongo-driver/bson"

	"carhouse-backend/internal/model"
	"carhouse-backend/internal/store"
)

// IntentCreator creates a payment intent and returns its client secret.
type IntentCreator interface {
	CreateIntent(ctx context.Context, amount int64) (string, error)
}

// Transactor runs fn atomically. Only used when atomic payments are on.
type Transactor interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

// Collections groups the collection handles the routes operate on.
type Collections struct {
	Cars          store.Collection
	Orders        store.Collection
	Users         store.Collection
	ProfileImages store.Collection
	Reviews       store.Collection
	Payments      store.Collection
}

func CollectionsFrom(s *store.Store) Collections {
	return Collections{
		Cars:          s.Cars,
		Orders:        s.Orders,
		Users:         s.Users,
		ProfileImages: s.ProfileImages,
		Reviews:       s.Reviews,
		Payments:      s.Payments,
	}
}

type Handler struct {
	Collections
	Intents IntentCreator
	// Tx is nil unless payment confirmation should run in a transaction.
	Tx Transactor
}

// RegisterRoutes binds every API route. Static segments such as
// /orders/all take precedence over /orders/:id in gin's tree.
func (h *Handler) RegisterRoutes(r gin.IRouter) {
	r.GET("/cars", h.ListCars)
	r.GET("/cars/:id", h.GetCar)
	r.DELETE("/cars/:id", h.DeleteCar)
	r.POST("/cars", h.CreateCar)

	r.POST("/orders", h.CreateOrder)
	r.GET("/orders/all", h.ListOrders)
	r.GET("/orders", h.OrdersByEmail)
	r.DELETE("/orders/:id", h.DeleteOrder)
	r.GET("/orders/:id", h.GetOrder)
	r.PUT("/orders/approved/:id", h.ApproveOrder)

	r.POST("/users", h.CreateUser)
	r.GET("/users", h.ListUsers)
	r.PUT("/users/admin/:id", h.MakeAdmin)
	r.GET("/users/admin/:email", h.IsAdmin)
	r.DELETE("/users/:id", h.DeleteUser)

	r.POST("/userprofile", h.UploadProfileImage)
	r.GET("/userprofile/all", h.ListProfileImages)
	r.GET("/userprofile", h.ProfileImagesByEmail)

	r.GET("/reviews", h.ListReviews)
	r.POST("/reviews", h.CreateReview)

	r.POST("/create-payment-intent", h.CreatePaymentIntent)
	r.POST("/payments", h.CreatePayment)
}

// fail records err for the request logger and aborts with a bare 500.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatus(http.StatusInternalServerError)
}

func (h *Handler) findAll(c *gin.Context, coll store.Collection, filter bson.M) {
	docs, err := coll.Find(c.Request.Context(), filter)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, docs)
}

// findByID answers with an empty object when the id matches nothing.
func (h *Handler) findByID(c *gin.Context, coll store.Collection) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	doc, err := coll.FindOne(c.Request.Context(), bson.M{"_id": id})
	if err != nil {
		fail(c, err)
		return
	}
	if doc == nil {
		doc = bson.M{}
	}
	c.JSON(http.StatusOK, doc)
}

func (h *Handler) deleteByID(c *gin.Context, coll store.Collection) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	res, err := coll.DeleteOne(c.Request.Context(), bson.M{"_id": id})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewDeleteAck(res))
}

// insertJSON stores the request body as-is. An empty body inserts an
// empty document.
func (h *Handler) insertJSON(c *gin.Context, coll store.Collection) {
	doc, err := bindDocument(c)
	if err != nil {
		fail(c, err)
		return
	}
	h.insert(c, coll, doc)
}

// bindDocument decodes a JSON body. Other content types yield an empty
// document.
func bindDocument(c *gin.Context) (bson.M, error) {
	doc := bson.M{}
	if c.ContentType() != binding.MIMEJSON {
		return doc, nil
	}
	if err := c.ShouldBindJSON(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return doc, nil
}

func (h *Handler) insert(c *gin.Context, coll store.Collection, doc interface{}) {
	res, err := coll.InsertOne(c.Request.Context(), doc)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewInsertAck(res))
}

// setByID applies $set fields to the document with the path id, creating it
// when absent.
func (h *Handler) setByID(c *gin.Context, coll store.Collection, fields bson.M) {
	id, err := store.ParseID(c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	res, err := coll.UpdateOne(c.Request.Context(), bson.M{"_id": id}, bson.M{"$set": fields}, true)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.NewUpdateAck(res))
}
