package handler

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

func (h *Handler) ListReviews(c *gin.Context) {
	h.findAll(c, h.Reviews, bson.M{})
}

func (h *Handler) CreateReview(c *gin.Context) {
	h.insertJSON(c, h.Reviews)
}
