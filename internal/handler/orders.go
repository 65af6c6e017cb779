package handler

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// POST /orders
func (h *Handler) CreateOrder(c *gin.Context) {
	h.insertJSON(c, h.Orders)
}

// GET /orders/all
func (h *Handler) ListOrders(c *gin.Context) {
	h.findAll(c, h.Orders, bson.M{})
}

// GET /orders?email=
func (h *Handler) OrdersByEmail(c *gin.Context) {
	h.findAll(c, h.Orders, bson.M{"email": c.Query("email")})
}

// DELETE /orders/:id
func (h *Handler) DeleteOrder(c *gin.Context) {
	h.deleteByID(c, h.Orders)
}

// GET /orders/:id
func (h *Handler) GetOrder(c *gin.Context) {
	h.findByID(c, h.Orders)
}

// PUT /orders/approved/:id
func (h *Handler) ApproveOrder(c *gin.Context) {
	h.setByID(c, h.Orders, bson.M{"status": "approved"})
}
