package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"carhouse-backend/internal/model"
)

func (h *Handler) CreateUser(c *gin.Context) {
	h.insertJSON(c, h.Users)
}

func (h *Handler) ListUsers(c *gin.Context) {
	h.findAll(c, h.Users, bson.M{})
}

// MakeAdmin sets role=admin on the account, upserting when it is missing.
// Roles are reported by IsAdmin but never enforced.
func (h *Handler) MakeAdmin(c *gin.Context) {
	h.setByID(c, h.Users, bson.M{"role": "admin"})
}

// IsAdmin reports false for both unknown and non-admin accounts.
func (h *Handler) IsAdmin(c *gin.Context) {
	user, err := h.Users.FindOne(c.Request.Context(), bson.M{"email": c.Param("email")})
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, model.AdminStatus{IsAdmin: user != nil && user["role"] == "admin"})
}

func (h *Handler) DeleteUser(c *gin.Context) {
	h.deleteByID(c, h.Users)
}
