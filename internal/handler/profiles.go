package handler

import (
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"carhouse-backend/internal/model"
)

// POST /userprofile (multipart: img, email)
func (h *Handler) UploadProfileImage(c *gin.Context) {
	img, err := readUpload(c, "img")
	if err != nil {
		fail(c, err)
		return
	}
	h.insert(c, h.ProfileImages, model.ProfileImage{
		Image: img,
		Email: c.PostForm("email"),
	})
}

// GET /userprofile/all
func (h *Handler) ListProfileImages(c *gin.Context) {
	h.findAll(c, h.ProfileImages, bson.M{})
}

// GET /userprofile?email=
func (h *Handler) ProfileImagesByEmail(c *gin.Context) {
	h.findAll(c, h.ProfileImages, bson.M{"email": c.Query("email")})
}
