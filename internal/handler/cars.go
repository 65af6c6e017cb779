package handler

import (
	"math"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"carhouse-backend/internal/model"
)

// GET /cars
func (h *Handler) ListCars(c *gin.Context) {
	h.findAll(c, h.Cars, bson.M{})
}

// GET /cars/:id
func (h *Handler) GetCar(c *gin.Context) {
	h.findByID(c, h.Cars)
}

// DELETE /cars/:id
func (h *Handler) DeleteCar(c *gin.Context) {
	h.deleteByID(c, h.Cars)
}

// POST /cars (multipart: title, brand, price, description, img)
func (h *Handler) CreateCar(c *gin.Context) {
	img, err := readUpload(c, "img")
	if err != nil {
		fail(c, err)
		return
	}

	car := model.Listing{
		Title:       c.PostForm("title"),
		Brand:       c.PostForm("brand"),
		Price:       formNumber(c.PostForm("price")),
		Description: c.PostForm("description"),
		Img:         img,
	}
	h.insert(c, h.Cars, car)
}

// formNumber keeps finite numeric form values numeric and everything else,
// including "Infinity" and "NaN", as text.
func formNumber(v string) interface{} {
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f
	}
	return v
}
