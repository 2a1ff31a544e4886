package models

import (
	"fmt"
	"strings"
)

// Car represents a row of the cars table
type Car struct {
	ID    int64  `json:"id"`
	Brand string `json:"brand"`
	Model string `json:"model"`
	Year  int    `json:"year"`
	Color string `json:"color"`
	Price int    `json:"price"`
}

// CreateCarRequest is the payload accepted by POST /cars.
// Fields are pointers so that a missing field can be told apart from a zero value.
type CreateCarRequest struct {
	Brand *string `json:"brand" binding:"required"`
	Model *string `json:"model" binding:"required"`
	Year  *int    `json:"year" binding:"required"`
	Color *string `json:"color" binding:"required"`
	Price *int    `json:"price" binding:"required"`
}

// Validate reports every required field that is absent
func (r *CreateCarRequest) Validate() error {
	var missing []string
	if r.Brand == nil {
		missing = append(missing, "brand")
	}
	if r.Model == nil {
		missing = append(missing, "model")
	}
	if r.Year == nil {
		missing = append(missing, "year")
	}
	if r.Color == nil {
		missing = append(missing, "color")
	}
	if r.Price == nil {
		missing = append(missing, "price")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

// ToCar converts a validated request into a Car without an id.
// Callers must run Validate first.
func (r *CreateCarRequest) ToCar() *Car {
	return &Car{
		Brand: *r.Brand,
		Model: *r.Model,
		Year:  *r.Year,
		Color: *r.Color,
		Price: *r.Price,
	}
}

// CarListResponse is returned by GET /cars
type CarListResponse struct {
	Cars []Car `json:"cars"`
}

// CarFilterResponse is returned by the year and price filters
type CarFilterResponse struct {
	Cars  []Car `json:"cars"`
	Count int   `json:"count"`
}

// NewCarFilterResponse wraps cars and counts them
func NewCarFilterResponse(cars []Car) *CarFilterResponse {
	if cars == nil {
		cars = []Car{}
	}
	return &CarFilterResponse{Cars: cars, Count: len(cars)}
}

// CreateCarResponse is returned by POST /cars
type CreateCarResponse struct {
	Message string `json:"message"`
	Car     Car    `json:"car"`
}
