// Package handler implements the HTTP command facade. Each handler decodes
// and validates its input, calls one service operation and maps the result
// or the domain error onto a JSON response.
package handler

// UserRequest identifies the acting user
type UserRequest struct {
	UserID int64 `json:"user_id" validate:"required,gt=0"`
}

// PlantRequest identifies one of the acting user's plants
type PlantRequest struct {
	UserID    int64  `json:"user_id" validate:"required,gt=0"`
	PlantName string `json:"plant_name" validate:"required,plantname"`
}
