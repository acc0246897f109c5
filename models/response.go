package models

import "time"

type ErrorResponse struct {
	Error string `json:"error" example:"Transaction not found"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Transaction deleted successfully"`
}

type HealthResponse struct {
	Status    string    `json:"status" example:"ok"`
	Timestamp time.Time `json:"timestamp"`
}
