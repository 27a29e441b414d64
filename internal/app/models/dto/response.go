package dto

import (
	"time"

	"github.com/yigit/unischedule/internal/app/models"
)

// APIResponse is the envelope of every JSON response
type APIResponse struct {
	Success   bool         `json:"success" example:"true"`
	Data      interface{}  `json:"data,omitempty"`
	Error     *ErrorDetail `json:"error,omitempty"`
	Timestamp time.Time    `json:"timestamp"`
}

// NewSuccessResponse wraps data in a successful envelope
func NewSuccessResponse(data interface{}) APIResponse {
	return APIResponse{
		Success:   true,
		Data:      data,
		Timestamp: time.Now(),
	}
}

// SuccessResponse represents a standard success response for API endpoints
type SuccessResponse struct {
	Message string `json:"message"`
}

// CreatedResponse carries the id of a newly created entity
type CreatedResponse struct {
	ID int64 `json:"id" example:"1"`
}

// ChangeTeacherResponse lists the lectures that got a substitute teacher
type ChangeTeacherResponse struct {
	Reassigned int               `json:"reassigned" example:"2"`
	Lectures   []*models.Lecture `json:"lectures"`
}
