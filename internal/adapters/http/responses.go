package http

import "github.com/sarav18302/CS203-Lab-01/internal/domain/entities"

// MessageResponse is a generic API message
type MessageResponse struct {
	Message string `json:"message"`
}

// ErrorResponse is a generic API error
type ErrorResponse struct {
	Error string `json:"error"`
}

// CourseListResponse wraps the catalog for the JSON API
type CourseListResponse struct {
	Courses []entities.Course `json:"courses"`
	Total   int               `json:"total"`
}
