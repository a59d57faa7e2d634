package ports

import (
	"context"

	"github.com/sarav18302/CS203-Lab-01/internal/domain/entities"
)

// AddCourseRequest carries a course submission. Binding covers both the
// HTML form and the JSON API.
type AddCourseRequest struct {
	Code          string `json:"code" form:"code" validate:"required"`
	Name          string `json:"name" form:"name" validate:"required"`
	Instructor    string `json:"instructor" form:"instructor" validate:"required"`
	Semester      string `json:"semester" form:"semester" validate:"required"`
	Schedule      string `json:"schedule" form:"schedule" validate:"required"`
	Classroom     string `json:"classroom" form:"classroom" validate:"required"`
	Prerequisites string `json:"prerequisites" form:"prerequisites"`
	Grading       string `json:"grading" form:"grading" validate:"required"`
	Description   string `json:"description" form:"description"`
}

// CatalogService defines the course catalog operations exposed to the
// HTTP layer and the CLI.
type CatalogService interface {
	ListCourses(ctx context.Context) ([]entities.Course, error)
	GetCourse(ctx context.Context, code string) (*entities.Course, error)
	AddCourse(ctx context.Context, req AddCourseRequest) (*entities.Course, error)
	CourseCount(ctx context.Context) (int64, error)
}
