package ports

import (
	"context"

	"github.com/sarav18302/CS203-Lab-01/internal/domain/entities"
)

// CourseRepository defines the interface for catalog data operations.
// The default implementation is a single JSON file with whole-file read
// and whole-file rewrite semantics; a Postgres implementation is available
// as an alternate backend.
type CourseRepository interface {
	// List returns every course in insertion order. A missing backing
	// store yields an empty slice, not an error.
	List(ctx context.Context) ([]entities.Course, error)

	// GetByCode returns the first course whose code matches, or
	// entities.ErrCourseNotFound.
	GetByCode(ctx context.Context, code string) (*entities.Course, error)

	// Append adds a course to the end of the catalog. The repository
	// performs no field validation and no uniqueness check.
	Append(ctx context.Context, course entities.Course) error

	// Count returns the number of courses in the catalog.
	Count(ctx context.Context) (int64, error)

	// HealthCheck verifies the backing store is reachable.
	HealthCheck(ctx context.Context) error
}
