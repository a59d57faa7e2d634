package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/sarav18302/CS203-Lab-01/internal/domain/entities"
	"github.com/sarav18302/CS203-Lab-01/internal/infrastructure/logger"
	"github.com/sarav18302/CS203-Lab-01/internal/ports"
)

// CatalogService handles course catalog operations
type CatalogService struct {
	repo                 ports.CourseRepository
	logger               *logger.Logger
	defaultPrerequisites string
}

// NewCatalogService creates a new catalog service. defaultPrerequisites
// is applied when a submission leaves the prerequisites field blank.
func NewCatalogService(repo ports.CourseRepository, appLogger *logger.Logger, defaultPrerequisites string) *CatalogService {
	return &CatalogService{
		repo:                 repo,
		logger:               appLogger,
		defaultPrerequisites: defaultPrerequisites,
	}
}

// ListCourses returns the full catalog in insertion order
func (s *CatalogService) ListCourses(ctx context.Context) ([]entities.Course, error) {
	courses, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	return courses, nil
}

// GetCourse returns the first course matching the given code
func (s *CatalogService) GetCourse(ctx context.Context, code string) (*entities.Course, error) {
	course, err := s.repo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	return course, nil
}

// AddCourse validates a submission and appends it to the catalog.
// On validation failure nothing is persisted.
func (s *CatalogService) AddCourse(ctx context.Context, req ports.AddCourseRequest) (*entities.Course, error) {
	course := entities.Course{
		Code:          strings.TrimSpace(req.Code),
		Name:          strings.TrimSpace(req.Name),
		Instructor:    strings.TrimSpace(req.Instructor),
		Semester:      strings.TrimSpace(req.Semester),
		Schedule:      strings.TrimSpace(req.Schedule),
		Classroom:     strings.TrimSpace(req.Classroom),
		Prerequisites: strings.TrimSpace(req.Prerequisites),
		Grading:       strings.TrimSpace(req.Grading),
		Description:   strings.TrimSpace(req.Description),
	}

	if missing := course.MissingFields(); len(missing) > 0 {
		s.logger.Warn("Course submission rejected", "missing_fields", missing)
		return nil, fmt.Errorf("%w: %s", entities.ErrMissingFields, strings.Join(missing, ", "))
	}

	if course.Prerequisites == "" {
		course.Prerequisites = s.defaultPrerequisites
	}

	if err := s.repo.Append(ctx, course); err != nil {
		return nil, fmt.Errorf("failed to save course: %w", err)
	}

	s.logger.LogCourseSubmission(course.Code, course.Name, course.Instructor, course.Semester)

	return &course, nil
}

// CourseCount returns the catalog size
func (s *CatalogService) CourseCount(ctx context.Context) (int64, error) {
	count, err := s.repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}

	return count, nil
}
