package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/sarav18302/CS203-Lab-01/internal/domain/entities"
	"github.com/sarav18302/CS203-Lab-01/internal/ports"
)

// PostgresRepository implements CourseRepository on a single courses
// table. The serial primary key preserves insertion order, matching the
// JSON file's append semantics.
type PostgresRepository struct {
	db *sqlx.DB
}

// NewPostgresRepository creates a Postgres-backed course repository
func NewPostgresRepository(db *sqlx.DB) ports.CourseRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) List(ctx context.Context) ([]entities.Course, error) {
	query := `
		SELECT code, name, instructor, semester, schedule, classroom, prerequisites, grading, description
		FROM courses
		ORDER BY id ASC`

	courses := []entities.Course{}
	if err := r.db.SelectContext(ctx, &courses, query); err != nil {
		return nil, fmt.Errorf("list courses: %w", err)
	}

	return courses, nil
}

func (r *PostgresRepository) GetByCode(ctx context.Context, code string) (*entities.Course, error) {
	query := `
		SELECT code, name, instructor, semester, schedule, classroom, prerequisites, grading, description
		FROM courses
		WHERE code = $1
		ORDER BY id ASC
		LIMIT 1`

	var course entities.Course
	err := r.db.GetContext(ctx, &course, query, code)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, entities.ErrCourseNotFound
		}
		return nil, fmt.Errorf("get course by code: %w", err)
	}

	return &course, nil
}

func (r *PostgresRepository) Append(ctx context.Context, course entities.Course) error {
	query := `
		INSERT INTO courses (code, name, instructor, semester, schedule, classroom, prerequisites, grading, description)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.db.ExecContext(ctx, query,
		course.Code, course.Name, course.Instructor, course.Semester,
		course.Schedule, course.Classroom, course.Prerequisites,
		course.Grading, course.Description,
	)
	if err != nil {
		return fmt.Errorf("append course: %w", err)
	}

	return nil
}

func (r *PostgresRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM courses`); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}

	return count, nil
}

func (r *PostgresRepository) HealthCheck(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}

	return nil
}
