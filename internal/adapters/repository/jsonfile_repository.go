package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sarav18302/CS203-Lab-01/internal/domain/entities"
	"github.com/sarav18302/CS203-Lab-01/internal/ports"
)

// catalogIndent keeps the backing file byte-compatible with catalogs
// written by earlier versions of the portal.
const catalogIndent = "    "

// JSONFileRepository persists the catalog as a single JSON array in one
// file. Every append re-reads and rewrites the whole file. The mutex
// serializes the load-modify-write cycle so concurrent appends cannot
// lose records; writes are still not atomic against crashes.
type JSONFileRepository struct {
	path string
	mu   sync.Mutex
}

// NewJSONFileRepository creates a catalog repository backed by the JSON
// file at path. The file is created lazily on first append.
func NewJSONFileRepository(path string) ports.CourseRepository {
	return &JSONFileRepository{path: path}
}

func (r *JSONFileRepository) List(ctx context.Context) ([]entities.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.load()
}

func (r *JSONFileRepository) GetByCode(ctx context.Context, code string) (*entities.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	courses, err := r.load()
	if err != nil {
		return nil, err
	}

	// First match wins when duplicate codes exist.
	for i := range courses {
		if courses[i].Matches(code) {
			return &courses[i], nil
		}
	}

	return nil, entities.ErrCourseNotFound
}

func (r *JSONFileRepository) Append(ctx context.Context, course entities.Course) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	courses, err := r.load()
	if err != nil {
		return err
	}

	courses = append(courses, course)

	return r.store(courses)
}

func (r *JSONFileRepository) Count(ctx context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	courses, err := r.load()
	if err != nil {
		return 0, err
	}

	return int64(len(courses)), nil
}

// HealthCheck verifies the catalog directory is reachable. An absent
// backing file is healthy; it means an empty catalog.
func (r *JSONFileRepository) HealthCheck(ctx context.Context) error {
	dir := filepath.Dir(r.path)
	if _, err := os.Stat(dir); err != nil {
		return fmt.Errorf("catalog directory unavailable: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, err := r.load(); err != nil {
		return err
	}

	return nil
}

// load reads the whole backing file. Callers must hold the mutex.
func (r *JSONFileRepository) load() ([]entities.Course, error) {
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []entities.Course{}, nil
		}
		return nil, fmt.Errorf("read catalog file: %w", err)
	}

	var courses []entities.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("%w: %v", entities.ErrCatalogCorrupt, err)
	}

	if courses == nil {
		courses = []entities.Course{}
	}

	return courses, nil
}

// store rewrites the whole backing file. Callers must hold the mutex.
func (r *JSONFileRepository) store(courses []entities.Course) error {
	data, err := json.MarshalIndent(courses, "", catalogIndent)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}

	if err := os.WriteFile(r.path, data, 0o644); err != nil {
		return fmt.Errorf("write catalog file: %w", err)
	}

	return nil
}
