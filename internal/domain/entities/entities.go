package entities

import (
	"errors"
	"strings"
)

// Common errors
var (
	ErrCourseNotFound = errors.New("course not found")
	ErrMissingFields  = errors.New("required course fields are missing")
	ErrCatalogCorrupt = errors.New("catalog file is corrupt")
	ErrInvalidBackend = errors.New("unknown storage backend")
)

// Course represents a single course listing in the catalog.
// The code is the informal key; the store does not enforce uniqueness.
type Course struct {
	Code          string `json:"code" db:"code" form:"code" validate:"required"`
	Name          string `json:"name" db:"name" form:"name" validate:"required"`
	Instructor    string `json:"instructor" db:"instructor" form:"instructor" validate:"required"`
	Semester      string `json:"semester" db:"semester" form:"semester" validate:"required"`
	Schedule      string `json:"schedule" db:"schedule" form:"schedule" validate:"required"`
	Classroom     string `json:"classroom" db:"classroom" form:"classroom" validate:"required"`
	Prerequisites string `json:"prerequisites" db:"prerequisites" form:"prerequisites"`
	Grading       string `json:"grading" db:"grading" form:"grading" validate:"required"`
	Description   string `json:"description" db:"description" form:"description"`
}

// MissingFields returns the names of mandatory fields that are empty.
// Prerequisites and description are free text and may stay blank.
func (c *Course) MissingFields() []string {
	var missing []string

	required := []struct {
		name  string
		value string
	}{
		{"code", c.Code},
		{"name", c.Name},
		{"instructor", c.Instructor},
		{"semester", c.Semester},
		{"schedule", c.Schedule},
		{"classroom", c.Classroom},
		{"grading", c.Grading},
	}

	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}

	return missing
}

// RequiredFieldsPresent reports whether every mandatory field carries a
// non-empty value.
func (c *Course) RequiredFieldsPresent() bool {
	return len(c.MissingFields()) == 0
}

// Matches reports whether the course carries the given code.
func (c *Course) Matches(code string) bool {
	return c.Code == code
}
