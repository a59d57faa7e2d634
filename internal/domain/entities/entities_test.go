package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMissingFields(t *testing.T) {
	course := Course{
		Code:       "CS101",
		Name:       "Intro",
		Instructor: "A",
		Semester:   "Fall",
		Schedule:   "MWF",
		Classroom:  "101",
		Grading:    "Letter",
	}

	assert.Empty(t, course.MissingFields())
	assert.True(t, course.RequiredFieldsPresent())

	course.Instructor = "  "
	course.Grading = ""

	missing := course.MissingFields()
	assert.Equal(t, []string{"instructor", "grading"}, missing)
	assert.False(t, course.RequiredFieldsPresent())
}

func TestOptionalFieldsMayBeEmpty(t *testing.T) {
	course := Course{
		Code:       "CS101",
		Name:       "Intro",
		Instructor: "A",
		Semester:   "Fall",
		Schedule:   "MWF",
		Classroom:  "101",
		Grading:    "Letter",
	}

	// Prerequisites and description are free text.
	assert.True(t, course.RequiredFieldsPresent())
}

func TestMatches(t *testing.T) {
	course := Course{Code: "CS101"}

	assert.True(t, course.Matches("CS101"))
	assert.False(t, course.Matches("cs101"))
	assert.False(t, course.Matches("CS999"))
}
