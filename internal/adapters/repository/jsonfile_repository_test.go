package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarav18302/CS203-Lab-01/internal/domain/entities"
)

func newTestRepo(t *testing.T) (*JSONFileRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "course_catalog.json")
	return NewJSONFileRepository(path).(*JSONFileRepository), path
}

func sampleCourse(code string) entities.Course {
	return entities.Course{
		Code:       code,
		Name:       "Intro",
		Instructor: "A",
		Semester:   "Fall",
		Schedule:   "MWF",
		Classroom:  "101",
		Grading:    "Letter",
	}
}

func TestListMissingFileReturnsEmptyCatalog(t *testing.T) {
	repo, _ := newTestRepo(t)

	courses, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, courses)
	assert.Empty(t, courses)
}

func TestAppendThenLoadRoundTrip(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	course := entities.Course{
		Code:       "CS101",
		Name:       "Intro",
		Instructor: "A",
		Semester:   "Fall",
		Schedule:   "MWF",
		Classroom:  "101",
		Grading:    "Letter",
	}

	require.NoError(t, repo.Append(ctx, course))

	courses, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, course, courses[0])

	found, err := repo.GetByCode(ctx, "CS101")
	require.NoError(t, err)
	assert.Equal(t, course, *found)

	_, err = repo.GetByCode(ctx, "CS999")
	assert.ErrorIs(t, err, entities.ErrCourseNotFound)
}

func TestSerialAppendsPreserveInsertionOrder(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	const n = 10
	for i := 0; i < n; i++ {
		require.NoError(t, repo.Append(ctx, sampleCourse(fmt.Sprintf("CS%03d", i))))
	}

	courses, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, courses, n)

	for i, c := range courses {
		assert.Equal(t, fmt.Sprintf("CS%03d", i), c.Code)
	}

	count, err := repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(n), count)
}

func TestGetByCodeFirstMatchOnDuplicates(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	first := sampleCourse("CS101")
	first.Instructor = "First"
	second := sampleCourse("CS101")
	second.Instructor = "Second"

	require.NoError(t, repo.Append(ctx, first))
	require.NoError(t, repo.Append(ctx, second))

	found, err := repo.GetByCode(ctx, "CS101")
	require.NoError(t, err)
	assert.Equal(t, "First", found.Instructor)
}

func TestMalformedFilePropagatesParseError(t *testing.T) {
	repo, path := newTestRepo(t)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := repo.List(context.Background())
	assert.ErrorIs(t, err, entities.ErrCatalogCorrupt)

	err = repo.Append(context.Background(), sampleCourse("CS101"))
	assert.ErrorIs(t, err, entities.ErrCatalogCorrupt)
}

func TestBackingFileUsesFourSpaceIndent(t *testing.T) {
	repo, path := newTestRepo(t)
	require.NoError(t, repo.Append(context.Background(), sampleCourse("CS101")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "\n        \"code\""),
		"catalog file should be pretty-printed with 4-space indent")
}

func TestConcurrentAppendsLoseNoRecords(t *testing.T) {
	repo, _ := newTestRepo(t)
	ctx := context.Background()

	const writers = 25
	var wg sync.WaitGroup
	wg.Add(writers)

	for i := 0; i < writers; i++ {
		go func(i int) {
			defer wg.Done()
			_ = repo.Append(ctx, sampleCourse(fmt.Sprintf("CS%03d", i)))
		}(i)
	}
	wg.Wait()

	courses, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, courses, writers)
}

func TestHealthCheck(t *testing.T) {
	repo, path := newTestRepo(t)
	ctx := context.Background()

	// Healthy with no backing file.
	require.NoError(t, repo.HealthCheck(ctx))

	require.NoError(t, repo.Append(ctx, sampleCourse("CS101")))
	require.NoError(t, repo.HealthCheck(ctx))

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o644))
	assert.Error(t, repo.HealthCheck(ctx))
}
