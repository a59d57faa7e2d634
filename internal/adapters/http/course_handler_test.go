package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sarav18302/CS203-Lab-01/internal/adapters/repository"
	"github.com/sarav18302/CS203-Lab-01/internal/application/services"
	"github.com/sarav18302/CS203-Lab-01/internal/domain/entities"
	"github.com/sarav18302/CS203-Lab-01/internal/infrastructure/config"
	"github.com/sarav18302/CS203-Lab-01/internal/infrastructure/logger"
	"github.com/sarav18302/CS203-Lab-01/internal/infrastructure/telemetry"
	"github.com/sarav18302/CS203-Lab-01/internal/ports"
)

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	return v.validator.Struct(i)
}

// newTestApp wires a handler against a temp-file catalog with telemetry
// disabled, and registers the routes the server exposes.
func newTestApp(t *testing.T) (*echo.Echo, ports.CourseRepository) {
	t.Helper()

	repo := repository.NewJSONFileRepository(filepath.Join(t.TempDir(), "catalog.json"))
	appLogger := logger.NewNop()

	tel, err := telemetry.New(context.Background(), config.TelemetryConfig{Enabled: false}, config.AppConfig{Name: "CoursePortal"}, appLogger)
	require.NoError(t, err)

	catalog := services.NewCatalogService(repo, appLogger, "")
	handler := NewCourseHandler(catalog, tel, appLogger, "CoursePortal")

	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}

	e.GET("/course/:code", handler.CourseDetails)
	e.POST("/add_course", handler.AddCourseSubmit)
	e.GET("/api/v1/courses", handler.ListCoursesAPI)
	e.POST("/api/v1/courses", handler.CreateCourseAPI)
	e.GET("/api/v1/courses/:code", handler.GetCourseAPI)

	return e, repo
}

func courseForm() url.Values {
	form := url.Values{}
	form.Set("code", "CS101")
	form.Set("name", "Intro")
	form.Set("instructor", "A")
	form.Set("semester", "Fall")
	form.Set("schedule", "MWF")
	form.Set("classroom", "101")
	form.Set("grading", "Letter")
	return form
}

func postForm(e *echo.Echo, path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func flashCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == flashCookieName && c.MaxAge >= 0 {
			return c
		}
	}
	return nil
}

func TestListCoursesAPIEmptyCatalog(t *testing.T) {
	e, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/courses", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp CourseListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Zero(t, resp.Total)
	assert.Empty(t, resp.Courses)
}

func TestCreateCourseAPIAndFetch(t *testing.T) {
	e, _ := newTestApp(t)

	body := `{"code":"CS101","name":"Intro","instructor":"A","semester":"Fall","schedule":"MWF","classroom":"101","grading":"Letter"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/courses", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/courses/CS101", nil)
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var course entities.Course
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &course))
	assert.Equal(t, "Intro", course.Name)
}

func TestCreateCourseAPIValidationFailure(t *testing.T) {
	e, repo := newTestApp(t)

	body := `{"code":"CS101","name":"","instructor":"A","semester":"Fall","schedule":"MWF","classroom":"101","grading":"Letter"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/courses", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count, "failed submission must not mutate the catalog")
}

func TestGetCourseAPINotFound(t *testing.T) {
	e, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/courses/CS999", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCourseDetailsNotFoundRedirectsWithFlash(t *testing.T) {
	e, _ := newTestApp(t)

	req := httptest.NewRequest(http.MethodGet, "/course/CS999", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/catalog", rec.Header().Get(echo.HeaderLocation))

	cookie := flashCookie(rec)
	require.NotNil(t, cookie, "a flash message should be set")
}

func TestAddCourseFormSubmission(t *testing.T) {
	e, repo := newTestApp(t)

	rec := postForm(e, "/add_course", courseForm())

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/catalog", rec.Header().Get(echo.HeaderLocation))

	course, err := repo.GetByCode(context.Background(), "CS101")
	require.NoError(t, err)
	assert.Equal(t, "Intro", course.Name)
}

func TestAddCourseFormMissingFields(t *testing.T) {
	e, repo := newTestApp(t)

	form := courseForm()
	form.Set("instructor", "")
	rec := postForm(e, "/add_course", form)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/add_courses", rec.Header().Get(echo.HeaderLocation))

	count, err := repo.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, count, "failed submission must not mutate the catalog")
}

func TestFlashRoundTrip(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	setFlash(c, "error", "No course found with code 'CS999'.")

	cookie := flashCookie(rec)
	require.NotNil(t, cookie)

	// Replay the cookie on a fresh request, as a browser would.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookieName, Value: cookie.Value})
	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)

	messages := popFlash(c)
	require.Len(t, messages, 1)
	assert.Equal(t, "error", messages[0].Category)
	assert.Equal(t, "No course found with code 'CS999'.", messages[0].Text)

	// The pop must clear the cookie.
	cleared := false
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == flashCookieName && ck.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared)
}
