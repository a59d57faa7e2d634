package http

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/sarav18302/CS203-Lab-01/internal/domain/entities"
	"github.com/sarav18302/CS203-Lab-01/internal/infrastructure/logger"
	"github.com/sarav18302/CS203-Lab-01/internal/infrastructure/telemetry"
	"github.com/sarav18302/CS203-Lab-01/internal/ports"
)

// CourseHandler serves the HTML catalog views and the JSON API.
type CourseHandler struct {
	catalog   ports.CatalogService
	telemetry *telemetry.Provider
	logger    *logger.Logger
	appName   string
}

// NewCourseHandler creates a new course handler
func NewCourseHandler(catalog ports.CatalogService, tel *telemetry.Provider, appLogger *logger.Logger, appName string) *CourseHandler {
	return &CourseHandler{
		catalog:   catalog,
		telemetry: tel,
		logger:    appLogger,
		appName:   appName,
	}
}

// viewData is the payload handed to HTML templates.
type viewData struct {
	AppName string
	Flash   []FlashMessage
	Courses []entities.Course
	Course  *entities.Course
}

func (h *CourseHandler) requestAttributes(c echo.Context) []attribute.KeyValue {
	return []attribute.KeyValue{
		attribute.String("http.method", c.Request().Method),
		attribute.String("user.ip", c.RealIP()),
	}
}

// Index renders the landing page.
func (h *CourseHandler) Index(c echo.Context) error {
	h.telemetry.RecordRequest(c.Request().Context(), "/")

	return c.Render(http.StatusOK, "index.html", viewData{
		AppName: h.appName,
		Flash:   popFlash(c),
	})
}

// Catalog renders the full course catalog.
func (h *CourseHandler) Catalog(c echo.Context) error {
	start := time.Now()
	route := "/catalog"

	ctx, span := h.telemetry.StartSpan(c.Request().Context(), "view_catalog",
		trace.WithAttributes(h.requestAttributes(c)...),
	)
	defer span.End()

	courses, err := h.catalog.ListCourses(ctx)
	if err != nil {
		span.SetStatus(codes.Error, "failed to load catalog")
		span.RecordError(err)
		h.telemetry.RecordError(ctx, route, "catalog_load_failed")
		h.logger.Error("Failed to load catalog", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load course catalog")
	}

	span.SetAttributes(attribute.Int("view_catalog.count", len(courses)))
	span.AddEvent("Rendering course catalog")

	h.telemetry.RecordRequest(ctx, route)
	h.telemetry.RecordDuration(ctx, route, time.Since(start))

	return c.Render(http.StatusOK, "course_catalog.html", viewData{
		AppName: h.appName,
		Flash:   popFlash(c),
		Courses: courses,
	})
}

// CourseDetails renders a single course looked up by code. Unknown codes
// flash a message and send the user back to the catalog.
func (h *CourseHandler) CourseDetails(c echo.Context) error {
	start := time.Now()
	route := "/course"
	code := c.Param("code")

	ctx, span := h.telemetry.StartSpan(c.Request().Context(), "view_course_details",
		trace.WithAttributes(h.requestAttributes(c)...),
	)
	defer span.End()

	course, err := h.catalog.GetCourse(ctx, code)
	if err != nil {
		if errors.Is(err, entities.ErrCourseNotFound) {
			span.SetAttributes(attribute.Bool("error", true))
			span.SetStatus(codes.Error, fmt.Sprintf("no course found for code %s", code))
			span.AddEvent(fmt.Sprintf("No course found with code: %s", code))
			h.telemetry.RecordError(ctx, route, "course_not_found")

			setFlash(c, "error", fmt.Sprintf("No course found with code '%s'.", code))
			return c.Redirect(http.StatusFound, "/catalog")
		}

		span.SetStatus(codes.Error, "failed to load course")
		span.RecordError(err)
		h.telemetry.RecordError(ctx, route, "catalog_load_failed")
		h.logger.Error("Failed to load course", "error", err, "code", code)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to load course")
	}

	span.SetAttributes(attribute.String("course_code", code))
	span.AddEvent(fmt.Sprintf("Displaying details for course: %s", code))

	h.telemetry.RecordRequest(ctx, route)
	h.telemetry.RecordDuration(ctx, route, time.Since(start))

	return c.Render(http.StatusOK, "course_details.html", viewData{
		AppName: h.appName,
		Flash:   popFlash(c),
		Course:  course,
	})
}

// AddCourseForm renders the submission form.
func (h *CourseHandler) AddCourseForm(c echo.Context) error {
	h.telemetry.RecordRequest(c.Request().Context(), "/add_courses")

	return c.Render(http.StatusOK, "add_courses.html", viewData{
		AppName: h.appName,
		Flash:   popFlash(c),
	})
}

// AddCourseSubmit handles the HTML form submission. Validation failures
// flash a message and redirect back to the form; nothing is persisted.
func (h *CourseHandler) AddCourseSubmit(c echo.Context) error {
	start := time.Now()
	route := "/add_course"

	ctx, span := h.telemetry.StartSpan(c.Request().Context(), "add_course",
		trace.WithAttributes(h.requestAttributes(c)...),
	)
	defer span.End()

	var req ports.AddCourseRequest
	if err := c.Bind(&req); err != nil {
		span.SetAttributes(attribute.Bool("error", true))
		h.telemetry.RecordError(ctx, route, "bad_request")
		setFlash(c, "error", "Invalid form submission.")
		return c.Redirect(http.StatusFound, "/add_courses")
	}

	course, err := h.catalog.AddCourse(ctx, req)
	if err != nil {
		if errors.Is(err, entities.ErrMissingFields) {
			span.SetAttributes(attribute.Bool("error", true))
			span.AddEvent("Failed to add course. Missing fields.")
			h.telemetry.RecordError(ctx, route, "missing_fields")
			h.logger.Error("Course creation failed. Missing fields.")

			setFlash(c, "error", "All fields are required!")
			return c.Redirect(http.StatusFound, "/add_courses")
		}

		span.SetStatus(codes.Error, "failed to save course")
		span.RecordError(err)
		h.telemetry.RecordError(ctx, route, "save_failed")
		h.logger.Error("Failed to save course", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save course")
	}

	span.SetAttributes(
		attribute.String("course.code", course.Code),
		attribute.String("course.name", course.Name),
		attribute.String("course.instructor", course.Instructor),
		attribute.String("course.semester", course.Semester),
	)
	span.AddEvent(fmt.Sprintf("Course %s added successfully.", course.Name))
	span.SetStatus(codes.Ok, "")

	h.telemetry.RecordRequest(ctx, route)
	h.telemetry.RecordDuration(ctx, route, time.Since(start))

	setFlash(c, "success", "Course added successfully!")
	return c.Redirect(http.StatusFound, "/catalog")
}

// API handlers

// ListCoursesAPI returns the catalog as JSON.
func (h *CourseHandler) ListCoursesAPI(c echo.Context) error {
	courses, err := h.catalog.ListCourses(c.Request().Context())
	if err != nil {
		h.logger.Error("List courses failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve courses")
	}

	return c.JSON(http.StatusOK, CourseListResponse{
		Courses: courses,
		Total:   len(courses),
	})
}

// GetCourseAPI returns a single course by code.
func (h *CourseHandler) GetCourseAPI(c echo.Context) error {
	code := c.Param("code")

	course, err := h.catalog.GetCourse(c.Request().Context(), code)
	if err != nil {
		if errors.Is(err, entities.ErrCourseNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, fmt.Sprintf("No course found with code '%s'", code))
		}
		h.logger.Error("Get course failed", "error", err, "code", code)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to retrieve course")
	}

	return c.JSON(http.StatusOK, course)
}

// CreateCourseAPI appends a course submitted as JSON.
func (h *CourseHandler) CreateCourseAPI(c echo.Context) error {
	var req ports.AddCourseRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	course, err := h.catalog.AddCourse(c.Request().Context(), req)
	if err != nil {
		if errors.Is(err, entities.ErrMissingFields) {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error())
		}
		h.logger.Error("Create course failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to save course")
	}

	return c.JSON(http.StatusCreated, course)
}
