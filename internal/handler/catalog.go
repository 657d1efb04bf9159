package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-platform/internal/repository"
	"github.com/iliyamo/course-platform/internal/storage"
)

// CatalogHandler serves the public course catalog.
type CatalogHandler struct {
	Courses *repository.CourseRepo
	Links   *storage.LinkManager
}

func NewCatalogHandler(courses *repository.CourseRepo, links *storage.LinkManager) *CatalogHandler {
	return &CatalogHandler{Courses: courses, Links: links}
}

// ListCourses handles GET /api/v1/courses and returns every course with a
// freshly derived thumbnail URL.
func (h *CatalogHandler) ListCourses(c echo.Context) error {
	ctx := c.Request().Context()
	courses, err := h.Courses.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch courses"})
	}
	refreshCourses(ctx, h.Links, courses)
	return c.JSON(http.StatusOK, courses)
}

// GetCourse handles GET /api/v1/courses/:courseId.
func (h *CatalogHandler) GetCourse(c echo.Context) error {
	ctx := c.Request().Context()
	course, err := h.Courses.Get(ctx, c.Param("courseId"))
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch course"})
	}
	refreshCourse(ctx, h.Links, &course)
	return c.JSON(http.StatusOK, course)
}
