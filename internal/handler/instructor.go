package handler

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-platform/internal/model"
	"github.com/iliyamo/course-platform/internal/repository"
	"github.com/iliyamo/course-platform/internal/storage"
)

// InstructorHandler covers course authoring.
type InstructorHandler struct {
	Courses *repository.CourseRepo
	Links   *storage.LinkManager
}

func NewInstructorHandler(courses *repository.CourseRepo, links *storage.LinkManager) *InstructorHandler {
	return &InstructorHandler{Courses: courses, Links: links}
}

type lessonRequest struct {
	Title          string `json:"title"`
	VideoObjectKey string `json:"videoObjectKey"`
	TextContent    string `json:"textContent"`
}

type moduleRequest struct {
	Title   string          `json:"title"`
	Lessons []lessonRequest `json:"lessons"`
}

type createCourseRequest struct {
	Title              string          `json:"title"`
	Description        string          `json:"description"`
	ThumbnailObjectKey string          `json:"thumbnailObjectKey"`
	Modules            []moduleRequest `json:"modules"`
}

// CreateCourse handles POST /api/v1/instructor/courses. Lesson uploads have
// already happened against presigned URLs; the request carries only the
// resulting object keys, which are persisted as the stable references.
func (h *InstructorHandler) CreateCourse(c echo.Context) error {
	pr, err := principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	var req createCourseRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if strings.TrimSpace(req.Title) == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "title is required"})
	}

	ctx := c.Request().Context()
	course := model.Course{
		ID:             uuid.NewString(),
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		InstructorID:   pr.SubjectID,
		InstructorName: pr.DisplayName,
		ThumbnailKey:   req.ThumbnailObjectKey,
		PublishStatus:  "Draft",
		Modules:        make([]model.Module, 0, len(req.Modules)),
	}
	if course.ThumbnailKey != "" {
		url, err := h.Links.IssueReadLink(ctx, course.ThumbnailKey)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not derive thumbnail link"})
		}
		course.ThumbnailURL = url
	}
	for _, m := range req.Modules {
		module := model.Module{
			ID:      uuid.NewString(),
			Title:   m.Title,
			Lessons: make([]model.Lesson, 0, len(m.Lessons)),
		}
		for _, l := range m.Lessons {
			module.Lessons = append(module.Lessons, model.Lesson{
				ID:          uuid.NewString(),
				Title:       l.Title,
				VideoKey:    l.VideoObjectKey,
				TextContent: l.TextContent,
			})
		}
		course.Modules = append(course.Modules, module)
	}

	if err := h.Courses.Save(ctx, course); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not create course"})
	}
	return c.JSON(http.StatusCreated, course)
}

// MyCourses handles GET /api/v1/instructor/my-courses.
func (h *InstructorHandler) MyCourses(c echo.Context) error {
	pr, err := principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	courses, err := h.Courses.ListByInstructor(ctx, pr.SubjectID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch courses"})
	}
	refreshCourses(ctx, h.Links, courses)
	return c.JSON(http.StatusOK, courses)
}
