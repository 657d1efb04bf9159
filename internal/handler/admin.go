package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-platform/internal/model"
	"github.com/iliyamo/course-platform/internal/repository"
	"github.com/iliyamo/course-platform/internal/storage"
)

// AdminHandler covers user administration and destructive course maintenance.
type AdminHandler struct {
	Users   *repository.UserRepo
	Courses *repository.CourseRepo
	Links   *storage.LinkManager
}

func NewAdminHandler(users *repository.UserRepo, courses *repository.CourseRepo, links *storage.LinkManager) *AdminHandler {
	return &AdminHandler{Users: users, Courses: courses, Links: links}
}

// ListUsers handles GET /api/v1/admin/users.
func (h *AdminHandler) ListUsers(c echo.Context) error {
	users, err := h.Users.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch users"})
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateUserRoles handles PUT /api/v1/admin/users/:uid/roles. Every tag must
// belong to the enumerated role set; an invalid tag rejects the whole update
// and leaves the stored roles unmodified.
func (h *AdminHandler) UpdateUserRoles(c echo.Context) error {
	var body struct {
		Roles []string `json:"roles"`
	}
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid request body"})
	}
	if len(body.Roles) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "roles are required"})
	}
	for _, tag := range body.Roles {
		if !model.KnownRole(tag) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid role: " + tag})
		}
	}

	err := h.Users.UpdateRoles(c.Request().Context(), c.Param("uid"), body.Roles)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update roles"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "roles updated"})
}

// DeleteCourse handles DELETE /api/v1/admin/courses/:courseId. Blob cleanup
// runs first, sequentially and continue-on-error; a partial failure leaves
// orphaned blobs behind rather than blocking the metadata deletion.
func (h *AdminHandler) DeleteCourse(c echo.Context) error {
	ctx := c.Request().Context()
	course, err := h.Courses.Get(ctx, c.Param("courseId"))
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch course"})
	}

	h.deleteObject(ctx, course.ThumbnailKey, course.ThumbnailURL)
	for _, m := range course.Modules {
		h.deleteLessonObjects(ctx, m.Lessons)
	}

	if err := h.Courses.Delete(ctx, course.ID); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not delete course"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "course deleted"})
}

// DeleteModule handles DELETE /api/v1/admin/courses/:courseId/modules/:moduleId.
func (h *AdminHandler) DeleteModule(c echo.Context) error {
	ctx := c.Request().Context()
	course, err := h.Courses.Get(ctx, c.Param("courseId"))
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch course"})
	}

	moduleID := c.Param("moduleId")
	kept := course.Modules[:0]
	found := false
	for _, m := range course.Modules {
		if m.ID == moduleID {
			found = true
			h.deleteLessonObjects(ctx, m.Lessons)
			continue
		}
		kept = append(kept, m)
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "module not found"})
	}
	course.Modules = kept

	if err := h.Courses.Save(ctx, course); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update course"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "module deleted"})
}

// DeleteLesson handles
// DELETE /api/v1/admin/courses/:courseId/modules/:moduleId/lessons/:lessonId.
func (h *AdminHandler) DeleteLesson(c echo.Context) error {
	ctx := c.Request().Context()
	course, err := h.Courses.Get(ctx, c.Param("courseId"))
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch course"})
	}

	moduleID, lessonID := c.Param("moduleId"), c.Param("lessonId")
	found := false
	for mi := range course.Modules {
		if course.Modules[mi].ID != moduleID {
			continue
		}
		lessons := course.Modules[mi].Lessons
		kept := lessons[:0]
		for _, l := range lessons {
			if l.ID == lessonID {
				found = true
				h.deleteObject(ctx, l.VideoKey, l.VideoURL)
				continue
			}
			kept = append(kept, l)
		}
		course.Modules[mi].Lessons = kept
	}
	if !found {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "lesson not found"})
	}

	if err := h.Courses.Save(ctx, course); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not update course"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "lesson deleted"})
}

// deleteObject removes a blob by its stored key, falling back to a key
// recovered from a legacy URL. Deletion is best-effort throughout.
func (h *AdminHandler) deleteObject(ctx context.Context, key, legacyURL string) {
	if key == "" {
		key = storage.ExtractKey(legacyURL)
	}
	h.Links.Delete(ctx, key)
}

func (h *AdminHandler) deleteLessonObjects(ctx context.Context, lessons []model.Lesson) {
	for _, l := range lessons {
		h.deleteObject(ctx, l.VideoKey, l.VideoURL)
	}
}
