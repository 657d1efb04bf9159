package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-platform/internal/model"
	"github.com/iliyamo/course-platform/internal/queue"
	"github.com/iliyamo/course-platform/internal/repository"
	"github.com/iliyamo/course-platform/internal/storage"
)

// EnrollmentStore is the slice of the enrollment repository the student
// handler needs.
type EnrollmentStore interface {
	Create(ctx context.Context, e model.Enrollment) (model.Enrollment, error)
	ListByUser(ctx context.Context, userID string) ([]model.Enrollment, error)
	IsEnrolled(ctx context.Context, userID, courseID string) bool
}

// CourseStore is the slice of the course repository the student handler needs.
type CourseStore interface {
	Get(ctx context.Context, id string) (model.Course, error)
	List(ctx context.Context) ([]model.Course, error)
	Save(ctx context.Context, c model.Course) error
}

// StudentHandler covers enrollment and content consumption.
type StudentHandler struct {
	Enrollments EnrollmentStore
	Courses     CourseStore
	Links       *storage.LinkManager
}

func NewStudentHandler(enrollments EnrollmentStore, courses CourseStore, links *storage.LinkManager) *StudentHandler {
	return &StudentHandler{Enrollments: enrollments, Courses: courses, Links: links}
}

// Enroll handles POST /api/v1/student/enroll/:courseId.
func (h *StudentHandler) Enroll(c echo.Context) error {
	pr, err := principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	courseID := c.Param("courseId")

	course, err := h.Courses.Get(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch course"})
	}

	enrollment, err := h.Enrollments.Create(ctx, model.Enrollment{
		UserID:     pr.SubjectID,
		CourseID:   courseID,
		EnrolledAt: time.Now().UTC(),
	})
	if err != nil {
		if errors.Is(err, repository.ErrAlreadyEnrolled) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "student is already enrolled in this course"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not enroll"})
	}

	course.EnrollmentCount++
	if err := h.Courses.Save(ctx, course); err != nil {
		// The enrollment itself is persisted; a failed counter bump is
		// logged by the store caller, not surfaced to the student.
		c.Logger().Warnf("enroll: update enrollment count for course %s: %v", courseID, err)
	}

	// Fire-and-forget: a broker outage must not fail the enrollment.
	_ = queue.PublishEnrollmentConfirmed(ctx, queue.EnrollmentConfirmedEvent{
		EnrollmentID: enrollment.ID,
		UserID:       enrollment.UserID,
		CourseID:     enrollment.CourseID,
		CourseTitle:  course.Title,
		EnrolledAt:   enrollment.EnrolledAt.Format(time.RFC3339),
	})

	return c.JSON(http.StatusCreated, enrollment)
}

// MyCourses handles GET /api/v1/student/my-courses and returns the courses
// the student is enrolled in.
func (h *StudentHandler) MyCourses(c echo.Context) error {
	pr, err := principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()

	enrollments, err := h.Enrollments.ListByUser(ctx, pr.SubjectID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch enrollments"})
	}
	if len(enrollments) == 0 {
		return c.JSON(http.StatusOK, []model.Course{})
	}

	enrolled := make(map[string]bool, len(enrollments))
	for _, e := range enrollments {
		enrolled[e.CourseID] = true
	}

	all, err := h.Courses.List(ctx)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch courses"})
	}
	courses := make([]model.Course, 0, len(enrollments))
	for _, course := range all {
		if enrolled[course.ID] {
			courses = append(courses, course)
		}
	}
	refreshCourses(ctx, h.Links, courses)
	return c.JSON(http.StatusOK, courses)
}

// LessonContent handles
// GET /api/v1/student/courses/:courseId/modules/:moduleId/lessons/:lessonId/content.
// Only enrolled students may fetch content; the video link is derived fresh
// on every call.
func (h *StudentHandler) LessonContent(c echo.Context) error {
	pr, err := principal(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	ctx := c.Request().Context()
	courseID := c.Param("courseId")

	if !h.Enrollments.IsEnrolled(ctx, pr.SubjectID, courseID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "you are not enrolled in this course"})
	}

	course, err := h.Courses.Get(ctx, courseID)
	if err != nil {
		if errors.Is(err, repository.ErrCourseNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "course not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not fetch course"})
	}

	lesson, ok := findLesson(course, c.Param("moduleId"), c.Param("lessonId"))
	if !ok {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "lesson not found"})
	}

	h.Links.RefreshLink(ctx, &lesson.VideoKey, &lesson.VideoURL)
	return c.JSON(http.StatusOK, echo.Map{
		"videoUrl":    lesson.VideoURL,
		"textContent": lesson.TextContent,
	})
}

// findLesson locates a lesson inside a course by module and lesson id.
func findLesson(course model.Course, moduleID, lessonID string) (model.Lesson, bool) {
	for _, m := range course.Modules {
		if m.ID != moduleID {
			continue
		}
		for _, l := range m.Lessons {
			if l.ID == lessonID {
				return l, true
			}
		}
	}
	return model.Lesson{}, false
}
