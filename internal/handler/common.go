package handler // handler defines the HTTP handlers for the course platform

import (
	"context"
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-platform/internal/middleware"
	"github.com/iliyamo/course-platform/internal/model"
	"github.com/iliyamo/course-platform/internal/storage"
)

var errNoPrincipal = errors.New("no principal in context")

// principal returns the authenticated principal the gate attached to the
// request. Handlers behind the role policy can rely on it being present;
// the error branch guards against miswired routes.
func principal(c echo.Context) (middleware.Principal, error) {
	pr, ok := middleware.PrincipalFrom(c)
	if !ok {
		return middleware.Principal{}, errNoPrincipal
	}
	return pr, nil
}

// refreshCourse re-derives the thumbnail download URL before the course
// leaves the system. Every read path a course crosses goes through here so
// stale stored URLs never reach a client when a fresh one can be issued.
func refreshCourse(ctx context.Context, links *storage.LinkManager, course *model.Course) {
	links.RefreshLink(ctx, &course.ThumbnailKey, &course.ThumbnailURL)
}

// refreshCourses applies refreshCourse to a listing in place.
func refreshCourses(ctx context.Context, links *storage.LinkManager, courses []model.Course) {
	for i := range courses {
		refreshCourse(ctx, links, &courses[i])
	}
}
