package router // package router defines how HTTP routes are registered for the API

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-platform/internal/handler"
	"github.com/iliyamo/course-platform/internal/middleware"
	"github.com/iliyamo/course-platform/internal/model"
)

// Policy is the static route-to-role table. It is evaluated strictly after
// the authorization gate: the gate only manufactures principals, this table
// decides who gets in. The catalog is public-read; everything not listed
// here requires an authenticated principal.
func Policy() middleware.Policy {
	return middleware.NewPolicy(
		middleware.Rule{Method: http.MethodGet, Pattern: "/healthz", Role: middleware.RolePublic},
		middleware.Rule{Method: http.MethodGet, Pattern: "/api/v1/courses", Role: middleware.RolePublic},
		middleware.Rule{Method: http.MethodGet, Pattern: "/api/v1/courses/:courseId", Role: middleware.RolePublic},
		middleware.Rule{Method: http.MethodGet, Pattern: "/api/v1/me", Role: middleware.RoleAuthenticated},
		middleware.Rule{Method: http.MethodPost, Pattern: "/api/v1/uploads/presign-url", Role: model.RoleInstructor},
		middleware.Rule{Method: http.MethodPost, Pattern: "/api/v1/instructor/*", Role: model.RoleInstructor},
		middleware.Rule{Method: http.MethodGet, Pattern: "/api/v1/instructor/*", Role: model.RoleInstructor},
		middleware.Rule{Method: http.MethodPost, Pattern: "/api/v1/student/*", Role: model.RoleStudent},
		middleware.Rule{Method: http.MethodGet, Pattern: "/api/v1/student/*", Role: model.RoleStudent},
		middleware.Rule{Method: http.MethodGet, Pattern: "/api/v1/admin/*", Role: model.RoleAdmin},
		middleware.Rule{Method: http.MethodPut, Pattern: "/api/v1/admin/*", Role: model.RoleAdmin},
		middleware.Rule{Method: http.MethodDelete, Pattern: "/api/v1/admin/*", Role: model.RoleAdmin},
	)
}

// Handlers bundles everything Register wires onto the echo instance.
type Handlers struct {
	Catalog    *handler.CatalogHandler
	Instructor *handler.InstructorHandler
	Student    *handler.StudentHandler
	Admin      *handler.AdminHandler
	Upload     *handler.UploadHandler
}

// Register maps all application routes. Authentication and policy middleware
// are applied by the caller so tests can register routes bare.
func Register(e *echo.Echo, h Handlers) {
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/api/v1")
	v1.GET("/me", handler.Me)

	v1.GET("/courses", h.Catalog.ListCourses)
	v1.GET("/courses/:courseId", h.Catalog.GetCourse)

	v1.POST("/uploads/presign-url", h.Upload.PresignUpload)

	instructor := v1.Group("/instructor")
	instructor.POST("/courses", h.Instructor.CreateCourse)
	instructor.GET("/my-courses", h.Instructor.MyCourses)

	student := v1.Group("/student")
	student.POST("/enroll/:courseId", h.Student.Enroll)
	student.GET("/my-courses", h.Student.MyCourses)
	student.GET("/courses/:courseId/modules/:moduleId/lessons/:lessonId/content", h.Student.LessonContent)

	admin := v1.Group("/admin")
	admin.GET("/users", h.Admin.ListUsers)
	admin.PUT("/users/:uid/roles", h.Admin.UpdateUserRoles)
	admin.DELETE("/courses/:courseId", h.Admin.DeleteCourse)
	admin.DELETE("/courses/:courseId/modules/:moduleId", h.Admin.DeleteModule)
	admin.DELETE("/courses/:courseId/modules/:moduleId/lessons/:lessonId", h.Admin.DeleteLesson)
}
