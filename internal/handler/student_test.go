package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-platform/internal/middleware"
	"github.com/iliyamo/course-platform/internal/model"
	"github.com/iliyamo/course-platform/internal/repository"
)

type fakeEnrollments struct {
	byID map[string]model.Enrollment
}

func newFakeEnrollments() *fakeEnrollments {
	return &fakeEnrollments{byID: map[string]model.Enrollment{}}
}

func (f *fakeEnrollments) Create(_ context.Context, e model.Enrollment) (model.Enrollment, error) {
	e.ID = e.UserID + ":" + e.CourseID
	if _, ok := f.byID[e.ID]; ok {
		return model.Enrollment{}, repository.ErrAlreadyEnrolled
	}
	f.byID[e.ID] = e
	return e, nil
}

func (f *fakeEnrollments) ListByUser(_ context.Context, userID string) ([]model.Enrollment, error) {
	var list []model.Enrollment
	for _, e := range f.byID {
		if e.UserID == userID {
			list = append(list, e)
		}
	}
	return list, nil
}

func (f *fakeEnrollments) IsEnrolled(_ context.Context, userID, courseID string) bool {
	_, ok := f.byID[userID+":"+courseID]
	return ok
}

type fakeCourses struct {
	courses map[string]model.Course
}

func (f *fakeCourses) Get(_ context.Context, id string) (model.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return model.Course{}, repository.ErrCourseNotFound
	}
	return c, nil
}

func (f *fakeCourses) List(_ context.Context) ([]model.Course, error) {
	var list []model.Course
	for _, c := range f.courses {
		list = append(list, c)
	}
	return list, nil
}

func (f *fakeCourses) Save(_ context.Context, c model.Course) error {
	f.courses[c.ID] = c
	return nil
}

// studentContext builds a request context carrying an authenticated student
// principal, the way the gate leaves it for handlers behind the role policy.
func studentContext(e *echo.Echo, method, target, uid string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.PrincipalKey, middleware.Principal{
		SubjectID: uid,
		Roles:     []string{model.RoleStudent},
	})
	return c, rec
}

func TestEnroll(t *testing.T) {
	courses := &fakeCourses{courses: map[string]model.Course{
		"c-1": {ID: "c-1", Title: "Intro to Go"},
	}}
	h := NewStudentHandler(newFakeEnrollments(), courses, nil)
	e := echo.New()

	enroll := func(courseID string) *httptest.ResponseRecorder {
		c, rec := studentContext(e, http.MethodPost, "/api/v1/student/enroll/"+courseID, "u-1")
		c.SetParamNames("courseId")
		c.SetParamValues(courseID)
		if err := h.Enroll(c); err != nil {
			t.Fatalf("Enroll: %v", err)
		}
		return rec
	}

	if rec := enroll("nope"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown course: status = %d, want 404", rec.Code)
	}

	rec := enroll("c-1")
	if rec.Code != http.StatusCreated {
		t.Fatalf("first enroll: status = %d, want 201", rec.Code)
	}
	var enrollment model.Enrollment
	if err := json.Unmarshal(rec.Body.Bytes(), &enrollment); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if enrollment.ID != "u-1:c-1" {
		t.Errorf("enrollment ID = %q, want u-1:c-1", enrollment.ID)
	}
	if got := courses.courses["c-1"].EnrollmentCount; got != 1 {
		t.Errorf("EnrollmentCount = %d, want 1", got)
	}

	// Enrolling twice in the same course conflicts and does not bump the
	// counter again.
	if rec := enroll("c-1"); rec.Code != http.StatusConflict {
		t.Errorf("repeat enroll: status = %d, want 409", rec.Code)
	}
	if got := courses.courses["c-1"].EnrollmentCount; got != 1 {
		t.Errorf("EnrollmentCount after repeat = %d, want 1", got)
	}
}

func TestLessonContent(t *testing.T) {
	course := model.Course{
		ID:    "c-1",
		Title: "Intro to Go",
		Modules: []model.Module{{
			ID: "m-1",
			Lessons: []model.Lesson{{
				ID:          "l-1",
				Title:       "Hello",
				VideoKey:    "lessons/abc/hello.mp4",
				TextContent: "welcome",
			}},
		}},
	}
	enrollments := newFakeEnrollments()
	h := NewStudentHandler(enrollments, &fakeCourses{courses: map[string]model.Course{"c-1": course}}, testLinks(t))
	e := echo.New()

	fetch := func(uid, courseID, moduleID, lessonID string) *httptest.ResponseRecorder {
		c, rec := studentContext(e, http.MethodGet, "/api/v1/student/courses/"+courseID, uid)
		c.SetParamNames("courseId", "moduleId", "lessonId")
		c.SetParamValues(courseID, moduleID, lessonID)
		if err := h.LessonContent(c); err != nil {
			t.Fatalf("LessonContent: %v", err)
		}
		return rec
	}

	if rec := fetch("u-1", "c-1", "m-1", "l-1"); rec.Code != http.StatusForbidden {
		t.Errorf("not enrolled: status = %d, want 403", rec.Code)
	}

	if _, err := enrollments.Create(context.Background(), model.Enrollment{UserID: "u-1", CourseID: "c-1"}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	rec := fetch("u-1", "c-1", "m-1", "l-1")
	if rec.Code != http.StatusOK {
		t.Fatalf("enrolled: status = %d, want 200", rec.Code)
	}
	var body struct {
		VideoURL    string `json:"videoUrl"`
		TextContent string `json:"textContent"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.VideoURL == "" {
		t.Error("empty video URL for lesson with a stored key")
	}
	if body.TextContent != "welcome" {
		t.Errorf("textContent = %q, want welcome", body.TextContent)
	}

	if rec := fetch("u-1", "c-1", "m-1", "l-missing"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown lesson: status = %d, want 404", rec.Code)
	}
}
