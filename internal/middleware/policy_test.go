package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-platform/internal/model"
)

func testPolicy() Policy {
	return NewPolicy(
		Rule{Method: http.MethodGet, Pattern: "/api/v1/courses", Role: RolePublic},
		Rule{Method: http.MethodGet, Pattern: "/api/v1/courses/:courseId", Role: RolePublic},
		Rule{Method: http.MethodGet, Pattern: "/api/v1/me", Role: RoleAuthenticated},
		Rule{Method: http.MethodDelete, Pattern: "/api/v1/admin/*", Role: model.RoleAdmin},
	)
}

func TestPolicyAllowed(t *testing.T) {
	p := testPolicy()
	student := &Principal{SubjectID: "s", Roles: []string{model.RoleStudent}}
	admin := &Principal{SubjectID: "a", Roles: []string{model.RoleAdmin}}

	tests := []struct {
		name   string
		method string
		path   string
		pr     *Principal
		want   bool
	}{
		{"public route unauthenticated", http.MethodGet, "/api/v1/courses", nil, true},
		{"public route with param", http.MethodGet, "/api/v1/courses/c-1", nil, true},
		{"authenticated route unauthenticated", http.MethodGet, "/api/v1/me", nil, false},
		{"authenticated route with principal", http.MethodGet, "/api/v1/me", student, true},
		{"admin route as student", http.MethodDelete, "/api/v1/admin/courses/c-1", student, false},
		{"admin route as admin", http.MethodDelete, "/api/v1/admin/courses/c-1/modules/m-1", admin, true},
		{"unlisted route defaults to authenticated", http.MethodPost, "/api/v1/other", student, true},
		{"unlisted route unauthenticated", http.MethodPost, "/api/v1/other", nil, false},
		{"public pattern does not leak to other methods", http.MethodDelete, "/api/v1/courses", nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := p.Allowed(tt.method, tt.path, tt.pr); got != tt.want {
				t.Errorf("Allowed(%s %s) = %v, want %v", tt.method, tt.path, got, tt.want)
			}
		})
	}
}

func TestMatchPattern(t *testing.T) {
	tests := []struct {
		pattern string
		path    string
		want    bool
	}{
		{"/api/v1/courses", "/api/v1/courses", true},
		{"/api/v1/courses", "/api/v1/courses/extra", false},
		{"/api/v1/courses/:courseId", "/api/v1/courses/c-1", true},
		{"/api/v1/courses/:courseId", "/api/v1/courses", false},
		{"/api/v1/admin/*", "/api/v1/admin", false},
		{"/api/v1/admin/*", "/api/v1/admin/users", true},
		{"/api/v1/admin/*", "/api/v1/admin/courses/c/modules/m", true},
		{"/healthz", "/healthz", true},
	}
	for _, tt := range tests {
		if got := matchPattern(tt.pattern, tt.path); got != tt.want {
			t.Errorf("matchPattern(%q, %q) = %v, want %v", tt.pattern, tt.path, got, tt.want)
		}
	}
}

func runEnforce(t *testing.T, pr *Principal, method, path string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if pr != nil {
		c.Set(PrincipalKey, *pr)
	}
	h := Enforce(testPolicy())(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := h(c); err != nil {
		t.Fatalf("handler: %v", err)
	}
	return rec
}

func TestEnforceStatusCodes(t *testing.T) {
	student := &Principal{SubjectID: "s", Roles: []string{model.RoleStudent}}

	if rec := runEnforce(t, nil, http.MethodGet, "/api/v1/courses"); rec.Code != http.StatusOK {
		t.Errorf("public route: status = %d, want 200", rec.Code)
	}
	if rec := runEnforce(t, nil, http.MethodGet, "/api/v1/me"); rec.Code != http.StatusUnauthorized {
		t.Errorf("unauthenticated non-public: status = %d, want 401", rec.Code)
	}
	if rec := runEnforce(t, student, http.MethodDelete, "/api/v1/admin/courses/c-1"); rec.Code != http.StatusForbidden {
		t.Errorf("under-privileged: status = %d, want 403", rec.Code)
	}
	if rec := runEnforce(t, student, http.MethodGet, "/api/v1/me"); rec.Code != http.StatusOK {
		t.Errorf("authenticated route: status = %d, want 200", rec.Code)
	}
}
