package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// RolePublic marks a rule whose route is reachable without authentication.
// RoleAuthenticated marks a rule that accepts any authenticated principal.
const (
	RolePublic        = ""
	RoleAuthenticated = "*"
)

// Rule maps one route pattern to the role it requires. Patterns use the
// router's path syntax: ":name" matches one segment, a trailing "*" matches
// the rest of the path.
type Rule struct {
	Method  string
	Pattern string
	Role    string
}

// Policy is a fixed table of route rules. The first matching rule wins;
// routes matching no rule default to requiring an authenticated principal.
type Policy struct {
	rules []Rule
}

func NewPolicy(rules ...Rule) Policy { return Policy{rules: rules} }

// requiredRole returns the role the route demands.
func (p Policy) requiredRole(method, path string) string {
	for _, r := range p.rules {
		if r.Method == method && matchPattern(r.Pattern, path) {
			return r.Role
		}
	}
	return RoleAuthenticated
}

// Allowed reports whether a principal (nil for unauthenticated) may reach
// the route. Pure function; Enforce layers response codes on top of it.
func (p Policy) Allowed(method, path string, pr *Principal) bool {
	role := p.requiredRole(method, path)
	switch {
	case role == RolePublic:
		return true
	case pr == nil:
		return false
	case role == RoleAuthenticated:
		return true
	default:
		return pr.HasRole(role)
	}
}

// Enforce rejects requests the policy does not allow. It runs strictly after
// the authorization gate: an unauthenticated request on a non-public route
// gets 401, an authenticated one missing the required role gets 403.
func Enforce(policy Policy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			method := c.Request().Method
			path := c.Request().URL.Path

			role := policy.requiredRole(method, path)
			if role == RolePublic {
				return next(c)
			}

			pr, ok := PrincipalFrom(c)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			if role != RoleAuthenticated && !pr.HasRole(role) {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden: requires " + role})
			}
			return next(c)
		}
	}
}

// matchPattern matches a request path against a route pattern segment by
// segment. ":name" consumes one segment, a trailing "*" consumes whatever
// remains.
func matchPattern(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	ts := strings.Split(strings.Trim(path, "/"), "/")

	for i, seg := range ps {
		if seg == "*" && i == len(ps)-1 {
			return true
		}
		if i >= len(ts) {
			return false
		}
		if strings.HasPrefix(seg, ":") {
			continue
		}
		if seg != ts[i] {
			return false
		}
	}
	return len(ps) == len(ts)
}
