package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/course-platform/internal/auth"
	"github.com/iliyamo/course-platform/internal/model"
)

// PrincipalKey is the echo context key the gate stores the Principal under.
const PrincipalKey = "principal"

// Principal is the authenticated identity attached to a request. Roles are
// read from the user record at request time and never cached across
// requests, so a role update takes effect on the next call.
type Principal struct {
	SubjectID   string
	Email       string
	DisplayName string
	Roles       []string
}

// HasRole reports whether the principal carries the given role tag.
func (p Principal) HasRole(tag string) bool {
	for _, r := range p.Roles {
		if r == tag {
			return true
		}
	}
	return false
}

// PrincipalFrom returns the request's principal, if the gate produced one.
func PrincipalFrom(c echo.Context) (Principal, bool) {
	p, ok := c.Get(PrincipalKey).(Principal)
	return p, ok
}

// TokenVerifier validates a bearer token and names its subject.
type TokenVerifier interface {
	Verify(ctx context.Context, token string) (auth.Identity, error)
}

// PrincipalResolver maps a verified subject to a local user record.
type PrincipalResolver interface {
	Resolve(ctx context.Context, subjectID string) (model.User, error)
}

// Authenticate is the authorization gate. A request without a bearer
// credential passes through unauthenticated and the route policy decides
// whether that is acceptable. A request with one either comes out the far
// side carrying a Principal or is rejected here; it never reaches domain
// logic half-authenticated.
func Authenticate(verifier TokenVerifier, directory PrincipalResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return next(c)
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			ctx := c.Request().Context()
			id, err := verifier.Verify(ctx, raw)
			if err != nil {
				// No hint about why the token failed leaves this boundary.
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			user, err := directory.Resolve(ctx, id.SubjectID)
			if err != nil {
				if errors.Is(err, auth.ErrProvisioningFailed) {
					return c.JSON(http.StatusInternalServerError, echo.Map{"error": "could not resolve user"})
				}
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}

			c.Set(PrincipalKey, Principal{
				SubjectID:   user.ID,
				Email:       user.Email,
				DisplayName: user.DisplayName,
				Roles:       user.Roles,
			})
			return next(c)
		}
	}
}
