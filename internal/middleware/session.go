package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"stockview/internal/session"
)

// SessionGate decides which views render: anonymous requests to gated routes
// are sent to the login page.
type SessionGate struct {
	session *session.Controller
}

func NewSessionGate(session *session.Controller) *SessionGate {
	return &SessionGate{session: session}
}

// RequireAuthenticated redirects to /login unless a session token is present.
func (g *SessionGate) RequireAuthenticated() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !g.session.IsAuthenticated() {
				return c.Redirect(http.StatusSeeOther, "/login")
			}
			return next(c)
		}
	}
}
