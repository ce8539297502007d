package http

import (
	"net/http"
	"strings"
	"time"

	"washday/internal/core/domain/model/kernel"
	"washday/internal/core/ports"

	"github.com/labstack/echo/v4"
)

const actorContextKey = "washday.actor"

// Actor identifies the authenticated caller of a staff endpoint.
type Actor struct {
	ID   kernel.UUID
	Role kernel.Role
}

// ActorFromContext returns the authenticated actor placed by RequireRole.
// The second result is false on unauthenticated routes.
func ActorFromContext(ctx echo.Context) (Actor, bool) {
	actor, ok := ctx.Get(actorContextKey).(Actor)
	return actor, ok
}

// AuthMiddleware resolves bearer tokens into actors through the session
// store. Guest tracking routes stay outside it; the token in the URL is the
// credential there.
type AuthMiddleware struct {
	sessions ports.SessionRepository
}

// NewAuthMiddleware creates the session-backed authentication middleware.
func NewAuthMiddleware(sessions ports.SessionRepository) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// RequireRole authenticates the request and rejects actors whose role is not
// in the allowed set. An unknown or expired session is a 401; a live session
// with the wrong role is a 403.
func (m *AuthMiddleware) RequireRole(roles ...kernel.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			token := bearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
			if token == "" {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Missing bearer token",
				})
			}

			active, err := m.sessions.GetByToken(ctx.Request().Context(), token)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Unknown session",
				})
			}
			if active.IsExpired(time.Now().UTC()) {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "Session expired",
				})
			}

			allowed := false
			for _, role := range roles {
				if active.Role() == role {
					allowed = true
					break
				}
			}
			if !allowed {
				return ctx.JSON(http.StatusForbidden, Error{
					Code:    http.StatusForbidden,
					Message: "Insufficient role",
				})
			}

			ctx.Set(actorContextKey, Actor{ID: active.ActorID(), Role: active.Role()})
			return next(ctx)
		}
	}
}

func bearerToken(header string) string {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
