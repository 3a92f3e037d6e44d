package middleware

import (
	"net/http"

	"courtdesk/db"
	"courtdesk/models"
	"courtdesk/services"

	"github.com/labstack/echo/v4"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "courtdesk_session"
	// ContextKeyUser is the context key for the authenticated user
	ContextKeyUser = "user"
	// ContextKeySession is the context key for the session
	ContextKeySession = "session"
)

// RequireAuth is middleware that requires an authenticated session
func RequireAuth() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookieName)
			if err != nil {
				return unauthorized(c)
			}

			session, err := services.ValidateSession(db.DB, cookie.Value)
			if err != nil {
				clearSessionCookie(c)
				return unauthorized(c)
			}

			if !session.User.IsActive {
				clearSessionCookie(c)
				return unauthorized(c)
			}

			c.Set(ContextKeyUser, &session.User)
			c.Set(ContextKeySession, session)

			return next(c)
		}
	}
}

// RequireRole is middleware that requires one of the given roles
func RequireRole(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := GetCurrentUser(c)
			if user == nil {
				return unauthorized(c)
			}

			if !user.HasRole(roles...) {
				return c.JSON(http.StatusForbidden, map[string]interface{}{
					"error": map[string]string{
						"code":    "FORBIDDEN",
						"message": "insufficient permissions",
					},
				})
			}

			return next(c)
		}
	}
}

// GetCurrentUser retrieves the current user from context
func GetCurrentUser(c echo.Context) *models.User {
	user, ok := c.Get(ContextKeyUser).(*models.User)
	if !ok {
		return nil
	}
	return user
}

func unauthorized(c echo.Context) error {
	return c.JSON(http.StatusUnauthorized, map[string]interface{}{
		"error": map[string]string{
			"code":    "UNAUTHORIZED",
			"message": "authentication required",
		},
	})
}

// clearSessionCookie clears the session cookie
func clearSessionCookie(c echo.Context) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}

// SetSessionCookie writes the session cookie on login
func SetSessionCookie(c echo.Context, token string, secure bool) {
	cookie := &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteLaxMode,
	}
	c.SetCookie(cookie)
}
