package handlers

import (
	"net/http"
	"time"

	"courtdesk/config"
	"courtdesk/db"
	"courtdesk/middleware"
	"courtdesk/models"
	"courtdesk/services"

	"github.com/labstack/echo/v4"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginPostHandler authenticates a user and opens a session
func LoginPostHandler(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if req.Email == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Email and password are required")
	}

	var user models.User
	if err := db.DB.Where("email = ?", req.Email).First(&user).Error; err != nil {
		services.LogSecurityEvent("LOGIN_FAILED", req.Email, "unknown email")
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	if !user.IsActive {
		services.LogSecurityEvent("LOGIN_FAILED", user.ID, "inactive account")
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	if !services.CheckPassword(req.Password, user.Password) {
		services.LogSecurityEvent("LOGIN_FAILED", user.ID, "wrong password")
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	session, err := services.CreateSession(db.DB, user.ID, c.RealIP(), c.Request().UserAgent())
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to create session")
	}

	now := time.Now()
	db.DB.Model(&user).Update("last_login_at", now)

	secure := false
	if cfg, ok := c.Get("config").(*config.Config); ok {
		secure = cfg.Environment == "production"
	}
	middleware.SetSessionCookie(c, session.Token, secure)

	return c.JSON(http.StatusOK, map[string]interface{}{
		"user": user,
	})
}

// LogoutHandler closes the current session
func LogoutHandler(c echo.Context) error {
	cookie, err := c.Cookie(middleware.SessionCookieName)
	if err == nil {
		services.DeleteSession(db.DB, cookie.Value)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetCurrentUserHandler returns the authenticated user
func GetCurrentUserHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)
	return c.JSON(http.StatusOK, user)
}
