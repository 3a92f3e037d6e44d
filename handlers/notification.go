package handlers

import (
	"net/http"
	"strconv"

	"courtdesk/db"
	"courtdesk/middleware"
	"courtdesk/services"

	"github.com/labstack/echo/v4"
)

// GetNotificationsHandler lists the current user's notifications
func GetNotificationsHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	unreadOnly := c.QueryParam("unread") == "true"
	limit := 50
	if limitParam := c.QueryParam("limit"); limitParam != "" {
		if l, err := strconv.Atoi(limitParam); err == nil && l > 0 && l <= 100 {
			limit = l
		}
	}

	svc := services.NewNotificationService(db.DB)
	notifications, err := svc.ListForUser(user.ID, unreadOnly, limit)
	if err != nil {
		return respondError(c, err)
	}

	unread, err := svc.UnreadCount(user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"data":   notifications,
		"unread": unread,
	})
}

// MarkNotificationReadHandler marks one notification as read
func MarkNotificationReadHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	notificationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid notification ID")
	}

	if err := services.NewNotificationService(db.DB).MarkAsRead(uint(notificationID), user.ID); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// MarkAllNotificationsReadHandler marks every unread notification as read
func MarkAllNotificationsReadHandler(c echo.Context) error {
	user := middleware.GetCurrentUser(c)

	if err := services.NewNotificationService(db.DB).MarkAllAsRead(user.ID); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
