package services

import (
	"time"

	"courtdesk/models"

	"gorm.io/gorm"
)

type NotificationService struct {
	DB *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{DB: db}
}

// ListForUser returns the user's notifications, newest first
func (s *NotificationService) ListForUser(userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := s.DB.Where("user_id = ?", userID).Order("created_at DESC").Limit(limit)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var notifications []models.Notification
	err := query.Find(&notifications).Error
	return notifications, err
}

// MarkAsRead marks one of the user's notifications as read
func (s *NotificationService) MarkAsRead(notificationID uint, userID string) error {
	now := time.Now()
	return s.DB.Model(&models.Notification{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read_at", now).Error
}

// MarkAllAsRead marks every unread notification of the user as read
func (s *NotificationService) MarkAllAsRead(userID string) error {
	now := time.Now()
	return s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Update("read_at", now).Error
}

// UnreadCount returns the number of unread notifications for the user
func (s *NotificationService) UnreadCount(userID string) (int64, error) {
	var count int64
	err := s.DB.Model(&models.Notification{}).
		Where("user_id = ? AND read_at IS NULL", userID).
		Count(&count).Error
	return count, err
}
