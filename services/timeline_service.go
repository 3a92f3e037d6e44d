package services

import (
	"courtdesk/apperrors"
	"courtdesk/models"

	"gorm.io/gorm"
)

// ListTimeline returns the append-only timeline of a case, newest first.
// Timeline data is advisory: a transition commits before its timeline entry
// is written, so consumers must tolerate a short lag.
func ListTimeline(db *gorm.DB, caseID uint) ([]models.TimelineEvent, error) {
	var events []models.TimelineEvent
	err := db.Preload("CreatedBy").
		Where("case_id = ?", caseID).
		Order("date DESC, id DESC").
		Find(&events).Error
	if err != nil {
		return nil, apperrors.Server(err)
	}
	return events, nil
}
