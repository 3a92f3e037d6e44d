package services

import (
	"time"

	"courtdesk/models"

	"gorm.io/gorm"
)

// GetResourceAuditHistory retrieves the audit history for a specific resource
func GetResourceAuditHistory(db *gorm.DB, resourceType, resourceID string) ([]models.AuditRecord, error) {
	var records []models.AuditRecord
	err := db.Where("resource_type = ? AND resource_id = ?", resourceType, resourceID).
		Order("created_at DESC").
		Find(&records).Error
	return records, err
}

// AuditFilters contains filter options for audit record queries
type AuditFilters struct {
	UserID       string
	ResourceType string
	Action       string
	DateFrom     time.Time
	DateTo       time.Time
}

// GetAuditRecords retrieves paginated audit records matching the filters
func GetAuditRecords(db *gorm.DB, filters AuditFilters, page, pageSize int) ([]models.AuditRecord, int64, error) {
	query := db.Model(&models.AuditRecord{})

	if filters.UserID != "" {
		query = query.Where("user_id = ?", filters.UserID)
	}
	if filters.ResourceType != "" {
		query = query.Where("resource_type = ?", filters.ResourceType)
	}
	if filters.Action != "" {
		query = query.Where("action = ?", filters.Action)
	}
	if !filters.DateFrom.IsZero() {
		query = query.Where("created_at >= ?", filters.DateFrom)
	}
	if !filters.DateTo.IsZero() {
		query = query.Where("created_at <= ?", filters.DateTo)
	}

	// Count total
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Get paginated results
	var records []models.AuditRecord
	offset := (page - 1) * pageSize
	err := query.Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&records).Error

	return records, total, err
}
