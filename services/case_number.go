package services

import (
	"fmt"
	"time"

	"courtdesk/models"

	"gorm.io/gorm"
)

// CaseNumberPrefix is the registry prefix for all case numbers
const CaseNumberPrefix = "KDH"

// GenerateCaseNumber generates the next case number from the per-year
// running count.
// Format: KDH/{YEAR}/{SEQUENCE}
// Example: KDH/2026/042
func GenerateCaseNumber(db *gorm.DB) (string, error) {
	currentYear := time.Now().Year()

	// Find the highest sequence number for this year. Length-first ordering
	// keeps the comparison numeric once sequences outgrow the zero padding
	// (KDH/2026/1000 sorts above KDH/2026/999). Soft-deleted rows still hold
	// their number under the unique index, so they count too.
	var maxCase models.Case
	err := db.Unscoped().
		Where("case_number LIKE ?", fmt.Sprintf("%s/%d/%%", CaseNumberPrefix, currentYear)).
		Order("LENGTH(case_number) DESC, case_number DESC").
		First(&maxCase).Error

	sequence := 1
	if err == nil {
		// Parse sequence from existing case number
		var parsedSeq int
		_, scanErr := fmt.Sscanf(maxCase.CaseNumber, fmt.Sprintf("%s/%d/%%d", CaseNumberPrefix, currentYear), &parsedSeq)
		if scanErr == nil {
			sequence = parsedSeq + 1
		}
	} else if err != gorm.ErrRecordNotFound {
		return "", fmt.Errorf("failed to query max case number: %w", err)
	}

	// Format case number with zero-padded sequence
	caseNumber := fmt.Sprintf("%s/%d/%03d", CaseNumberPrefix, currentYear, sequence)
	return caseNumber, nil
}

// EnsureUniqueCaseNumber generates a unique case number with retry logic
// Retries up to maxRetries times if a collision occurs
func EnsureUniqueCaseNumber(db *gorm.DB) (string, error) {
	const maxRetries = 10

	for i := 0; i < maxRetries; i++ {
		caseNumber, err := GenerateCaseNumber(db)
		if err != nil {
			return "", err
		}

		// Check if case number already exists, soft-deleted rows included
		var count int64
		if err := db.Unscoped().Model(&models.Case{}).Where("case_number = ?", caseNumber).Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check case number uniqueness: %w", err)
		}

		if count == 0 {
			return caseNumber, nil
		}

		// Collision detected, retry
	}

	return "", fmt.Errorf("failed to generate unique case number after %d retries", maxRetries)
}
