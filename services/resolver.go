package services

import (
	"net/url"
	"strconv"
	"strings"

	"courtdesk/apperrors"
	"courtdesk/models"

	"gorm.io/gorm"
)

// ResolveCase looks up a case by either its numeric id or its human case
// number (e.g. "KDH/2026/001"). Numeric match is tried first. Idents may
// arrive percent-encoded when carried in a URL path segment.
// Every pipeline resolves cases through this function.
func ResolveCase(db *gorm.DB, ident string) (*models.Case, error) {
	ident = strings.TrimSpace(ident)
	if ident == "" {
		return nil, apperrors.Validation("case identifier is required")
	}

	// Accept percent-encoded case numbers (KDH%2F2026%2F001)
	if strings.Contains(ident, "%") {
		if decoded, err := url.PathUnescape(ident); err == nil {
			ident = decoded
		}
	}

	var caseRecord models.Case
	if id, err := strconv.ParseUint(ident, 10, 64); err == nil {
		result := db.First(&caseRecord, uint(id))
		if result.Error == nil {
			return &caseRecord, nil
		}
		if result.Error != gorm.ErrRecordNotFound {
			return nil, apperrors.Server(result.Error)
		}
		// Fall through to the case-number lookup
	}

	result := db.Where("case_number = ?", ident).First(&caseRecord)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("case %q not found", ident)
		}
		return nil, apperrors.Server(result.Error)
	}

	return &caseRecord, nil
}
