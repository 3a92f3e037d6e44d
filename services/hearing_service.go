package services

import (
	"fmt"

	"courtdesk/apperrors"
	"courtdesk/models"

	"gorm.io/gorm"
)

// HearingService owns the single write path for a case's next-hearing date.
// Both the direct case update and the calendar-facing scheduling endpoint
// normalize to SetNextHearing.
type HearingService struct {
	DB *gorm.DB
}

func NewHearingService(db *gorm.DB) *HearingService {
	return &HearingService{DB: db}
}

// SetNextHearing sets or updates a case's next-hearing date. The date must
// be a calendar-valid YYYY-MM-DD string. The case's judge and lawyer (when
// assigned) are notified.
func (s *HearingService) SetNextHearing(actor *models.User, ident, date string) (*models.Case, error) {
	if !actor.HasRole(models.RoleJudge, models.RoleRegistrar, models.RoleAdmin, models.RoleClerk) {
		return nil, apperrors.Forbidden("role %s cannot schedule hearings", actor.Role)
	}
	if _, err := ParseHearingDate(date); err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}

	var caseRecord *models.Case
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		caseRecord, err = ResolveCase(tx, ident)
		if err != nil {
			return err
		}

		if err := tx.Model(caseRecord).Update("next_hearing", date).Error; err != nil {
			return apperrors.Server(err)
		}
		caseRecord.NextHearing = &date

		EnqueueTimeline(tx, TimelinePayload{
			CaseID:      caseRecord.ID,
			Title:       "Hearing scheduled",
			Description: fmt.Sprintf("Next hearing for case %s set to %s by %s", caseRecord.CaseNumber, date, actor.Name),
			Category:    models.TimelineCategoryHearing,
			CreatedByID: actor.ID,
		})
		for _, userID := range []*string{caseRecord.JudgeID, caseRecord.LawyerID} {
			if userID == nil || *userID == "" {
				continue
			}
			EnqueueNotification(tx, NotificationPayload{
				UserID:       *userID,
				Type:         models.NotificationTypeHearing,
				Title:        "Hearing scheduled",
				Message:      fmt.Sprintf("Case %s has a hearing on %s", caseRecord.CaseNumber, date),
				ResourceType: "Case",
				ResourceID:   fmt.Sprint(caseRecord.ID),
			})
		}
		EnqueueAudit(tx, AuditActor(actor, models.AuditActionSchedule, "Case", caseRecord.ID, caseRecord.CaseNumber))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return caseRecord, nil
}

// HearingsOn returns the cases heard on a given day: next_hearing equals
// the date and the case is not concluded. The date parameter is validated,
// so a malformed stored value can never match.
func (s *HearingService) HearingsOn(date string) ([]models.Case, error) {
	if _, err := ParseHearingDate(date); err != nil {
		return nil, apperrors.Validation("%s", err.Error())
	}

	var cases []models.Case
	err := s.DB.Preload("Judge").Preload("Lawyer").
		Where("next_hearing = ?", date).
		Where("status NOT IN ?", []string{models.CaseStatusClosed, models.CaseStatusDisposed}).
		Order("case_number ASC").
		Find(&cases).Error
	if err != nil {
		return nil, apperrors.Server(err)
	}
	return cases, nil
}
