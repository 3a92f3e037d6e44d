package services

import (
	"fmt"
	"time"

	"courtdesk/apperrors"
	"courtdesk/models"

	"gorm.io/gorm"
)

// MotionService manages the motion filing and disposition pipeline.
type MotionService struct {
	DB *gorm.DB
}

func NewMotionService(db *gorm.DB) *MotionService {
	return &MotionService{DB: db}
}

// FileMotionInput carries the fields for a new motion
type FileMotionInput struct {
	Title       string
	Description string
	DocumentID  *uint
}

// File records a new motion against a case. Lawyers may only file on cases
// they are assigned to; court staff may file on any case.
func (s *MotionService) File(actor *models.User, ident string, input FileMotionInput) (*models.Motion, error) {
	title := SanitizeText(input.Title)
	if title == "" {
		return nil, apperrors.Validation("title is required")
	}

	var motion *models.Motion
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		caseRecord, err := ResolveCase(tx, ident)
		if err != nil {
			return err
		}

		if actor.Role == models.RoleLawyer {
			if !caseRecord.HasLawyer() || *caseRecord.LawyerID != actor.ID {
				return apperrors.Forbidden("only the assigned lawyer can file motions on case %s", caseRecord.CaseNumber)
			}
		}

		if input.DocumentID != nil {
			var document models.CaseDocument
			if err := tx.First(&document, *input.DocumentID).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return apperrors.NotFound("document %d not found", *input.DocumentID)
				}
				return apperrors.Server(err)
			}
			if document.CaseID != caseRecord.ID {
				return apperrors.Validation("document %d does not belong to case %s", *input.DocumentID, caseRecord.CaseNumber)
			}
		}

		motion = &models.Motion{
			CaseID:      caseRecord.ID,
			Title:       title,
			Description: SanitizeText(input.Description),
			FiledByID:   actor.ID,
			Status:      models.MotionStatusPending,
			DocumentID:  input.DocumentID,
		}
		if err := tx.Create(motion).Error; err != nil {
			return apperrors.Server(err)
		}

		EnqueueTimeline(tx, TimelinePayload{
			CaseID:      caseRecord.ID,
			Title:       "Motion filed",
			Description: fmt.Sprintf("Motion %q filed on case %s by %s", motion.Title, caseRecord.CaseNumber, actor.Name),
			Category:    models.TimelineCategoryMotion,
			CreatedByID: actor.ID,
		})
		if caseRecord.HasJudge() && *caseRecord.JudgeID != actor.ID {
			EnqueueNotification(tx, NotificationPayload{
				UserID:       *caseRecord.JudgeID,
				Type:         models.NotificationTypeMotion,
				Title:        "Motion awaiting review",
				Message:      fmt.Sprintf("Motion %q was filed on case %s", motion.Title, caseRecord.CaseNumber),
				ResourceType: "Motion",
				ResourceID:   fmt.Sprint(motion.ID),
			})
		}
		EnqueueAudit(tx, AuditActor(actor, models.AuditActionCreate, "Motion", motion.ID, caseRecord.CaseNumber))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return motion, nil
}

// Review disposes a pending motion. The target status must be exactly
// Approved or Rejected, the reviewer must be a judge or admin, and a judge
// must be the case's assigned judge. Disposition is one-way: a disposed
// motion is never reopened.
func (s *MotionService) Review(actor *models.User, motionID uint, status, notes string) (*models.Motion, error) {
	if !actor.HasRole(models.RoleJudge, models.RoleAdmin) {
		return nil, apperrors.Forbidden("role %s cannot dispose motions", actor.Role)
	}
	if !models.IsValidMotionDecision(status) {
		return nil, apperrors.Validation("motion disposition must be %q or %q", models.MotionStatusApproved, models.MotionStatusRejected)
	}

	var motion models.Motion
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Case").First(&motion, motionID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFound("motion %d not found", motionID)
			}
			return apperrors.Server(err)
		}

		caseRecord := motion.Case
		if actor.Role == models.RoleJudge {
			if !caseRecord.HasJudge() || *caseRecord.JudgeID != actor.ID {
				return apperrors.Forbidden("only the assigned judge can dispose motions on case %s", caseRecord.CaseNumber)
			}
		}

		if motion.IsDisposed() {
			return apperrors.Validation("motion %d has already been %s", motion.ID, motion.Status)
		}

		now := time.Now()
		if err := tx.Model(&motion).Updates(map[string]interface{}{
			"status":         status,
			"reviewed_by_id": actor.ID,
			"reviewed_at":    now,
			"notes":          SanitizeText(notes),
		}).Error; err != nil {
			return apperrors.Server(err)
		}
		motion.Status = status
		motion.ReviewedByID = &actor.ID
		motion.ReviewedAt = &now

		EnqueueTimeline(tx, TimelinePayload{
			CaseID:      caseRecord.ID,
			Title:       fmt.Sprintf("Motion %s", status),
			Description: fmt.Sprintf("Motion %q on case %s was %s by %s", motion.Title, caseRecord.CaseNumber, status, actor.Name),
			Category:    models.TimelineCategoryMotion,
			CreatedByID: actor.ID,
		})
		EnqueueNotification(tx, NotificationPayload{
			UserID:       motion.FiledByID,
			Type:         models.NotificationTypeMotion,
			Title:        fmt.Sprintf("Motion %s", status),
			Message:      fmt.Sprintf("Your motion %q on case %s was %s", motion.Title, caseRecord.CaseNumber, status),
			ResourceType: "Motion",
			ResourceID:   fmt.Sprint(motion.ID),
		})
		action := models.AuditActionApprove
		if status == models.MotionStatusRejected {
			action = models.AuditActionReject
		}
		EnqueueAudit(tx, AuditActor(actor, action, "Motion", motion.ID, caseRecord.CaseNumber))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &motion, nil
}

// ListForCase returns the motions filed against a case, newest first
func (s *MotionService) ListForCase(caseID uint) ([]models.Motion, error) {
	var motions []models.Motion
	err := s.DB.Preload("FiledBy").Preload("ReviewedBy").
		Where("case_id = ?", caseID).
		Order("filed_date DESC").
		Find(&motions).Error
	if err != nil {
		return nil, apperrors.Server(err)
	}
	return motions, nil
}
