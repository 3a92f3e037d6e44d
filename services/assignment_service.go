package services

import (
	"fmt"
	"time"

	"courtdesk/apperrors"
	"courtdesk/models"

	"gorm.io/gorm"
)

// AssignmentService manages the lawyer-assignment negotiation: lawyers bid
// for unrepresented cases, privileged reviewers approve or reject the bids.
type AssignmentService struct {
	DB *gorm.DB
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{DB: db}
}

// Request files a lawyer's bid to represent a case. Precondition order:
// case exists, case has no lawyer, no pending bid from the same lawyer.
func (s *AssignmentService) Request(actor *models.User, ident string) (*models.AssignmentRequest, error) {
	if actor.Role != models.RoleLawyer {
		return nil, apperrors.Forbidden("only lawyers can request case assignment")
	}

	var request *models.AssignmentRequest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		caseRecord, err := ResolveCase(tx, ident)
		if err != nil {
			return err
		}

		if caseRecord.HasLawyer() {
			return apperrors.AlreadyAssigned("case %s already has a lawyer", caseRecord.CaseNumber)
		}

		var pending int64
		err = tx.Model(&models.AssignmentRequest{}).
			Where("case_id = ? AND lawyer_id = ? AND status = ?", caseRecord.ID, actor.ID, models.RequestStatusPending).
			Count(&pending).Error
		if err != nil {
			return apperrors.Server(err)
		}
		if pending > 0 {
			return apperrors.RequestExists("a pending request for case %s already exists", caseRecord.CaseNumber)
		}

		request = &models.AssignmentRequest{
			CaseID:   caseRecord.ID,
			LawyerID: actor.ID,
			Status:   models.RequestStatusPending,
		}
		if err := tx.Create(request).Error; err != nil {
			return apperrors.Server(err)
		}

		EnqueueTimeline(tx, TimelinePayload{
			CaseID:      caseRecord.ID,
			Title:       "Assignment requested",
			Description: fmt.Sprintf("%s requested assignment to case %s", actor.Name, caseRecord.CaseNumber),
			Category:    models.TimelineCategoryAssignment,
			CreatedByID: actor.ID,
		})
		if caseRecord.HasJudge() {
			EnqueueNotification(tx, NotificationPayload{
				UserID:       *caseRecord.JudgeID,
				Type:         models.NotificationTypeAssignment,
				Title:        "Assignment request",
				Message:      fmt.Sprintf("%s has requested assignment to case %s", actor.Name, caseRecord.CaseNumber),
				ResourceType: "AssignmentRequest",
				ResourceID:   fmt.Sprint(request.ID),
			})
		}
		EnqueueAudit(tx, AuditActor(actor, models.AuditActionCreate, "AssignmentRequest", request.ID, caseRecord.CaseNumber))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return request, nil
}

// Review approves or rejects a pending assignment request. Approval sets
// the case's lawyer and rejects every other pending bid for that case. A
// request whose case acquired a lawyer in the meantime cannot be approved:
// it is closed as rejected and the caller gets ALREADY_ASSIGNED.
func (s *AssignmentService) Review(actor *models.User, requestID uint, approve bool) (*models.AssignmentRequest, error) {
	if !actor.HasRole(models.RoleJudge, models.RoleRegistrar, models.RoleAdmin) {
		return nil, apperrors.Forbidden("role %s cannot review assignment requests", actor.Role)
	}

	var request models.AssignmentRequest
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Case").Preload("Lawyer").First(&request, requestID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFound("assignment request %d not found", requestID)
			}
			return apperrors.Server(err)
		}

		if !request.IsPending() {
			return apperrors.Validation("assignment request %d has already been reviewed", requestID)
		}

		now := time.Now()
		caseRecord := request.Case

		if approve {
			if caseRecord.HasLawyer() {
				return apperrors.AlreadyAssigned("case %s already has a lawyer", caseRecord.CaseNumber)
			}

			if err := tx.Model(caseRecord).Update("lawyer_id", request.LawyerID).Error; err != nil {
				return apperrors.Server(err)
			}
			if err := tx.Model(&request).Updates(map[string]interface{}{
				"status":         models.RequestStatusApproved,
				"reviewed_by_id": actor.ID,
				"reviewed_at":    now,
			}).Error; err != nil {
				return apperrors.Server(err)
			}
			request.Status = models.RequestStatusApproved

			// Competing pending bids lose
			if err := rejectPendingRequests(tx, caseRecord.ID, actor.ID); err != nil {
				return err
			}

			EnqueueTimeline(tx, TimelinePayload{
				CaseID:      caseRecord.ID,
				Title:       "Lawyer assigned",
				Description: fmt.Sprintf("%s assigned to case %s (request approved by %s)", request.Lawyer.Name, caseRecord.CaseNumber, actor.Name),
				Category:    models.TimelineCategoryAssignment,
				CreatedByID: actor.ID,
			})
			EnqueueNotification(tx, NotificationPayload{
				UserID:       request.LawyerID,
				Type:         models.NotificationTypeAssignment,
				Title:        "Assignment approved",
				Message:      fmt.Sprintf("Your request to represent case %s was approved", caseRecord.CaseNumber),
				ResourceType: "Case",
				ResourceID:   fmt.Sprint(caseRecord.ID),
			})
			EnqueueAudit(tx, AuditActor(actor, models.AuditActionApprove, "AssignmentRequest", request.ID, caseRecord.CaseNumber))
			return nil
		}

		if err := tx.Model(&request).Updates(map[string]interface{}{
			"status":         models.RequestStatusRejected,
			"reviewed_by_id": actor.ID,
			"reviewed_at":    now,
		}).Error; err != nil {
			return apperrors.Server(err)
		}
		request.Status = models.RequestStatusRejected

		EnqueueNotification(tx, NotificationPayload{
			UserID:       request.LawyerID,
			Type:         models.NotificationTypeAssignment,
			Title:        "Assignment rejected",
			Message:      fmt.Sprintf("Your request to represent case %s was rejected", caseRecord.CaseNumber),
			ResourceType: "Case",
			ResourceID:   fmt.Sprint(caseRecord.ID),
		})
		EnqueueAudit(tx, AuditActor(actor, models.AuditActionReject, "AssignmentRequest", request.ID, caseRecord.CaseNumber))
		return nil
	})
	if err != nil {
		// A bid whose case acquired a lawyer elsewhere is closed out in its
		// own write, outside the rolled-back transaction, so it cannot be
		// approved on a retry.
		if apperrors.HasCode(err, apperrors.CodeAlreadyAssigned) && request.ID != 0 {
			s.DB.Model(&models.AssignmentRequest{}).
				Where("id = ? AND status = ?", request.ID, models.RequestStatusPending).
				Updates(map[string]interface{}{
					"status":         models.RequestStatusRejected,
					"reviewed_by_id": actor.ID,
					"reviewed_at":    time.Now(),
				})
		}
		return nil, err
	}

	return &request, nil
}

// List returns assignment requests visible to the actor: reviewers see
// everything, lawyers see only their own bids.
func (s *AssignmentService) List(actor *models.User, status string) ([]models.AssignmentRequest, error) {
	query := s.DB.Preload("Case").Preload("Lawyer").Order("requested_at DESC")

	switch {
	case actor.HasRole(models.RoleJudge, models.RoleRegistrar, models.RoleAdmin):
		// no scoping
	case actor.Role == models.RoleLawyer:
		query = query.Where("lawyer_id = ?", actor.ID)
	default:
		return nil, apperrors.Forbidden("role %s cannot list assignment requests", actor.Role)
	}

	if status != "" {
		query = query.Where("status = ?", status)
	}

	var requests []models.AssignmentRequest
	if err := query.Find(&requests).Error; err != nil {
		return nil, apperrors.Server(err)
	}
	return requests, nil
}
