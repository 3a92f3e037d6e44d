package services

import (
	"fmt"
	"time"

	"courtdesk/apperrors"
	"courtdesk/models"

	"gorm.io/gorm"
)

// CaseService owns the case status engine: filing, approval, court
// assignment, administrative status overrides, lawyer assignment, and
// deletion. Every transition is a check-then-write inside one transaction,
// with fan-out tasks enqueued before the transaction commits.
type CaseService struct {
	DB *gorm.DB
}

func NewCaseService(db *gorm.DB) *CaseService {
	return &CaseService{DB: db}
}

// CreateCaseInput carries the fields a filer supplies
type CreateCaseInput struct {
	Title       string
	CaseType    string
	Priority    string
	Description string
}

// Create files a new case. Judge, registrar and admin filings start at
// Filed (self-approved); lawyer filings start at Pending Approval and wait
// for a registrar, judge or admin.
func (s *CaseService) Create(actor *models.User, input CreateCaseInput) (*models.Case, error) {
	if !actor.HasRole(models.CaseFilingRoles...) {
		return nil, apperrors.Forbidden("role %s cannot file cases", actor.Role)
	}

	title := SanitizeText(input.Title)
	if title == "" {
		return nil, apperrors.Validation("title is required")
	}
	if !models.IsValidCaseType(input.CaseType) {
		return nil, apperrors.Validation("invalid case type %q", input.CaseType)
	}
	priority := input.Priority
	if priority == "" {
		priority = models.CasePriorityNormal
	}
	if !models.IsValidCasePriority(priority) {
		return nil, apperrors.Validation("invalid priority %q", priority)
	}

	initialStatus := models.CaseStatusFiled
	if actor.Role == models.RoleLawyer {
		initialStatus = models.CaseStatusPendingApproval
	}

	caseRecord := &models.Case{
		Title:       title,
		CaseType:    input.CaseType,
		Priority:    priority,
		Description: SanitizeText(input.Description),
		Status:      initialStatus,
		CreatedByID: actor.ID,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		caseNumber, err := EnsureUniqueCaseNumber(tx)
		if err != nil {
			return apperrors.Server(err)
		}
		caseRecord.CaseNumber = caseNumber

		if err := tx.Create(caseRecord).Error; err != nil {
			return apperrors.Server(err)
		}

		EnqueueTimeline(tx, TimelinePayload{
			CaseID:      caseRecord.ID,
			Title:       "Case filed",
			Description: fmt.Sprintf("Case %s (%s) filed by %s", caseRecord.CaseNumber, caseRecord.CaseType, actor.Name),
			Category:    models.TimelineCategoryCase,
			CreatedByID: actor.ID,
		})
		EnqueueAudit(tx, AuditActor(actor, models.AuditActionCreate, "Case", caseRecord.ID, caseRecord.CaseNumber))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return caseRecord, nil
}

// Approve moves a lawyer-filed case from Pending Approval to Filed.
// Approving a case that already moved on is ALREADY_APPROVED, not a silent
// success; silent success would re-emit downstream notifications.
func (s *CaseService) Approve(actor *models.User, ident string) (*models.Case, error) {
	if !actor.HasRole(models.CaseApprovalRoles...) {
		return nil, apperrors.Forbidden("role %s cannot approve cases", actor.Role)
	}

	var caseRecord *models.Case
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		caseRecord, err = ResolveCase(tx, ident)
		if err != nil {
			return err
		}

		switch caseRecord.Status {
		case models.CaseStatusPendingApproval:
			// proceed
		case models.CaseStatusFiled, models.CaseStatusAssigned, models.CaseStatusInProgress:
			return apperrors.AlreadyApproved("case %s is already approved", caseRecord.CaseNumber)
		default:
			return apperrors.Validation("cannot approve a case in status %q", caseRecord.Status)
		}

		caseRecord.Status = models.CaseStatusFiled
		if err := tx.Model(caseRecord).Update("status", models.CaseStatusFiled).Error; err != nil {
			return apperrors.Server(err)
		}

		EnqueueTimeline(tx, TimelinePayload{
			CaseID:      caseRecord.ID,
			Title:       "Case approved",
			Description: fmt.Sprintf("Case %s approved by %s", caseRecord.CaseNumber, actor.Name),
			Category:    models.TimelineCategoryCase,
			CreatedByID: actor.ID,
		})
		EnqueueNotification(tx, NotificationPayload{
			UserID:       caseRecord.CreatedByID,
			Type:         models.NotificationTypeCaseUpdate,
			Title:        "Case approved",
			Message:      fmt.Sprintf("Your case %s has been approved for filing", caseRecord.CaseNumber),
			ResourceType: "Case",
			ResourceID:   fmt.Sprint(caseRecord.ID),
		})
		EnqueueAudit(tx, AuditActor(actor, models.AuditActionApprove, "Case", caseRecord.ID, caseRecord.CaseNumber))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return caseRecord, nil
}

// AssignToCourt assigns a case to a court room and a presiding judge.
// Partial assignment (court without judge, or judge without court) is
// rejected.
func (s *CaseService) AssignToCourt(actor *models.User, ident, court, judgeID string) (*models.Case, error) {
	if !actor.HasRole(models.CourtAssignmentRoles...) {
		return nil, apperrors.Forbidden("role %s cannot assign cases to court", actor.Role)
	}
	if court == "" || judgeID == "" {
		return nil, apperrors.Validation("court and judge must be supplied together")
	}

	var caseRecord *models.Case
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		caseRecord, err = ResolveCase(tx, ident)
		if err != nil {
			return err
		}

		judge, err := findUserByID(tx, judgeID)
		if err != nil {
			return err
		}
		if judge.Role != models.RoleJudge {
			return apperrors.Validation("user %s is not a judge", judge.Name)
		}

		updates := map[string]interface{}{
			"court":    court,
			"judge_id": judge.ID,
			"status":   models.CaseStatusAssigned,
		}
		if err := tx.Model(caseRecord).Updates(updates).Error; err != nil {
			return apperrors.Server(err)
		}
		caseRecord.Court = &court
		caseRecord.JudgeID = &judge.ID
		caseRecord.Status = models.CaseStatusAssigned

		EnqueueTimeline(tx, TimelinePayload{
			CaseID:      caseRecord.ID,
			Title:       "Case assigned to court",
			Description: fmt.Sprintf("Case %s assigned to %s before %s", caseRecord.CaseNumber, court, judge.Name),
			Category:    models.TimelineCategoryCase,
			CreatedByID: actor.ID,
		})
		EnqueueNotification(tx, NotificationPayload{
			UserID:       judge.ID,
			Type:         models.NotificationTypeCaseUpdate,
			Title:        "New case assignment",
			Message:      fmt.Sprintf("Case %s has been assigned to you at %s", caseRecord.CaseNumber, court),
			ResourceType: "Case",
			ResourceID:   fmt.Sprint(caseRecord.ID),
		})
		EnqueueAudit(tx, AuditActor(actor, models.AuditActionAssign, "Case", caseRecord.ID, caseRecord.CaseNumber))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return caseRecord, nil
}

// UpdateStatus is the administrative status override. It validates the
// target against the status enum but deliberately applies no
// predecessor-state check: registrars, judges and admins may move a case to
// Review, Adjourned, Disposed or any other enumerated status directly.
func (s *CaseService) UpdateStatus(actor *models.User, ident, status string) (*models.Case, error) {
	if !actor.HasRole(models.StatusChangeRoles...) {
		return nil, apperrors.Forbidden("role %s cannot change case status", actor.Role)
	}
	if !models.IsValidCaseStatus(status) {
		return nil, apperrors.Validation("invalid case status %q", status)
	}

	var caseRecord *models.Case
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		caseRecord, err = ResolveCase(tx, ident)
		if err != nil {
			return err
		}

		oldStatus := caseRecord.Status
		if err := tx.Model(caseRecord).Update("status", status).Error; err != nil {
			return apperrors.Server(err)
		}
		caseRecord.Status = status

		EnqueueTimeline(tx, TimelinePayload{
			CaseID:      caseRecord.ID,
			Title:       "Status changed",
			Description: fmt.Sprintf("Case %s moved from %s to %s by %s", caseRecord.CaseNumber, oldStatus, status, actor.Name),
			Category:    models.TimelineCategoryCase,
			CreatedByID: actor.ID,
		})
		if caseRecord.HasLawyer() {
			EnqueueNotification(tx, NotificationPayload{
				UserID:       *caseRecord.LawyerID,
				Type:         models.NotificationTypeCaseUpdate,
				Title:        "Case status changed",
				Message:      fmt.Sprintf("Case %s is now %s", caseRecord.CaseNumber, status),
				ResourceType: "Case",
				ResourceID:   fmt.Sprint(caseRecord.ID),
			})
		}
		audit := AuditActor(actor, models.AuditActionStatusChange, "Case", caseRecord.ID, caseRecord.CaseNumber)
		audit.Details = map[string]interface{}{"old_status": oldStatus, "new_status": status}
		EnqueueAudit(tx, audit)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return caseRecord, nil
}

// UpdateCaseInput carries optional edits to case detail fields
type UpdateCaseInput struct {
	Title       *string
	Priority    *string
	Description *string
}

// Update edits case detail fields. Status, case number and hearing dates
// have their own entry points and are not touched here.
func (s *CaseService) Update(actor *models.User, ident string, input UpdateCaseInput) (*models.Case, error) {
	if !actor.HasRole(models.RoleJudge, models.RoleRegistrar, models.RoleAdmin, models.RoleClerk) {
		return nil, apperrors.Forbidden("role %s cannot edit cases", actor.Role)
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		title := SanitizeText(*input.Title)
		if title == "" {
			return nil, apperrors.Validation("title cannot be empty")
		}
		updates["title"] = title
	}
	if input.Priority != nil {
		if !models.IsValidCasePriority(*input.Priority) {
			return nil, apperrors.Validation("invalid priority %q", *input.Priority)
		}
		updates["priority"] = *input.Priority
	}
	if input.Description != nil {
		updates["description"] = SanitizeText(*input.Description)
	}

	var caseRecord *models.Case
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		caseRecord, err = ResolveCase(tx, ident)
		if err != nil {
			return err
		}
		if len(updates) == 0 {
			return nil
		}
		if err := tx.Model(caseRecord).Updates(updates).Error; err != nil {
			return apperrors.Server(err)
		}

		EnqueueAudit(tx, AuditActor(actor, models.AuditActionUpdate, "Case", caseRecord.ID, caseRecord.CaseNumber))
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Reload so the response reflects the applied edits
	if len(updates) > 0 {
		if err := s.DB.First(caseRecord, caseRecord.ID).Error; err != nil {
			return nil, apperrors.Server(err)
		}
	}
	return caseRecord, nil
}

// AssignLawyer is the privileged fast path that sets a case's lawyer
// directly, without an assignment request. Outstanding pending requests for
// the case are rejected so they cannot linger once representation is
// settled.
func (s *CaseService) AssignLawyer(actor *models.User, ident, lawyerID string) (*models.Case, error) {
	if !actor.HasRole(models.LawyerAssignmentRoles...) {
		return nil, apperrors.Forbidden("role %s cannot assign lawyers", actor.Role)
	}
	if lawyerID == "" {
		return nil, apperrors.Validation("lawyer is required")
	}

	var caseRecord *models.Case
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		caseRecord, err = ResolveCase(tx, ident)
		if err != nil {
			return err
		}

		lawyer, err := findUserByID(tx, lawyerID)
		if err != nil {
			return err
		}
		if lawyer.Role != models.RoleLawyer {
			return apperrors.Validation("user %s is not a lawyer", lawyer.Name)
		}

		if err := tx.Model(caseRecord).Update("lawyer_id", lawyer.ID).Error; err != nil {
			return apperrors.Server(err)
		}
		caseRecord.LawyerID = &lawyer.ID

		if err := rejectPendingRequests(tx, caseRecord.ID, actor.ID); err != nil {
			return err
		}

		EnqueueTimeline(tx, TimelinePayload{
			CaseID:      caseRecord.ID,
			Title:       "Lawyer assigned",
			Description: fmt.Sprintf("%s assigned to case %s by %s", lawyer.Name, caseRecord.CaseNumber, actor.Name),
			Category:    models.TimelineCategoryAssignment,
			CreatedByID: actor.ID,
		})
		EnqueueNotification(tx, NotificationPayload{
			UserID:       lawyer.ID,
			Type:         models.NotificationTypeAssignment,
			Title:        "Case assignment",
			Message:      fmt.Sprintf("You have been assigned to case %s", caseRecord.CaseNumber),
			ResourceType: "Case",
			ResourceID:   fmt.Sprint(caseRecord.ID),
		})
		EnqueueAudit(tx, AuditActor(actor, models.AuditActionAssign, "Case", caseRecord.ID, caseRecord.CaseNumber))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return caseRecord, nil
}

// Delete permanently removes a case and cascades to its parties, documents,
// timeline events, motions, orders and assignment requests. Notifications
// and audit records survive the cascade. The delete is hard: a soft-deleted
// row would keep its case number under the unique index and block the
// number generator from ever moving past it.
func (s *CaseService) Delete(actor *models.User, ident string) error {
	if !actor.HasRole(models.CaseDeletionRoles...) {
		return apperrors.Forbidden("role %s cannot delete cases", actor.Role)
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		caseRecord, err := ResolveCase(tx, ident)
		if err != nil {
			return err
		}

		cascade := []interface{}{
			&models.CaseParty{},
			&models.CaseDocument{},
			&models.TimelineEvent{},
			&models.Motion{},
			&models.Order{},
			&models.AssignmentRequest{},
		}
		for _, model := range cascade {
			if err := tx.Unscoped().Where("case_id = ?", caseRecord.ID).Delete(model).Error; err != nil {
				return apperrors.Server(err)
			}
		}

		if err := tx.Unscoped().Delete(caseRecord).Error; err != nil {
			return apperrors.Server(err)
		}

		EnqueueAudit(tx, AuditActor(actor, models.AuditActionDelete, "Case", caseRecord.ID, caseRecord.CaseNumber))
		return nil
	})
}

// rejectPendingRequests closes out every pending assignment request for a
// case once a lawyer is in place
func rejectPendingRequests(tx *gorm.DB, caseID uint, reviewerID string) error {
	now := time.Now()
	err := tx.Model(&models.AssignmentRequest{}).
		Where("case_id = ? AND status = ?", caseID, models.RequestStatusPending).
		Updates(map[string]interface{}{
			"status":         models.RequestStatusRejected,
			"reviewed_by_id": reviewerID,
			"reviewed_at":    now,
		}).Error
	if err != nil {
		return apperrors.Server(err)
	}
	return nil
}

// findUserByID fetches an active user or returns NOT_FOUND
func findUserByID(tx *gorm.DB, id string) (*models.User, error) {
	var user models.User
	if err := tx.First(&user, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, apperrors.NotFound("user %q not found", id)
		}
		return nil, apperrors.Server(err)
	}
	return &user, nil
}
