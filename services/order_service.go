package services

import (
	"fmt"
	"time"

	"courtdesk/apperrors"
	"courtdesk/models"

	"gorm.io/gorm"
)

// OrderService manages the order drafting and signing pipeline.
type OrderService struct {
	DB *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{DB: db}
}

// Draft creates a new order in Draft status. Clerks, registrars, judges and
// admins may draft; a judge may only draft on their own cases.
func (s *OrderService) Draft(actor *models.User, ident, title, content string) (*models.Order, error) {
	if !actor.HasRole(models.RoleClerk, models.RoleRegistrar, models.RoleJudge, models.RoleAdmin) {
		return nil, apperrors.Forbidden("role %s cannot draft orders", actor.Role)
	}
	title = SanitizeText(title)
	if title == "" {
		return nil, apperrors.Validation("title is required")
	}
	content = SanitizeText(content)
	if content == "" {
		return nil, apperrors.Validation("content is required")
	}

	var order *models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		caseRecord, err := ResolveCase(tx, ident)
		if err != nil {
			return err
		}

		if actor.Role == models.RoleJudge {
			if !caseRecord.HasJudge() || *caseRecord.JudgeID != actor.ID {
				return apperrors.Forbidden("only the assigned judge can draft orders on case %s", caseRecord.CaseNumber)
			}
		}

		order = &models.Order{
			CaseID:      caseRecord.ID,
			Title:       title,
			Content:     content,
			DraftedByID: actor.ID,
			Status:      models.OrderStatusDraft,
		}
		if err := tx.Create(order).Error; err != nil {
			return apperrors.Server(err)
		}

		EnqueueTimeline(tx, TimelinePayload{
			CaseID:      caseRecord.ID,
			Title:       "Order drafted",
			Description: fmt.Sprintf("Order %q drafted on case %s by %s", order.Title, caseRecord.CaseNumber, actor.Name),
			Category:    models.TimelineCategoryOrder,
			CreatedByID: actor.ID,
		})
		if caseRecord.HasJudge() && *caseRecord.JudgeID != actor.ID {
			EnqueueNotification(tx, NotificationPayload{
				UserID:       *caseRecord.JudgeID,
				Type:         models.NotificationTypeOrder,
				Title:        "Order awaiting signature",
				Message:      fmt.Sprintf("Order %q on case %s awaits your signature", order.Title, caseRecord.CaseNumber),
				ResourceType: "Order",
				ResourceID:   fmt.Sprint(order.ID),
			})
		}
		EnqueueAudit(tx, AuditActor(actor, models.AuditActionCreate, "Order", order.ID, caseRecord.CaseNumber))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// Sign signs a draft order. Judges and admins may sign; a judge must be the
// case's assigned judge. Signing an already-signed order is ALREADY_SIGNED
// and leaves the first signature untouched.
func (s *OrderService) Sign(actor *models.User, orderID uint) (*models.Order, error) {
	if !actor.HasRole(models.RoleJudge, models.RoleAdmin) {
		return nil, apperrors.Forbidden("role %s cannot sign orders", actor.Role)
	}

	var order models.Order
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("Case").First(&order, orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return apperrors.NotFound("order %d not found", orderID)
			}
			return apperrors.Server(err)
		}

		caseRecord := order.Case
		if actor.Role == models.RoleJudge {
			if !caseRecord.HasJudge() || *caseRecord.JudgeID != actor.ID {
				return apperrors.Forbidden("only the assigned judge can sign orders on case %s", caseRecord.CaseNumber)
			}
		}

		if order.IsSigned() {
			return apperrors.AlreadySigned("order %d is already signed", order.ID)
		}

		now := time.Now()
		if err := tx.Model(&order).Updates(map[string]interface{}{
			"status":       models.OrderStatusSigned,
			"signed_by_id": actor.ID,
			"signed_at":    now,
		}).Error; err != nil {
			return apperrors.Server(err)
		}
		order.Status = models.OrderStatusSigned
		order.SignedByID = &actor.ID
		order.SignedAt = &now

		EnqueueTimeline(tx, TimelinePayload{
			CaseID:      caseRecord.ID,
			Title:       "Order signed",
			Description: fmt.Sprintf("Order %q on case %s signed by %s", order.Title, caseRecord.CaseNumber, actor.Name),
			Category:    models.TimelineCategoryOrder,
			CreatedByID: actor.ID,
		})
		if order.DraftedByID != actor.ID {
			EnqueueNotification(tx, NotificationPayload{
				UserID:       order.DraftedByID,
				Type:         models.NotificationTypeOrder,
				Title:        "Order signed",
				Message:      fmt.Sprintf("Order %q on case %s has been signed", order.Title, caseRecord.CaseNumber),
				ResourceType: "Order",
				ResourceID:   fmt.Sprint(order.ID),
			})
		}
		EnqueueAudit(tx, AuditActor(actor, models.AuditActionSign, "Order", order.ID, caseRecord.CaseNumber))
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &order, nil
}

// ListForCase returns the orders drafted for a case, newest first
func (s *OrderService) ListForCase(caseID uint) ([]models.Order, error) {
	var orders []models.Order
	err := s.DB.Preload("DraftedBy").Preload("SignedBy").
		Where("case_id = ?", caseID).
		Order("drafted_date DESC").
		Find(&orders).Error
	if err != nil {
		return nil, apperrors.Server(err)
	}
	return orders, nil
}
