package command

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/rasoilabs/pos-backend/internal/inventory/domain"
	"github.com/rasoilabs/pos-backend/pkg/apperror"
)

// AcknowledgeNotificationCommand marks a low-stock alert as seen
type AcknowledgeNotificationCommand struct {
	NotificationID uint
	AcknowledgedBy *uint
}

// AcknowledgeNotificationHandler handles notification acknowledgment
type AcknowledgeNotificationHandler struct {
	repo domain.InventoryRepository
}

// NewAcknowledgeNotificationHandler creates a new acknowledge handler
func NewAcknowledgeNotificationHandler(repo domain.InventoryRepository) *AcknowledgeNotificationHandler {
	return &AcknowledgeNotificationHandler{repo: repo}
}

// Handle executes the acknowledge command
func (h *AcknowledgeNotificationHandler) Handle(cmd AcknowledgeNotificationCommand) (*domain.InventoryNotification, error) {
	if cmd.NotificationID == 0 {
		return nil, apperror.Invalid("notification id is required")
	}

	notification, err := h.repo.Acknowledge(cmd.NotificationID, cmd.AcknowledgedBy)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.Invalid("notification not found")
		}
		return nil, fmt.Errorf("failed to acknowledge notification: %w", err)
	}

	return notification, nil
}
