package query

import (
	"fmt"

	"github.com/rasoilabs/pos-backend/internal/inventory/domain"
)

// ListNotificationsQuery contains filters for low-stock notifications
type ListNotificationsQuery struct {
	UnacknowledgedOnly bool
}

// ListNotificationsHandler handles the notification listing query
type ListNotificationsHandler struct {
	repo domain.InventoryRepository
}

// NewListNotificationsHandler creates a new notifications handler
func NewListNotificationsHandler(repo domain.InventoryRepository) *ListNotificationsHandler {
	return &ListNotificationsHandler{repo: repo}
}

// Handle executes the notification listing query
func (h *ListNotificationsHandler) Handle(query ListNotificationsQuery) ([]domain.InventoryNotification, error) {
	notifications, err := h.repo.FindNotifications(query.UnacknowledgedOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch notifications: %w", err)
	}
	return notifications, nil
}
