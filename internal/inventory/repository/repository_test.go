package repository

import (
	"testing"

	catalogdomain "github.com/rasoilabs/pos-backend/internal/catalog/domain"
	"github.com/rasoilabs/pos-backend/internal/inventory/domain"
)

func TestThresholdNotification(t *testing.T) {
	product := &catalogdomain.Product{ID: 1, Name: "Egg Bhurji", LowStockThreshold: 10}

	tests := []struct {
		name     string
		previous int
		newStock int
		want     string // "" means no notification
	}{
		{"crosses into low stock", 11, 10, domain.NotifyLowStock},
		{"drops well below threshold", 15, 3, domain.NotifyLowStock},
		{"already low, stays low", 8, 5, ""},
		{"runs out", 4, 0, domain.NotifyOutOfStock},
		{"runs out from above threshold", 20, 0, domain.NotifyOutOfStock},
		{"already out", 0, 0, ""},
		{"restock out of danger", 3, 50, ""},
		{"restock but still low", 2, 6, ""},
		{"healthy stock", 50, 45, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := thresholdNotification(product, tt.previous, tt.newStock)
			if tt.want == "" {
				if got != nil {
					t.Errorf("got notification %+v, want none", got)
				}
				return
			}
			if got == nil {
				t.Fatalf("got no notification, want %s", tt.want)
			}
			if got.NotificationType != tt.want {
				t.Errorf("type = %s, want %s", got.NotificationType, tt.want)
			}
			if got.CurrentStock != tt.newStock || got.Threshold != 10 {
				t.Errorf("notification = %+v, want stock %d threshold 10", got, tt.newStock)
			}
		})
	}
}
