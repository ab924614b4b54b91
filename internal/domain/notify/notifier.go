// Package notify defines the outbound notification hook.
// Credit sales ping the customer over WhatsApp; delivery is informational
// only and must never affect the sale itself.
package notify

import (
	"context"

	"gyh/internal/core/id"
	"gyh/internal/core/types"
)

// SaleNotice carries everything a sender needs for a sale message.
type SaleNotice struct {
	SaleID         id.ID
	Number         string
	CustomerName   string
	WhatsappNumber string
	TotalAmount    types.Money
}

// Notifier sends outbound notifications.
type Notifier interface {
	SaleCreated(ctx context.Context, n SaleNotice) error
}

// Noop discards all notifications.
type Noop struct{}

func (Noop) SaleCreated(ctx context.Context, n SaleNotice) error { return nil }
