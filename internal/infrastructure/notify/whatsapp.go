// Package notify provides outbound sale notifications.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"gyh/internal/domain/notify"
	"gyh/pkg/logger"
)

// WhatsappNotifier posts sale notices to a webhook that relays them as
// WhatsApp messages. Delivery is best-effort; the sale is already
// committed when a notice goes out.
type WhatsappNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewWhatsappNotifier creates a webhook notifier. Returns a Noop notifier
// when no URL is configured.
func NewWhatsappNotifier(webhookURL string) notify.Notifier {
	if webhookURL == "" {
		return notify.Noop{}
	}
	return &WhatsappNotifier{
		webhookURL: webhookURL,
		client:     &http.Client{Timeout: 10 * time.Second},
	}
}

// SaleCreated posts the notice to the webhook.
func (n *WhatsappNotifier) SaleCreated(ctx context.Context, notice notify.SaleNotice) error {
	body, err := json.Marshal(notice)
	if err != nil {
		return fmt.Errorf("marshal notice: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("post notice: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}

	logger.Debug(ctx, "sale notice delivered",
		"sale_number", notice.Number,
		"customer", notice.CustomerName,
	)
	return nil
}
