package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"storefront-platform/internal/domain"
)

// Mailer posts transactional mail to an HTTP relay (Resend-compatible JSON
// API). A Mailer with an empty URL is a no-op so local setups run without a
// relay.
type Mailer struct {
	url    string
	token  string
	from   string
	client *http.Client
	logger *log.Logger
}

func New(url, token, from string, logger *log.Logger) *Mailer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Mailer{
		url:    url,
		token:  token,
		from:   from,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// SendOrderConfirmation renders and sends the post-checkout confirmation.
func (m *Mailer) SendOrderConfirmation(ctx context.Context, to string, order domain.Order) error {
	if m.url == "" {
		m.logger.Printf("mailer: no relay configured, skipping confirmation for order %s", order.Number)
		return nil
	}

	payload := map[string]any{
		"from":    m.from,
		"to":      to,
		"subject": fmt.Sprintf("Order %s confirmed", order.Number),
		"html":    confirmationHTML(order),
	}
	return m.post(ctx, payload)
}

func (m *Mailer) post(ctx context.Context, payload map[string]any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal mail payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build mail request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+m.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("send mail request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return fmt.Errorf("mail relay status %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

func confirmationHTML(order domain.Order) string {
	var rows strings.Builder
	for _, item := range order.Items {
		rows.WriteString(fmt.Sprintf(
			`<tr><td>%s</td><td align="right">%d</td><td align="right">%s</td></tr>`,
			item.ProductName, item.Quantity, formatCents(item.TotalCents, order.Currency)))
	}

	var b strings.Builder
	fmt.Fprintf(&b, `<h1>Thanks for your order!</h1>`)
	fmt.Fprintf(&b, `<p>Order <strong>%s</strong> has been received.</p>`, order.Number)
	fmt.Fprintf(&b, `<table width="100%%"><tr><th align="left">Item</th><th align="right">Qty</th><th align="right">Total</th></tr>%s</table>`, rows.String())
	fmt.Fprintf(&b, `<p>Subtotal: %s</p>`, formatCents(order.SubtotalCents, order.Currency))
	if order.DiscountCents > 0 {
		fmt.Fprintf(&b, `<p>Discount (%s): -%s</p>`, order.DiscountCode, formatCents(order.DiscountCents, order.Currency))
	}
	fmt.Fprintf(&b, `<p><strong>Total: %s</strong></p>`, formatCents(order.TotalCents, order.Currency))
	return b.String()
}

func formatCents(cents int64, currency string) string {
	if currency == "" {
		currency = "USD"
	}
	return fmt.Sprintf("%s %d.%02d", currency, cents/100, cents%100)
}
