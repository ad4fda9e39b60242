package notify

import (
	"context"
	"fmt"
	"time"

	"forum-checkin/internal/components/telemetry"

	"github.com/go-resty/resty/v2"
)

type webhookPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Webhook posts notifications as json to a push gateway.
type Webhook struct {
	url   string
	token string
	http  *resty.Client
}

func NewWebhook(url, token string, tel telemetry.API) Webhook {
	httpClient := resty.New()
	httpClient.SetTimeout(10 * time.Second)
	telemetry.InstrumentResty(httpClient, telemetry.NewScopedAPI("webhook", tel))

	return Webhook{url: url, token: token, http: httpClient}
}

func (w Webhook) Notify(ctx context.Context, title, body string) error {
	req := w.http.R().
		SetContext(ctx).
		SetBody(webhookPayload{Title: title, Content: body})
	if w.token != "" {
		req.SetAuthToken(w.token)
	}

	res, err := req.Post(w.url)
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	if res.IsError() {
		return fmt.Errorf("webhook: %s: %s", res.Status(), res.String())
	}
	return nil
}
