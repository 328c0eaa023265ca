package telegram

import (
	"context"
	"fmt"
	"time"

	"CoinWatch/internal/domain/models"
	drepo "CoinWatch/internal/domain/repository"
	xhttp "CoinWatch/pkg/http"
)

// Notifier dispatches signal-change alerts to a fixed Telegram chat via the
// bot sendMessage endpoint.
type Notifier struct {
	baseURL string
	token   string
	chatID  string
	http    *xhttp.Client
}

// New creates a Telegram notifier. Token and chat id come from configuration.
func New(baseURL, token, chatID string, timeout time.Duration) drepo.Notifier {
	return &Notifier{
		baseURL: baseURL,
		token:   token,
		chatID:  chatID,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type sendMessageRequest struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Notify sends one alert message. Failures are returned for the caller to
// log; they are never retried and never affect signal memory.
func (n *Notifier) Notify(ctx context.Context, change models.SignalChange) error {
	body := sendMessageRequest{
		ChatID: n.chatID,
		Text:   MessageText(change),
	}

	var resp sendMessageResponse
	err := n.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodPost,
		URL:    fmt.Sprintf("%s/bot%s/sendMessage", n.baseURL, n.token),
		Body:   body,
	}, &resp)
	if err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("telegram send: %s", resp.Description)
	}
	return nil
}

// MessageText renders the alert body for one signal change.
func MessageText(change models.SignalChange) string {
	return fmt.Sprintf("%s Signal Update: %s\nCurrent Price: $%.2f",
		change.Symbol, change.To.Label(), change.Price)
}

var _ drepo.Notifier = (*Notifier)(nil)
