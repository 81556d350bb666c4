package telegram

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"swipepilot/internal/ports"
)

const defaultAPIBase = "https://api.telegram.org"

// Notifier pushes run results to a Telegram chat via the bot API, so the
// operator hears about new matches without watching the terminal.
type Notifier struct {
	botToken string
	chatID   string
	client   *http.Client
	apiBase  string
}

var _ ports.Notifier = (*Notifier)(nil)

// NewNotifier registers bot token and chat identifier.
func NewNotifier(botToken, chatID string) *Notifier {
	return &Notifier{
		botToken: botToken,
		chatID:   chatID,
		client:   &http.Client{Timeout: 5 * time.Second},
		apiBase:  defaultAPIBase,
	}
}

// NotifyRunFinished posts a run summary listing who matched.
func (n *Notifier) NotifyRunFinished(ctx context.Context, completed, requested int, matchedNames []string) error {
	return n.publish(ctx, runMessage(completed, requested, matchedNames))
}

func runMessage(completed, requested int, matchedNames []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "*swipepilot*: %d/%d swipes done", completed, requested)

	if len(matchedNames) == 0 {
		b.WriteString(", no new matches")
		return b.String()
	}

	fmt.Fprintf(&b, ", %d new match", len(matchedNames))
	if len(matchedNames) > 1 {
		b.WriteString("es")
	}
	for _, name := range matchedNames {
		if name == "" {
			name = "(unnamed)"
		}
		b.WriteString("\n- ")
		b.WriteString(name)
	}
	return b.String()
}

// publish posts a Markdown message to the configured chat.
func (n *Notifier) publish(ctx context.Context, message string) error {
	if n.botToken == "" || n.chatID == "" || n.client == nil {
		return fmt.Errorf("telegram notifier misconfigured")
	}

	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", n.apiBase, n.botToken)
	form := url.Values{}
	form.Set("chat_id", n.chatID)
	form.Set("text", message)
	form.Set("parse_mode", "Markdown")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("telegram error: %s", resp.Status)
	}

	return nil
}
