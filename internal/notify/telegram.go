package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nikolayk812/nutshop/internal/domain"
	"github.com/nikolayk812/nutshop/internal/port"
	"github.com/nikolayk812/nutshop/internal/template"
	"github.com/samber/lo"
)

const DefaultTelegramAPIURL = "https://api.telegram.org"

type telegram struct {
	client   *http.Client
	endpoint string
	chatID   string
	engine   *template.Engine
}

type sendMessageRequest struct {
	ChatID    string `json:"chat_id"`
	Text      string `json:"text"`
	ParseMode string `json:"parse_mode"`
}

type sendMessageResponse struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// NewTelegram posts Markdown messages to a chat through the Bot API.
// A nil client falls back to http.DefaultClient; callers bound each call with the context.
func NewTelegram(apiURL, token, chatID string, engine *template.Engine, client *http.Client) (port.Notifier, error) {
	if token == "" {
		return nil, errors.New("telegram bot token is empty")
	}
	if chatID == "" {
		return nil, errors.New("telegram chat id is empty")
	}
	if engine == nil {
		return nil, errors.New("template engine is nil")
	}

	if apiURL == "" {
		apiURL = DefaultTelegramAPIURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	return &telegram{
		client:   client,
		endpoint: fmt.Sprintf("%s/bot%s/sendMessage", strings.TrimRight(apiURL, "/"), token),
		chatID:   chatID,
		engine:   engine,
	}, nil
}

func (t *telegram) NotifyOrderCreated(ctx context.Context, order domain.Order) error {
	text, err := t.engine.OrderCreated(order)
	if err != nil {
		return fmt.Errorf("engine.OrderCreated: %w", err)
	}

	if err := t.send(ctx, text); err != nil {
		return fmt.Errorf("t.send: %w", err)
	}

	return nil
}

func (t *telegram) NotifyStatusChanged(ctx context.Context, order domain.Order) error {
	text, err := t.engine.StatusChanged(order)
	if err != nil {
		return fmt.Errorf("engine.StatusChanged: %w", err)
	}

	if err := t.send(ctx, text); err != nil {
		return fmt.Errorf("t.send: %w", err)
	}

	return nil
}

func (t *telegram) send(ctx context.Context, text string) error {
	body, err := json.Marshal(sendMessageRequest{
		ChatID:    t.chatID,
		Text:      text,
		ParseMode: "Markdown",
	})
	if err != nil {
		return fmt.Errorf("json.Marshal: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("client.Do: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	if err != nil {
		return fmt.Errorf("io.ReadAll: %w", err)
	}

	var result sendMessageResponse
	// non-JSON bodies still fail on the status check below
	_ = json.Unmarshal(raw, &result)

	if resp.StatusCode < 200 || resp.StatusCode > 299 || !result.OK {
		return fmt.Errorf("telegram responded %d: %s", resp.StatusCode, lo.CoalesceOrEmpty(result.Description, strings.TrimSpace(string(raw))))
	}

	return nil
}
