package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"tasktakr/pkg/utils"

	"go.uber.org/zap"
)

// PushSender delivers a push notification to a device token.
type PushSender interface {
	Send(ctx context.Context, token, title, body string) error
}

type expoPush struct {
	endpoint   string
	httpClient *http.Client
	log        *zap.Logger
}

func NewExpoPush(cfg utils.PushConfig, log *zap.Logger) PushSender {
	return &expoPush{
		endpoint:   cfg.Endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		log:        log.With(zap.String("notifier", "expo")),
	}
}

type expoMessage struct {
	To    string `json:"to"`
	Title string `json:"title"`
	Body  string `json:"body"`
	Sound string `json:"sound"`
}

func (e *expoPush) Send(ctx context.Context, token, title, body string) error {
	payload, err := json.Marshal(expoMessage{
		To:    token,
		Title: title,
		Body:  body,
		Sound: "default",
	})
	if err != nil {
		return fmt.Errorf("marshal push message: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send push request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		respBody, _ := io.ReadAll(resp.Body)
		e.log.Warn("Push service rejected message",
			zap.Int("status_code", resp.StatusCode),
			zap.ByteString("body", respBody),
		)
		return fmt.Errorf("push service returned status %d", resp.StatusCode)
	}

	return nil
}
