package notificator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/argab/lottery/pkg/logger"
)

const smsRequestTimeout = 10 * time.Second

// smsPayload is the body accepted by the SMS gateway.
type smsPayload struct {
	APIKey  string `json:"api_key"`
	To      string `json:"to"`
	Message string `json:"message"`
	Sender  string `json:"sender"`
}

// SMSNotificator posts messages to an HTTP SMS gateway. Without a gateway
// URL it only logs the message, which is what local setups run with.
type SMSNotificator struct {
	logger *logger.Logger
	client *http.Client

	APIURL string
	APIKey string
	Sender string
}

func NewSMSNotificator(logger *logger.Logger, apiURL, apiKey, sender string) *SMSNotificator {
	return &SMSNotificator{
		logger: logger,
		client: &http.Client{Timeout: smsRequestTimeout},
		APIURL: apiURL,
		APIKey: apiKey,
		Sender: sender,
	}
}

// Send reports whether the gateway accepted the message.
func (s *SMSNotificator) Send(ctx context.Context, phone, message string) bool {
	if s.APIURL == "" {
		s.logger.Infow("SMS (no gateway configured)", "to", phone, "message", message)
		return true
	}
	if err := s.post(ctx, phone, message); err != nil {
		s.logger.Errorw("Failed to send SMS", "to", phone, "error", err)
		return false
	}
	s.logger.Debugw("SMS sent", "to", phone)
	return true
}

func (s *SMSNotificator) post(ctx context.Context, phone, message string) error {
	body, err := json.Marshal(smsPayload{APIKey: s.APIKey, To: phone, Message: message, Sender: s.Sender})
	if err != nil {
		return fmt.Errorf("failed to encode SMS payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.APIURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to build SMS request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("SMS gateway request failed: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("SMS gateway returned status %d", resp.StatusCode)
	}
	return nil
}
