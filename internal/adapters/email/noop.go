package email

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// NoopSender logs messages instead of delivering them. Used when no Resend key is configured.
type NoopSender struct{}

var _ Sender = (*NoopSender)(nil)

// NewNoopSender creates a new NoopSender.
func NewNoopSender() *NoopSender {
	return &NoopSender{}
}

// Send logs the message and reports success.
func (s *NoopSender) Send(_ context.Context, req SendRequest) (SendResult, error) {
	slog.Info("email_event", "event", "noop_send", "to", req.To, "subject", req.Subject)
	now := time.Now()
	return SendResult{MessageID: fmt.Sprintf("noop-%d", now.UnixNano()), SentAt: now}, nil
}
