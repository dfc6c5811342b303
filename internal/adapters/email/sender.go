// Package email delivers the studio's transactional mail.
package email

import (
	"context"
	"time"
)

// SendRequest is one outbound message.
type SendRequest struct {
	To      []string
	Subject string
	HTML    string
	ReplyTo string
}

// SendResult identifies a delivered message.
type SendResult struct {
	MessageID string
	SentAt    time.Time
}

// Sender delivers email.
type Sender interface {
	Send(ctx context.Context, req SendRequest) (SendResult, error)
}
