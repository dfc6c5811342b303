package orchestrators

import (
	"context"
	"log/slog"
	"strings"

	"serene/internal/adapters/email"
	"serene/internal/domain/session"
	"serene/internal/domain/subscription"
)

// SubscribeNewsletterInput carries the newsletter form.
type SubscribeNewsletterInput struct {
	Session session.Session
	Email   string
}

// SubscribeNewsletterDeps holds dependencies for SubscribeNewsletter.
type SubscribeNewsletterDeps struct {
	Subscriptions SubscriptionStore
	Mailer        email.Sender // optional
}

// ExecuteSubscribeNewsletter records at most one subscription per username.
// Checks run in order: email format, then session, then uniqueness.
// POST: subscriptions grows by one, or is unchanged on error
func ExecuteSubscribeNewsletter(ctx context.Context, input SubscribeNewsletterInput, deps SubscribeNewsletterDeps) (subscription.Subscription, error) {
	addr := strings.TrimSpace(input.Email)
	if err := subscription.ValidateEmail(addr); err != nil {
		return subscription.Subscription{}, err
	}
	if input.Session.State() != session.Authenticated {
		return subscription.Subscription{}, ErrNotAuthenticated
	}

	sub := subscription.Subscription{Username: input.Session.Username(), Email: addr}
	err := deps.Subscriptions.UpdateSubscriptions(ctx, func(all []subscription.Subscription) ([]subscription.Subscription, error) {
		if subscription.HasUsername(all, sub.Username) {
			return nil, ErrDuplicateSubscription
		}
		return append(all, sub), nil
	})
	if err != nil {
		return subscription.Subscription{}, err
	}
	slog.Info("form_event", "event", "newsletter_subscribed", "username", sub.Username)

	if deps.Mailer != nil {
		req, err := email.Welcome(sub.Email, sub.Username)
		if err == nil {
			_, err = deps.Mailer.Send(ctx, req)
		}
		if err != nil {
			slog.Warn("email_event", "event", "welcome_failed", "username", sub.Username, "error", err)
		}
	}
	return sub, nil
}
