// Package email defines the outbound email surface the alert dispatcher
// consumes. Providers are swappable; failures are returned as errors for the
// dispatcher to log per recipient.
package email

import (
	"context"
	"fmt"
	"log"
)

// Sender is a single logical email send operation.
type Sender interface {
	SendEmail(ctx context.Context, to, subject, body string) error
}

// Failover tries the primary provider first and falls back to the secondary
// when the primary rejects the message. Either provider may be nil.
type Failover struct {
	primary   Sender
	secondary Sender
}

func NewFailover(primary, secondary Sender) *Failover {
	return &Failover{primary: primary, secondary: secondary}
}

func (f *Failover) SendEmail(ctx context.Context, to, subject, body string) error {
	if f.primary == nil && f.secondary == nil {
		return fmt.Errorf("no email provider configured")
	}
	if f.primary != nil {
		err := f.primary.SendEmail(ctx, to, subject, body)
		if err == nil {
			return nil
		}
		if f.secondary == nil {
			return err
		}
		log.Printf("email: primary provider failed for %s, trying fallback: %v", to, err)
	}
	return f.secondary.SendEmail(ctx, to, subject, body)
}
