// File: internal/services/contact/contact_service.go
package contact

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/nimakarimi/portfolio-api/internal/domain"
	"github.com/nimakarimi/portfolio-api/internal/services"
	"github.com/nimakarimi/portfolio-api/internal/services/mail"
)

var emailRegex = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// ErrInvalid marks submissions rejected by validation, as opposed to
// delivery failures.
var ErrInvalid = errors.New("invalid contact message")

const maxMessageLength = 5000

// Service validates contact-form submissions and relays them to the external
// delivery endpoint. Nothing is persisted.
type Service struct {
	forwarder mail.Forwarder
	retry     *mail.RetryConfig
	logger    services.Logger
}

// NewService creates a new contact relay service.
func NewService(forwarder mail.Forwarder, logger services.Logger) *Service {
	return &Service{
		forwarder: forwarder,
		retry:     mail.DefaultRetryConfig(),
		logger:    logger,
	}
}

// Relay forwards a validated message. Delivery failures after retries are
// surfaced to the caller.
func (s *Service) Relay(ctx context.Context, msg *domain.ContactMessage) error {
	msg.Name = strings.TrimSpace(msg.Name)
	msg.Email = strings.TrimSpace(msg.Email)
	msg.Message = strings.TrimSpace(msg.Message)

	switch {
	case msg.Name == "":
		return fmt.Errorf("%w: name must be provided", ErrInvalid)
	case !emailRegex.MatchString(msg.Email):
		return fmt.Errorf("%w: email address is invalid", ErrInvalid)
	case msg.Message == "":
		return fmt.Errorf("%w: message must be provided", ErrInvalid)
	case len(msg.Message) > maxMessageLength:
		return fmt.Errorf("%w: message is too long", ErrInvalid)
	}

	err := mail.Retry(ctx, s.retry, func(ctx context.Context) error {
		return s.forwarder.Forward(ctx, msg)
	})
	if err != nil {
		s.logger.Error("contact relay failed", "error", err)
		return fmt.Errorf("failed to relay message: %w", err)
	}

	s.logger.Info("contact message relayed", "from", msg.Email)
	return nil
}
