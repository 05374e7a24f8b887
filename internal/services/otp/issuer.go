// File: internal/services/otp/issuer.go
package otp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nimakarimi/portfolio-api/internal/domain"
	otprepo "github.com/nimakarimi/portfolio-api/internal/repository/otp"
	"github.com/nimakarimi/portfolio-api/internal/services"
	"github.com/nimakarimi/portfolio-api/internal/services/mail"
)

// Issuer produces exactly one live code per identity and hands it to the
// notifier for out-of-band delivery.
type Issuer struct {
	store    otprepo.CodeStore
	notifier mail.Notifier
	logger   services.Logger
	now      func() time.Time
}

// NewIssuer creates a new code issuer.
func NewIssuer(store otprepo.CodeStore, notifier mail.Notifier, logger services.Logger) *Issuer {
	return &Issuer{
		store:    store,
		notifier: notifier,
		logger:   logger,
		now:      time.Now,
	}
}

// IssueCode generates a fresh code for identity, installs it as the single
// live code (replacing any prior one), and dispatches it to the notifier.
//
// The store write happens before delivery and is not rolled back if delivery
// fails: the caller sees ErrNotifierUnavailable and is expected to request a
// fresh code, which invalidates the undelivered row via the replace.
func (s *Issuer) IssueCode(ctx context.Context, identity string) error {
	if identity == "" {
		return errors.New("identity must be provided")
	}

	code, err := GenerateCode()
	if err != nil {
		return err
	}

	record := &domain.OneTimeCode{
		Identity: identity,
		Code:     code,
		IssuedAt: s.now(),
	}
	if err := s.store.Replace(ctx, record); err != nil {
		s.logger.Error("failed to persist one-time code", "error", err, "identity", identity)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	expiry := fmt.Sprintf("expires in %d minutes", int(domain.CodeTTL.Minutes()))
	if err := s.notifier.SendCode(ctx, identity, code, expiry); err != nil {
		s.logger.Error("code delivery failed", "error", err, "identity", identity)
		return fmt.Errorf("%w: %v", ErrNotifierUnavailable, err)
	}

	s.logger.Info("one-time code issued", "identity", identity)
	return nil
}
