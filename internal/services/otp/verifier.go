// File: internal/services/otp/verifier.go
package otp

import (
	"context"
	"fmt"
	"time"

	otprepo "github.com/nimakarimi/portfolio-api/internal/repository/otp"
	"github.com/nimakarimi/portfolio-api/internal/services"
)

// Verifier gates one privileged action on possession of a live, unexpired,
// matching code, and guarantees single redemption.
type Verifier struct {
	store  otprepo.CodeStore
	logger services.Logger
}

// NewVerifier creates a new code verifier.
func NewVerifier(store otprepo.CodeStore, logger services.Logger) *Verifier {
	return &Verifier{store: store, logger: logger}
}

// VerifyAndConsume checks presented against the live code for identity at
// time now. On success the code is consumed; a matched-but-expired code is
// also consumed as part of the ErrExpired rejection. A mismatch or missing
// code mutates nothing.
//
// Lookup is identity-keyed with the code compared afterward, so a wrong code
// and an expired code are reported distinctly. The final conditional delete
// is what serializes concurrent redemptions: of two callers presenting the
// same valid code, only the one whose delete removed the row succeeds; the
// other sees ErrNotFoundOrMismatch.
func (v *Verifier) VerifyAndConsume(ctx context.Context, identity, presented string, now time.Time) error {
	record, err := v.store.FindByIdentity(ctx, identity)
	if err != nil {
		v.logger.Error("code lookup failed", "error", err, "identity", identity)
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if record == nil || record.Code != presented {
		v.logger.Warn("code rejected", "identity", identity)
		return ErrNotFoundOrMismatch
	}

	if record.IsExpired(now) {
		if _, err := v.store.DeleteIfMatch(ctx, identity, record.Code); err != nil {
			return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		v.logger.Warn("expired code consumed", "identity", identity)
		return ErrExpired
	}

	deleted, err := v.store.DeleteIfMatch(ctx, identity, record.Code)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}
	if !deleted {
		// Lost the race to a concurrent redemption.
		return ErrNotFoundOrMismatch
	}

	v.logger.Info("one-time code redeemed", "identity", identity)
	return nil
}
