// File: internal/repository/otp/interface.go
package otp

import (
	"context"

	"github.com/nimakarimi/portfolio-api/internal/domain"
)

// CodeStore is the persistence contract for one-time codes. Implementations
// must make Replace atomic per identity and DeleteIfMatch conditional, so that
// concurrent issuance and redemption serialize at the store rather than in
// application logic.
type CodeStore interface {
	// FindByIdentity returns the live code for identity, or (nil, nil) when
	// none exists.
	FindByIdentity(ctx context.Context, identity string) (*domain.OneTimeCode, error)

	// Replace removes any existing code for code.Identity and installs the
	// given one as the single live code, as one atomic step.
	Replace(ctx context.Context, code *domain.OneTimeCode) error

	// DeleteIfMatch removes the code for identity only if its value equals
	// code, reporting whether a row was actually removed. Deleting nothing is
	// not an error.
	DeleteIfMatch(ctx context.Context, identity, code string) (bool, error)
}
