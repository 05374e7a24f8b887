// File: internal/domain/one_time_code.go
package domain

import "time"

// CodeTTL is the fixed validity window of a one-time code. It is not
// configurable per code; callers that need the window use this constant.
const CodeTTL = 5 * time.Minute

// OneTimeCode is a short-lived, single-use numeric credential bound to one
// identity. At most one live code exists per identity at any time; issuing a
// new code replaces any prior one.
type OneTimeCode struct {
	ID       uint      `gorm:"primaryKey"`
	Identity string    `gorm:"uniqueIndex;not null;size:255"`
	Code     string    `gorm:"not null;size:6"`
	IssuedAt time.Time `gorm:"not null"`
}

// ExpiresAt returns the instant after which the code may no longer be redeemed.
func (c *OneTimeCode) ExpiresAt() time.Time {
	return c.IssuedAt.Add(CodeTTL)
}

// IsExpired reports whether the code has passed its validity window at now.
func (c *OneTimeCode) IsExpired(now time.Time) bool {
	return now.After(c.ExpiresAt())
}
