// File: internal/services/otp/verifier_test.go
package otp

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimakarimi/portfolio-api/internal/domain"
	otprepo "github.com/nimakarimi/portfolio-api/internal/repository/otp"
	"github.com/nimakarimi/portfolio-api/internal/services"
)

func seedCode(t *testing.T, store otprepo.CodeStore, code string, issuedAt time.Time) {
	t.Helper()
	err := store.Replace(context.Background(), &domain.OneTimeCode{
		Identity: testIdentity,
		Code:     code,
		IssuedAt: issuedAt,
	})
	require.NoError(t, err)
}

func TestVerifySucceedsExactlyOnce(t *testing.T) {
	store := otprepo.NewMemoryCodeStore()
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedCode(t, store, "482913", t0)

	verifier := NewVerifier(store, services.NoOpLogger{})

	err := verifier.VerifyAndConsume(context.Background(), testIdentity, "482913", t0.Add(4*time.Minute))
	require.NoError(t, err)

	record, err := store.FindByIdentity(context.Background(), testIdentity)
	require.NoError(t, err)
	assert.Nil(t, record)

	err = verifier.VerifyAndConsume(context.Background(), testIdentity, "482913", t0.Add(4*time.Minute+time.Second))
	assert.ErrorIs(t, err, ErrNotFoundOrMismatch)
}

func TestVerifyImmediateRedemption(t *testing.T) {
	store := otprepo.NewMemoryCodeStore()
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedCode(t, store, "123456", t0)

	verifier := NewVerifier(store, services.NoOpLogger{})
	assert.NoError(t, verifier.VerifyAndConsume(context.Background(), testIdentity, "123456", t0))
}

func TestVerifyAtWindowBoundary(t *testing.T) {
	store := otprepo.NewMemoryCodeStore()
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedCode(t, store, "123456", t0)

	// Exactly five minutes in is still inside the window.
	verifier := NewVerifier(store, services.NoOpLogger{})
	assert.NoError(t, verifier.VerifyAndConsume(context.Background(), testIdentity, "123456", t0.Add(domain.CodeTTL)))
}

func TestVerifyExpiredConsumesCode(t *testing.T) {
	store := otprepo.NewMemoryCodeStore()
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedCode(t, store, "123456", t0)

	verifier := NewVerifier(store, services.NoOpLogger{})

	err := verifier.VerifyAndConsume(context.Background(), testIdentity, "123456", t0.Add(domain.CodeTTL+time.Millisecond))
	assert.ErrorIs(t, err, ErrExpired)

	// The stale row is gone; a retry is indistinguishable from no code.
	record, ferr := store.FindByIdentity(context.Background(), testIdentity)
	require.NoError(t, ferr)
	assert.Nil(t, record)

	err = verifier.VerifyAndConsume(context.Background(), testIdentity, "123456", t0.Add(domain.CodeTTL+time.Second))
	assert.ErrorIs(t, err, ErrNotFoundOrMismatch)
}

func TestVerifyExpiredAfterSixMinutes(t *testing.T) {
	store := otprepo.NewMemoryCodeStore()
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedCode(t, store, "654321", t0)

	verifier := NewVerifier(store, services.NoOpLogger{})

	err := verifier.VerifyAndConsume(context.Background(), testIdentity, "654321", t0.Add(6*time.Minute))
	assert.ErrorIs(t, err, ErrExpired)

	err = verifier.VerifyAndConsume(context.Background(), testIdentity, "654321", t0.Add(6*time.Minute+time.Second))
	assert.ErrorIs(t, err, ErrNotFoundOrMismatch)
}

func TestVerifyWrongCodeLeavesLiveCodeIntact(t *testing.T) {
	store := otprepo.NewMemoryCodeStore()
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	seedCode(t, store, "482913", t0)

	verifier := NewVerifier(store, services.NoOpLogger{})

	err := verifier.VerifyAndConsume(context.Background(), testIdentity, "000000", t0)
	assert.ErrorIs(t, err, ErrNotFoundOrMismatch)

	// The mismatch mutated nothing; the real code still redeems.
	record, ferr := store.FindByIdentity(context.Background(), testIdentity)
	require.NoError(t, ferr)
	require.NotNil(t, record)
	assert.NoError(t, verifier.VerifyAndConsume(context.Background(), testIdentity, "482913", t0))
}

func TestVerifyNoCodeIssued(t *testing.T) {
	store := otprepo.NewMemoryCodeStore()
	verifier := NewVerifier(store, services.NoOpLogger{})

	err := verifier.VerifyAndConsume(context.Background(), testIdentity, "482913", time.Now())
	assert.ErrorIs(t, err, ErrNotFoundOrMismatch)
}

func TestVerifyStoreFailure(t *testing.T) {
	verifier := NewVerifier(failingStore{}, services.NoOpLogger{})
	err := verifier.VerifyAndConsume(context.Background(), testIdentity, "482913", time.Now())
	assert.ErrorIs(t, err, ErrStoreUnavailable)
}

func TestVerifyConcurrentRedemptionSingleWinner(t *testing.T) {
	store := otprepo.NewMemoryCodeStore()
	t0 := time.Now()
	seedCode(t, store, "482913", t0)

	verifier := NewVerifier(store, services.NoOpLogger{})

	const callers = 16
	var wg sync.WaitGroup
	results := make([]error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = verifier.VerifyAndConsume(context.Background(), testIdentity, "482913", t0)
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, err := range results {
		if err == nil {
			wins++
		} else {
			assert.ErrorIs(t, err, ErrNotFoundOrMismatch)
		}
	}
	assert.Equal(t, 1, wins, "exactly one concurrent redemption must observe success")
}
