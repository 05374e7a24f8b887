// File: internal/repository/otp/memory_code_store_test.go
package otp

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimakarimi/portfolio-api/internal/domain"
)

func TestMemoryStoreFindAbsent(t *testing.T) {
	store := NewMemoryCodeStore()
	record, err := store.FindByIdentity(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestMemoryStoreReplaceKeepsOneLiveCode(t *testing.T) {
	store := NewMemoryCodeStore()
	t0 := time.Now()

	require.NoError(t, store.Replace(context.Background(), &domain.OneTimeCode{
		Identity: "a@x.com", Code: "111111", IssuedAt: t0,
	}))
	require.NoError(t, store.Replace(context.Background(), &domain.OneTimeCode{
		Identity: "a@x.com", Code: "222222", IssuedAt: t0.Add(time.Second),
	}))

	record, err := store.FindByIdentity(context.Background(), "a@x.com")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "222222", record.Code)
}

func TestMemoryStoreDeleteIfMatch(t *testing.T) {
	store := NewMemoryCodeStore()
	require.NoError(t, store.Replace(context.Background(), &domain.OneTimeCode{
		Identity: "a@x.com", Code: "111111", IssuedAt: time.Now(),
	}))

	deleted, err := store.DeleteIfMatch(context.Background(), "a@x.com", "999999")
	require.NoError(t, err)
	assert.False(t, deleted, "mismatched value must not delete")

	deleted, err = store.DeleteIfMatch(context.Background(), "a@x.com", "111111")
	require.NoError(t, err)
	assert.True(t, deleted)

	// Deleting nothing is not an error.
	deleted, err = store.DeleteIfMatch(context.Background(), "a@x.com", "111111")
	require.NoError(t, err)
	assert.False(t, deleted)
}

func TestMemoryStoreFindReturnsCopy(t *testing.T) {
	store := NewMemoryCodeStore()
	require.NoError(t, store.Replace(context.Background(), &domain.OneTimeCode{
		Identity: "a@x.com", Code: "111111", IssuedAt: time.Now(),
	}))

	record, err := store.FindByIdentity(context.Background(), "a@x.com")
	require.NoError(t, err)
	record.Code = "mutated"

	again, err := store.FindByIdentity(context.Background(), "a@x.com")
	require.NoError(t, err)
	assert.Equal(t, "111111", again.Code)
}

func TestMemoryStoreConcurrentConditionalDelete(t *testing.T) {
	store := NewMemoryCodeStore()
	require.NoError(t, store.Replace(context.Background(), &domain.OneTimeCode{
		Identity: "a@x.com", Code: "111111", IssuedAt: time.Now(),
	}))

	const callers = 32
	var wg sync.WaitGroup
	deletions := make([]bool, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			deleted, err := store.DeleteIfMatch(context.Background(), "a@x.com", "111111")
			assert.NoError(t, err)
			deletions[i] = deleted
		}(i)
	}
	wg.Wait()

	wins := 0
	for _, d := range deletions {
		if d {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "only one caller may observe the removal")
}
