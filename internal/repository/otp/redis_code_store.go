// File: internal/repository/otp/redis_code_store.go
package otp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/nimakarimi/portfolio-api/internal/domain"
)

// safetyTTL bounds how long an orphaned record can linger in Redis. It is
// deliberately much larger than the code validity window: expiry must be
// decided by the verifier against IssuedAt so that an expired code is still
// findable and can be rejected as expired rather than as missing.
const safetyTTL = 24 * time.Hour

// deleteIfMatchScript compares the stored code value and deletes the key only
// on a match, in one atomic server-side step.
var deleteIfMatchScript = redis.NewScript(`
local v = redis.call("GET", KEYS[1])
if v == false then
	return 0
end
local rec = cjson.decode(v)
if rec.code == ARGV[1] then
	redis.call("DEL", KEYS[1])
	return 1
end
return 0
`)

type codeRecord struct {
	Code     string    `json:"code"`
	IssuedAt time.Time `json:"issued_at"`
}

// RedisCodeStore implements CodeStore on a single Redis key per identity.
type RedisCodeStore struct {
	client *redis.Client
}

// NewRedisCodeStore creates a new Redis-backed code store.
func NewRedisCodeStore(client *redis.Client) *RedisCodeStore {
	return &RedisCodeStore{client: client}
}

func codeKey(identity string) string {
	return fmt.Sprintf("otp:code:%s", identity)
}

// FindByIdentity finds the live code for an identity.
func (s *RedisCodeStore) FindByIdentity(ctx context.Context, identity string) (*domain.OneTimeCode, error) {
	raw, err := s.client.Get(ctx, codeKey(identity)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, err
	}
	var rec codeRecord
	if err := json.Unmarshal([]byte(raw), &rec); err != nil {
		return nil, fmt.Errorf("corrupt code record for %q: %w", identity, err)
	}
	return &domain.OneTimeCode{
		Identity: identity,
		Code:     rec.Code,
		IssuedAt: rec.IssuedAt,
	}, nil
}

// Replace overwrites the key for the identity. A plain SET is already the
// atomic delete-old/insert-new the contract asks for.
func (s *RedisCodeStore) Replace(ctx context.Context, code *domain.OneTimeCode) error {
	raw, err := json.Marshal(codeRecord{Code: code.Code, IssuedAt: code.IssuedAt})
	if err != nil {
		return err
	}
	return s.client.Set(ctx, codeKey(code.Identity), raw, safetyTTL).Err()
}

// DeleteIfMatch runs the compare-and-delete script.
func (s *RedisCodeStore) DeleteIfMatch(ctx context.Context, identity, code string) (bool, error) {
	n, err := deleteIfMatchScript.Run(ctx, s.client, []string{codeKey(identity)}, code).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
