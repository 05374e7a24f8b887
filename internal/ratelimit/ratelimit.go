// File: internal/ratelimit/ratelimit.go
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"
)

// Config holds rate limiting knobs for one endpoint class.
type Config struct {
	WindowSize    time.Duration
	MaxAttempts   int
	CleanupPeriod time.Duration
	BanDuration   time.Duration
}

// DefaultConfig suits ordinary public endpoints such as the contact form.
func DefaultConfig() *Config {
	return &Config{
		WindowSize:    15 * time.Minute,
		MaxAttempts:   10,
		CleanupPeriod: 30 * time.Minute,
		BanDuration:   30 * time.Minute,
	}
}

// StrictConfig suits sensitive operations such as requesting a one-time code.
func StrictConfig() *Config {
	return &Config{
		WindowSize:    10 * time.Minute,
		MaxAttempts:   3,
		CleanupPeriod: 20 * time.Minute,
		BanDuration:   60 * time.Minute,
	}
}

// Info describes the limiter's decision for one request.
type Info struct {
	Allowed    bool
	Remaining  int
	ResetTime  time.Time
	RetryAfter time.Duration
	Banned     bool
}

type record struct {
	count     int
	firstSeen time.Time
	bannedAt  *time.Time
}

// MemoryLimiter is a mutex-guarded sliding-window limiter with bans. State is
// per process; for this deployment there is exactly one process.
type MemoryLimiter struct {
	config   *Config
	attempts map[string]*record
	mu       sync.Mutex
	stopCh   chan struct{}
}

// NewMemoryLimiter creates a limiter and starts its background cleanup.
func NewMemoryLimiter(config *Config) *MemoryLimiter {
	l := &MemoryLimiter{
		config:   config,
		attempts: make(map[string]*record),
		stopCh:   make(chan struct{}),
	}
	go l.cleanupLoop()
	return l
}

// Allow decides whether a request from identifier may proceed.
func (l *MemoryLimiter) Allow(identifier string) (bool, *Info) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	rec, exists := l.attempts[identifier]

	if !exists {
		l.attempts[identifier] = &record{count: 1, firstSeen: now}
		return true, &Info{
			Allowed:   true,
			Remaining: l.config.MaxAttempts - 1,
			ResetTime: now.Add(l.config.WindowSize),
		}
	}

	if rec.bannedAt != nil && now.Sub(*rec.bannedAt) < l.config.BanDuration {
		return false, &Info{
			ResetTime:  rec.bannedAt.Add(l.config.BanDuration),
			RetryAfter: l.config.BanDuration - now.Sub(*rec.bannedAt),
			Banned:     true,
		}
	}

	if now.Sub(rec.firstSeen) > l.config.WindowSize {
		rec.count = 1
		rec.firstSeen = now
		rec.bannedAt = nil
		return true, &Info{
			Allowed:   true,
			Remaining: l.config.MaxAttempts - 1,
			ResetTime: now.Add(l.config.WindowSize),
		}
	}

	rec.count++
	if rec.count > l.config.MaxAttempts {
		banTime := now
		rec.bannedAt = &banTime
		return false, &Info{
			ResetTime:  now.Add(l.config.BanDuration),
			RetryAfter: l.config.BanDuration,
			Banned:     true,
		}
	}

	return true, &Info{
		Allowed:   true,
		Remaining: l.config.MaxAttempts - rec.count,
		ResetTime: rec.firstSeen.Add(l.config.WindowSize),
	}
}

// RecordSuccess resets the window after a successful operation.
func (l *MemoryLimiter) RecordSuccess(identifier string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.attempts, identifier)
}

// Close stops the cleanup goroutine.
func (l *MemoryLimiter) Close() {
	close(l.stopCh)
}

func (l *MemoryLimiter) cleanupLoop() {
	ticker := time.NewTicker(l.config.CleanupPeriod)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			l.cleanup()
		case <-l.stopCh:
			return
		}
	}
}

func (l *MemoryLimiter) cleanup() {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	for identifier, rec := range l.attempts {
		windowExpired := now.Sub(rec.firstSeen) > l.config.WindowSize
		banExpired := rec.bannedAt != nil && now.Sub(*rec.bannedAt) > l.config.BanDuration
		if (windowExpired && rec.bannedAt == nil) || banExpired {
			delete(l.attempts, identifier)
		}
	}
}

// GetClientIP extracts the real client IP, honoring proxy headers.
func GetClientIP(r *http.Request) string {
	if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
		parts := strings.Split(forwarded, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	if realIP := r.Header.Get("X-Real-IP"); realIP != "" {
		return realIP
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}
