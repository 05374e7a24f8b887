// File: internal/services/contact/contact_service_test.go
package contact

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimakarimi/portfolio-api/internal/domain"
	"github.com/nimakarimi/portfolio-api/internal/services"
	"github.com/nimakarimi/portfolio-api/internal/services/mail"
)

type fakeForwarder struct {
	failures int
	payloads []interface{}
}

func (f *fakeForwarder) Forward(ctx context.Context, payload interface{}) error {
	if f.failures > 0 {
		f.failures--
		return &mail.MailError{Type: mail.ErrTypeNetwork, Message: "timeout"}
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

func validMessage() *domain.ContactMessage {
	return &domain.ContactMessage{Name: "Ada", Email: "ada@x.com", Message: "hello"}
}

func TestRelayForwardsValidMessage(t *testing.T) {
	fwd := &fakeForwarder{}
	svc := NewService(fwd, services.NoOpLogger{})

	require.NoError(t, svc.Relay(context.Background(), validMessage()))
	assert.Len(t, fwd.payloads, 1)
}

func TestRelayRetriesTransientFailures(t *testing.T) {
	fwd := &fakeForwarder{failures: 2}
	svc := NewService(fwd, services.NoOpLogger{})
	svc.retry.Delay = 0

	require.NoError(t, svc.Relay(context.Background(), validMessage()))
	assert.Len(t, fwd.payloads, 1)
}

func TestRelayValidation(t *testing.T) {
	svc := NewService(&fakeForwarder{}, services.NoOpLogger{})

	cases := []struct {
		name string
		msg  *domain.ContactMessage
	}{
		{"missing name", &domain.ContactMessage{Email: "a@x.com", Message: "m"}},
		{"bad email", &domain.ContactMessage{Name: "n", Email: "not-an-email", Message: "m"}},
		{"missing message", &domain.ContactMessage{Name: "n", Email: "a@x.com"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := svc.Relay(context.Background(), tc.msg)
			assert.ErrorIs(t, err, ErrInvalid)
		})
	}
}

func TestRelayTrimsWhitespace(t *testing.T) {
	fwd := &fakeForwarder{}
	svc := NewService(fwd, services.NoOpLogger{})

	msg := &domain.ContactMessage{Name: "  Ada  ", Email: " ada@x.com ", Message: " hi "}
	require.NoError(t, svc.Relay(context.Background(), msg))
	assert.Equal(t, "Ada", msg.Name)
	assert.Equal(t, "ada@x.com", msg.Email)
	assert.Equal(t, "hi", msg.Message)
}
