// File: internal/services/mail/interface.go
package mail

import "context"

// Notifier is an opaque out-of-band delivery channel. Implementations push a
// one-time code to its legitimate holder; any push channel satisfies the
// contract.
type Notifier interface {
	// SendCode delivers code to recipient together with a human-readable
	// expiry statement such as "expires in 5 minutes".
	SendCode(ctx context.Context, recipient, code, expiry string) error
}

// Forwarder relays an arbitrary contact payload to the delivery channel.
type Forwarder interface {
	Forward(ctx context.Context, payload interface{}) error
}
