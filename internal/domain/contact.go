// File: internal/domain/contact.go
package domain

// ContactMessage is a contact-form submission. It is relayed to an external
// delivery endpoint and never persisted.
type ContactMessage struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}
