// File: internal/handlers/contact_handler.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/nimakarimi/portfolio-api/internal/domain"
	contactsvc "github.com/nimakarimi/portfolio-api/internal/services/contact"
)

// ContactHandler relays contact-form submissions.
type ContactHandler struct {
	contact *contactsvc.Service
}

// NewContactHandler creates a new ContactHandler.
func NewContactHandler(contact *contactsvc.Service) *ContactHandler {
	return &ContactHandler{contact: contact}
}

func (h *ContactHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var msg domain.ContactMessage
	if err := json.NewDecoder(r.Body).Decode(&msg); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON.")
		return
	}

	if err := h.contact.Relay(r.Context(), &msg); err != nil {
		if errors.Is(err, contactsvc.ErrInvalid) {
			respondError(w, http.StatusBadRequest, "INVALID_MESSAGE", err.Error())
			return
		}
		respondError(w, http.StatusBadGateway, "RELAY_FAILED", "Could not deliver the message.")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
}
