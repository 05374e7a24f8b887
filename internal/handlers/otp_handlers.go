// File: internal/handlers/otp_handlers.go
package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/nimakarimi/portfolio-api/internal/services/otp"
	postsvc "github.com/nimakarimi/portfolio-api/internal/services/post"
)

// OTPHandler exposes the code-issuance endpoint and the OTP-gated deletion
// endpoint. The identity is the single configured recipient; there are no
// user accounts.
type OTPHandler struct {
	issuer   *otp.Issuer
	verifier *otp.Verifier
	posts    *postsvc.Service
	identity string
}

// NewOTPHandler creates a new OTPHandler.
func NewOTPHandler(issuer *otp.Issuer, verifier *otp.Verifier, posts *postsvc.Service, identity string) *OTPHandler {
	return &OTPHandler{
		issuer:   issuer,
		verifier: verifier,
		posts:    posts,
		identity: identity,
	}
}

// RequestCode issues a fresh one-time code and dispatches it out-of-band.
// POST with no body.
func (h *OTPHandler) RequestCode(w http.ResponseWriter, r *http.Request) {
	err := h.issuer.IssueCode(r.Context(), h.identity)
	switch {
	case err == nil:
		respondJSON(w, http.StatusOK, map[string]string{"status": "sent"})
	case errors.Is(err, otp.ErrNotifierUnavailable):
		// The code row may exist but was never received; the client should
		// simply request again, which replaces it.
		respondError(w, http.StatusBadGateway, "NOTIFIER_UNAVAILABLE",
			"Could not deliver the code. Request a new one.")
	case errors.Is(err, otp.ErrStoreUnavailable):
		respondError(w, http.StatusInternalServerError, "STORE_UNAVAILABLE",
			"Could not issue a code. Try again later.")
	default:
		respondError(w, http.StatusInternalServerError, "ISSUE_FAILED",
			"Could not issue a code.")
	}
}

// presentedCode pulls the code from the X-OTP-Code header, falling back to
// the otp query parameter for clients that cannot set headers.
func presentedCode(r *http.Request) string {
	if code := r.Header.Get("X-OTP-Code"); code != "" {
		return code
	}
	return r.URL.Query().Get("otp")
}

// DeletePost verifies and consumes the presented code, then deletes the
// target post. The deletion never runs unless verification succeeded.
func (h *OTPHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	err := h.verifier.VerifyAndConsume(r.Context(), h.identity, presentedCode(r), time.Now())
	switch {
	case err == nil:
		// verified; fall through to the protected mutation
	case errors.Is(err, otp.ErrExpired):
		respondError(w, http.StatusUnauthorized, "OTP_EXPIRED",
			"The code has expired. Request a new one.")
		return
	case errors.Is(err, otp.ErrNotFoundOrMismatch):
		respondError(w, http.StatusUnauthorized, "INVALID_OR_EXPIRED_OTP",
			"The code is missing or wrong.")
		return
	default:
		respondError(w, http.StatusInternalServerError, "STORE_UNAVAILABLE",
			"Could not verify the code. Try again later.")
		return
	}

	if err := h.posts.Delete(r.Context(), id); err != nil {
		if errors.Is(err, postsvc.ErrNotFound) {
			respondError(w, http.StatusNotFound, "POST_NOT_FOUND", "No such post.")
			return
		}
		respondError(w, http.StatusInternalServerError, "DELETE_FAILED", "Could not delete the post.")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "deleted", "id": id})
}
