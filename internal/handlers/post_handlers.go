// File: internal/handlers/post_handlers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/nimakarimi/portfolio-api/internal/domain"
	postsvc "github.com/nimakarimi/portfolio-api/internal/services/post"
)

// PostHandler exposes blog post CRUD. Deletion lives on OTPHandler because it
// is gated.
type PostHandler struct {
	posts *postsvc.Service
}

// NewPostHandler creates a new PostHandler.
func NewPostHandler(posts *postsvc.Service) *PostHandler {
	return &PostHandler{posts: posts}
}

type postRequest struct {
	Title   string `json:"title"`
	Summary string `json:"summary"`
	Body    string `json:"body"`
	Tags    string `json:"tags"`
}

func (pr *postRequest) toDomain() *domain.Post {
	return &domain.Post{
		Title:   pr.Title,
		Summary: pr.Summary,
		Body:    pr.Body,
		Tags:    pr.Tags,
	}
}

func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON.")
		return
	}

	created, err := h.posts.Create(r.Context(), req.toDomain())
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_POST", err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

func (h *PostHandler) List(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		respondError(w, http.StatusInternalServerError, "LIST_FAILED", "Could not load posts.")
		return
	}
	respondJSON(w, http.StatusOK, posts)
}

func (h *PostHandler) Get(w http.ResponseWriter, r *http.Request) {
	post, err := h.posts.Get(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		if errors.Is(err, postsvc.ErrNotFound) {
			respondError(w, http.StatusNotFound, "POST_NOT_FOUND", "No such post.")
			return
		}
		respondError(w, http.StatusInternalServerError, "GET_FAILED", "Could not load the post.")
		return
	}
	respondJSON(w, http.StatusOK, post)
}

func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_BODY", "Request body must be JSON.")
		return
	}

	updated, err := h.posts.Update(r.Context(), mux.Vars(r)["id"], req.toDomain())
	if err != nil {
		if errors.Is(err, postsvc.ErrNotFound) {
			respondError(w, http.StatusNotFound, "POST_NOT_FOUND", "No such post.")
			return
		}
		respondError(w, http.StatusInternalServerError, "UPDATE_FAILED", "Could not update the post.")
		return
	}
	respondJSON(w, http.StatusOK, updated)
}
