// File: internal/services/post/post_service.go
package post

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/nimakarimi/portfolio-api/internal/domain"
	postrepo "github.com/nimakarimi/portfolio-api/internal/repository/post"
	"github.com/nimakarimi/portfolio-api/internal/services"
)

// ErrNotFound is returned when the requested post does not exist.
var ErrNotFound = errors.New("post not found")

// RenderedPost is a post together with its body rendered to HTML.
type RenderedPost struct {
	domain.Post
	HTML string `json:"html"`
}

// Service handles blog post CRUD. Bodies are markdown; rendering happens on
// read so stored content stays canonical.
type Service struct {
	repo     postrepo.PostRepository
	markdown goldmark.Markdown
	logger   services.Logger
}

// NewService creates a new post service.
func NewService(repo postrepo.PostRepository, logger services.Logger) *Service {
	return &Service{
		repo: repo,
		markdown: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
		logger: logger,
	}
}

// Create stores a new post and returns it with a freshly assigned ID.
func (s *Service) Create(ctx context.Context, post *domain.Post) (*domain.Post, error) {
	post.Title = strings.TrimSpace(post.Title)
	if post.Title == "" {
		return nil, errors.New("title must be provided")
	}
	if strings.TrimSpace(post.Body) == "" {
		return nil, errors.New("body must be provided")
	}

	post.ID = uuid.NewString()
	if err := s.repo.Create(ctx, post); err != nil {
		s.logger.Error("failed to create post", "error", err)
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	s.logger.Info("post created", "post_id", post.ID)
	return post, nil
}

// Get returns one post with rendered HTML.
func (s *Service) Get(ctx context.Context, id string) (*RenderedPost, error) {
	post, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if post == nil {
		return nil, ErrNotFound
	}
	return s.render(post)
}

// List returns all posts, newest first, with rendered HTML.
func (s *Service) List(ctx context.Context) ([]RenderedPost, error) {
	posts, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	rendered := make([]RenderedPost, 0, len(posts))
	for i := range posts {
		rp, err := s.render(&posts[i])
		if err != nil {
			return nil, err
		}
		rendered = append(rendered, *rp)
	}
	return rendered, nil
}

// Update replaces the mutable fields of an existing post.
func (s *Service) Update(ctx context.Context, id string, updated *domain.Post) (*domain.Post, error) {
	existing, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load post: %w", err)
	}
	if existing == nil {
		return nil, ErrNotFound
	}

	if title := strings.TrimSpace(updated.Title); title != "" {
		existing.Title = title
	}
	if body := strings.TrimSpace(updated.Body); body != "" {
		existing.Body = updated.Body
	}
	existing.Summary = updated.Summary
	existing.Tags = updated.Tags

	if err := s.repo.Update(ctx, existing); err != nil {
		s.logger.Error("failed to update post", "error", err, "post_id", id)
		return nil, fmt.Errorf("failed to update post: %w", err)
	}
	s.logger.Info("post updated", "post_id", id)
	return existing, nil
}

// Delete removes a post. This is the privileged mutation the OTP gate
// protects; callers must hold a successful VerifyAndConsume before invoking
// it.
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		s.logger.Error("failed to delete post", "error", err, "post_id", id)
		return fmt.Errorf("failed to delete post: %w", err)
	}
	if !deleted {
		return ErrNotFound
	}
	s.logger.Info("post deleted", "post_id", id)
	return nil
}

func (s *Service) render(post *domain.Post) (*RenderedPost, error) {
	var buf bytes.Buffer
	if err := s.markdown.Convert([]byte(post.Body), &buf); err != nil {
		return nil, fmt.Errorf("failed to render post %s: %w", post.ID, err)
	}
	return &RenderedPost{Post: *post, HTML: buf.String()}, nil
}
