// File: internal/repository/post/interface.go
package post

import (
	"context"

	"github.com/nimakarimi/portfolio-api/internal/domain"
)

// PostRepository is the persistence contract for blog posts. Plain record
// storage; the only invariant is that IDs are unique.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	FindAll(ctx context.Context) ([]domain.Post, error)
	Update(ctx context.Context, post *domain.Post) error
	Delete(ctx context.Context, id string) (bool, error)
}
