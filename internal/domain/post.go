// File: internal/domain/post.go
package domain

import "time"

// Post is a blog entry. The body is stored as markdown; HTML is rendered on
// the way out, never persisted.
type Post struct {
	ID        string    `gorm:"primaryKey;size:36"`
	Title     string    `gorm:"not null;size:200"`
	Summary   string    `gorm:"size:500"`
	Body      string    `gorm:"not null"`
	Tags      string    `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
