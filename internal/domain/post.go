package domain

import (
	"time"

	"github.com/google/uuid"
)

type Post struct {
	ID               uuid.UUID `json:"id" db:"id"`
	Title            string    `json:"title" db:"title"`
	ShortDescription string    `json:"shortDescription" db:"short_description"`
	Content          string    `json:"content" db:"content"`
	BlogID           uuid.UUID `json:"blogId" db:"blog_id"`
	BlogName         string    `json:"blogName" db:"blog_name"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
}

// PostInput carries the client-editable fields of a post
type PostInput struct {
	Title            string `json:"title" validate:"required,notblank,max=30"`
	ShortDescription string `json:"shortDescription" validate:"required,notblank,max=100"`
	Content          string `json:"content" validate:"required,notblank,max=1000"`
}

// CreatePostInput is a PostInput addressed to a blog
type CreatePostInput struct {
	PostInput
	BlogID string `json:"blogId" validate:"required,uuid"`
}

// NewPost denormalizes the owning blog's name into the post
func NewPost(in PostInput, blog *Blog, now time.Time) *Post {
	return &Post{
		ID:               uuid.New(),
		Title:            in.Title,
		ShortDescription: in.ShortDescription,
		Content:          in.Content,
		BlogID:           blog.ID,
		BlogName:         blog.Name,
		CreatedAt:        now,
	}
}
