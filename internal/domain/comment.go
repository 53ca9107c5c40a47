package domain

import (
	"time"

	"github.com/google/uuid"
)

type CommentatorInfo struct {
	UserID    uuid.UUID `json:"userId" db:"user_id"`
	UserLogin string    `json:"userLogin" db:"user_login"`
}

type Comment struct {
	ID              uuid.UUID `json:"id" db:"id"`
	Content         string    `json:"content" db:"content"`
	CommentatorInfo `json:"commentatorInfo"`
	PostID          uuid.UUID `json:"-" db:"post_id"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`
}

type CommentInput struct {
	Content string `json:"content" validate:"required,notblank,min=20,max=300"`
}

func NewComment(content string, postID uuid.UUID, author *User, now time.Time) *Comment {
	return &Comment{
		ID:      uuid.New(),
		Content: content,
		CommentatorInfo: CommentatorInfo{
			UserID:    author.ID,
			UserLogin: author.Login,
		},
		PostID:    postID,
		CreatedAt: now,
	}
}

// IsOwnedBy reports whether userID wrote the comment
func (c *Comment) IsOwnedBy(userID uuid.UUID) bool {
	return c.CommentatorInfo.UserID == userID
}
