package domain

import (
	"time"

	"github.com/google/uuid"
)

type Blog struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Description  string    `json:"description" db:"description"`
	WebsiteURL   string    `json:"websiteUrl" db:"website_url"`
	IsMembership bool      `json:"isMembership" db:"is_membership"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// BlogInput carries the client-editable fields of a blog
type BlogInput struct {
	Name        string `json:"name" validate:"required,notblank,max=15"`
	Description string `json:"description" validate:"required,notblank,max=500"`
	WebsiteURL  string `json:"websiteUrl" validate:"required,max=100,url,startswith=https://"`
}

func NewBlog(in BlogInput, now time.Time) *Blog {
	return &Blog{
		ID:          uuid.New(),
		Name:        in.Name,
		Description: in.Description,
		WebsiteURL:  in.WebsiteURL,
		CreatedAt:   now,
	}
}
