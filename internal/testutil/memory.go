package testutil

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/repository"
	"github.com/google/uuid"
)

var (
	_ repository.UserRepository          = (*UserRepository)(nil)
	_ repository.DeviceSessionRepository = (*DeviceSessionRepository)(nil)
	_ repository.BlogRepository          = (*BlogRepository)(nil)
	_ repository.PostRepository          = (*PostRepository)(nil)
	_ repository.CommentRepository       = (*CommentRepository)(nil)
)

func notFound(what string) error {
	return fmt.Errorf("%s: %w", what, domain.ErrNotFound)
}

// page sorts by creation time in the requested direction and cuts one page
func page[T any](items []T, createdAt func(T) time.Time, q domain.QueryParams) []T {
	sort.SliceStable(items, func(i, j int) bool {
		if q.SortDirection == domain.SortAsc {
			return createdAt(items[i]).Before(createdAt(items[j]))
		}
		return createdAt(items[i]).After(createdAt(items[j]))
	})

	start := q.Skip()
	if start >= len(items) {
		return nil
	}
	end := start + q.PageSize
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func containsFold(s, term string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(term))
}

// UserRepository is an in-memory repository.UserRepository
type UserRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]*domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[uuid.UUID]*domain.User)}
}

// Put stores user without uniqueness checks
func (r *UserRepository) Put(user *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := *user
	r.users[u.ID] = &u
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Login == user.Login {
			return domain.ErrDuplicateLogin
		}
		if u.Email == user.Email {
			return domain.ErrDuplicateEmail
		}
	}

	u := *user
	r.users[u.ID] = &u
	return nil
}

func (r *UserRepository) find(match func(*domain.User) bool) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if match(u) {
			found := *u
			return &found, nil
		}
	}
	return nil, notFound("user")
}

func (r *UserRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.ID == id })
}

func (r *UserRepository) GetByLoginOrEmail(_ context.Context, loginOrEmail string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Login == loginOrEmail || u.Email == loginOrEmail })
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.Email == email })
}

func (r *UserRepository) GetByRecoveryCode(_ context.Context, code string) (*domain.User, error) {
	return r.find(func(u *domain.User) bool { return u.RecoveryCode != nil && *u.RecoveryCode == code })
}

func (r *UserRepository) FindByConfirmationCode(_ context.Context, code string) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var result []*domain.User
	for _, u := range r.users {
		if u.ConfirmationCode == code {
			found := *u
			result = append(result, &found)
			if len(result) == 2 {
				break
			}
		}
	}
	return result, nil
}

func (r *UserRepository) ConfirmEmail(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok || u.IsConfirmed {
		return domain.ErrAlreadyConfirmed
	}
	u.IsConfirmed = true
	return nil
}

func (r *UserRepository) update(id uuid.UUID, fn func(*domain.User)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	u, ok := r.users[id]
	if !ok {
		return notFound("user")
	}
	fn(u)
	return nil
}

func (r *UserRepository) UpdateConfirmation(_ context.Context, id uuid.UUID, confirmation domain.EmailConfirmation) error {
	return r.update(id, func(u *domain.User) { u.EmailConfirmation = confirmation })
}

func (r *UserRepository) SetRecovery(_ context.Context, id uuid.UUID, code string, expiresAt time.Time) error {
	return r.update(id, func(u *domain.User) {
		u.RecoveryCode = &code
		u.PasswordRecovery.ExpirationDate = &expiresAt
	})
}

func (r *UserRepository) UpdatePassword(_ context.Context, id uuid.UUID, salt, hash string) error {
	return r.update(id, func(u *domain.User) {
		u.PasswordSalt = salt
		u.PasswordHash = hash
		u.PasswordRecovery = domain.PasswordRecovery{}
	})
}

func (r *UserRepository) SetRefreshToken(_ context.Context, id uuid.UUID, tokenHash *string) error {
	return r.update(id, func(u *domain.User) { u.RefreshToken = tokenHash })
}

func (r *UserRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[id]; !ok {
		return notFound("user")
	}
	delete(r.users, id)
	return nil
}

func (r *UserRepository) List(_ context.Context, q domain.QueryParams) ([]*domain.User, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*domain.User
	for _, u := range r.users {
		noTerms := q.SearchLoginTerm == "" && q.SearchEmailTerm == ""
		byLogin := q.SearchLoginTerm != "" && containsFold(u.Login, q.SearchLoginTerm)
		byEmail := q.SearchEmailTerm != "" && containsFold(u.Email, q.SearchEmailTerm)
		if noTerms || byLogin || byEmail {
			found := *u
			matched = append(matched, &found)
		}
	}

	return page(matched, func(u *domain.User) time.Time { return u.CreatedAt }, q), len(matched), nil
}

func (r *UserRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = make(map[uuid.UUID]*domain.User)
	return nil
}

// Len reports the number of stored users
func (r *UserRepository) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.users)
}

// DeviceSessionRepository is an in-memory repository.DeviceSessionRepository
type DeviceSessionRepository struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*domain.DeviceSession
}

func NewDeviceSessionRepository() *DeviceSessionRepository {
	return &DeviceSessionRepository{sessions: make(map[uuid.UUID]*domain.DeviceSession)}
}

func (r *DeviceSessionRepository) Create(_ context.Context, session *domain.DeviceSession) (uuid.UUID, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s := *session
	r.sessions[s.ID] = &s
	return s.ID, nil
}

func (r *DeviceSessionRepository) Update(_ context.Context, id uuid.UUID, upd domain.DeviceSessionUpdate) error {
	if upd.IsEmpty() {
		return fmt.Errorf("nothing to update: %w", domain.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[id]
	if !ok {
		return notFound("session")
	}
	if upd.IP != nil {
		s.IP = *upd.IP
	}
	if upd.IssuedAt != nil {
		s.IssuedAt = *upd.IssuedAt
	}
	if upd.ExpiredDate != nil {
		s.ExpiredDate = *upd.ExpiredDate
	}
	return nil
}

func (r *DeviceSessionRepository) FindByFilter(_ context.Context, f domain.DeviceSessionFilter) (*domain.DeviceSession, error) {
	if f.IsEmpty() {
		return nil, fmt.Errorf("empty filter: %w", domain.ErrValidation)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.sessions {
		if f.ID != nil && s.ID != *f.ID {
			continue
		}
		if f.UserID != nil && s.UserID != *f.UserID {
			continue
		}
		if f.DeviceID != nil && s.DeviceID != *f.DeviceID {
			continue
		}
		if f.IssuedAt != nil && !s.IssuedAt.Equal(*f.IssuedAt) {
			continue
		}
		found := *s
		return &found, nil
	}
	return nil, nil
}

func (r *DeviceSessionRepository) ListByUser(_ context.Context, userID uuid.UUID, now time.Time) ([]*domain.DeviceSession, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	result := []*domain.DeviceSession{}
	for _, s := range r.sessions {
		if s.UserID == userID && !s.IsExpired(now) {
			found := *s
			result = append(result, &found)
		}
	}
	return result, nil
}

func (r *DeviceSessionRepository) DeleteAllExceptCurrent(_ context.Context, currentID uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	current, ok := r.sessions[currentID]
	if !ok {
		return nil
	}
	for id, s := range r.sessions {
		if s.UserID == current.UserID && id != currentID {
			delete(r.sessions, id)
		}
	}
	return nil
}

func (r *DeviceSessionRepository) DeleteByID(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return notFound("session")
	}
	delete(r.sessions, id)
	return nil
}

func (r *DeviceSessionRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions = make(map[uuid.UUID]*domain.DeviceSession)
	return nil
}

// IDs lists the stored session ids
func (r *DeviceSessionRepository) IDs() []uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	return ids
}

// BlogRepository is an in-memory repository.BlogRepository
type BlogRepository struct {
	mu    sync.Mutex
	blogs map[uuid.UUID]*domain.Blog
	posts *PostRepository
}

// NewBlogRepository links to posts so that renames and deletes propagate like in the database
func NewBlogRepository(posts *PostRepository) *BlogRepository {
	return &BlogRepository{blogs: make(map[uuid.UUID]*domain.Blog), posts: posts}
}

func (r *BlogRepository) Create(_ context.Context, blog *domain.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	b := *blog
	r.blogs[b.ID] = &b
	return nil
}

func (r *BlogRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Blog, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.blogs[id]
	if !ok {
		return nil, notFound("blog")
	}
	found := *b
	return &found, nil
}

func (r *BlogRepository) Update(_ context.Context, id uuid.UUID, in domain.BlogInput) error {
	r.mu.Lock()
	b, ok := r.blogs[id]
	if !ok {
		r.mu.Unlock()
		return notFound("blog")
	}
	b.Name = in.Name
	b.Description = in.Description
	b.WebsiteURL = in.WebsiteURL
	r.mu.Unlock()

	if r.posts != nil {
		r.posts.renameBlog(id, in.Name)
	}
	return nil
}

func (r *BlogRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.blogs[id]; !ok {
		return notFound("blog")
	}
	delete(r.blogs, id)
	r.posts.deleteByBlog(id)
	return nil
}

func (r *BlogRepository) List(_ context.Context, q domain.QueryParams) ([]*domain.Blog, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*domain.Blog
	for _, b := range r.blogs {
		if q.SearchNameTerm == "" || containsFold(b.Name, q.SearchNameTerm) {
			found := *b
			matched = append(matched, &found)
		}
	}
	return page(matched, func(b *domain.Blog) time.Time { return b.CreatedAt }, q), len(matched), nil
}

func (r *BlogRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blogs = make(map[uuid.UUID]*domain.Blog)
	return nil
}

// PostRepository is an in-memory repository.PostRepository
type PostRepository struct {
	mu    sync.Mutex
	posts map[uuid.UUID]*domain.Post
}

func NewPostRepository() *PostRepository {
	return &PostRepository{posts: make(map[uuid.UUID]*domain.Post)}
}

func (r *PostRepository) renameBlog(blogID uuid.UUID, name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.posts {
		if p.BlogID == blogID {
			p.BlogName = name
		}
	}
}

func (r *PostRepository) deleteByBlog(blogID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, p := range r.posts {
		if p.BlogID == blogID {
			delete(r.posts, id)
		}
	}
}

func (r *PostRepository) Create(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p := *post
	r.posts[p.ID] = &p
	return nil
}

func (r *PostRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return nil, notFound("post")
	}
	found := *p
	return &found, nil
}

func (r *PostRepository) Update(_ context.Context, id uuid.UUID, in domain.PostInput, blog *domain.Blog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.posts[id]
	if !ok {
		return notFound("post")
	}
	p.Title = in.Title
	p.ShortDescription = in.ShortDescription
	p.Content = in.Content
	p.BlogID = blog.ID
	p.BlogName = blog.Name
	return nil
}

func (r *PostRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.posts[id]; !ok {
		return notFound("post")
	}
	delete(r.posts, id)
	return nil
}

func (r *PostRepository) List(_ context.Context, blogID *uuid.UUID, q domain.QueryParams) ([]*domain.Post, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*domain.Post
	for _, p := range r.posts {
		if blogID == nil || p.BlogID == *blogID {
			found := *p
			matched = append(matched, &found)
		}
	}
	return page(matched, func(p *domain.Post) time.Time { return p.CreatedAt }, q), len(matched), nil
}

func (r *PostRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.posts = make(map[uuid.UUID]*domain.Post)
	return nil
}

// CommentRepository is an in-memory repository.CommentRepository
type CommentRepository struct {
	mu       sync.Mutex
	comments map[uuid.UUID]*domain.Comment
}

func NewCommentRepository() *CommentRepository {
	return &CommentRepository{comments: make(map[uuid.UUID]*domain.Comment)}
}

func (r *CommentRepository) Create(_ context.Context, comment *domain.Comment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c := *comment
	r.comments[c.ID] = &c
	return nil
}

func (r *CommentRepository) GetByID(_ context.Context, id uuid.UUID) (*domain.Comment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return nil, notFound("comment")
	}
	found := *c
	return &found, nil
}

func (r *CommentRepository) Update(_ context.Context, id uuid.UUID, content string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.comments[id]
	if !ok {
		return notFound("comment")
	}
	c.Content = content
	return nil
}

func (r *CommentRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.comments[id]; !ok {
		return notFound("comment")
	}
	delete(r.comments, id)
	return nil
}

func (r *CommentRepository) ListByPost(_ context.Context, postID uuid.UUID, q domain.QueryParams) ([]*domain.Comment, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var matched []*domain.Comment
	for _, c := range r.comments {
		if c.PostID == postID {
			found := *c
			matched = append(matched, &found)
		}
	}
	return page(matched, func(c *domain.Comment) time.Time { return c.CreatedAt }, q), len(matched), nil
}

func (r *CommentRepository) DeleteAll(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.comments = make(map[uuid.UUID]*domain.Comment)
	return nil
}
