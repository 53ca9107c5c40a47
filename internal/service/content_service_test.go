package service

import (
	"context"
	"testing"
	"time"

	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/testutil"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type contentFixture struct {
	blogs    *BlogService
	posts    *PostService
	comments *CommentService
}

func newContentFixture() *contentFixture {
	postRepo := testutil.NewPostRepository()
	blogRepo := testutil.NewBlogRepository(postRepo)
	commentRepo := testutil.NewCommentRepository()

	return &contentFixture{
		blogs:    NewBlogService(blogRepo, postRepo),
		posts:    NewPostService(postRepo, blogRepo),
		comments: NewCommentService(commentRepo, postRepo),
	}
}

var (
	blogInput = domain.BlogInput{Name: "golang", Description: "about go", WebsiteURL: "https://go.dev"}
	postInput = domain.PostInput{Title: "generics", ShortDescription: "short", Content: "body"}
)

func TestBlogService_RenamePropagatesToPosts(t *testing.T) {
	f := newContentFixture()
	ctx := context.Background()

	blog, err := f.blogs.Create(ctx, blogInput)
	require.NoError(t, err)

	post, err := f.blogs.CreatePost(ctx, blog.ID, postInput)
	require.NoError(t, err)
	assert.Equal(t, "golang", post.BlogName)

	renamed := blogInput
	renamed.Name = "gopher"
	require.NoError(t, f.blogs.Update(ctx, blog.ID, renamed))

	post, err = f.posts.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "gopher", post.BlogName)

	_, err = f.blogs.CreatePost(ctx, uuid.New(), postInput)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlogService_DeleteRemovesPosts(t *testing.T) {
	f := newContentFixture()
	ctx := context.Background()

	blog, err := f.blogs.Create(ctx, blogInput)
	require.NoError(t, err)
	post, err := f.blogs.CreatePost(ctx, blog.ID, postInput)
	require.NoError(t, err)

	require.NoError(t, f.blogs.Delete(ctx, blog.ID))

	_, err = f.posts.GetByID(ctx, post.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestBlogService_ListPaginates(t *testing.T) {
	f := newContentFixture()
	ctx := context.Background()
	base := time.Now()

	for i := 0; i < 3; i++ {
		f.blogs.now = func() time.Time { return base.Add(time.Duration(i) * time.Minute) }
		_, err := f.blogs.Create(ctx, blogInput)
		require.NoError(t, err)
	}

	page, err := f.blogs.List(ctx, domain.QueryParams{PageNumber: 2, PageSize: 2, SortDirection: domain.SortDesc})
	require.NoError(t, err)
	assert.Equal(t, 3, page.TotalCount)
	assert.Equal(t, 2, page.PagesCount)
	assert.Len(t, page.Items, 1)
}

func TestPostService_UnknownBlog(t *testing.T) {
	f := newContentFixture()

	_, err := f.posts.Create(context.Background(), domain.CreatePostInput{PostInput: postInput, BlogID: uuid.NewString()})

	var fe *domain.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "blogId", fe.Field)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCommentService_OwnerOnly(t *testing.T) {
	f := newContentFixture()
	ctx := context.Background()

	blog, err := f.blogs.Create(ctx, blogInput)
	require.NoError(t, err)
	post, err := f.posts.Create(ctx, domain.CreatePostInput{PostInput: postInput, BlogID: blog.ID.String()})
	require.NoError(t, err)

	author := domain.NewUser("bob", "bob@x.com", "s", "h", time.Now())
	stranger := domain.NewUser("eve", "eve@x.com", "s", "h", time.Now())

	comment, err := f.comments.Create(ctx, post.ID, author, "a comment that is long enough")
	require.NoError(t, err)
	assert.Equal(t, "bob", comment.UserLogin)

	assert.ErrorIs(t, f.comments.Update(ctx, comment.ID, stranger.ID, "an edit that is long enough"), domain.ErrForbidden)
	assert.ErrorIs(t, f.comments.Delete(ctx, comment.ID, stranger.ID), domain.ErrForbidden)

	require.NoError(t, f.comments.Update(ctx, comment.ID, author.ID, "an edit that is long enough"))
	got, err := f.comments.GetByID(ctx, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "an edit that is long enough", got.Content)

	page, err := f.comments.ListByPost(ctx, post.ID, domain.QueryParams{PageNumber: 1, PageSize: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, page.TotalCount)

	require.NoError(t, f.comments.Delete(ctx, comment.ID, author.ID))
	assert.ErrorIs(t, f.comments.Delete(ctx, comment.ID, author.ID), domain.ErrNotFound)

	_, err = f.comments.Create(ctx, uuid.New(), author, "a comment that is long enough")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
