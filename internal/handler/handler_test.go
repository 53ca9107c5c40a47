package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/andressep95/blog-service/internal/config"
	"github.com/andressep95/blog-service/internal/domain"
	"github.com/andressep95/blog-service/internal/handler/middleware"
	"github.com/andressep95/blog-service/internal/service"
	"github.com/andressep95/blog-service/internal/testutil"
	"github.com/andressep95/blog-service/pkg/blacklist"
	"github.com/andressep95/blog-service/pkg/hash"
	"github.com/andressep95/blog-service/pkg/jwt"
	"github.com/andressep95/blog-service/pkg/validator"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testServer struct {
	app      *fiber.App
	users    *testutil.UserRepository
	sessions *testutil.DeviceSessionRepository
	userSvc  *service.UserService
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	priv, pub := testutil.GenerateRSAKeys(t)
	tokens, err := jwt.NewTokenService(priv, pub, 10*time.Minute, 20*time.Minute, "blog-service")
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	tokenBlacklist := blacklist.NewTokenBlacklist(rdb)

	users := testutil.NewUserRepository()
	sessions := testutil.NewDeviceSessionRepository()
	posts := testutil.NewPostRepository()
	blogs := testutil.NewBlogRepository(posts)
	comments := testutil.NewCommentRepository()

	hasher := hash.NewHasher(hash.Argon2Config{Memory: 1024, Iterations: 1, Parallelism: 1, SaltLength: 16, KeyLength: 32})
	emails := service.NewEmailManager(&testutil.EmailSender{}, &config.EmailConfig{
		FromEmail:       "noreply@blog.dev",
		ConfirmationURL: "https://somesite.com/confirm-email",
		RecoveryURL:     "https://somesite.com/password-recovery",
	})

	userSvc := service.NewUserService(users, hasher)
	sessionSvc := service.NewDeviceSessionService(sessions)
	authSvc := service.NewAuthService(users, userSvc, sessionSvc, emails, tokens, tokenBlacklist, hasher, false)
	commentSvc := service.NewCommentService(comments, posts)
	v := validator.NewValidator()

	ok := PingerFunc(func(context.Context) error { return nil })
	handlers := Handlers{
		Auth:    NewAuthHandler(authSvc, v, false),
		Devices: NewSecurityDevicesHandler(sessionSvc),
		User:    NewUserHandler(userSvc, v),
		Blog:    NewBlogHandler(service.NewBlogService(blogs, posts), v),
		Post:    NewPostHandler(service.NewPostService(posts, blogs), commentSvc, v),
		Comment: NewCommentHandler(commentSvc, v),
		Testing: NewTestingHandler(service.NewTestingService(comments, posts, blogs, sessions, users, tokenBlacklist)),
		Health:  NewHealthHandler(ok, ok),
	}

	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler})
	noLimit := func(c *fiber.Ctx) error { return c.Next() }
	SetupRoutes(app, handlers, middleware.NewAuthGates(authSvc, v), middleware.AdminAuth("admin", "qwerty"), noLimit)

	return &testServer{app: app, users: users, sessions: sessions, userSvc: userSvc}
}

type request struct {
	method  string
	path    string
	body    string
	bearer  string
	refresh string
	admin   bool
}

func (s *testServer) do(t *testing.T, r request) *http.Response {
	t.Helper()

	var body io.Reader
	if r.body != "" {
		body = strings.NewReader(r.body)
	}
	req := httptest.NewRequest(r.method, r.path, body)
	req.Header.Set("Content-Type", "application/json")
	if r.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+r.bearer)
	}
	if r.admin {
		req.Header.Set("Authorization", "Basic "+base64.StdEncoding.EncodeToString([]byte("admin:qwerty")))
	}
	if r.refresh != "" {
		req.AddCookie(&http.Cookie{Name: middleware.RefreshTokenCookie, Value: r.refresh})
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode(t *testing.T, resp *http.Response, dst interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dst))
}

func refreshCookie(t *testing.T, resp *http.Response) *http.Cookie {
	t.Helper()
	for _, c := range resp.Cookies() {
		if c.Name == middleware.RefreshTokenCookie {
			return c
		}
	}
	t.Fatal("refresh token cookie not set")
	return nil
}

type session struct {
	access  string
	refresh string
}

func (s *testServer) createUser(t *testing.T, login string) {
	t.Helper()
	_, err := s.userSvc.CreateUser(context.Background(), service.CreateUserRequest{
		Login:    login,
		Password: "secret1",
		Email:    login + "@x.com",
	})
	require.NoError(t, err)
}

func (s *testServer) login(t *testing.T, login string) session {
	t.Helper()
	resp := s.do(t, request{
		method: http.MethodPost,
		path:   "/auth/login",
		body:   `{"loginOrEmail":"` + login + `","password":"secret1"}`,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	cookie := refreshCookie(t, resp)
	var out struct {
		AccessToken string `json:"accessToken"`
	}
	decode(t, resp, &out)
	require.NotEmpty(t, out.AccessToken)

	return session{access: out.AccessToken, refresh: cookie.Value}
}

type errorsBody struct {
	ErrorsMessages []validator.FieldError `json:"errorsMessages"`
}

func TestRegistrationConfirmation(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, request{
		method: http.MethodPost,
		path:   "/auth/registration",
		body:   `{"login":"bob","password":"secret1","email":"bob@x.com"}`,
	})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	user, err := s.users.GetByEmail(context.Background(), "bob@x.com")
	require.NoError(t, err)
	assert.False(t, user.IsConfirmed)

	confirm := request{
		method: http.MethodPost,
		path:   "/auth/registration-confirmation",
		body:   `{"code":"` + user.ConfirmationCode + `"}`,
	}
	resp = s.do(t, confirm)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	user, err = s.users.GetByEmail(context.Background(), "bob@x.com")
	require.NoError(t, err)
	assert.True(t, user.IsConfirmed)

	resp = s.do(t, confirm)
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	var body errorsBody
	decode(t, resp, &body)
	require.Len(t, body.ErrorsMessages, 1)
	assert.Equal(t, "code", body.ErrorsMessages[0].Field)

	resp = s.do(t, request{method: http.MethodPost, path: "/auth/registration-confirmation", body: `{"code":"unknown"}`})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestRegistration_ValidationBody(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, request{
		method: http.MethodPost,
		path:   "/auth/registration",
		body:   `{"login":"b!","email":"nope"}`,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errorsBody
	decode(t, resp, &body)
	fields := map[string]bool{}
	for _, fe := range body.ErrorsMessages {
		fields[fe.Field] = true
	}
	assert.Equal(t, map[string]bool{"login": true, "password": true, "email": true}, fields)
}

func TestRegistration_DuplicateLogin(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "bob")

	resp := s.do(t, request{
		method: http.MethodPost,
		path:   "/auth/registration",
		body:   `{"login":"bob","password":"secret1","email":"other@x.com"}`,
	})
	require.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var body errorsBody
	decode(t, resp, &body)
	require.Len(t, body.ErrorsMessages, 1)
	assert.Equal(t, "login", body.ErrorsMessages[0].Field)
}

func TestLoginRefreshLogout(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "bob")

	resp := s.do(t, request{method: http.MethodPost, path: "/auth/login", body: `{"loginOrEmail":"bob","password":"wrong1"}`})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	first := s.login(t, "bob")

	resp = s.do(t, request{method: http.MethodGet, path: "/auth/me", bearer: first.access})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var me service.MeView
	decode(t, resp, &me)
	assert.Equal(t, "bob", me.Login)
	assert.Equal(t, "bob@x.com", me.Email)

	resp = s.do(t, request{method: http.MethodGet, path: "/auth/me"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, request{method: http.MethodPost, path: "/auth/refresh-token", refresh: first.refresh})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	cookie := refreshCookie(t, resp)
	assert.True(t, cookie.HttpOnly)
	assert.NotEqual(t, first.refresh, cookie.Value)

	// a spent refresh token is rejected
	resp = s.do(t, request{method: http.MethodPost, path: "/auth/refresh-token", refresh: first.refresh})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, request{method: http.MethodPost, path: "/auth/logout", refresh: cookie.Value})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, s.sessions.IDs())

	resp = s.do(t, request{method: http.MethodPost, path: "/auth/logout", refresh: cookie.Value})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMe_DeletedUser(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "bob")
	sess := s.login(t, "bob")

	user, err := s.users.GetByLoginOrEmail(context.Background(), "bob")
	require.NoError(t, err)
	resp := s.do(t, request{method: http.MethodDelete, path: "/users/" + user.ID.String(), admin: true})
	require.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.do(t, request{method: http.MethodGet, path: "/auth/me", bearer: sess.access})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

type deviceView struct {
	DeviceID string `json:"deviceId"`
	Title    string `json:"title"`
}

func (s *testServer) devices(t *testing.T, refresh string) []deviceView {
	t.Helper()
	resp := s.do(t, request{method: http.MethodGet, path: "/security/devices", refresh: refresh})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var out []deviceView
	decode(t, resp, &out)
	return out
}

func TestSecurityDevices(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "bob")
	s.createUser(t, "alice")

	s1 := s.login(t, "bob")
	s.login(t, "bob")
	s.login(t, "bob")
	other := s.login(t, "alice")

	assert.Len(t, s.devices(t, s1.refresh), 3)
	aliceDevices := s.devices(t, other.refresh)
	require.Len(t, aliceDevices, 1)

	resp := s.do(t, request{method: http.MethodDelete, path: "/security/devices/" + aliceDevices[0].DeviceID, refresh: s1.refresh})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, request{method: http.MethodDelete, path: "/security/devices/unknown", refresh: s1.refresh})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, request{method: http.MethodDelete, path: "/security/devices", refresh: s1.refresh})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	assert.Len(t, s.devices(t, s1.refresh), 1)
	assert.Len(t, s.devices(t, other.refresh), 1)

	resp = s.do(t, request{method: http.MethodGet, path: "/security/devices"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestUsers_AdminOnly(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, request{method: http.MethodGet, path: "/users"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, request{
		method: http.MethodPost,
		path:   "/users",
		body:   `{"login":"carol","password":"secret1","email":"carol@x.com"}`,
		admin:  true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var created struct {
		ID    string `json:"id"`
		Login string `json:"login"`
	}
	decode(t, resp, &created)
	assert.Equal(t, "carol", created.Login)

	resp = s.do(t, request{method: http.MethodGet, path: "/users?searchLoginTerm=CAR", admin: true})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var page struct {
		TotalCount int `json:"totalCount"`
		PageSize   int `json:"pageSize"`
	}
	decode(t, resp, &page)
	assert.Equal(t, 1, page.TotalCount)
	assert.Equal(t, 10, page.PageSize)

	resp = s.do(t, request{method: http.MethodDelete, path: "/users/not-a-uuid", admin: true})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	resp = s.do(t, request{method: http.MethodDelete, path: "/users/" + created.ID, admin: true})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = s.do(t, request{method: http.MethodDelete, path: "/users/" + created.ID, admin: true})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestBlogsPostsComments(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "bob")
	s.createUser(t, "alice")
	bob := s.login(t, "bob")
	alice := s.login(t, "alice")

	blogBody := `{"name":"Go","description":"about go","websiteUrl":"https://go.dev"}`
	resp := s.do(t, request{method: http.MethodPost, path: "/blogs", body: blogBody})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, request{method: http.MethodPost, path: "/blogs", body: blogBody, admin: true})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var blog struct {
		ID string `json:"id"`
	}
	decode(t, resp, &blog)

	resp = s.do(t, request{
		method: http.MethodPost,
		path:   "/blogs/" + blog.ID + "/posts",
		body:   `{"title":"Hello","shortDescription":"first","content":"body"}`,
		admin:  true,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var post struct {
		ID       string `json:"id"`
		BlogName string `json:"blogName"`
	}
	decode(t, resp, &post)
	assert.Equal(t, "Go", post.BlogName)

	resp = s.do(t, request{method: http.MethodGet, path: "/blogs/not-a-uuid"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	commentBody := `{"content":"a comment that is long enough"}`
	resp = s.do(t, request{method: http.MethodPost, path: "/posts/" + post.ID + "/comments", body: commentBody})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = s.do(t, request{method: http.MethodPost, path: "/posts/" + post.ID + "/comments", body: commentBody, bearer: bob.access})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	var comment struct {
		ID              string `json:"id"`
		CommentatorInfo struct {
			UserLogin string `json:"userLogin"`
		} `json:"commentatorInfo"`
	}
	decode(t, resp, &comment)
	assert.Equal(t, "bob", comment.CommentatorInfo.UserLogin)

	resp = s.do(t, request{method: http.MethodPut, path: "/comments/" + comment.ID, body: commentBody, bearer: alice.access})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = s.do(t, request{method: http.MethodDelete, path: "/comments/" + comment.ID, bearer: bob.access})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = s.do(t, request{method: http.MethodGet, path: "/comments/" + comment.ID})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestTestingWipe(t *testing.T) {
	s := newTestServer(t)
	s.createUser(t, "bob")
	s.login(t, "bob")

	resp := s.do(t, request{method: http.MethodDelete, path: "/testing/all-data"})
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Zero(t, s.users.Len())
	assert.Empty(t, s.sessions.IDs())
}

func TestHealth_NotReady(t *testing.T) {
	down := PingerFunc(func(context.Context) error { return fiber.ErrServiceUnavailable })
	up := PingerFunc(func(context.Context) error { return nil })

	app := fiber.New()
	h := NewHealthHandler(up, down)
	app.Get("/ready", h.Ready)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/ready", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestParseQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  domain.QueryParams
	}{
		{
			name:  "defaults",
			query: "",
			want:  domain.QueryParams{PageNumber: 1, PageSize: 10, SortBy: "createdAt", SortDirection: domain.SortDesc},
		},
		{
			name:  "clamped and ascending",
			query: "?pageNumber=0&pageSize=500&sortDirection=ASC&sortBy=name&searchNameTerm=go",
			want:  domain.QueryParams{PageNumber: 1, PageSize: 100, SortBy: "name", SortDirection: domain.SortAsc, SearchNameTerm: "go"},
		},
		{
			name:  "huge page number",
			query: "?pageNumber=922337203685477581&pageSize=100",
			want:  domain.QueryParams{PageNumber: domain.MaxPageNumber, PageSize: 100, SortBy: "createdAt", SortDirection: domain.SortDesc},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got domain.QueryParams
			app := fiber.New()
			app.Get("/", func(c *fiber.Ctx) error {
				got = parseQuery(c)
				return nil
			})

			_, err := app.Test(httptest.NewRequest(http.MethodGet, "/"+tt.query, nil))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.GreaterOrEqual(t, got.Skip(), 0)
		})
	}
}

func TestBlogs_HugePageNumber(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, request{method: http.MethodGet, path: "/blogs?pageNumber=922337203685477581&pageSize=100"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var page struct {
		Page  int               `json:"page"`
		Items []json.RawMessage `json:"items"`
	}
	decode(t, resp, &page)
	assert.Equal(t, domain.MaxPageNumber, page.Page)
	assert.Empty(t, page.Items)
}
