package handler

import (
	"github.com/andressep95/blog-service/internal/handler/middleware"
	"github.com/gofiber/fiber/v2"
)

// Handlers groups every route handler of the API
type Handlers struct {
	Auth    *AuthHandler
	Devices *SecurityDevicesHandler
	User    *UserHandler
	Blog    *BlogHandler
	Post    *PostHandler
	Comment *CommentHandler
	Testing *TestingHandler
	Health  *HealthHandler
}

func SetupRoutes(
	app *fiber.App,
	h Handlers,
	gates *middleware.AuthGates,
	requireAdmin fiber.Handler,
	rateLimit fiber.Handler,
) {
	// Health checks (public)
	app.Get("/health", h.Health.Health)
	app.Get("/ready", h.Health.Ready)

	// Auth routes
	auth := app.Group("/auth")
	auth.Post("/login", rateLimit, h.Auth.Login)
	auth.Post("/refresh-token", gates.Refresh(h.Auth.RefreshToken))
	auth.Post("/logout", gates.Refresh(h.Auth.Logout))
	auth.Post("/registration", rateLimit, h.Auth.Registration)
	auth.Post("/registration-confirmation", rateLimit, gates.Confirmation(h.Auth.RegistrationConfirmation))
	auth.Post("/registration-email-resending", rateLimit, h.Auth.RegistrationEmailResending)
	auth.Post("/password-recovery", rateLimit, h.Auth.PasswordRecovery)
	auth.Post("/new-password", rateLimit, h.Auth.NewPassword)
	auth.Get("/me", gates.Bearer(h.Auth.Me))

	// Device sessions (refresh token)
	devices := app.Group("/security/devices")
	devices.Get("/", gates.Refresh(h.Devices.List))
	devices.Delete("/", gates.Refresh(h.Devices.DeleteOthers))
	devices.Delete("/:deviceId", gates.Refresh(h.Devices.DeleteDevice))

	// User administration (basic auth)
	users := app.Group("/users", requireAdmin)
	users.Get("/", h.User.List)
	users.Post("/", h.User.Create)
	users.Delete("/:id", h.User.Delete)

	blogs := app.Group("/blogs")
	blogs.Get("/", h.Blog.List)
	blogs.Get("/:id", h.Blog.Get)
	blogs.Get("/:blogId/posts", h.Blog.ListPosts)
	blogs.Post("/", requireAdmin, h.Blog.Create)
	blogs.Put("/:id", requireAdmin, h.Blog.Update)
	blogs.Delete("/:id", requireAdmin, h.Blog.Delete)
	blogs.Post("/:blogId/posts", requireAdmin, h.Blog.CreatePost)

	posts := app.Group("/posts")
	posts.Get("/", h.Post.List)
	posts.Get("/:id", h.Post.Get)
	posts.Get("/:postId/comments", h.Post.ListComments)
	posts.Post("/", requireAdmin, h.Post.Create)
	posts.Put("/:id", requireAdmin, h.Post.Update)
	posts.Delete("/:id", requireAdmin, h.Post.Delete)
	posts.Post("/:postId/comments", gates.Bearer(h.Post.CreateComment))

	comments := app.Group("/comments")
	comments.Get("/:id", h.Comment.Get)
	comments.Put("/:id", gates.Bearer(h.Comment.Update))
	comments.Delete("/:id", gates.Bearer(h.Comment.Delete))

	app.Delete("/testing/all-data", h.Testing.DeleteAllData)
}
