package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"

	"github.com/andressep95/blog-service/internal/config"
	"github.com/andressep95/blog-service/internal/handler"
	"github.com/andressep95/blog-service/internal/handler/middleware"
	"github.com/andressep95/blog-service/internal/repository/postgres"
	"github.com/andressep95/blog-service/internal/service"
	"github.com/andressep95/blog-service/pkg/blacklist"
	"github.com/andressep95/blog-service/pkg/email"
	"github.com/andressep95/blog-service/pkg/hash"
	"github.com/andressep95/blog-service/pkg/jwt"
	"github.com/andressep95/blog-service/pkg/validator"
)

func main() {
	if err := run(); err != nil {
		slog.Error("service stopped with error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: parseLevel(cfg.Server.LogLevel),
	})))

	// Initialize database connection
	db, err := initDB(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			slog.Error("error closing database connection", "error", err)
		}
	}()
	slog.Info("database connection established")

	if err := postgres.Migrate(context.Background(), db); err != nil {
		return err
	}

	// Initialize Redis client
	redisClient, err := initRedis(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Error("error closing redis connection", "error", err)
		}
	}()
	slog.Info("redis connection established")

	// Load RSA keys for JWT
	privateKey, publicKey, err := loadRSAKeys(cfg)
	if err != nil {
		return err
	}

	tokenService, err := jwt.NewTokenService(
		privateKey,
		publicKey,
		cfg.JWT.AccessTokenExpiry,
		cfg.JWT.RefreshTokenExpiry,
		cfg.JWT.Issuer,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize token service: %w", err)
	}

	tokenBlacklist := blacklist.NewTokenBlacklist(redisClient)

	sender, err := initEmailSender(cfg)
	if err != nil {
		return err
	}

	validate := validator.NewValidator()

	hashConfig := hash.DefaultConfig
	hashConfig.Memory = cfg.Auth.Argon2Memory
	hashConfig.Iterations = cfg.Auth.Argon2Iterations
	hasher := hash.NewHasher(hashConfig)

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewDeviceSessionRepository(db)
	blogRepo := postgres.NewBlogRepository(db)
	postRepo := postgres.NewPostRepository(db)
	commentRepo := postgres.NewCommentRepository(db)

	// Initialize services
	emailManager := service.NewEmailManager(sender, &cfg.Email)
	userService := service.NewUserService(userRepo, hasher)
	sessionService := service.NewDeviceSessionService(sessionRepo)
	authService := service.NewAuthService(
		userRepo,
		userService,
		sessionService,
		emailManager,
		tokenService,
		tokenBlacklist,
		hasher,
		cfg.Auth.EnforceConfirmationExpiry,
	)
	blogService := service.NewBlogService(blogRepo, postRepo)
	postService := service.NewPostService(postRepo, blogRepo)
	commentService := service.NewCommentService(commentRepo, postRepo)
	testingService := service.NewTestingService(commentRepo, postRepo, blogRepo, sessionRepo, userRepo, tokenBlacklist)

	handlers := handler.Handlers{
		Auth:    handler.NewAuthHandler(authService, validate, cfg.Auth.SecureCookies),
		Devices: handler.NewSecurityDevicesHandler(sessionService),
		User:    handler.NewUserHandler(userService, validate),
		Blog:    handler.NewBlogHandler(blogService, validate),
		Post:    handler.NewPostHandler(postService, commentService, validate),
		Comment: handler.NewCommentHandler(commentService, validate),
		Testing: handler.NewTestingHandler(testingService),
		Health:  handler.NewHealthHandler(db, handler.PingerFunc(tokenBlacklist.Ping)),
	}

	app := fiber.New(fiber.Config{
		AppName:      "Blog Service",
		ErrorHandler: handler.ErrorHandler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	})

	// Setup global middlewares
	app.Use(requestid.New())
	app.Use(middleware.RecoveryMiddleware())
	app.Use(middleware.LoggerMiddleware())
	app.Use(middleware.CORSMiddleware(cfg.Server.CORSOrigins))

	handler.SetupRoutes(
		app,
		handlers,
		middleware.NewAuthGates(authService, validate),
		middleware.AdminAuth(cfg.Auth.AdminLogin, cfg.Auth.AdminPassword),
		middleware.RateLimit(cfg.Auth.RateLimitMax, cfg.Auth.RateLimitWindow),
	)

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		addr := fmt.Sprintf(":%s", cfg.Server.Port)
		slog.Info("server starting", "addr", addr, "environment", cfg.Server.Environment)
		serverErr <- app.Listen(addr)
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}
	slog.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// initDB initializes PostgreSQL database connection with retry logic
func initDB(cfg *config.Config) (*sqlx.DB, error) {
	dsn := cfg.Database.DSN()

	var db *sqlx.DB
	var err error

	maxRetries := 5
	retryInterval := 2 * time.Second

	for i := 0; i < maxRetries; i++ {
		db, err = sqlx.Connect("postgres", dsn)
		if err == nil {
			break
		}

		slog.Warn("failed to connect to database", "attempt", i+1, "max_attempts", maxRetries, "error", err)
		if i < maxRetries-1 {
			time.Sleep(retryInterval)
		}
	}

	if err != nil {
		return nil, fmt.Errorf("failed to connect to database after %d attempts: %w", maxRetries, err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	return db, nil
}

// initRedis initializes Redis client and verifies connection
func initRedis(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		if closeErr := client.Close(); closeErr != nil {
			slog.Error("error closing redis after ping failure", "error", closeErr)
		}
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}

	return client, nil
}

func initEmailSender(cfg *config.Config) (email.Sender, error) {
	if !cfg.Email.Enabled {
		slog.Info("email delivery disabled, set EMAIL_ENABLED=true to enable")
		return email.LogSender{}, nil
	}

	sender, err := email.NewResendSender(&email.Config{
		APIKey:    cfg.Email.APIKey,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize email sender: %w", err)
	}
	return sender, nil
}

// loadRSAKeys loads RSA private and public keys from files
func loadRSAKeys(cfg *config.Config) ([]byte, []byte, error) {
	privateKey, err := os.ReadFile(cfg.JWT.PrivateKeyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read private key file: %w", err)
	}

	publicKey, err := os.ReadFile(cfg.JWT.PublicKeyPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read public key file: %w", err)
	}

	if len(privateKey) == 0 {
		return nil, nil, fmt.Errorf("private key file is empty")
	}
	if len(publicKey) == 0 {
		return nil, nil, fmt.Errorf("public key file is empty")
	}

	return privateKey, publicKey, nil
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
