package service

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/andressep95/blog-service/internal/config"
	"github.com/andressep95/blog-service/internal/testutil"
	"github.com/andressep95/blog-service/pkg/blacklist"
	"github.com/andressep95/blog-service/pkg/hash"
	"github.com/andressep95/blog-service/pkg/jwt"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

var testHasherConfig = hash.Argon2Config{
	Memory:      1024,
	Iterations:  1,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

type fixture struct {
	users     *testutil.UserRepository
	sessions  *testutil.DeviceSessionRepository
	mail      *testutil.EmailSender
	redis     *miniredis.Miniredis
	blacklist *blacklist.TokenBlacklist
	tokens    *jwt.TokenService
	userSvc   *UserService
	sessSvc   *DeviceSessionService
	auth      *AuthService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	priv, pub := testutil.GenerateRSAKeys(t)
	tokens, err := jwt.NewTokenService(priv, pub, 10*time.Minute, 20*time.Minute, "blog-service")
	require.NoError(t, err)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	f := &fixture{
		users:     testutil.NewUserRepository(),
		sessions:  testutil.NewDeviceSessionRepository(),
		mail:      &testutil.EmailSender{},
		redis:     mr,
		blacklist: blacklist.NewTokenBlacklist(rdb),
		tokens:    tokens,
	}

	hasher := hash.NewHasher(testHasherConfig)
	emails := NewEmailManager(f.mail, &config.EmailConfig{
		FromEmail:       "noreply@blog.dev",
		FromName:        "Blog",
		ConfirmationURL: "https://somesite.com/confirm-email",
		RecoveryURL:     "https://somesite.com/password-recovery",
	})

	f.userSvc = NewUserService(f.users, hasher)
	f.sessSvc = NewDeviceSessionService(f.sessions)
	f.auth = NewAuthService(f.users, f.userSvc, f.sessSvc, emails, tokens, f.blacklist, hasher, false)

	return f
}
