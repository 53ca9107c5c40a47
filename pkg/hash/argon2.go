package hash

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

var (
	ErrInvalidHash         = errors.New("invalid hash format")
	ErrInvalidSalt         = errors.New("invalid salt")
	ErrIncompatibleVersion = errors.New("incompatible argon2 version")
)

type Argon2Config struct {
	Memory      uint32
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

var DefaultConfig = Argon2Config{
	Memory:      64 * 1024, // 64 MB
	Iterations:  3,
	Parallelism: 2,
	SaltLength:  16,
	KeyLength:   32,
}

// Hasher derives password digests from a salt stored alongside the user
type Hasher struct {
	cfg Argon2Config
}

func NewHasher(cfg Argon2Config) *Hasher {
	return &Hasher{cfg: cfg}
}

// GenerateSalt returns a fresh random salt, base64 encoded
func (h *Hasher) GenerateSalt() (string, error) {
	salt := make([]byte, h.cfg.SaltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	return base64.RawStdEncoding.EncodeToString(salt), nil
}

// Hash is deterministic for a given password and salt.
// Format: $argon2id$v=19$m=65536,t=3,p=2$<hash>
func (h *Hasher) Hash(password, salt string) (string, error) {
	rawSalt, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil || len(rawSalt) == 0 {
		return "", ErrInvalidSalt
	}

	key := argon2.IDKey([]byte(password), rawSalt, h.cfg.Iterations, h.cfg.Memory, h.cfg.Parallelism, h.cfg.KeyLength)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s",
		argon2.Version, h.cfg.Memory, h.cfg.Iterations, h.cfg.Parallelism,
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

// Verify recomputes the digest with the parameters encoded in encodedHash
func (h *Hasher) Verify(password, salt, encodedHash string) (bool, error) {
	cfg, key, err := decodeHash(encodedHash)
	if err != nil {
		return false, err
	}

	rawSalt, err := base64.RawStdEncoding.DecodeString(salt)
	if err != nil || len(rawSalt) == 0 {
		return false, ErrInvalidSalt
	}

	otherKey := argon2.IDKey([]byte(password), rawSalt, cfg.Iterations, cfg.Memory, cfg.Parallelism, cfg.KeyLength)

	return subtle.ConstantTimeCompare(key, otherKey) == 1, nil
}

func decodeHash(encodedHash string) (*Argon2Config, []byte, error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 5 {
		return nil, nil, ErrInvalidHash
	}

	if parts[1] != "argon2id" {
		return nil, nil, ErrInvalidHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, err
	}

	if version != argon2.Version {
		return nil, nil, ErrIncompatibleVersion
	}

	cfg := &Argon2Config{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &cfg.Memory, &cfg.Iterations, &cfg.Parallelism); err != nil {
		return nil, nil, err
	}

	key, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, err
	}
	cfg.KeyLength = uint32(len(key))

	return cfg, key, nil
}
