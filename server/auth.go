package server

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Authorizer decides whether a request may be served.
type Authorizer interface {
	Authorized(r *http.Request) bool
}

// Challenger is an Authorizer that tells clients how to authenticate.
type Challenger interface {
	Challenge() string
}

// AllowAll authorizes every request.
type AllowAll struct{}

func (AllowAll) Authorized(*http.Request) bool { return true }

// Argon2id parameters for new hashes. Verification uses the parameters
// stored in the hash.
const (
	argonTime    = 3
	argonMemory  = 64 * 1024
	argonThreads = 1
	argonKeyLen  = 32
	argonSaltLen = 16
)

var ErrPasswordHash = errors.New("invalid argon2id password hash")

// HashPassword returns password as an Argon2id PHC string:
// $argon2id$v=19$m=65536,t=3,p=1$<salt>$<hash>
func HashPassword(password string) (string, error) {
	salt := make([]byte, argonSaltLen)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("generating salt: %w", err)
	}
	key := argon2.IDKey([]byte(password), salt, argonTime, argonMemory, argonThreads, argonKeyLen)
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version, argonMemory, argonTime, argonThreads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

type passwordHash struct {
	memory  uint32
	time    uint32
	threads uint8
	salt    []byte
	key     []byte
}

func parsePasswordHash(encoded string) (*passwordHash, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" {
		return nil, fmt.Errorf("%w: expected 6 $-separated fields", ErrPasswordHash)
	}
	if parts[1] != "argon2id" {
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrPasswordHash, parts[1])
	}
	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return nil, fmt.Errorf("%w: unsupported version %q", ErrPasswordHash, parts[2])
	}
	h := &passwordHash{}
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &h.memory, &h.time, &h.threads); err != nil {
		return nil, fmt.Errorf("%w: parameters: %v", ErrPasswordHash, err)
	}
	if h.time == 0 || h.threads == 0 {
		return nil, fmt.Errorf("%w: t and p must be positive", ErrPasswordHash)
	}
	var err error
	if h.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return nil, fmt.Errorf("%w: salt: %v", ErrPasswordHash, err)
	}
	if h.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(h.key) == 0 {
		return nil, fmt.Errorf("%w: key", ErrPasswordHash)
	}
	return h, nil
}

func (h *passwordHash) matches(password string) bool {
	candidate := argon2.IDKey([]byte(password), h.salt, h.time, h.memory, h.threads, uint32(len(h.key)))
	return subtle.ConstantTimeCompare(candidate, h.key) == 1
}

// BasicAuth authorizes requests whose HTTP basic credentials match a
// username and an Argon2id password hash.
type BasicAuth struct {
	user []byte
	hash *passwordHash
}

// NewBasicAuth returns a BasicAuth for username and a hash made by
// HashPassword.
func NewBasicAuth(username, encodedHash string) (*BasicAuth, error) {
	h, err := parsePasswordHash(encodedHash)
	if err != nil {
		return nil, err
	}
	return &BasicAuth{user: []byte(username), hash: h}, nil
}

func (a *BasicAuth) Authorized(r *http.Request) bool {
	user, pass, ok := r.BasicAuth()
	if !ok {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(user), a.user) == 1
	passOK := a.hash.matches(pass)
	return userOK && passOK
}

func (a *BasicAuth) Challenge() string { return `Basic realm="alpaca", charset="UTF-8"` }
