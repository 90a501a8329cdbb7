package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func basicRequest(user, pass string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/dome/0/azimuth", nil)
	r.SetBasicAuth(user, pass)
	return r
}

func TestHashPasswordFormat(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$m=65536,t=3,p=1$"), hash)

	again, err := HashPassword("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, hash, again, "salt must differ between hashes")
}

func TestBasicAuthorized(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	a, err := NewBasicAuth("observer", hash)
	require.NoError(t, err)

	assert.True(t, a.Authorized(basicRequest("observer", "s3cret")))
	assert.False(t, a.Authorized(basicRequest("observer", "S3cret")))
	assert.False(t, a.Authorized(basicRequest("admin", "s3cret")))
	assert.False(t, a.Authorized(basicRequest("", "")))
	assert.False(t, a.Authorized(httptest.NewRequest(http.MethodGet, "/", nil)))
}

func TestNewBasicAuthRejectsBadHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"plain text", "s3cret"},
		{"bcrypt", "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"},
		{"wrong version", "$argon2id$v=16$m=65536,t=3,p=1$c2FsdHNhbHRzYWx0$a2V5"},
		{"bad params", "$argon2id$v=19$m=x,t=3,p=1$c2FsdHNhbHRzYWx0$a2V5"},
		{"zero threads", "$argon2id$v=19$m=65536,t=3,p=0$c2FsdHNhbHRzYWx0$a2V5"},
		{"bad salt", "$argon2id$v=19$m=65536,t=3,p=1$!!!$a2V5"},
		{"empty key", "$argon2id$v=19$m=65536,t=3,p=1$c2FsdHNhbHRzYWx0$"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewBasicAuth("observer", tt.hash)
			assert.ErrorIs(t, err, ErrPasswordHash)
		})
	}
}
