package main

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"

	"alpaca-gateway/server"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrintPasswordHash(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, printPasswordHash(strings.NewReader("s3cret\n"), &out))

	hash := strings.TrimSpace(out.String())
	auth, err := server.NewBasicAuth("observer", hash)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	req.SetBasicAuth("observer", "s3cret")
	assert.True(t, auth.Authorized(req))
}

func TestPrintPasswordHashRejectsEmpty(t *testing.T) {
	var out bytes.Buffer
	assert.Error(t, printPasswordHash(strings.NewReader("\n"), &out))
	assert.Empty(t, out.String())
}
