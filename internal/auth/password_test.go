package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialsVerifyPlain(t *testing.T) {
	c := Credentials{Username: "admin", Password: "s3cret"}
	assert.True(t, c.Verify("admin", "s3cret"))
	assert.False(t, c.Verify("admin", "wrong"))
	assert.False(t, c.Verify("other", "s3cret"))
}

func TestCredentialsVerifyHash(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)

	c := Credentials{Username: "admin", Password: "ignored", PasswordHash: hash}
	assert.True(t, c.Verify("admin", "s3cret"))
	assert.False(t, c.Verify("admin", "ignored"))
}

func TestCredentialsNotConfigured(t *testing.T) {
	c := Credentials{Username: "admin"}
	assert.False(t, c.Configured())
	assert.False(t, c.Verify("admin", ""))
}
