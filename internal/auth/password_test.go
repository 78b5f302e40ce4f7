package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_RoundTrip(t *testing.T) {
	t.Parallel()

	hash, salt, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.Len(t, salt, saltBytes*2)
	assert.Len(t, hash, keyLength*2)

	assert.True(t, VerifyPassword("s3cret-pass", hash, salt))
	assert.False(t, VerifyPassword("wrong-pass", hash, salt))
}

func TestHashPassword_FreshSalt(t *testing.T) {
	t.Parallel()

	hash1, salt1, err := HashPassword("same")
	require.NoError(t, err)
	hash2, salt2, err := HashPassword("same")
	require.NoError(t, err)

	assert.NotEqual(t, salt1, salt2)
	assert.NotEqual(t, hash1, hash2)
}

func TestVerifyPassword_EmptyCredentials(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		hash string
		salt string
	}{
		{name: "empty hash", hash: "", salt: "abcd"},
		{name: "empty salt", hash: "abcd", salt: ""},
		{name: "both empty"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.False(t, VerifyPassword("anything", tt.hash, tt.salt))
		})
	}
}
