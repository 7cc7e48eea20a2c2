package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("s3cret")
	require.NoError(t, err)
	require.NotEqual(t, "s3cret", hash)

	require.True(t, CheckPasswordHash("s3cret", hash))
	require.False(t, CheckPasswordHash("wrong", hash))
}

func TestCheckPasswordHashGarbage(t *testing.T) {
	require.False(t, CheckPasswordHash("anything", "not-a-bcrypt-hash"))
}
