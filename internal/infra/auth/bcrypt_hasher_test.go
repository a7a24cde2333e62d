package auth

import (
	"strings"
	"testing"

	"authsvc/internal/domain/service"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher_Hash(t *testing.T) {
	hasher := NewBcryptHasher()

	password := "pw123"
	hash, err := hasher.Hash(password)
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, password, hash)

	// The production work factor must not silently drop.
	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, DefaultBcryptCost, cost)

	ok, err := hasher.Check(password, hash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestBcryptHasher_HashIsSalted(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	first, err := hasher.Hash("same-secret")
	require.NoError(t, err)
	second, err := hasher.Hash("same-secret")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)
	password := "StrongPass123!"

	hash, err := hasher.Hash(password)
	require.NoError(t, err)

	tests := []struct {
		name      string
		candidate string
		want      bool
	}{
		{name: "correct password", candidate: password, want: true},
		{name: "wrong password", candidate: "WrongPassword123!", want: false},
		{name: "empty password", candidate: "", want: false},
		{name: "case differs", candidate: strings.ToLower(password), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ok, err := hasher.Check(tc.candidate, hash)
			require.NoError(t, err)
			assert.Equal(t, tc.want, ok)
		})
	}
}

func TestBcryptHasher_CheckMalformedHash(t *testing.T) {
	hasher := NewBcryptHasher()

	for _, hash := range []string{"", "invalid_hash", "pw123", "$2a$99$" + strings.Repeat("a", 53)} {
		ok, err := hasher.Check("pw123", hash)
		assert.False(t, ok)
		assert.True(t, errors.Is(err, service.ErrMalformedHash), "hash %q", hash)
	}
}

func TestBcryptHasher_PasswordTooLong(t *testing.T) {
	hasher := NewBcryptHasherWithCost(bcrypt.MinCost)

	_, err := hasher.Hash(strings.Repeat("x", 73))

	assert.True(t, errors.Is(err, service.ErrPasswordTooLong))
}

func TestBcryptHasher_WithCustomCost(t *testing.T) {
	customCost := 6 // Lower cost for faster testing
	hasher := NewBcryptHasherWithCost(customCost)

	hash, err := hasher.Hash("StrongPass123!")
	require.NoError(t, err)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, customCost, cost)
}
