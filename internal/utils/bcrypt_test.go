package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashPassword(t *testing.T) {
	password := "password123!"
	hashedPassword, err := HashPassword(password)

	assert.NoError(t, err)
	assert.NotEmpty(t, hashedPassword)
	assert.NotEqual(t, password, hashedPassword)

	cost, err := bcrypt.Cost([]byte(hashedPassword))
	assert.NoError(t, err)
	assert.Equal(t, PasswordCost, cost)
}

func TestHashPassword_Salted(t *testing.T) {
	first, _ := HashPassword("password123!")
	second, _ := HashPassword("password123!")

	assert.NotEqual(t, first, second)
}

func TestCheckPasswordHash(t *testing.T) {
	password := "password123!"
	hashedPassword, _ := HashPassword(password)

	assert.True(t, CheckPasswordHash(password, hashedPassword))
	assert.False(t, CheckPasswordHash("wrongpassword", hashedPassword))
}

func TestCheckPasswordHash_InvalidHash(t *testing.T) {
	assert.False(t, CheckPasswordHash("password123", "invalidhash"))
}

func TestHashPassword_LongPasswords(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{"72 bytes", strings.Repeat("a", 70) + "1!"},
		{"73 bytes", strings.Repeat("a", 71) + "1!"},
		{"255 characters", strings.Repeat("a", 253) + "1!"},
		{"multi-byte runes", strings.Repeat("é", 60) + "1!"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashedPassword, err := HashPassword(tt.password)

			require.NoError(t, err)
			assert.True(t, CheckPasswordHash(tt.password, hashedPassword))
			assert.False(t, CheckPasswordHash("wrongpassword1!", hashedPassword))
		})
	}
}

func TestCheckPasswordHash_OnlyFirst72BytesCount(t *testing.T) {
	prefix := strings.Repeat("b", MaxPasswordBytes)
	hashedPassword, err := HashPassword(prefix + "tail-one")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash(prefix+"tail-two", hashedPassword))
	assert.True(t, CheckPasswordHash(prefix, hashedPassword))
	assert.False(t, CheckPasswordHash(prefix[:MaxPasswordBytes-1], hashedPassword))
}
