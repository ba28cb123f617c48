package auth

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptHasher_GenerateSalt(t *testing.T) {
	h := NewBcryptHasher(4)
	hexRe := regexp.MustCompile(`^[0-9a-f]{64}$`)

	seen := make(map[string]bool)
	for i := 0; i < 5; i++ {
		salt, err := h.GenerateSalt()
		require.NoError(t, err)
		assert.Regexp(t, hexRe, salt, "salt should be 64 hex characters")
		assert.False(t, seen[salt], "salt should not repeat")
		seen[salt] = true
	}
}

func TestBcryptHasher_Compare(t *testing.T) {
	h := NewBcryptHasher(4)
	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	otherSalt, err := h.GenerateSalt()
	require.NoError(t, err)
	longPassword := strings.Repeat("x", 100)

	hash, err := h.Hash(salt, "correct-horse")
	require.NoError(t, err)
	longHash, err := h.Hash(salt, longPassword)
	require.NoError(t, err)

	tests := []struct {
		name     string
		hash     string
		salt     string
		password string
		wantErr  bool
	}{
		{"matching password", hash, salt, "correct-horse", false},
		{"wrong password", hash, salt, "battery-staple", true},
		{"wrong salt", hash, otherSalt, "correct-horse", true},
		{"long password", longHash, salt, longPassword, false},
		{"long password differing past byte 72", longHash, salt, longPassword[:99] + "y", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := h.Compare(tt.hash, tt.salt, tt.password)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}
