package helper

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("clinic2024ok")
	require.NoError(t, err)
	assert.NotEqual(t, "clinic2024ok", hash)

	assert.True(t, CheckPassword(hash, "clinic2024ok"))
	assert.False(t, CheckPassword(hash, "clinic2024no"))
	assert.False(t, CheckPassword("", "clinic2024ok"))
}

func TestIsWeakPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
		weak     bool
	}{
		{"太短", "a1b2c3", true},
		{"纯数字", "12345678", true},
		{"纯字母", "abcdefgh", true},
		{"字母加数字", "clinic2024", false},
		{"带符号也算", "clinic#2024", false},
		{"空串", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.weak, IsWeakPassword(tt.password))
		})
	}
}
