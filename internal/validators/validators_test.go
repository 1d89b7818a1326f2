package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhone(t *testing.T) {
	tests := map[string]string{
		"+359 888 123 456":  "+359888123456",
		"(0888) 12-34.56":   "0888123456",
		"  0888123456  ":    "0888123456",
		"+359\t888-123-456": "+359888123456",
	}

	for in, want := range tests {
		assert.Equal(t, want, NormalizePhone(in), in)
	}
}

func TestIsPhoneValid(t *testing.T) {
	assert.True(t, IsPhoneValid("+359888123456"))
	assert.True(t, IsPhoneValid("0888123456"))
	assert.False(t, IsPhoneValid("12345"))
	assert.False(t, IsPhoneValid("+35988812345678901"))
	assert.False(t, IsPhoneValid("0888abc456"))
	assert.False(t, IsPhoneValid(""))
}

func TestIsEmailFormatValid(t *testing.T) {
	assert.True(t, IsEmailFormatValid("ivan@example.com"))
	assert.False(t, IsEmailFormatValid("ivan@"))
	assert.False(t, IsEmailFormatValid(""))
}
