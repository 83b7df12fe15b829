package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePhoneNumber(t *testing.T) {
	cases := map[string]string{
		"9876543210":      "9876543210",
		"+91 98765 43210": "9876543210",
		"919876543210":    "9876543210",
		"09876543210":     "9876543210",
		"(987) 654-3210":  "9876543210",
		"98765":           "98765",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizePhoneNumber(in), in)
	}
}

func TestValidatePhoneNumber(t *testing.T) {
	assert.True(t, ValidatePhoneNumber("9876543210"))
	assert.True(t, ValidatePhoneNumber("+91-98765-43210"))
	assert.False(t, ValidatePhoneNumber("98765"))
	assert.False(t, ValidatePhoneNumber("98765432101234"))
	assert.Equal(t, "+91 98765 43210", DisplayPhoneNumber("9876543210"))
}
