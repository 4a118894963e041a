package utils

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateOTP_FixedWidth(t *testing.T) {
	re := regexp.MustCompile(`^\d{6}$`)
	seen := map[string]bool{}

	for i := 0; i < 200; i++ {
		code, err := GenerateOTP()
		require.NoError(t, err)
		assert.Regexp(t, re, code, "code must always be six digits, leading zeros preserved")
		seen[code] = true
	}

	// 200 одинаковых кодов подряд — практически невозможно
	assert.Greater(t, len(seen), 1)
}
