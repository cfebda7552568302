package codes

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Format(t *testing.T) {
	for i := 0; i < 100; i++ {
		code, err := New()
		require.NoError(t, err)
		require.Len(t, code, Length)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit %q", code, r)
		}
	}
}

func TestNew_Varies(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		code, err := New()
		require.NoError(t, err)
		seen[code] = true
	}

	// 50 draws from a million-value space should essentially never all
	// collide down to a handful of values.
	assert.Greater(t, len(seen), 10)
}
