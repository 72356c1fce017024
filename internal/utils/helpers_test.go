package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLimitOffset(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		limit, offset, err := ParseLimitOffset("", "")
		require.NoError(t, err)
		assert.Equal(t, 20, limit)
		assert.Equal(t, 0, offset)
	})

	t.Run("explicit values", func(t *testing.T) {
		limit, offset, err := ParseLimitOffset("5", "10")
		require.NoError(t, err)
		assert.Equal(t, 5, limit)
		assert.Equal(t, 10, offset)
	})

	t.Run("limit above maximum", func(t *testing.T) {
		_, _, err := ParseLimitOffset("51", "")
		assert.Error(t, err)
	})

	t.Run("negative offset", func(t *testing.T) {
		_, _, err := ParseLimitOffset("", "-1")
		assert.Error(t, err)
	})

	t.Run("non-numeric", func(t *testing.T) {
		_, _, err := ParseLimitOffset("abc", "")
		assert.Error(t, err)
	})
}

func TestSupplierCode(t *testing.T) {
	assert.Equal(t, "Supplier A", SupplierCode(0))
	assert.Equal(t, "Supplier B", SupplierCode(1))
	assert.Equal(t, "Supplier Z", SupplierCode(25))
	assert.Equal(t, "Supplier A1", SupplierCode(26))
	assert.Equal(t, "Supplier B1", SupplierCode(27))
}

func TestNewSequenceNo(t *testing.T) {
	now := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)

	seqNo := NewSequenceNo("D", now)
	require.True(t, strings.HasPrefix(seqNo, "D-20250829-"))
	assert.Len(t, seqNo, len("D-20250829-")+8)

	// Suffixes are random; two numbers from the same instant must differ.
	assert.NotEqual(t, seqNo, NewSequenceNo("D", now))
}
