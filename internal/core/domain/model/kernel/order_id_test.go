package kernel_test

import (
	"regexp"
	"strconv"
	"strings"
	"testing"
	"time"

	"ordersim/internal/core/domain/model/kernel"
	"ordersim/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustStore(t *testing.T, name, prefix string) kernel.Store {
	t.Helper()
	store, err := kernel.NewStore(name, prefix, "")
	require.NoError(t, err)
	return store
}

func TestGenerateOrderID(t *testing.T) {
	store := mustStore(t, "kapruka", "GLW")
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("should produce prefix, millis, and hex suffix", func(t *testing.T) {
		id := kernel.GenerateOrderID(store, now)

		parts := strings.SplitN(id.String(), "-", 3)
		require.Len(t, parts, 3)
		assert.Equal(t, "GLW", parts[0])
		assert.Equal(t, strconv.FormatInt(now.UnixMilli(), 10), parts[1])
		assert.Regexp(t, regexp.MustCompile(`^[0-9A-F]{8}$`), parts[2])
		require.NoError(t, id.Validate())
	})

	t.Run("should disambiguate identical timestamps", func(t *testing.T) {
		seen := make(map[string]bool)
		for range 100 {
			id := kernel.GenerateOrderID(store, now)
			assert.False(t, seen[id.String()], "generated duplicate %s", id)
			seen[id.String()] = true
		}
	})
}

func TestOrderIDFromString(t *testing.T) {
	t.Run("should accept a non-empty identifier", func(t *testing.T) {
		id, err := kernel.OrderIDFromString("GLW-1756600000000-3FA85F64")

		require.NoError(t, err)
		assert.Equal(t, "GLW-1756600000000-3FA85F64", id.String())
	})

	t.Run("should trim surrounding whitespace", func(t *testing.T) {
		id, err := kernel.OrderIDFromString("  OLK-1-AB  ")

		require.NoError(t, err)
		assert.Equal(t, "OLK-1-AB", id.String())
	})

	t.Run("should reject empty input", func(t *testing.T) {
		_, err := kernel.OrderIDFromString("   ")

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestOrderID_IsEqual(t *testing.T) {
	a, err := kernel.OrderIDFromString("GLW-1-AA")
	require.NoError(t, err)
	b, err := kernel.OrderIDFromString("GLW-1-AA")
	require.NoError(t, err)
	c, err := kernel.OrderIDFromString("GLW-1-AB")
	require.NoError(t, err)

	assert.True(t, a.IsEqual(b))
	assert.False(t, a.IsEqual(c))
}

func TestOrderID_Validate(t *testing.T) {
	t.Run("zero value fails validation", func(t *testing.T) {
		var id kernel.OrderID

		err := id.Validate()

		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}
