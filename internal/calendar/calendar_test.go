package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDateTime(t *testing.T) {
	assert.Equal(t, "2026-09-12T10:00:00", LocalDateTime("2026-09-12", "10:00"))
	assert.Equal(t, "2026-12-31T23:45:00", LocalDateTime("2026-12-31", "23:45"))
}

func TestDisabledProvider(t *testing.T) {
	provider := NewDisabledProvider()

	assert.False(t, provider.Enabled())

	_, err := provider.Insert(context.Background(), &Booking{Summary: "x"})
	require.Error(t, err)

	err = provider.Patch(context.Background(), "cal-1", &Booking{Summary: "x"})
	require.Error(t, err)

	_, err = provider.List(context.Background(), time.Now(), time.Now().AddDate(0, 0, 7), 10)
	require.Error(t, err)
}
