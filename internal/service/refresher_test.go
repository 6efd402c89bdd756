package service

import (
	"log/slog"
	"testing"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRefresher(t *testing.T) {
	svc := newTestService(&fakeReservoirSource{}, &fakeScheduleSource{}, nil, clockwork.NewFakeClock())

	t.Run("valid spec", func(t *testing.T) {
		r, err := NewRefresher(svc, "*/15 * * * *", slog.Default())
		require.NoError(t, err)
		assert.NotNil(t, r)
	})

	t.Run("invalid spec", func(t *testing.T) {
		_, err := NewRefresher(svc, "every quarter hour", slog.Default())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "every quarter hour")
	})
}
