package stats_test

import (
	"testing"

	"dispatch/internal/core/domain/model/stats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegionStat(t *testing.T) {
	t.Run("first sample initializes the average", func(t *testing.T) {
		s, err := stats.NewRegionStat(7, 1, 1800)

		require.NoError(t, err)
		require.NoError(t, s.Validate())
		assert.Equal(t, int64(7), s.Courier())
		assert.Equal(t, 1, s.Region())
		assert.Equal(t, 1800.0, s.AverageSeconds())
	})

	t.Run("rejects invalid parameters", func(t *testing.T) {
		_, err := stats.NewRegionStat(0, 1, 1800)
		require.Error(t, err)

		_, err = stats.NewRegionStat(7, -1, 1800)
		require.Error(t, err)

		_, err = stats.NewRegionStat(7, 1, -1)
		require.Error(t, err)
	})
}

func TestRegionStat_Observe(t *testing.T) {
	t.Run("blends with a fixed two-term average", func(t *testing.T) {
		s, err := stats.NewRegionStat(7, 1, 1000)
		require.NoError(t, err)

		require.NoError(t, s.Observe(2000))
		assert.Equal(t, 1500.0, s.AverageSeconds())

		// Not a cumulative mean: a third sample halves against the previous
		// blend, not the full history.
		require.NoError(t, s.Observe(500))
		assert.Equal(t, 1000.0, s.AverageSeconds())
	})

	t.Run("rejects negative samples", func(t *testing.T) {
		s, err := stats.NewRegionStat(7, 1, 1000)
		require.NoError(t, err)

		require.Error(t, s.Observe(-1))
		assert.Equal(t, 1000.0, s.AverageSeconds())
	})
}
