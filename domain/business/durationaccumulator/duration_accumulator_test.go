package durationaccumulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dataErrors "bikeshare/domain/errors"
)

func TestDurationAccumulator_Empty(t *testing.T) {
	da := NewDurationAccumulator()

	_, err := da.GetAverageDuration()
	assert.ErrorIs(t, err, dataErrors.ErrInsufficientData)
	assert.Equal(t, float64(0), da.TotalDuration)
}

func TestDurationAccumulator_UpdateAccumulator(t *testing.T) {
	da := NewDurationAccumulator()
	for _, d := range []float64{300, 120.5, 900, 60} {
		da.UpdateAccumulator(d)
	}

	assert.Equal(t, 4, da.Counter)
	assert.InDelta(t, 1380.5, da.TotalDuration, 1e-9)
	assert.Equal(t, float64(60), da.MinDuration)
	assert.Equal(t, float64(900), da.MaxDuration)

	avg, err := da.GetAverageDuration()
	require.NoError(t, err)
	assert.InDelta(t, 345.125, avg, 1e-9)
	assert.GreaterOrEqual(t, avg, da.MinDuration)
	assert.LessOrEqual(t, avg, da.MaxDuration)
}

func TestDurationAccumulator_Merge(t *testing.T) {
	left := NewDurationAccumulator()
	left.UpdateAccumulator(100)
	left.UpdateAccumulator(200)

	right := NewDurationAccumulator()
	right.UpdateAccumulator(50)
	right.UpdateAccumulator(400)

	merged := left.Merge(right)
	assert.Equal(t, 4, merged.Counter)
	assert.Equal(t, float64(750), merged.TotalDuration)
	assert.Equal(t, float64(50), merged.MinDuration)
	assert.Equal(t, float64(400), merged.MaxDuration)

	withEmpty := left.Merge(NewDurationAccumulator())
	assert.Equal(t, *left, *withEmpty)

	fromEmpty := NewDurationAccumulator().Merge(right)
	assert.Equal(t, *right, *fromEmpty)
}
