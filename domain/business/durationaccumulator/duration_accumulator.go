package durationaccumulator

import (
	dataErrors "bikeshare/domain/errors"
)

const meanDurationMetric = "mean_trip_duration"

// DurationAccumulator struct that collects data about the duration of a set of trips.
// + Counter: counts the amount of trips collected
// + TotalDuration: sum of durations of the trips, in seconds
// + MinDuration: shortest duration collected, only meaningful when Counter > 0
// + MaxDuration: longest duration collected, only meaningful when Counter > 0
type DurationAccumulator struct {
	Counter       int     `json:"counter"`
	TotalDuration float64 `json:"total_duration"`
	MinDuration   float64 `json:"min_duration"`
	MaxDuration   float64 `json:"max_duration"`
}

func NewDurationAccumulator() *DurationAccumulator {
	return &DurationAccumulator{}
}

func (da *DurationAccumulator) UpdateAccumulator(duration float64) {
	if da.Counter == 0 || duration < da.MinDuration {
		da.MinDuration = duration
	}
	if da.Counter == 0 || duration > da.MaxDuration {
		da.MaxDuration = duration
	}
	da.Counter += 1
	da.TotalDuration += duration
}

// Merge returns a new accumulator with the data of both accumulators
func (da *DurationAccumulator) Merge(other *DurationAccumulator) *DurationAccumulator {
	if other.Counter == 0 {
		merged := *da
		return &merged
	}
	if da.Counter == 0 {
		merged := *other
		return &merged
	}

	merged := &DurationAccumulator{
		Counter:       da.Counter + other.Counter,
		TotalDuration: da.TotalDuration + other.TotalDuration,
		MinDuration:   da.MinDuration,
		MaxDuration:   da.MaxDuration,
	}
	if other.MinDuration < merged.MinDuration {
		merged.MinDuration = other.MinDuration
	}
	if other.MaxDuration > merged.MaxDuration {
		merged.MaxDuration = other.MaxDuration
	}
	return merged
}

// GetAverageDuration returns the mean duration. Fails with an InsufficientDataError when the counter is zero.
func (da *DurationAccumulator) GetAverageDuration() (float64, error) {
	if da.Counter == 0 {
		return 0, dataErrors.NewInsufficientDataError(meanDurationMetric)
	}
	return da.TotalDuration / float64(da.Counter), nil
}
