package trip

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewTripData_DerivedFields(t *testing.T) {
	tests := []struct {
		name        string
		start       time.Time
		wantMonth   int
		wantWeekday string
		wantDay     int
		wantHour    int
	}{
		{
			name:        "new year morning",
			start:       time.Date(2017, time.January, 1, 9, 7, 57, 0, time.UTC),
			wantMonth:   1,
			wantWeekday: "Sunday",
			wantDay:     1,
			wantHour:    9,
		},
		{
			name:        "june late night",
			start:       time.Date(2017, time.June, 30, 23, 59, 59, 0, time.UTC),
			wantMonth:   6,
			wantWeekday: "Friday",
			wantDay:     30,
			wantHour:    23,
		},
		{
			name:        "march midnight",
			start:       time.Date(2017, time.March, 6, 0, 0, 0, 0, time.UTC),
			wantMonth:   3,
			wantWeekday: "Monday",
			wantDay:     6,
			wantHour:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			td := NewTripData(tt.start, tt.start.Add(10*time.Minute), "A", "B", 600, "Subscriber")

			assert.Equal(t, tt.wantMonth, td.GetMonth())
			assert.Equal(t, tt.wantWeekday, td.GetWeekdayName())
			assert.Equal(t, tt.wantDay, td.GetDay())
			assert.Equal(t, tt.wantHour, td.GetHour())
			assert.Equal(t, tt.start.Weekday(), td.GetWeekday())
		})
	}
}

func TestTripData_Demographics(t *testing.T) {
	start := time.Date(2017, time.April, 2, 12, 0, 0, 0, time.UTC)
	td := NewTripData(start, start.Add(time.Minute), "A", "B", 60, "Customer")
	assert.False(t, td.HasBirthYear())
	assert.Empty(t, td.GetGender())

	year := 1989
	withDemographics := td.WithDemographics("Female", &year)
	year = 2001

	assert.True(t, withDemographics.HasBirthYear())
	birthYear, ok := withDemographics.GetBirthYear()
	assert.True(t, ok)
	assert.Equal(t, 1989, birthYear)
	assert.Equal(t, "Female", withDemographics.GetGender())
	assert.Equal(t, StationPair{Start: "A", End: "B"}, withDemographics.GetStationPair())

	// the original record is left untouched
	assert.False(t, td.HasBirthYear())
	assert.Empty(t, td.GetGender())
	_, ok = td.GetBirthYear()
	assert.False(t, ok)
}

func TestTripData_Getters(t *testing.T) {
	start := time.Date(2017, time.June, 23, 15, 9, 32, 0, time.UTC)
	td := NewTripData(start, start.Add(321*time.Second), "Wood St", "Damen Ave", 321, "Subscriber")

	assert.Equal(t, start, td.GetStartTime())
	assert.Equal(t, start.Add(321*time.Second), td.GetEndTime())
	assert.Equal(t, "Wood St", td.GetStartStation())
	assert.Equal(t, "Damen Ave", td.GetEndStation())
	assert.Equal(t, float64(321), td.GetDuration())
	assert.Equal(t, "Subscriber", td.GetUserType())
	assert.Equal(t, 6, td.GetMonth())
	assert.Equal(t, time.Friday, td.GetWeekday())
}
