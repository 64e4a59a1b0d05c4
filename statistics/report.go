package statistics

import (
	"encoding/json"

	"bikeshare/domain/entities/trip"
)

// Family identifies one of the four statistic routines
type Family string

const (
	TimeFamily     Family = "time"
	StationFamily  Family = "station"
	DurationFamily Family = "duration"
	UserFamily     Family = "user"
)

// Families returns the statistic families in report order
func Families() []Family {
	return []Family{TimeFamily, StationFamily, DurationFamily, UserFamily}
}

// TimeReport most frequent times of travel. Ties are won by the lowest value.
type TimeReport struct {
	PopularMonth      int `json:"popular_month"`
	PopularMonthCount int `json:"popular_month_count"`
	PopularDay        int `json:"popular_day"`
	PopularDayCount   int `json:"popular_day_count"`
	PopularHour       int `json:"popular_hour"`
	PopularHourCount  int `json:"popular_hour_count"`
}

// StationReport most popular stations and trip. Ties are won by the first value found in source order.
type StationReport struct {
	PopularStartStation      string           `json:"popular_start_station"`
	PopularStartStationCount int              `json:"popular_start_station_count"`
	PopularEndStation        string           `json:"popular_end_station"`
	PopularEndStationCount   int              `json:"popular_end_station_count"`
	PopularTrip              trip.StationPair `json:"popular_trip"`
	PopularTripCount         int              `json:"popular_trip_count"`
}

// DurationReport total, mean, shortest and longest trip duration, in seconds. MeanDuration, MinDuration and
// MaxDuration are nil when there are no trips.
type DurationReport struct {
	TotalDuration float64  `json:"total_duration"`
	MeanDuration  *float64 `json:"mean_duration,omitempty"`
	MinDuration   *float64 `json:"min_duration,omitempty"`
	MaxDuration   *float64 `json:"max_duration,omitempty"`
}

// UserReport counts of users by category.
// + UserTypes: trips per user type, always present
// + Genders: trips per gender, nil when the source has no gender column
// + BirthYears: birth year summary, nil when the source has no birth year column or no trip has a known year
type UserReport struct {
	UserTypes  map[string]int   `json:"user_types"`
	Genders    map[string]int   `json:"genders,omitempty"`
	BirthYears *BirthYearReport `json:"birth_years,omitempty"`
}

// userReportJSON encoded form of UserReport. Genders is a pointer so an empty but present table is
// still encoded, as {}.
type userReportJSON struct {
	UserTypes  map[string]int   `json:"user_types"`
	Genders    *map[string]int  `json:"genders,omitempty"`
	BirthYears *BirthYearReport `json:"birth_years,omitempty"`
}

// MarshalJSON encodes genders whenever the table exists, even without entries
func (ur UserReport) MarshalJSON() ([]byte, error) {
	encoded := userReportJSON{
		UserTypes:  ur.UserTypes,
		BirthYears: ur.BirthYears,
	}
	if ur.Genders != nil {
		encoded.Genders = &ur.Genders
	}
	return json.Marshal(encoded)
}

// BirthYearReport earliest, most recent and typical birth year. Typical is the median, not the mode.
type BirthYearReport struct {
	Earliest   int     `json:"earliest"`
	MostRecent int     `json:"most_recent"`
	Typical    float64 `json:"typical"`
}

// Report statistics of a query, one section per family. A section is nil when its routine could not
// produce it; Failures holds the reason.
type Report struct {
	City     string           `json:"city"`
	Month    string           `json:"month"`
	Weekday  string           `json:"weekday"`
	Trips    int              `json:"trips"`
	Time     *TimeReport      `json:"time,omitempty"`
	Station  *StationReport   `json:"station,omitempty"`
	Duration *DurationReport  `json:"duration,omitempty"`
	User     *UserReport      `json:"user,omitempty"`
	Failures map[Family]error `json:"-"`
}

// Err returns the error of the routine of the family, nil if it succeeded
func (r *Report) Err(family Family) error {
	return r.Failures[family]
}

// FailureMessages returns the failures as text, keyed by family
func (r *Report) FailureMessages() map[string]string {
	if len(r.Failures) == 0 {
		return nil
	}
	messages := make(map[string]string, len(r.Failures))
	for family, err := range r.Failures {
		messages[string(family)] = err.Error()
	}
	return messages
}
