package trip

import (
	"time"
)

// TripData struct that contains one ride observation. It is immutable once built: calendar fields are
// derived from the start time in NewTripData and every field is read through its getter.
// + startTime: moment in which the trip begins
// + endTime: moment in which the trip ends, zero if the source left it blank
// + startStation: name of the station in which the trip begins
// + endStation: name of the station in which the trip ends
// + duration: duration of the trip in seconds
// + userType: category of the user (Subscriber, Customer, ...)
// + gender: gender of the user, empty if unknown or if the source has no gender column
// + birthYear: birth year of the user, nil if unknown or if the source has no birth year column
type TripData struct {
	startTime    time.Time
	endTime      time.Time
	startStation string
	endStation   string
	duration     float64
	userType     string
	gender       string
	birthYear    *int

	month   int
	weekday time.Weekday
	day     int
	hour    int
}

func NewTripData(startTime time.Time, endTime time.Time, startStation string, endStation string, duration float64, userType string) *TripData {
	return &TripData{
		startTime:    startTime,
		endTime:      endTime,
		startStation: startStation,
		endStation:   endStation,
		duration:     duration,
		userType:     userType,
		month:        int(startTime.Month()),
		weekday:      startTime.Weekday(),
		day:          startTime.Day(),
		hour:         startTime.Hour(),
	}
}

// WithDemographics returns a copy of the trip with the optional user fields set
func (td *TripData) WithDemographics(gender string, birthYear *int) *TripData {
	withDemographics := *td
	withDemographics.gender = gender
	if birthYear != nil {
		year := *birthYear
		withDemographics.birthYear = &year
	} else {
		withDemographics.birthYear = nil
	}
	return &withDemographics
}

func (td *TripData) GetStartTime() time.Time {
	return td.startTime
}

// GetEndTime returns the end time of the trip, zero if unknown
func (td *TripData) GetEndTime() time.Time {
	return td.endTime
}

func (td *TripData) GetStartStation() string {
	return td.startStation
}

func (td *TripData) GetEndStation() string {
	return td.endStation
}

// GetDuration returns the duration of the trip in seconds
func (td *TripData) GetDuration() float64 {
	return td.duration
}

func (td *TripData) GetUserType() string {
	return td.userType
}

// GetGender returns the gender of the user, empty if unknown
func (td *TripData) GetGender() string {
	return td.gender
}

// GetBirthYear returns the birth year of the user. ok is false when it is unknown.
func (td *TripData) GetBirthYear() (year int, ok bool) {
	if td.birthYear == nil {
		return 0, false
	}
	return *td.birthYear, true
}

// GetMonth returns the month of the start time, 1 for January
func (td *TripData) GetMonth() int {
	return td.month
}

func (td *TripData) GetWeekday() time.Weekday {
	return td.weekday
}

// GetWeekdayName returns the weekday with the capitalization stored in the dataset, e.g. Monday
func (td *TripData) GetWeekdayName() string {
	return td.weekday.String()
}

// GetDay returns the day of the month of the start time
func (td *TripData) GetDay() int {
	return td.day
}

func (td *TripData) GetHour() int {
	return td.hour
}

// GetStationPair returns the start and end station of the trip as a single category
func (td *TripData) GetStationPair() StationPair {
	return StationPair{Start: td.startStation, End: td.endStation}
}

// HasBirthYear returns true if the trip has a known birth year
func (td *TripData) HasBirthYear() bool {
	return td.birthYear != nil
}

// StationPair joint category of a start and an end station
type StationPair struct {
	Start string `json:"start"`
	End   string `json:"end"`
}
