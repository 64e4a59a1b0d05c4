package filter

import (
	"fmt"

	log "github.com/sirupsen/logrus"

	"bikeshare/domain/entities/criteria"
	"bikeshare/domain/entities/dataset"
	"bikeshare/domain/entities/trip"
)

const filterType = "criteria-filter"

// Apply returns the trips of the dataset that match the month and weekday of the criteria, keeping the
// source order. The input dataset is not modified and an empty result is valid.
func Apply(ds *dataset.Dataset, c criteria.Criteria) *dataset.Dataset {
	keepMonth := ByMonth(c.GetMonth())
	keepWeekday := ByWeekday(c.GetWeekday())

	filtered := ds.Restrict(func(td *trip.TripData) bool {
		return keepMonth(td) && keepWeekday(td)
	})

	log.Debugf("[component: %s][method: Apply][status: OK] %s: kept %v of %v trips of %s", filterType, c, filtered.Len(), ds.Len(), ds.GetCity())
	return filtered
}

// ByMonth returns the month predicate. AllMonths keeps every trip.
func ByMonth(month criteria.Month) func(*trip.TripData) bool {
	if !month.IsValid() {
		panic(fmt.Sprintf("[%s] month selector out of range: %d", filterType, month.Number()))
	}
	if month.IsAll() {
		return keepAll
	}
	target := month.Number()
	return func(td *trip.TripData) bool {
		return td.GetMonth() == target
	}
}

// ByWeekday returns the weekday predicate. AllDays keeps every trip.
func ByWeekday(weekday criteria.Weekday) func(*trip.TripData) bool {
	if !weekday.IsValid() {
		panic(fmt.Sprintf("[%s] weekday selector out of range: %d", filterType, int(weekday)))
	}
	if weekday.IsAll() {
		return keepAll
	}
	target := weekday.TimeWeekday()
	return func(td *trip.TripData) bool {
		return td.GetWeekday() == target
	}
}

func keepAll(*trip.TripData) bool {
	return true
}
