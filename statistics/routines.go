package statistics

import (
	"sort"

	"golang.org/x/sync/errgroup"

	"bikeshare/domain/business/durationaccumulator"
	"bikeshare/domain/business/tripcounter"
	"bikeshare/domain/entities/dataset"
	"bikeshare/domain/entities/trip"
	dataErrors "bikeshare/domain/errors"
)

// durationChunkSize amount of trips accumulated by each goroutine of DurationStats
const durationChunkSize = 4096

const (
	popularTimesMetric    = "popular_times"
	popularStationsMetric = "popular_stations"
	birthYearsMetric      = "birth_years"
)

// TimeStats returns the most frequent month, day of month and hour of the trips.
// Fails with an InsufficientDataError on an empty dataset.
func TimeStats(ds *dataset.Dataset) (*TimeReport, error) {
	if ds.IsEmpty() {
		return nil, dataErrors.NewInsufficientDataError(popularTimesMetric)
	}

	months := tripcounter.NewTripCounter[int]()
	days := tripcounter.NewTripCounter[int]()
	hours := tripcounter.NewTripCounter[int]()
	for i := 0; i < ds.Len(); i++ {
		td := ds.At(i)
		months.UpdateCounter(td.GetMonth())
		days.UpdateCounter(td.GetDay())
		hours.UpdateCounter(td.GetHour())
	}

	report := &TimeReport{}
	report.PopularMonth, report.PopularMonthCount, _ = tripcounter.ModeLowest(months)
	report.PopularDay, report.PopularDayCount, _ = tripcounter.ModeLowest(days)
	report.PopularHour, report.PopularHourCount, _ = tripcounter.ModeLowest(hours)
	return report, nil
}

// StationStats returns the most used start station, end station and start-end combination.
// Fails with an InsufficientDataError on an empty dataset.
func StationStats(ds *dataset.Dataset) (*StationReport, error) {
	if ds.IsEmpty() {
		return nil, dataErrors.NewInsufficientDataError(popularStationsMetric)
	}

	startStations := tripcounter.NewTripCounter[string]()
	endStations := tripcounter.NewTripCounter[string]()
	stationPairs := tripcounter.NewTripCounter[trip.StationPair]()
	for i := 0; i < ds.Len(); i++ {
		td := ds.At(i)
		startStations.UpdateCounter(td.GetStartStation())
		endStations.UpdateCounter(td.GetEndStation())
		stationPairs.UpdateCounter(td.GetStationPair())
	}

	report := &StationReport{}
	report.PopularStartStation, report.PopularStartStationCount, _ = startStations.ModeFirstSeen()
	report.PopularEndStation, report.PopularEndStationCount, _ = endStations.ModeFirstSeen()
	report.PopularTrip, report.PopularTripCount, _ = stationPairs.ModeFirstSeen()
	return report, nil
}

// DurationStats returns the total, mean, shortest and longest trip duration. The trips are accumulated in
// chunks of durationChunkSize, concurrently, and the partial accumulators merged in chunk order. On an empty
// dataset the total is 0, the other metrics are left nil and the InsufficientDataError of the mean is
// returned along with the report.
func DurationStats(ds *dataset.Dataset) (*DurationReport, error) {
	chunks := make([]*durationaccumulator.DurationAccumulator, (ds.Len()+durationChunkSize-1)/durationChunkSize)

	var g errgroup.Group
	for idx := range chunks {
		idx := idx
		g.Go(func() error {
			accumulator := durationaccumulator.NewDurationAccumulator()
			for _, td := range ds.Batch(idx*durationChunkSize, durationChunkSize) {
				accumulator.UpdateAccumulator(td.GetDuration())
			}
			chunks[idx] = accumulator
			return nil
		})
	}
	_ = g.Wait()

	accumulator := durationaccumulator.NewDurationAccumulator()
	for _, chunk := range chunks {
		accumulator = accumulator.Merge(chunk)
	}

	report := &DurationReport{TotalDuration: accumulator.TotalDuration}
	mean, err := accumulator.GetAverageDuration()
	if err != nil {
		return report, err
	}
	minDuration, maxDuration := accumulator.MinDuration, accumulator.MaxDuration
	report.MeanDuration = &mean
	report.MinDuration = &minDuration
	report.MaxDuration = &maxDuration
	return report, nil
}

// UserStats returns the amount of trips per user type and, when the dataset schema has them, per gender
// and a birth year summary. Trips with unknown gender or birth year are left out of those metrics.
// When the schema has birth years but no trip has a known one, the summary is left nil and the
// InsufficientDataError is returned along with the report.
func UserStats(ds *dataset.Dataset) (*UserReport, error) {
	schema := ds.GetSchema()

	userTypes := tripcounter.NewTripCounter[string]()
	genders := tripcounter.NewTripCounter[string]()
	var birthYears []int
	for i := 0; i < ds.Len(); i++ {
		td := ds.At(i)
		userTypes.UpdateCounter(td.GetUserType())
		if schema.HasGender && td.GetGender() != "" {
			genders.UpdateCounter(td.GetGender())
		}
		if year, ok := td.GetBirthYear(); schema.HasBirthYear && ok {
			birthYears = append(birthYears, year)
		}
	}

	report := &UserReport{UserTypes: userTypes.Counts()}
	if schema.HasGender {
		report.Genders = genders.Counts()
	}

	if !schema.HasBirthYear {
		return report, nil
	}
	if len(birthYears) == 0 {
		return report, dataErrors.NewInsufficientDataError(birthYearsMetric)
	}

	sort.Ints(birthYears)
	report.BirthYears = &BirthYearReport{
		Earliest:   birthYears[0],
		MostRecent: birthYears[len(birthYears)-1],
		Typical:    median(birthYears),
	}
	return report, nil
}

// median of a sorted, non-empty slice
func median(sorted []int) float64 {
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return float64(sorted[mid])
	}
	return float64(sorted[mid-1]+sorted[mid]) / 2
}
