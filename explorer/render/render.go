package render

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"bikeshare/domain/entities/dataset"
	"bikeshare/domain/entities/trip"
	"bikeshare/statistics"
)

const (
	greeting   = "Hello! Let's explore some US bikeshare data!"
	timeLayout = "2006-01-02 15:04:05"
)

var separator = strings.Repeat("-", 40)

var sectionTitles = map[statistics.Family]string{
	statistics.TimeFamily:     "Calculating The Most Frequent Times of Travel...",
	statistics.StationFamily:  "Calculating The Most Popular Stations and Trip...",
	statistics.DurationFamily: "Calculating Trip Duration...",
	statistics.UserFamily:     "Calculating User Stats...",
}

// Renderer writes reports and raw records as text
type Renderer struct {
	out io.Writer
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out}
}

func (r *Renderer) Greeting() {
	r.println(greeting)
}

func (r *Renderer) Separator() {
	r.println(separator)
}

// Report writes one section per statistic family followed by the time its routine took.
// Metrics that could not be computed are shown as not available along with the reason.
func (r *Renderer) Report(result *statistics.Result) {
	report := result.Report
	r.printf("Trips of %s (%s): %d\n", report.City, describeCriteria(report), report.Trips)

	for _, family := range statistics.Families() {
		r.printf("\n%s\n\n", sectionTitles[family])
		switch family {
		case statistics.TimeFamily:
			r.timeSection(report)
		case statistics.StationFamily:
			r.stationSection(report)
		case statistics.DurationFamily:
			r.durationSection(report)
		case statistics.UserFamily:
			r.userSection(report)
		}
		r.printf("\nThis took %s seconds.\n", formatSeconds(result.Elapsed[family]))
		r.Separator()
	}
}

func (r *Renderer) timeSection(report *statistics.Report) {
	if report.Time == nil {
		r.notAvailable("Most Frequent Times of Travel", report.Err(statistics.TimeFamily))
		return
	}
	r.printf("Most Popular Month: %d (%d trips)\n", report.Time.PopularMonth, report.Time.PopularMonthCount)
	r.printf("Most Popular Day: %d (%d trips)\n", report.Time.PopularDay, report.Time.PopularDayCount)
	r.printf("Most Popular Hour: %d (%d trips)\n", report.Time.PopularHour, report.Time.PopularHourCount)
}

func (r *Renderer) stationSection(report *statistics.Report) {
	if report.Station == nil {
		r.notAvailable("Most Popular Stations", report.Err(statistics.StationFamily))
		return
	}
	station := report.Station
	r.printf("Most commonly used start station: %s (%d trips)\n", station.PopularStartStation, station.PopularStartStationCount)
	r.printf("Most commonly used end station: %s (%d trips)\n", station.PopularEndStation, station.PopularEndStationCount)
	r.printf("The most commonly used combined start and end station: %s + %s (%d trips)\n",
		station.PopularTrip.Start, station.PopularTrip.End, station.PopularTripCount)
}

func (r *Renderer) durationSection(report *statistics.Report) {
	if report.Duration == nil {
		r.notAvailable("Trip Duration", report.Err(statistics.DurationFamily))
		return
	}
	r.printf("Total Travel Time: %s\n", formatFloat(report.Duration.TotalDuration))
	if report.Duration.MeanDuration == nil {
		r.notAvailable("Mean Travel Time", report.Err(statistics.DurationFamily))
		return
	}
	r.printf("Mean Travel Time: %s\n", formatFloat(*report.Duration.MeanDuration))
	if report.Duration.MinDuration != nil && report.Duration.MaxDuration != nil {
		r.printf("Shortest Travel Time: %s\n", formatFloat(*report.Duration.MinDuration))
		r.printf("Longest Travel Time: %s\n", formatFloat(*report.Duration.MaxDuration))
	}
}

func (r *Renderer) userSection(report *statistics.Report) {
	if report.User == nil {
		r.notAvailable("User Stats", report.Err(statistics.UserFamily))
		return
	}
	r.println("User types:")
	r.counts(report.User.UserTypes)

	if report.User.Genders != nil {
		r.println("Gender Summary:")
		r.counts(report.User.Genders)
	}

	if birthYears := report.User.BirthYears; birthYears != nil {
		r.printf("Earliest Birth Year: %d\n", birthYears.Earliest)
		r.printf("Most Recent Birth Year: %d\n", birthYears.MostRecent)
		r.printf("Most Common Birth Year: %s\n", formatFloat(birthYears.Typical))
	} else if err := report.Err(statistics.UserFamily); err != nil {
		r.notAvailable("Birth Year Summary", err)
	}
}

// counts writes the counters sorted by amount of trips, then by name
func (r *Renderer) counts(counters map[string]int) {
	if len(counters) == 0 {
		r.println("  none")
		return
	}
	keys := make([]string, 0, len(counters))
	for key := range counters {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counters[keys[i]] != counters[keys[j]] {
			return counters[keys[i]] > counters[keys[j]]
		}
		return keys[i] < keys[j]
	})
	for _, key := range keys {
		r.printf("  %s: %d\n", key, counters[key])
	}
}

func (r *Renderer) notAvailable(metric string, err error) {
	if err == nil {
		r.printf("%s: not available\n", metric)
		return
	}
	r.printf("%s: not available (%s)\n", metric, err.Error())
}

// Batch writes a page of raw records as a table. offset is the position of the first record in the dataset.
func (r *Renderer) Batch(trips []*trip.TripData, offset int, schema dataset.Schema) {
	w := tabwriter.NewWriter(r.out, 0, 0, 2, ' ', 0)

	header := []string{"", "Start Time", "End Time", "Trip Duration", "Start Station", "End Station", "User Type"}
	if schema.HasGender {
		header = append(header, "Gender")
	}
	if schema.HasBirthYear {
		header = append(header, "Birth Year")
	}
	_, _ = fmt.Fprintln(w, strings.Join(header, "\t"))

	for idx, td := range trips {
		row := []string{
			strconv.Itoa(offset + idx),
			td.GetStartTime().Format(timeLayout),
			formatTime(td.GetEndTime()),
			formatFloat(td.GetDuration()),
			td.GetStartStation(),
			td.GetEndStation(),
			td.GetUserType(),
		}
		if schema.HasGender {
			row = append(row, td.GetGender())
		}
		if schema.HasBirthYear {
			birthYear := ""
			if year, ok := td.GetBirthYear(); ok {
				birthYear = strconv.Itoa(year)
			}
			row = append(row, birthYear)
		}
		_, _ = fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	_ = w.Flush()
}

// EndOfDataset tells the user there are no more records to show
func (r *Renderer) EndOfDataset() {
	r.println("No more records to show.")
}

// Error writes a failure of the query
func (r *Renderer) Error(err error) {
	r.printf("Something went wrong: %s\n", err.Error())
}

func (r *Renderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

func (r *Renderer) println(message string) {
	_, _ = fmt.Fprintln(r.out, message)
}

func describeCriteria(report *statistics.Report) string {
	return fmt.Sprintf("month: %s, day: %s", report.Month, report.Weekday)
}

func formatSeconds(elapsed time.Duration) string {
	return strconv.FormatFloat(elapsed.Seconds(), 'f', -1, 64)
}

func formatFloat(value float64) string {
	return strconv.FormatFloat(value, 'f', -1, 64)
}

func formatTime(value time.Time) string {
	if value.IsZero() {
		return ""
	}
	return value.Format(timeLayout)
}
