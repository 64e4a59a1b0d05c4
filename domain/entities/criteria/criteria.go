package criteria

import (
	"errors"
	"fmt"
	"time"

	"bikeshare/utils"
)

const allStr = "all"

var ErrInvalidSelector = errors.New("invalid selector")

// Month month selector. Only the first six months of the year are valid.
type Month int

const (
	AllMonths Month = iota
	January
	February
	March
	April
	May
	June
)

var monthNames = []string{"january", "february", "march", "april", "may", "june"}

// ParseMonth returns the selector for "all" or a month name between january and june. The name is trimmed and
// compared case-insensitively.
func ParseMonth(month string) (Month, error) {
	month = utils.NormalizeInput(month)
	if month == allStr {
		return AllMonths, nil
	}
	for idx, name := range monthNames {
		if name == month {
			return Month(idx + 1), nil
		}
	}
	return AllMonths, fmt.Errorf("%w: month %q", ErrInvalidSelector, month)
}

// MonthOptions returns the accepted month inputs in prompt order
func MonthOptions() []string {
	return append([]string{allStr}, monthNames...)
}

func (m Month) IsValid() bool {
	return m >= AllMonths && m <= June
}

func (m Month) IsAll() bool {
	return m == AllMonths
}

// Number returns the 1-indexed month of the year, 0 for AllMonths
func (m Month) Number() int {
	return int(m)
}

func (m Month) String() string {
	if m == AllMonths {
		return allStr
	}
	if !m.IsValid() {
		return fmt.Sprintf("Month(%d)", int(m))
	}
	return monthNames[m-1]
}

// Weekday weekday selector
type Weekday int

const (
	AllDays Weekday = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayNames = []string{"monday", "tuesday", "wednesday", "thursday", "friday", "saturday", "sunday"}

// ParseWeekday returns the selector for "all" or a weekday name. The name is trimmed and compared case-insensitively.
func ParseWeekday(weekday string) (Weekday, error) {
	weekday = utils.NormalizeInput(weekday)
	if weekday == allStr {
		return AllDays, nil
	}
	for idx, name := range weekdayNames {
		if name == weekday {
			return Weekday(idx + 1), nil
		}
	}
	return AllDays, fmt.Errorf("%w: weekday %q", ErrInvalidSelector, weekday)
}

// WeekdayOptions returns the accepted weekday inputs in prompt order
func WeekdayOptions() []string {
	return append([]string{allStr}, weekdayNames...)
}

func (w Weekday) IsValid() bool {
	return w >= AllDays && w <= Sunday
}

func (w Weekday) IsAll() bool {
	return w == AllDays
}

// TimeWeekday converts the selector to a time.Weekday. It must not be called on AllDays.
func (w Weekday) TimeWeekday() time.Weekday {
	return time.Weekday(int(w) % 7)
}

func (w Weekday) String() string {
	if w == AllDays {
		return allStr
	}
	if !w.IsValid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayNames[w-1]
}

// Criteria month and weekday restriction of a query
type Criteria struct {
	month   Month
	weekday Weekday
}

// NewCriteria builds the criteria of a query. Selectors are validated at the prompt, so receiving an
// out of range value here is a programming error and panics.
func NewCriteria(month Month, weekday Weekday) Criteria {
	if !month.IsValid() {
		panic(fmt.Sprintf("[criteria] month selector out of range: %d", int(month)))
	}
	if !weekday.IsValid() {
		panic(fmt.Sprintf("[criteria] weekday selector out of range: %d", int(weekday)))
	}
	return Criteria{month: month, weekday: weekday}
}

// All returns the criteria that keeps every record
func All() Criteria {
	return Criteria{month: AllMonths, weekday: AllDays}
}

func (c Criteria) GetMonth() Month {
	return c.month
}

func (c Criteria) GetWeekday() Weekday {
	return c.weekday
}

func (c Criteria) String() string {
	return fmt.Sprintf("month: %s, day: %s", c.month, c.weekday)
}
