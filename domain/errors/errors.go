package errors

import (
	"errors"
	"fmt"
)

var (
	ErrDataSource       = errors.New("data source error")
	ErrInsufficientData = errors.New("insufficient data")

	ErrUnknownCity          = errors.New("unknown city")
	ErrUnreadableSource     = errors.New("unreadable source")
	ErrMissingColumn        = errors.New("missing required column")
	ErrEmptyRequiredField   = errors.New("empty required field")
	ErrInvalidDate          = errors.New("invalid date")
	ErrInvalidDurationType  = errors.New("invalid duration type")
	ErrNegativeDuration     = errors.New("negative trip duration")
	ErrInvalidBirthYearType = errors.New("invalid birth year type")
)

// DataSourceError is returned by the loader when a city source cannot be turned into a dataset.
// + City: city requested
// + Row: 1-indexed data row (header excluded) where the problem was found, 0 if not row related
// + Column: column involved, empty if not column related
// + Err: specific cause, one of the sentinels of this package or an I/O error
type DataSourceError struct {
	City   string
	Row    int
	Column string
	Err    error
}

func NewDataSourceError(city string, cause error) *DataSourceError {
	return &DataSourceError{City: city, Err: cause}
}

func NewRowError(city string, row int, column string, cause error) *DataSourceError {
	return &DataSourceError{City: city, Row: row, Column: column, Err: cause}
}

func (e *DataSourceError) Error() string {
	msg := fmt.Sprintf("%s [city: %s]", ErrDataSource, e.City)
	if e.Row > 0 {
		msg += fmt.Sprintf("[row: %v]", e.Row)
	}
	if e.Column != "" {
		msg += fmt.Sprintf("[column: %s]", e.Column)
	}
	return fmt.Sprintf("%s: %s", msg, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// Is makes every DataSourceError match ErrDataSource
func (e *DataSourceError) Is(target error) bool {
	return target == ErrDataSource
}

// InsufficientDataError is returned when a metric needs at least one record and got none
type InsufficientDataError struct {
	Metric string
}

func NewInsufficientDataError(metric string) *InsufficientDataError {
	return &InsufficientDataError{Metric: metric}
}

func (e *InsufficientDataError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInsufficientData, e.Metric)
}

func (e *InsufficientDataError) Unwrap() error {
	return ErrInsufficientData
}
