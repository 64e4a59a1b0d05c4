package loader

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"bikeshare/domain/entities/dataset"
	"bikeshare/domain/entities/trip"
	dataErrors "bikeshare/domain/errors"
	"bikeshare/utils"
)

const (
	loaderType = "record-loader"
	nanStr     = "NaN"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Loader turns city sources into datasets. Parsed datasets are cached per city and shared
// between queries, callers must treat them as read-only.
type Loader struct {
	config Config
	group  singleflight.Group
	mu     sync.RWMutex
	cache  map[string]*dataset.Dataset
}

func NewLoader(config Config) *Loader {
	if config.TimeLayout == "" {
		config.TimeLayout = DefaultTimeLayout
	}
	cities := make(map[string]string, len(config.Cities))
	for city, file := range config.Cities {
		cities[utils.NormalizeInput(city)] = file
	}
	config.Cities = cities

	return &Loader{
		config: config,
		cache:  make(map[string]*dataset.Dataset),
	}
}

func (l *Loader) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", loaderType, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", loaderType, method, message)
}

// GetCities returns the known cities sorted by name
func (l *Loader) GetCities() []string {
	cities := make([]string, 0, len(l.config.Cities))
	for city := range l.config.Cities {
		cities = append(cities, city)
	}
	sort.Strings(cities)
	return cities
}

// Load returns the dataset of the city, reading its source only the first time it is requested
func (l *Loader) Load(ctx context.Context, city string) (*dataset.Dataset, error) {
	city = utils.NormalizeInput(city)

	l.mu.RLock()
	ds, ok := l.cache[city]
	l.mu.RUnlock()
	if ok {
		log.Debug(l.getLogMessage("Load", fmt.Sprintf("cache hit for %s", city), nil))
		return ds, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result, err, _ := l.group.Do(city, func() (interface{}, error) {
		return l.readSource(city)
	})
	if err != nil {
		log.Error(l.getLogMessage("Load", fmt.Sprintf("error loading %s", city), err))
		return nil, err
	}

	ds = result.(*dataset.Dataset)
	l.mu.Lock()
	l.cache[city] = ds
	l.mu.Unlock()
	return ds, nil
}

// Evict drops the cached dataset of the city, if any
func (l *Loader) Evict(city string) {
	l.mu.Lock()
	delete(l.cache, utils.NormalizeInput(city))
	l.mu.Unlock()
}

func (l *Loader) readSource(city string) (*dataset.Dataset, error) {
	filename, ok := l.config.Cities[city]
	if !ok {
		return nil, dataErrors.NewDataSourceError(city, dataErrors.ErrUnknownCity)
	}

	sourcePath := filepath.Join(l.config.DataDir, filename)
	sourceFile, err := os.Open(sourcePath)
	if err != nil {
		return nil, dataErrors.NewDataSourceError(city, fmt.Errorf("%w: %w", dataErrors.ErrUnreadableSource, err))
	}

	defer func(sourceFile *os.File) {
		err := sourceFile.Close()
		if err != nil {
			log.Error(l.getLogMessage("readSource", fmt.Sprintf("error closing %s", sourcePath), err))
		}
	}(sourceFile)

	start := time.Now()
	ds, err := l.Parse(city, sourceFile)
	if err != nil {
		return nil, err
	}

	log.Info(l.getLogMessage("readSource", fmt.Sprintf("loaded %v trips of %s from %s in %s", ds.Len(), city, sourcePath, time.Since(start)), nil))
	return ds, nil
}

// Parse reads a trips table and returns its dataset. Required columns must exist and hold a valid value in
// every row; gender and birth year columns are optional and their presence is recorded in the dataset schema.
func (l *Loader) Parse(city string, source io.Reader) (*dataset.Dataset, error) {
	city = utils.NormalizeInput(city)

	reader := bufio.NewReader(source)
	if prefix, err := reader.Peek(len(utf8BOM)); err == nil && string(prefix) == string(utf8BOM) {
		_, _ = reader.Discard(len(utf8BOM))
	}

	records, err := csv.NewReader(reader).ReadAll()
	if err != nil {
		return nil, dataErrors.NewDataSourceError(city, fmt.Errorf("%w: %w", dataErrors.ErrUnreadableSource, err))
	}
	if len(records) == 0 {
		return nil, dataErrors.NewDataSourceError(city, fmt.Errorf("%w: no header", dataErrors.ErrUnreadableSource))
	}

	df := loadFrame(records)
	if df.Err != nil {
		return nil, dataErrors.NewDataSourceError(city, fmt.Errorf("%w: %w", dataErrors.ErrUnreadableSource, df.Err))
	}

	table, err := newTripTable(city, df, l.config.Columns)
	if err != nil {
		return nil, err
	}

	trips := make([]*trip.TripData, 0, table.rows)
	blankDemographics := 0
	for row := 0; row < table.rows; row++ {
		tripData, blank, err := l.getTripData(city, table, row)
		if err != nil {
			log.Debug(l.getLogMessage("Parse", "invalid trip data", err))
			return nil, err
		}
		if blank {
			blankDemographics += 1
		}
		trips = append(trips, tripData)
	}

	if blankDemographics > 0 {
		log.Warn(l.getLogMessage("Parse", fmt.Sprintf("%v trips of %s have unknown gender or birth year", blankDemographics, city), nil))
	}

	return dataset.NewDataset(city, table.schema, trips), nil
}

// loadFrame builds a frame of string columns from the header and rows. A table with only the header
// gives a frame with its columns and no rows.
func loadFrame(records [][]string) dataframe.DataFrame {
	if len(records) > 1 {
		return dataframe.LoadRecords(
			records,
			dataframe.HasHeader(true),
			dataframe.DetectTypes(false),
			dataframe.DefaultType(series.String),
		)
	}

	columns := make([]series.Series, 0, len(records[0]))
	for _, name := range records[0] {
		columns = append(columns, series.New([]string{}, series.String, name))
	}
	return dataframe.New(columns...)
}

// getTripData builds the trip of the given row. blank is true when the source has a demographic column
// but the row left it empty.
func (l *Loader) getTripData(city string, table *tripTable, row int) (*trip.TripData, bool, error) {
	columns := l.config.Columns
	rowNumber := row + 1

	startTimeStr, err := table.required(table.startTime, row, columns.StartTime)
	if err != nil {
		return nil, false, err
	}
	startTime, err := time.Parse(l.config.TimeLayout, startTimeStr)
	if err != nil {
		return nil, false, dataErrors.NewRowError(city, rowNumber, columns.StartTime, dataErrors.ErrInvalidDate)
	}

	var endTime time.Time
	if endTimeStr := cellValue(table.endTime, row); endTimeStr != "" {
		endTime, err = time.Parse(l.config.TimeLayout, endTimeStr)
		if err != nil {
			return nil, false, dataErrors.NewRowError(city, rowNumber, columns.EndTime, dataErrors.ErrInvalidDate)
		}
	}

	durationStr, err := table.required(table.duration, row, columns.Duration)
	if err != nil {
		return nil, false, err
	}
	duration, err := strconv.ParseFloat(durationStr, 64)
	if err != nil || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return nil, false, dataErrors.NewRowError(city, rowNumber, columns.Duration, dataErrors.ErrInvalidDurationType)
	}
	if duration < 0.0 {
		return nil, false, dataErrors.NewRowError(city, rowNumber, columns.Duration, dataErrors.ErrNegativeDuration)
	}

	startStation, err := table.required(table.startStation, row, columns.StartStation)
	if err != nil {
		return nil, false, err
	}
	endStation, err := table.required(table.endStation, row, columns.EndStation)
	if err != nil {
		return nil, false, err
	}
	userType, err := table.required(table.userType, row, columns.UserType)
	if err != nil {
		return nil, false, err
	}

	tripData := trip.NewTripData(startTime, endTime, startStation, endStation, duration, userType)

	blank := false
	var gender string
	if table.schema.HasGender {
		gender = cellValue(table.gender, row)
		blank = gender == ""
	}

	var birthYear *int
	if table.schema.HasBirthYear {
		if birthYearStr := cellValue(table.birthYear, row); birthYearStr != "" {
			// years come as 1992 or 1992.0
			year, err := strconv.ParseFloat(birthYearStr, 64)
			if err != nil || year != math.Trunc(year) {
				return nil, false, dataErrors.NewRowError(city, rowNumber, columns.BirthYear, dataErrors.ErrInvalidBirthYearType)
			}
			yearInt := int(year)
			birthYear = &yearInt
		} else {
			blank = true
		}
	}

	return tripData.WithDemographics(gender, birthYear), blank, nil
}

// tripTable columns of a trips table, already resolved by header name
type tripTable struct {
	city         string
	rows         int
	schema       dataset.Schema
	startTime    []string
	endTime      []string
	duration     []string
	startStation []string
	endStation   []string
	userType     []string
	gender       []string
	birthYear    []string
}

func newTripTable(city string, df dataframe.DataFrame, columns Columns) (*tripTable, error) {
	headers := make(map[string]string)
	for _, name := range df.Names() {
		headers[utils.NormalizeInput(name)] = name
	}

	table := &tripTable{city: city, rows: df.Nrow()}

	required := []struct {
		column string
		target *[]string
	}{
		{column: columns.StartTime, target: &table.startTime},
		{column: columns.EndTime, target: &table.endTime},
		{column: columns.Duration, target: &table.duration},
		{column: columns.StartStation, target: &table.startStation},
		{column: columns.EndStation, target: &table.endStation},
		{column: columns.UserType, target: &table.userType},
	}
	for _, req := range required {
		name, ok := headers[utils.NormalizeInput(req.column)]
		if !ok {
			return nil, &dataErrors.DataSourceError{City: city, Column: req.column, Err: dataErrors.ErrMissingColumn}
		}
		*req.target = df.Col(name).Records()
	}

	if name, ok := headers[utils.NormalizeInput(columns.Gender)]; ok {
		table.schema.HasGender = true
		table.gender = df.Col(name).Records()
	}
	if name, ok := headers[utils.NormalizeInput(columns.BirthYear)]; ok {
		table.schema.HasBirthYear = true
		table.birthYear = df.Col(name).Records()
	}

	return table, nil
}

// required returns the trimmed value of a required column, failing when it is empty
func (t *tripTable) required(values []string, row int, column string) (string, error) {
	value := cellValue(values, row)
	if value == "" {
		return "", dataErrors.NewRowError(t.city, row+1, column, dataErrors.ErrEmptyRequiredField)
	}
	return value, nil
}

// cellValue returns the trimmed value of the cell, empty for missing cells
func cellValue(values []string, row int) string {
	if row >= len(values) {
		return ""
	}
	value := strings.TrimSpace(values[row])
	if value == nanStr {
		return ""
	}
	return value
}
