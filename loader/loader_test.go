package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dataErrors "bikeshare/domain/errors"
)

const chicagoCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type,Gender,Birth Year
1423854,2017-06-23 15:09:32,2017-06-23 15:14:53,321,Wood St & Hubbard St,Damen Ave & Chicago Ave,Subscriber,Male,1992.0
955915,2017-05-25 18:19:03,2017-05-25 18:45:53,1610,Theater on the Lake,Sheffield Ave & Waveland Ave,Subscriber,Female,1992.0
9031,2017-01-04 08:27:49,2017-01-04 08:34:45,416,May St & Taylor St,Wood St & Taylor St,Subscriber,Male,1981.0
304487,2017-03-06 13:49:38,2017-03-06 13:55:28,350,Christiana Ave & Lawrence Ave,St. Louis Ave & Balmoral Ave,Customer,,
`

const washingtonCSV = `,Start Time,End Time,Trip Duration,Start Station,End Station,User Type
1621326,2017-06-21 08:36:34,2017-06-21 08:44:43,489.066,14th & Belmont St NW,15th & K St NW,Subscriber
482740,2017-03-11 10:40:00,2017-03-11 10:46:00,402.549,Yuma St & Tenley Circle NW,Connecticut Ave & Yuma St NW,Subscriber
`

const tripsHeader = "Start Time,End Time,Trip Duration,Start Station,End Station,User Type"

func newTestLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.DataDir = dir
	cfg.Cities = map[string]string{}
	for city, content := range files {
		filename := strings.ReplaceAll(city, " ", "_") + ".csv"
		require.NoError(t, os.WriteFile(filepath.Join(dir, filename), []byte(content), 0o600))
		cfg.Cities[city] = filename
	}
	return NewLoader(cfg)
}

func TestLoader_ParseFullSchema(t *testing.T) {
	l := NewLoader(DefaultConfig())

	ds, err := l.Parse("Chicago", strings.NewReader(chicagoCSV))
	require.NoError(t, err)

	require.Equal(t, 4, ds.Len())
	assert.Equal(t, "chicago", ds.GetCity())
	assert.True(t, ds.GetSchema().HasGender)
	assert.True(t, ds.GetSchema().HasBirthYear)

	first := ds.At(0)
	assert.Equal(t, time.Date(2017, time.June, 23, 15, 9, 32, 0, time.UTC), first.GetStartTime())
	assert.Equal(t, time.Date(2017, time.June, 23, 15, 14, 53, 0, time.UTC), first.GetEndTime())
	assert.Equal(t, 6, first.GetMonth())
	assert.Equal(t, "Friday", first.GetWeekdayName())
	assert.Equal(t, 23, first.GetDay())
	assert.Equal(t, 15, first.GetHour())
	assert.Equal(t, float64(321), first.GetDuration())
	assert.Equal(t, "Wood St & Hubbard St", first.GetStartStation())
	assert.Equal(t, "Damen Ave & Chicago Ave", first.GetEndStation())
	assert.Equal(t, "Subscriber", first.GetUserType())
	assert.Equal(t, "Male", first.GetGender())
	birthYear, ok := first.GetBirthYear()
	require.True(t, ok)
	assert.Equal(t, 1992, birthYear)

	last := ds.At(3)
	assert.Empty(t, last.GetGender())
	assert.False(t, last.HasBirthYear())
	assert.Equal(t, "Customer", last.GetUserType())
}

func TestLoader_ParseWithoutDemographics(t *testing.T) {
	l := NewLoader(DefaultConfig())

	ds, err := l.Parse("washington", strings.NewReader(washingtonCSV))
	require.NoError(t, err)

	require.Equal(t, 2, ds.Len())
	assert.False(t, ds.GetSchema().HasGender)
	assert.False(t, ds.GetSchema().HasBirthYear)
	assert.InDelta(t, 489.066, ds.At(0).GetDuration(), 1e-9)
	assert.False(t, ds.At(0).HasBirthYear())
}

func TestLoader_ParseCaseInsensitiveHeadersAndBOM(t *testing.T) {
	content := "\xEF\xBB\xBF start time ,END TIME,trip duration,Start station,End Station,user type,GENDER\n" +
		"2017-02-01 07:00:00,2017-02-01 07:10:00,600,A,B,Subscriber,Female\n"
	l := NewLoader(DefaultConfig())

	ds, err := l.Parse("chicago", strings.NewReader(content))
	require.NoError(t, err)
	require.Equal(t, 1, ds.Len())
	assert.True(t, ds.GetSchema().HasGender)
	assert.False(t, ds.GetSchema().HasBirthYear)
	assert.Equal(t, 2, ds.At(0).GetMonth())
	assert.Equal(t, "Female", ds.At(0).GetGender())
}

func TestLoader_ParseBlankEndTime(t *testing.T) {
	content := tripsHeader + "\n2017-02-01 07:00:00,,600,A,B,Subscriber\n"
	l := NewLoader(DefaultConfig())

	ds, err := l.Parse("washington", strings.NewReader(content))
	require.NoError(t, err)
	assert.True(t, ds.At(0).GetEndTime().IsZero())
}

func TestLoader_ParseHeaderOnly(t *testing.T) {
	l := NewLoader(DefaultConfig())

	ds, err := l.Parse("chicago", strings.NewReader(tripsHeader+",Gender\n"))
	require.NoError(t, err)
	assert.True(t, ds.IsEmpty())
	assert.Equal(t, "chicago", ds.GetCity())
	assert.True(t, ds.GetSchema().HasGender)
	assert.False(t, ds.GetSchema().HasBirthYear)

	_, err = l.Parse("chicago", strings.NewReader("Start Time,End Time,User Type\n"))
	assert.ErrorIs(t, err, dataErrors.ErrMissingColumn)
}

func TestLoader_ParseErrors(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		wantCause  error
		wantRow    int
		wantColumn string
	}{
		{
			name:       "missing required column",
			content:    "Start Time,End Time,Start Station,End Station,User Type\n2017-02-01 07:00:00,2017-02-01 07:10:00,A,B,Subscriber\n",
			wantCause:  dataErrors.ErrMissingColumn,
			wantColumn: "Trip Duration",
		},
		{
			name:       "unparsable start time",
			content:    tripsHeader + "\n2017-02-01 07:00:00,2017-02-01 07:10:00,600,A,B,Subscriber\n02/01/2017 7:00,2017-02-01 07:10:00,600,A,B,Subscriber\n",
			wantCause:  dataErrors.ErrInvalidDate,
			wantRow:    2,
			wantColumn: "Start Time",
		},
		{
			name:       "unparsable end time",
			content:    tripsHeader + "\n2017-02-01 07:00:00,yesterday,600,A,B,Subscriber\n",
			wantCause:  dataErrors.ErrInvalidDate,
			wantRow:    1,
			wantColumn: "End Time",
		},
		{
			name:       "negative duration",
			content:    tripsHeader + "\n2017-02-01 07:00:00,2017-02-01 07:10:00,-5,A,B,Subscriber\n",
			wantCause:  dataErrors.ErrNegativeDuration,
			wantRow:    1,
			wantColumn: "Trip Duration",
		},
		{
			name:       "non numeric duration",
			content:    tripsHeader + "\n2017-02-01 07:00:00,2017-02-01 07:10:00,ten,A,B,Subscriber\n",
			wantCause:  dataErrors.ErrInvalidDurationType,
			wantRow:    1,
			wantColumn: "Trip Duration",
		},
		{
			name:       "empty start station",
			content:    tripsHeader + "\n2017-02-01 07:00:00,2017-02-01 07:10:00,600,,B,Subscriber\n",
			wantCause:  dataErrors.ErrEmptyRequiredField,
			wantRow:    1,
			wantColumn: "Start Station",
		},
		{
			name:       "empty start time",
			content:    tripsHeader + "\n,2017-02-01 07:10:00,600,A,B,Subscriber\n",
			wantCause:  dataErrors.ErrEmptyRequiredField,
			wantRow:    1,
			wantColumn: "Start Time",
		},
		{
			name:       "fractional birth year",
			content:    tripsHeader + ",Birth Year\n2017-02-01 07:00:00,2017-02-01 07:10:00,600,A,B,Subscriber,1990.5\n",
			wantCause:  dataErrors.ErrInvalidBirthYearType,
			wantRow:    1,
			wantColumn: "Birth Year",
		},
		{
			name:      "empty source",
			content:   "",
			wantCause: dataErrors.ErrUnreadableSource,
		},
		{
			name:      "ragged row",
			content:   tripsHeader + "\n2017-02-01 07:00:00,2017-02-01 07:10:00,600,A\n",
			wantCause: dataErrors.ErrUnreadableSource,
		},
	}

	l := NewLoader(DefaultConfig())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ds, err := l.Parse("chicago", strings.NewReader(tt.content))
			require.Error(t, err)
			assert.Nil(t, ds)
			assert.ErrorIs(t, err, dataErrors.ErrDataSource)
			assert.ErrorIs(t, err, tt.wantCause)

			var dsErr *dataErrors.DataSourceError
			require.True(t, errors.As(err, &dsErr))
			assert.Equal(t, "chicago", dsErr.City)
			assert.Equal(t, tt.wantRow, dsErr.Row)
			assert.Equal(t, tt.wantColumn, dsErr.Column)
		})
	}
}

func TestLoader_Load(t *testing.T) {
	l := newTestLoader(t, map[string]string{
		"chicago":    chicagoCSV,
		"washington": washingtonCSV,
	})

	assert.Equal(t, []string{"chicago", "washington"}, l.GetCities())

	ds, err := l.Load(context.Background(), "chicago")
	require.NoError(t, err)
	assert.Equal(t, 4, ds.Len())

	ds, err = l.Load(context.Background(), " Washington ")
	require.NoError(t, err)
	assert.Equal(t, 2, ds.Len())
}

func TestLoader_LoadErrors(t *testing.T) {
	l := newTestLoader(t, map[string]string{"chicago": chicagoCSV})
	l.config.Cities["new york city"] = "missing.csv"

	_, err := l.Load(context.Background(), "gotham")
	assert.ErrorIs(t, err, dataErrors.ErrDataSource)
	assert.ErrorIs(t, err, dataErrors.ErrUnknownCity)

	_, err = l.Load(context.Background(), "new york city")
	assert.ErrorIs(t, err, dataErrors.ErrDataSource)
	assert.ErrorIs(t, err, dataErrors.ErrUnreadableSource)
	assert.ErrorIs(t, err, os.ErrNotExist)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = l.Load(ctx, "chicago")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestLoader_LoadUsesCache(t *testing.T) {
	l := newTestLoader(t, map[string]string{"chicago": chicagoCSV})

	first, err := l.Load(context.Background(), "chicago")
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(l.config.DataDir, l.config.Cities["chicago"])))

	second, err := l.Load(context.Background(), "chicago")
	require.NoError(t, err)
	assert.Same(t, first, second)

	l.Evict("chicago")
	_, err = l.Load(context.Background(), "chicago")
	assert.ErrorIs(t, err, dataErrors.ErrUnreadableSource)
}

func TestLoader_LoadTwiceIsDeterministic(t *testing.T) {
	first := newTestLoader(t, map[string]string{"chicago": chicagoCSV})
	second := newTestLoader(t, map[string]string{"chicago": chicagoCSV})

	ds1, err := first.Load(context.Background(), "chicago")
	require.NoError(t, err)
	ds2, err := second.Load(context.Background(), "chicago")
	require.NoError(t, err)

	assert.Equal(t, ds1.Batch(0, ds1.Len()), ds2.Batch(0, ds2.Len()))
	assert.Equal(t, ds1.GetSchema(), ds2.GetSchema())
}
