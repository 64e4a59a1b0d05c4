package loader

// DefaultTimeLayout layout of the Start Time and End Time columns, e.g. 2017-01-01 09:07:57
const DefaultTimeLayout = "2006-01-02 15:04:05"

// Columns contains the header name of each field to analyze. Headers are matched case-insensitively.
type Columns struct {
	StartTime    string `yaml:"start_time" validate:"required"`
	EndTime      string `yaml:"end_time" validate:"required"`
	Duration     string `yaml:"duration" validate:"required"`
	StartStation string `yaml:"start_station" validate:"required"`
	EndStation   string `yaml:"end_station" validate:"required"`
	UserType     string `yaml:"user_type" validate:"required"`
	Gender       string `yaml:"gender" validate:"required"`
	BirthYear    string `yaml:"birth_year" validate:"required"`
}

// Config loader configuration
// + DataDir: directory that contains the city files
// + Cities: city name to file name, relative to DataDir
// + TimeLayout: layout used to parse timestamps
// + Columns: header names of the source table
type Config struct {
	DataDir    string            `yaml:"data_dir"`
	Cities     map[string]string `yaml:"cities" validate:"required,min=1,dive,keys,required,endkeys,required"`
	TimeLayout string            `yaml:"time_layout" validate:"required"`
	Columns    Columns           `yaml:"columns"`
}

// DefaultColumns header names used by the chicago, new york city and washington files
func DefaultColumns() Columns {
	return Columns{
		StartTime:    "Start Time",
		EndTime:      "End Time",
		Duration:     "Trip Duration",
		StartStation: "Start Station",
		EndStation:   "End Station",
		UserType:     "User Type",
		Gender:       "Gender",
		BirthYear:    "Birth Year",
	}
}

// DefaultConfig returns the configuration of the three known cities
func DefaultConfig() Config {
	return Config{
		DataDir: ".",
		Cities: map[string]string{
			"chicago":       "chicago.csv",
			"new york city": "new_york_city.csv",
			"washington":    "washington.csv",
		},
		TimeLayout: DefaultTimeLayout,
		Columns:    DefaultColumns(),
	}
}
