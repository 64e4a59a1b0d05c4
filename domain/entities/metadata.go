package entities

import "fmt"

const (
	// ReportType type of the data published once the statistics of a query are computed
	ReportType = "statistics_report"
	// ExplorerStage stage of the interactive explorer
	ExplorerStage = "explorer"
)

// Metadata this struct will contain extra information about the data that leaves our system
// + City: city which belongs the data
// + Type: this field helps the consumers to recognize what type of data is
// + Stage: stage were the Metadata was constructed
// + Message: message with extra information, for reports the criteria of the query
type Metadata struct {
	City    string `json:"city"`
	Type    string `json:"type"`
	Stage   string `json:"stage"`
	Message string `json:"message"`
}

func NewMetadata(city string, dataType string, stage string, message string) Metadata {
	return Metadata{
		City:    city,
		Type:    dataType,
		Stage:   stage,
		Message: message,
	}
}

// NewReportMetadata metadata of a statistics report of the city filtered by month and weekday
func NewReportMetadata(city string, month string, weekday string) Metadata {
	return NewMetadata(city, ReportType, ExplorerStage, fmt.Sprintf("month: %s, day: %s", month, weekday))
}

func (m Metadata) GetType() string {
	return m.Type
}

func (m Metadata) GetCity() string {
	return m.City
}

func (m Metadata) GetStage() string {
	return m.Stage
}

func (m Metadata) GetMessage() string {
	return m.Message
}
