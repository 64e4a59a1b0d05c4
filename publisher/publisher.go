package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"bikeshare/communication"
	"bikeshare/domain/business/queryresponse"
	"bikeshare/domain/entities"
	"bikeshare/statistics"
)

const (
	publisherType      = "report-publisher"
	contentTypeJson    = "application/json"
	defaultPublishWait = 5 * time.Second
)

var ErrPublisherClosed = errors.New("publisher is closed")

// Config parameters of the report publisher
// + Enabled: when false reports are not published at all
// + URL: RabbitMQ url, it can be overridden with RABBIT_URL
// + Queue: queue where the reports are published
// + ContentType: content type of the published messages
// + Timeout: max time to wait for a publishing
type Config struct {
	Enabled     bool                                 `yaml:"enabled"`
	URL         string                               `yaml:"url" validate:"required_if=Enabled true"`
	Queue       communication.QueueDeclarationConfig `yaml:"queue"`
	ContentType string                               `yaml:"content_type"`
	Timeout     time.Duration                        `yaml:"timeout" validate:"gte=0"`
}

// ReportPublisher sends the report of a query outside the explorer
type ReportPublisher interface {
	// Publish sends the report and returns the ID assigned to the query
	Publish(ctx context.Context, report *statistics.Report) (string, error)
	Close() error
}

// sender the subset of RabbitMQ used to publish
type sender interface {
	DeclareNonAnonymousQueues(queuesConfig []communication.QueueDeclarationConfig) error
	PublishMessageInQueue(ctx context.Context, queueName string, message []byte, contentType string) error
	KillBadBunny() error
}

// New returns the publisher described by the config: a RabbitPublisher when enabled, a NopPublisher otherwise
func New(config Config) (ReportPublisher, error) {
	if !config.Enabled {
		return NopPublisher{}, nil
	}
	return NewRabbitPublisher(config)
}

// RabbitPublisher publishes every report as a QueryResponse JSON message in a RabbitMQ queue
type RabbitPublisher struct {
	rabbitMQ sender
	config   Config
	closed   bool
}

// NewRabbitPublisher connects to RabbitMQ and declares the output queue
func NewRabbitPublisher(config Config) (*RabbitPublisher, error) {
	rabbitMQ, err := communication.NewRabbitMQ(config.URL)
	if err != nil {
		return nil, err
	}

	publisher, err := newRabbitPublisher(rabbitMQ, config)
	if err != nil {
		_ = rabbitMQ.KillBadBunny()
		return nil, err
	}
	return publisher, nil
}

func newRabbitPublisher(rabbitMQ sender, config Config) (*RabbitPublisher, error) {
	if config.ContentType == "" {
		config.ContentType = contentTypeJson
	}
	if config.Timeout == 0 {
		config.Timeout = defaultPublishWait
	}

	rp := &RabbitPublisher{
		rabbitMQ: rabbitMQ,
		config:   config,
	}

	err := rabbitMQ.DeclareNonAnonymousQueues([]communication.QueueDeclarationConfig{config.Queue})
	if err != nil {
		log.Error(rp.getLogMessage("newRabbitPublisher", "error declaring output queue", err))
		return nil, err
	}
	return rp, nil
}

// Publish wraps the report in a QueryResponse with a new query ID and publishes it in the output queue
func (rp *RabbitPublisher) Publish(ctx context.Context, report *statistics.Report) (string, error) {
	if rp.closed {
		return "", ErrPublisherClosed
	}

	queryID := uuid.NewString()
	response, err := buildQueryResponse(queryID, report)
	if err != nil {
		log.Error(rp.getLogMessage("Publish", "error marshalling report", err))
		return "", err
	}
	if response.HasFailures() {
		log.Warn(rp.getLogMessage("Publish", fmt.Sprintf("report of query %s is partial, %d statistic families failed", queryID, len(response.Failures)), nil))
	}

	message, err := json.Marshal(response)
	if err != nil {
		log.Error(rp.getLogMessage("Publish", "error marshalling query response", err))
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, rp.config.Timeout)
	defer cancel()

	err = rp.rabbitMQ.PublishMessageInQueue(ctx, rp.config.Queue.Name, message, rp.config.ContentType)
	if err != nil {
		log.Error(rp.getLogMessage("Publish", fmt.Sprintf("error publishing report of query %s", queryID), err))
		return "", fmt.Errorf("error publishing report: %w", err)
	}

	log.Debug(rp.getLogMessage("Publish", fmt.Sprintf("report of query %s published in %s", queryID, rp.config.Queue.Name), nil))
	return queryID, nil
}

// Close closes the RabbitMQ connection. Publishing after Close fails with ErrPublisherClosed.
func (rp *RabbitPublisher) Close() error {
	if rp.closed {
		return nil
	}
	rp.closed = true
	return rp.rabbitMQ.KillBadBunny()
}

func (rp *RabbitPublisher) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", publisherType, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", publisherType, method, message)
}

// EncodeReport returns the JSON QueryResponse of the report
func EncodeReport(queryID string, report *statistics.Report) ([]byte, error) {
	response, err := buildQueryResponse(queryID, report)
	if err != nil {
		return nil, err
	}
	return json.Marshal(response)
}

func buildQueryResponse(queryID string, report *statistics.Report) (*queryresponse.QueryResponse, error) {
	reportBytes, err := json.Marshal(report)
	if err != nil {
		return nil, err
	}

	metadata := entities.NewReportMetadata(report.City, report.Month, report.Weekday)
	return queryresponse.NewQueryResponse(queryID, metadata, reportBytes, report.FailureMessages()), nil
}

// NopPublisher discards every report
type NopPublisher struct{}

func (NopPublisher) Publish(_ context.Context, _ *statistics.Report) (string, error) {
	return "", nil
}

func (NopPublisher) Close() error {
	return nil
}
