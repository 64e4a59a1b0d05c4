package session

import (
	"context"
	"errors"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"bikeshare/domain/entities/criteria"
	"bikeshare/domain/entities/dataset"
	"bikeshare/explorer/prompt"
	"bikeshare/explorer/render"
	"bikeshare/filter"
	"bikeshare/publisher"
	"bikeshare/statistics"
)

const (
	sessionType      = "explorer-session"
	rawDataQuestion  = "\nWould you like to see the entire dataset? Enter yes or no.\n"
	continueQuestion = "Continue? Yes or No: \n"
	restartQuestion  = "\nWould you like to restart? Enter yes or no.\n"
)

// RecordLoader source of the city datasets
type RecordLoader interface {
	Load(ctx context.Context, city string) (*dataset.Dataset, error)
	Evict(city string)
	GetCities() []string
}

// Session interactive exploration: asks for the filters, shows the statistics of the selection and
// optionally its raw records, until the user does not want to restart.
// Only the dataset of the last queried city is kept cached by the loader.
type Session struct {
	loader      RecordLoader
	engine      *statistics.Engine
	publisher   publisher.ReportPublisher
	prompter    *prompt.Prompter
	renderer    *render.Renderer
	pageSize    int
	currentCity string
}

func NewSession(loader RecordLoader, engine *statistics.Engine, reportPublisher publisher.ReportPublisher, in io.Reader, out io.Writer, pageSize int) *Session {
	if reportPublisher == nil {
		reportPublisher = publisher.NopPublisher{}
	}
	return &Session{
		loader:    loader,
		engine:    engine,
		publisher: reportPublisher,
		prompter:  prompt.NewPrompter(in, out),
		renderer:  render.NewRenderer(out),
		pageSize:  pageSize,
	}
}

func (s *Session) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", sessionType, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", sessionType, method, message)
}

// Query loads the city, keeps the trips that match the criteria and computes their statistics.
// It returns the filtered dataset along with the result so the raw records can be shown.
func (s *Session) Query(ctx context.Context, city string, c criteria.Criteria) (*dataset.Dataset, *statistics.Result, error) {
	ds, err := s.loader.Load(ctx, city)
	if err != nil {
		return nil, nil, err
	}
	if s.currentCity != "" && s.currentCity != ds.GetCity() {
		s.loader.Evict(s.currentCity)
		log.Debug(s.getLogMessage("Query", fmt.Sprintf("dataset of %s evicted", s.currentCity), nil))
	}
	s.currentCity = ds.GetCity()

	filtered := filter.Apply(ds, c)
	result, err := s.engine.Run(ctx, filtered, c)
	if err != nil {
		return nil, nil, err
	}

	log.Debug(s.getLogMessage("Query", fmt.Sprintf("%s of %s matched %v of %v trips", c.String(), city, filtered.Len(), ds.Len()), nil))
	return filtered, result, nil
}

// Run runs the session until the user does not want to restart, the input ends or ctx is done.
// A query that fails is reported to the user and the session goes on to the restart question.
func (s *Session) Run(ctx context.Context) error {
	s.renderer.Greeting()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		restart, err := s.round(ctx)
		if errors.Is(err, prompt.ErrNoInput) {
			log.Debug(s.getLogMessage("Run", "input closed, ending session", nil))
			return nil
		}
		if err != nil {
			return err
		}
		if !restart {
			return nil
		}
	}
}

// round one query of the session. It returns whether the user wants to restart.
func (s *Session) round(ctx context.Context) (bool, error) {
	city, c, err := s.prompter.Filters(s.loader.GetCities())
	if err != nil {
		return false, err
	}
	s.renderer.Separator()

	filtered, result, err := s.Query(ctx, city, c)
	if err != nil {
		if ctx.Err() != nil {
			return false, ctx.Err()
		}
		log.Error(s.getLogMessage("round", fmt.Sprintf("error querying %s", city), err))
		s.renderer.Error(err)
		return s.prompter.Confirm(restartQuestion)
	}

	s.renderer.Report(result)
	s.publish(ctx, result.Report)

	seeRaw, err := s.prompter.Confirm(rawDataQuestion)
	if err != nil {
		return false, err
	}
	if seeRaw {
		if err := s.viewRaw(filtered); err != nil {
			return false, err
		}
	}

	return s.prompter.Confirm(restartQuestion)
}

// viewRaw shows pageSize records at a time while the user wants to continue
func (s *Session) viewRaw(ds *dataset.Dataset) error {
	for offset := 0; ; offset += s.pageSize {
		batch := ds.Batch(offset, s.pageSize)
		if len(batch) == 0 {
			s.renderer.EndOfDataset()
			return nil
		}
		s.renderer.Batch(batch, offset, ds.GetSchema())

		if offset+len(batch) >= ds.Len() {
			s.renderer.EndOfDataset()
			return nil
		}

		proceed, err := s.prompter.Confirm(continueQuestion)
		if err != nil {
			return err
		}
		if !proceed {
			return nil
		}
	}
}

func (s *Session) publish(ctx context.Context, report *statistics.Report) {
	queryID, err := s.publisher.Publish(ctx, report)
	if err != nil {
		log.Error(s.getLogMessage("publish", fmt.Sprintf("error publishing report of %s", report.City), err))
		return
	}
	if queryID != "" {
		log.Info(s.getLogMessage("publish", fmt.Sprintf("report of %s published with query ID %s", report.City, queryID), nil))
	}
}
