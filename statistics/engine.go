package statistics

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"bikeshare/domain/entities/criteria"
	"bikeshare/domain/entities/dataset"
)

const engineType = "statistics-engine"

// Result report of a run plus the time each routine took. Timings are kept out of the report so
// the same dataset always produces the same report.
type Result struct {
	Report  *Report
	Elapsed map[Family]time.Duration
}

// Engine runs the four statistic routines over a filtered dataset
type Engine struct {
	concurrent bool
}

// NewEngine returns an engine. When concurrent is true each routine runs in its own goroutine.
func NewEngine(concurrent bool) *Engine {
	return &Engine{concurrent: concurrent}
}

// outcome result of one routine. Each routine writes only its own outcome.
type outcome struct {
	elapsed time.Duration
	err     error
}

func (e *Engine) getLogMessage(method string, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("[component: %s][method: %s][status: ERROR] %s: %s", engineType, method, message, err.Error())
	}
	return fmt.Sprintf("[component: %s][method: %s][status: OK] %s", engineType, method, message)
}

// Run computes every family over the dataset. A routine that cannot compute its metrics leaves its
// section nil (or partial, see DurationStats and UserStats) and records the error in Report.Failures;
// the other routines are unaffected. The only error returned is the context one.
func (e *Engine) Run(ctx context.Context, ds *dataset.Dataset, c criteria.Criteria) (*Result, error) {
	report := &Report{
		City:    ds.GetCity(),
		Month:   c.GetMonth().String(),
		Weekday: c.GetWeekday().String(),
		Trips:   ds.Len(),
	}

	tasks := []func() error{
		func() (err error) { report.Time, err = TimeStats(ds); return err },
		func() (err error) { report.Station, err = StationStats(ds); return err },
		func() (err error) { report.Duration, err = DurationStats(ds); return err },
		func() (err error) { report.User, err = UserStats(ds); return err },
	}
	outcomes := make([]outcome, len(tasks))

	run := func(idx int) {
		start := time.Now()
		err := tasks[idx]()
		outcomes[idx] = outcome{elapsed: time.Since(start), err: err}
	}

	if e.concurrent {
		g, gctx := errgroup.WithContext(ctx)
		for idx := range tasks {
			idx := idx
			g.Go(func() error {
				if err := gctx.Err(); err != nil {
					return err
				}
				run(idx)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}
	} else {
		for idx := range tasks {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			run(idx)
		}
	}

	result := &Result{
		Report:  report,
		Elapsed: make(map[Family]time.Duration, len(tasks)),
	}
	for idx, family := range Families() {
		result.Elapsed[family] = outcomes[idx].elapsed
		if outcomes[idx].err != nil {
			if report.Failures == nil {
				report.Failures = make(map[Family]error)
			}
			report.Failures[family] = outcomes[idx].err
			log.Debug(e.getLogMessage("Run", fmt.Sprintf("%s statistics incomplete for %s", family, report.City), outcomes[idx].err))
		}
	}

	log.Debug(e.getLogMessage("Run", fmt.Sprintf("statistics computed over %v trips of %s", report.Trips, report.City), nil))
	return result, nil
}
