package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Cron runs a Runner on a standard 5-field cron expression. A run that is
// still in progress when the next one is due causes that one to be skipped.
type Cron struct {
	runner   Runner
	spec     string
	schedule cron.Schedule
	timeout  time.Duration
	logger   *slog.Logger
	cron     *cron.Cron
}

func NewCron(runner Runner, spec string, timeout time.Duration, logger *slog.Logger) (*Cron, error) {
	parser := cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)
	schedule, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("parse cron expression %q: %w", spec, err)
	}

	return &Cron{
		runner:   runner,
		spec:     spec,
		schedule: schedule,
		timeout:  timeout,
		logger:   logger,
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
	}, nil
}

// Start blocks until ctx is done, then waits for a running job to finish.
func (c *Cron) Start(ctx context.Context) error {
	s := &Scheduler{runner: c.runner, timeout: c.timeout, logger: c.logger}

	c.cron.Schedule(c.schedule, cron.FuncJob(func() {
		s.runOnce(ctx)
	}))

	c.cron.Start()
	c.logger.Info("cron scheduler started",
		"schedule", c.spec,
		"next_run", c.schedule.Next(time.Now()).Format("2006-01-02 15:04:05"),
	)

	<-ctx.Done()
	<-c.cron.Stop().Done()
	c.logger.Info("cron scheduler stopped")
	return ctx.Err()
}
