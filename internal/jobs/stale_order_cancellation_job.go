package jobs

import (
	"context"
	"log/slog"
	"time"

	"ordering/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// StaleOrdersCanceller is the command handler the job drives.
type StaleOrdersCanceller interface {
	Handle(ctx context.Context, cmd commands.CancelStalePendingOrdersCommand) (int, error)
}

// StaleOrderCancellationJob periodically cancels orders whose payment never
// came back. Each run handles at most one batch; the next run picks up the rest.
type StaleOrderCancellationJob struct {
	handler   StaleOrdersCanceller
	schedule  string
	maxAge    time.Duration
	batchSize int
	cron      *cron.Cron
	logger    *slog.Logger
}

// NewStaleOrderCancellationJob creates the job. schedule is a six-field cron
// expression (seconds first).
func NewStaleOrderCancellationJob(
	handler StaleOrdersCanceller,
	schedule string,
	maxAge time.Duration,
	batchSize int,
	logger *slog.Logger,
) *StaleOrderCancellationJob {
	return &StaleOrderCancellationJob{
		handler:   handler,
		schedule:  schedule,
		maxAge:    maxAge,
		batchSize: batchSize,
		cron:      cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		logger:    logger.With("component", "stale_order_cancellation_job"),
	}
}

func (j *StaleOrderCancellationJob) Name() string {
	return "stale order cancellation"
}

func (j *StaleOrderCancellationJob) Start() error {
	if _, err := j.cron.AddFunc(j.schedule, func() { j.Run(context.Background()) }); err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job started",
		"schedule", j.schedule, "max_age", j.maxAge.String(), "batch_size", j.batchSize)
	return nil
}

// Run performs one sweep.
func (j *StaleOrderCancellationJob) Run(ctx context.Context) {
	cmd, err := commands.NewCancelStalePendingOrdersCommand(j.maxAge, j.batchSize)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order cancellation job misconfigured", "error", err)
		return
	}

	cancelled, err := j.handler.Handle(ctx, cmd)
	if err != nil {
		j.logger.ErrorContext(ctx, "Stale order cancellation job failed", "cancelled", cancelled, "error", err)
		return
	}
	if cancelled > 0 {
		j.logger.InfoContext(ctx, "Stale orders cancelled", "cancelled", cancelled)
	}
}

func (j *StaleOrderCancellationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Stale order cancellation job stopped")
}
