package jobs

import (
	"context"
	"errors"
	"log/slog"

	"github.com/mnpatel007/delhiveryway-shopper/internal/core/application/usecases/commands"
	"github.com/mnpatel007/delhiveryway-shopper/internal/core/domain/model/kernel"

	"github.com/robfig/cron/v3"
)

// DispatchOrderJob offers pending orders to shoppers on a schedule.
// Runs every second; each tick is one dispatch round, which offers every
// pending order it can to a distinct shopper.
type DispatchOrderJob struct {
	handler      commands.DispatchOrderCommandHandler
	shopPosition kernel.GeoPosition
	cron         *cron.Cron
	logger       *slog.Logger
}

// NewDispatchOrderJob creates a job that dispatches pending orders.
// The shop position is where shoppers pick orders up; proximity to it
// decides which shopper gets the offer.
func NewDispatchOrderJob(
	handler commands.DispatchOrderCommandHandler,
	shopPosition kernel.GeoPosition,
	logger *slog.Logger,
) *DispatchOrderJob {
	return &DispatchOrderJob{
		handler:      handler,
		shopPosition: shopPosition,
		cron:         cron.New(cron.WithSeconds()),
		logger:       logger.With("component", "dispatch_order_job"),
	}
}

// Start begins the dispatch job to run every second.
func (j *DispatchOrderJob) Start() error {
	_, err := j.cron.AddFunc("* * * * * *", func() {
		ctx := context.Background()

		cmd, cmdErr := commands.NewDispatchOrderCommand(j.shopPosition)
		if cmdErr != nil {
			j.logger.ErrorContext(ctx, "Dispatch command rejected", "error", cmdErr)
			return
		}

		handleErr := j.handler.Handle(ctx, cmd)
		if handleErr == nil {
			return
		}

		// Nothing pending or nobody free are expected outcomes, not faults.
		if !errors.Is(handleErr, commands.ErrNoOrderFound) &&
			!errors.Is(handleErr, commands.ErrNoShoppersAvailable) {
			j.logger.ErrorContext(ctx, "Dispatch round failed", "error", handleErr)
		}
	})

	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Dispatch job started (running every second)")
	return nil
}

// Stop stops the dispatch job.
func (j *DispatchOrderJob) Stop() {
	j.cron.Stop()
	j.logger.InfoContext(context.Background(), "Dispatch job stopped")
}
