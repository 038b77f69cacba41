package work

import (
	"fmt"

	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"github.com/safespeak/safespeak/server/cron"
	"github.com/safespeak/safespeak/server/models"
)

const MAX_CONCURRENCY = 1

type WorkerPoolAdapter struct {
	cronScheduler *gocron.Scheduler
	pool          *WorkerPool
	requeuer      *requeuer
}

func NewWorkerAdapter(timeZoneArg string) *WorkerPoolAdapter {
	return &WorkerPoolAdapter{
		cronScheduler: cron.NewCronScheduler(timeZoneArg),
		pool:          newWorkerPool(MAX_CONCURRENCY),
		requeuer:      newRequeuer(),
	}
}

// Start starts the cron scheduler, worker pool & requeuer
func (adapter *WorkerPoolAdapter) Start() {
	logg.Info("Starting cron scheduler & worker pool")
	adapter.cronScheduler.StartAsync()
	adapter.pool.start()
	adapter.requeuer.start()
}

// Stop stops the cron scheduler, worker pool & requeuer
func (adapter *WorkerPoolAdapter) Stop() {
	logg.Info("Stopping cron scheduler & worker pool")
	adapter.cronScheduler.Stop()
	adapter.pool.stop()
	adapter.requeuer.stop()
}

// Register binds a name to a handler.
func (adapter *WorkerPoolAdapter) Register(name string, handler Handler) error {
	return adapter.pool.registerHandler(name, handler)
}

// Perform sends a new job to the queue, to be executed as soon as a
// worker is available
func (adapter *WorkerPoolAdapter) Perform(job JobParams) error {
	logg.Infof("Enqueuing job: %v", job.Name)

	err := adapter.pool.enqueue(job)
	if errors.Is(err, models.ErrDuplicateJob) {
		logg.Warnf("Duplicate job already in queue for: %v", job.Name)
		return nil
	}

	if err != nil {
		return fmt.Errorf("error enqueuing job: %v, %v", job.Name, err)
	}

	return nil
}

// PeriodicallyPerform adds a job to the queue periodically, based on
// the cron expression provided
func (adapter *WorkerPoolAdapter) PeriodicallyPerform(cronExpression string, job JobParams) error {
	_, err := adapter.cronScheduler.Cron(cronExpression).Tag(job.Name).
		Do(
			func(job JobParams) {
				err := adapter.Perform(job)
				if err != nil {
					logg.Error(err)
				}
			},
			job,
		)

	return err
}

func (adapter *WorkerPoolAdapter) RemovePeriodicJob(jobName string) {
	adapter.cronScheduler.RemoveByTag(jobName)
}
