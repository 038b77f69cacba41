package work

import (
	"errors"
	"time"

	"github.com/safespeak/safespeak/colors"
	"github.com/safespeak/safespeak/server/models"
	"gorm.io/gorm"
)

// Jobs stuck in-progress for at least this long are assumed orphaned
// (e.g. worker killed mid-run) and put back on the queue.
const stuckJobAgeMinutes = 10

type requeuer struct {
	stopChan chan struct{}
}

func newRequeuer() *requeuer {
	return &requeuer{
		stopChan: make(chan struct{}),
	}
}

func (r *requeuer) start() {
	go r.loop()
}

func (r *requeuer) stop() {
	r.stopChan <- struct{}{}
}

func (r *requeuer) loop() {
	var stuckJob *models.Job
	var err error

	sleepBackOffMinutes := 5
	rateLimiter := time.NewTicker(DefaultTickerDuration)
	defer rateLimiter.Stop()

	logg.Infof("Starting stuck-job requeuer")
	for {
		select {
		case <-r.stopChan:
			logg.Infof("Stopping stuck-job requeuer")
			return
		case <-rateLimiter.C:
			stuckJob, err = models.LastJobLastUpdated(stuckJobAgeMinutes, models.IN_PROGRESS_JOB)

			if errors.Is(err, gorm.ErrRecordNotFound) {
				rateLimiter.Reset(time.Duration(sleepBackOffMinutes) * time.Minute)
				continue
			}

			if err != nil {
				r.logError(err)
				rateLimiter.Reset(TickerDurationOnError)
				continue
			}

			r.requeue(stuckJob)
			rateLimiter.Reset(DefaultTickerDuration)
		}
	}
}

func (r *requeuer) requeue(job *models.Job) {
	jobStatus, err := models.FindJobStatus(models.ENQUEUED_JOB)
	if err != nil {
		r.logError(err)
		return
	}

	err = job.Update(map[string]interface{}{
		"claimed":       false,
		"job_status_id": jobStatus.ID,
	})
	if err != nil {
		r.logError(err)
		return
	}

	r.logInfof("job with id=%v requeued", job.ID)
}

func (r *requeuer) logInfof(template string, args ...interface{}) {
	prefix := colors.Yellow("[job requeuer] ")
	logg.Infof(prefix+template, args...)
}

func (r *requeuer) logError(args ...interface{}) {
	prefix := colors.Red("[job requeuer] ")
	logg.Error(append([]interface{}{prefix}, args...)...)
}
