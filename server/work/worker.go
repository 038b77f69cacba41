package work

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/safespeak/safespeak/colors"
	"github.com/safespeak/safespeak/server/logger"
	"github.com/safespeak/safespeak/server/models"
	"gorm.io/gorm"
)

const MAX_FAILS = 4

var (
	DefaultTickerDuration = 5 * time.Millisecond
	TickerDurationOnError = 10 * time.Millisecond

	ErrDuplicateHandler = errors.New("handler with provided name already mapped")

	logg = logger.NewLogger()
)

type JobParams struct {
	Name    string
	Handler string
	Args    map[string]interface{}
}

type Handler func(map[string]interface{}) error

type worker struct {
	id                     string
	handlers               map[string]Handler
	stopChan               chan struct{}
	sleepBackoffsInSeconds []int64
}

func newWorker(sleepBackoffsInSeconds []int64) *worker {
	return &worker{
		id:                     uuid.NewString()[:8],
		handlers:               make(map[string]Handler),
		stopChan:               make(chan struct{}),
		sleepBackoffsInSeconds: sleepBackoffsInSeconds,
	}
}

func (w *worker) registerHandler(name string, handler Handler) error {
	if _, ok := w.handlers[name]; ok {
		return ErrDuplicateHandler
	}

	w.handlers[name] = handler

	return nil
}

func (w *worker) start() {
	go w.loop()
}

func (w *worker) stop() {
	w.stopChan <- struct{}{}
}

func (w *worker) loop() {
	var consecutiveNoJobs int64
	var currentJob *models.Job
	var err error

	sleepBackoffs := w.sleepBackoffsInSeconds
	rateLimiter := time.NewTicker(DefaultTickerDuration)
	defer rateLimiter.Stop()

	logg.Infof("Starting worker %s", w.id)
	for {
		select {
		case <-w.stopChan:
			logg.Infof("Stopping worker %s", w.id)
			return
		case <-rateLimiter.C:
			currentJob, err = models.LastJob(models.ENQUEUED_JOB, false)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					// If no job is found, slowly increase the wait time between
					// each fetch using 'sleepBackoffsInSeconds', to reduce
					// unnecessary db hits.
					consecutiveNoJobs++
					idx := consecutiveNoJobs
					if idx >= int64(len(sleepBackoffs)) {
						idx = int64(len(sleepBackoffs)) - 1
					}
					rateLimiter.Reset(time.Duration(sleepBackoffs[idx]) * time.Second)
					continue
				}

				w.logError(err)
				rateLimiter.Reset(TickerDurationOnError)
				continue
			}

			claimed, err := currentJob.MarkAsClaimed()
			if err != nil {
				w.logError(err)
				rateLimiter.Reset(TickerDurationOnError)
				continue
			}

			if !claimed {
				continue
			}

			w.logInfof("claimed job with id=%v, handler=%v", currentJob.ID, currentJob.Handler)

			w.processJob(currentJob)
			rateLimiter.Reset(DefaultTickerDuration)
			consecutiveNoJobs = 0
		}
	}
}

func (w *worker) processJob(job *models.Job) {
	args := make(map[string]interface{})
	err := json.Unmarshal([]byte(job.Args), &args)
	if err != nil {
		w.logError(err)
		w.determineFailedJobFate(job, err)
		return
	}

	handler, ok := w.handlers[job.Handler]
	if !ok {
		err = fmt.Errorf("no handler mapped for %q", job.Handler)
		w.logError(err)
		w.determineFailedJobFate(job, err)
		return
	}

	err = handler(args)
	if err != nil {
		w.logError(err)
		w.determineFailedJobFate(job, err)
		return
	}
	w.markJobAsSuccessful(job)
}

func (w *worker) determineFailedJobFate(job *models.Job, runError error) {
	var jobStatus *models.JobStatus
	var err error

	job.Fails++

	// For a job with Fails >= MAX_FAILS mark as dead, else requeue to be retried
	if job.Fails >= MAX_FAILS {
		jobStatus, err = models.FindJobStatus(models.DEAD_JOB)
	} else {
		jobStatus, err = models.FindJobStatus(models.ENQUEUED_JOB)
	}

	if err != nil {
		w.logError(err)
		return
	}

	err = job.Update(map[string]interface{}{
		"claimed":       false,
		"job_status_id": jobStatus.ID,
		"fails":         job.Fails,
		"last_error":    runError.Error(),
	})
	if err != nil {
		w.logError(err)
	}
	w.logInfof("job with id=%v completed with status=%v", job.ID, jobStatus.Name)
}

func (w *worker) markJobAsSuccessful(job *models.Job) {
	jobStatus, err := models.FindJobStatus(models.SUCCESSFUL_JOB)
	if err != nil {
		w.logError(err)
		return
	}

	err = job.Update(map[string]interface{}{
		"claimed":       false,
		"job_status_id": jobStatus.ID,
	})
	if err != nil {
		w.logError(err)
	}
	w.logInfof("job with id=%v completed with status=%v", job.ID, jobStatus.Name)
}

func (w *worker) logInfof(template string, args ...interface{}) {
	prefix := colors.Yellow(fmt.Sprintf("[worker %v] ", w.id))
	logg.Infof(prefix+template, args...)
}

func (w *worker) logError(args ...interface{}) {
	prefix := colors.Red(fmt.Sprintf("[worker %v] ", w.id))
	logg.Error(append([]interface{}{prefix}, args...)...)
}
