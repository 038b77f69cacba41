package work

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/safespeak/safespeak/server/models"
)

type WorkerPool struct {
	handlers    map[string]Handler
	workers     []*worker
	concurrency int
	started     bool
}

func newWorkerPool(concurrency int) *WorkerPool {
	wp := WorkerPool{handlers: make(map[string]Handler), concurrency: concurrency}

	for i := 0; i < concurrency; i++ {
		wp.workers = append(wp.workers, newWorker([]int64{0, 10, 100, 120}))
	}

	return &wp
}

// registerHandler binds a name to a job handler for all workers in the pool
func (wp *WorkerPool) registerHandler(name string, handler Handler) error {
	if _, ok := wp.handlers[name]; ok {
		return ErrDuplicateHandler
	}
	wp.handlers[name] = handler

	for _, worker := range wp.workers {
		err := worker.registerHandler(name, handler)

		// Only panic on an unexpected error i.e. !ErrDuplicateHandler
		if err != nil && !errors.Is(err, ErrDuplicateHandler) {
			logg.Panic(err)
		}
	}
	return nil
}

// enqueue adds a job to the queue by creating a db record from 'JobParams'
func (wp *WorkerPool) enqueue(job JobParams) error {
	if strings.TrimSpace(job.Name) == "" || strings.TrimSpace(job.Handler) == "" {
		return fmt.Errorf("both a name & handler is required for a job")
	}

	argsAsJson, err := json.Marshal(job.Args)
	if err != nil {
		return err
	}

	// This ensures that all jobs currently in the queue or in-progress are unique
	return models.CreateUniqueJobByName(job.Name, job.Handler, string(argsAsJson))
}

// start starts all workers in the pool i.e. jobs start being processed
func (wp *WorkerPool) start() {
	if wp.started {
		return
	}
	wp.started = true

	for _, worker := range wp.workers {
		worker.start()
	}
}

// stop stops all workers in the pool i.e. jobs stop being processed
func (wp *WorkerPool) stop() {
	if !wp.started {
		return
	}

	wg := sync.WaitGroup{}
	for _, w := range wp.workers {
		wg.Add(1)
		go func(w *worker) {
			w.stop()
			wg.Done()
		}(w)
	}
	wg.Wait()
	wp.started = false
}
