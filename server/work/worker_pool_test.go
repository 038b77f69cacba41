package work

import (
	"testing"

	"github.com/safespeak/safespeak/server/models"
	"github.com/stretchr/testify/assert"
)

func TestEnqueueIsUniqueByName(t *testing.T) {
	models.InitializeTestDb()

	workerPool := newWorkerPool(MAX_CONCURRENCY)

	err := workerPool.enqueue(JobParams{
		Name:    "suits",
		Handler: "donna",
		Args: map[string]interface{}{
			"first_name": "mike",
			"last_name":  "ross",
		},
	})
	assert.Nil(t, err)

	// A second enqueue with the same name should be rejected while the
	// first is still waiting in the queue
	err = workerPool.enqueue(JobParams{Name: "suits", Handler: "donna"})
	assert.ErrorIs(t, err, models.ErrDuplicateJob)

	// Make sure the correct job was created
	job, err := models.LastJob(models.ENQUEUED_JOB, false)
	assert.Nil(t, err)
	assert.Equal(t, "suits", job.Name, "The job name should match the expected job name")
	assert.Contains(t, job.Args, "mike", "Should contain the correct arg values")
}
