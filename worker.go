package mazesearch

import (
	"context"
	"runtime"
	"sync"

	"github.com/pkg/errors"
)

// Job describes one maze to generate and compare both strategies on. Start
// and goal are the maze corners.
type Job struct {
	Cols, Rows int
	Seed       int64
	Generator  Generator
}

// compareTask is sent from the batch orchestrator to the workers.
type compareTask struct {
	Index int
	Job   Job
}

// compareOutcome is the worker's answer for one task.
type compareOutcome struct {
	Index      int
	Comparison Comparison
	Err        error
}

func (job Job) run(contextObject context.Context) (Comparison, error) {
	m, err := Generate(job.Cols, job.Rows, WithSeed(job.Seed), WithGenerator(job.Generator))
	if err != nil {
		return Comparison{}, err
	}
	start, goal := m.Corners()
	return Compare(contextObject, m, start, goal)
}

// CompareBatch runs Compare for every job on a pool of workers. Results come
// back in job order. The first failing job cancels the rest.
func CompareBatch(parent context.Context, jobs []Job, options ...Option) ([]Comparison, error) {
	batchOptions := Options{
		NumberOfWorkers: runtime.NumCPU(),
	}
	for _, option := range options {
		option(&batchOptions)
	}
	if batchOptions.NumberOfWorkers < 1 {
		batchOptions.NumberOfWorkers = 1
	}

	contextObject, cancel := context.WithCancel(parent)
	defer cancel()

	taskChannel := make(chan compareTask)
	outcomeChannel := make(chan compareOutcome)

	// --- Start worker pool ---
	var workers sync.WaitGroup
	for i := 0; i < batchOptions.NumberOfWorkers; i++ {
		workers.Add(1)
		go func() {
			defer workers.Done()
			for task := range taskChannel {
				comparison, err := task.Job.run(contextObject)
				select {
				case <-contextObject.Done():
					return
				case outcomeChannel <- compareOutcome{Index: task.Index, Comparison: comparison, Err: err}:
				}
			}
		}()
	}

	go func() {
		defer close(taskChannel)
		for i, job := range jobs {
			select {
			case <-contextObject.Done():
				return
			case taskChannel <- compareTask{Index: i, Job: job}:
			}
		}
	}()

	go func() {
		workers.Wait()
		close(outcomeChannel)
	}()

	// --- Collect outcomes ---
	comparisons := make([]Comparison, len(jobs))
	var firstErr error
	for outcome := range outcomeChannel {
		if outcome.Err != nil {
			if firstErr == nil {
				firstErr = errors.Wrapf(outcome.Err, "job %d", outcome.Index)
				cancel()
			}
			continue
		}
		comparisons[outcome.Index] = outcome.Comparison
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := parent.Err(); err != nil {
		return nil, err
	}
	return comparisons, nil
}
