package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	runs atomic.Int32
	err  error
}

func (j *countingJob) Execute(_ context.Context) (int64, error) {
	j.runs.Add(1)
	return 1, j.err
}

func TestScheduler_RunsJobImmediately(t *testing.T) {
	s, err := NewScheduler(zerolog.Nop())
	require.NoError(t, err)

	job := &countingJob{}
	require.NoError(t, s.RegisterBatchJob("test", time.Hour, job))

	s.Start()
	defer func() { require.NoError(t, s.Stop()) }()

	require.Eventually(t, func() bool { return job.runs.Load() == 1 }, 2*time.Second, 10*time.Millisecond)
}

func TestScheduler_FailingJobKeepsRunning(t *testing.T) {
	s, err := NewScheduler(zerolog.Nop())
	require.NoError(t, err)

	job := &countingJob{err: errors.New("boom")}
	require.NoError(t, s.RegisterBatchJob("failing", 50*time.Millisecond, job))

	s.Start()
	defer func() { require.NoError(t, s.Stop()) }()

	require.Eventually(t, func() bool { return job.runs.Load() >= 2 }, 2*time.Second, 10*time.Millisecond)
}
