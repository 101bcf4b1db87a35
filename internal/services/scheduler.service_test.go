package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingJob struct {
	name     string
	schedule Schedule
	runs     int
	err      error
}

func (j *countingJob) Name() string       { return j.name }
func (j *countingJob) Schedule() Schedule { return j.schedule }
func (j *countingJob) Execute(ctx context.Context) error {
	j.runs++
	return j.err
}

func TestSchedulerService_AddJob(t *testing.T) {
	tests := []struct {
		name    string
		job     *countingJob
		wantErr bool
	}{
		{name: "hourly job", job: &countingJob{name: "hourly", schedule: Hourly}},
		{name: "daily job", job: &countingJob{name: "daily", schedule: Daily}},
		{name: "quarter hourly job", job: &countingJob{name: "quarter", schedule: QuarterHourly}},
		{name: "unknown schedule", job: &countingJob{name: "weird", schedule: Schedule(99)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			scheduler := NewSchedulerService(time.UTC)
			err := scheduler.AddJob(tt.job)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, 0, scheduler.GetJobCount())
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1, scheduler.GetJobCount())
		})
	}
}

func TestSchedulerService_StartStop(t *testing.T) {
	scheduler := NewSchedulerService(nil)

	require.NoError(t, scheduler.Start(context.Background()))
	assert.False(t, scheduler.IsRunning(), "no jobs means nothing to start")

	require.NoError(t, scheduler.AddJob(&countingJob{name: "hourly", schedule: Hourly}))
	require.NoError(t, scheduler.Start(context.Background()))
	assert.True(t, scheduler.IsRunning())

	require.NoError(t, scheduler.Stop(context.Background()))
	assert.False(t, scheduler.IsRunning())
}

func TestSchedulerService_TriggerJobByName(t *testing.T) {
	scheduler := NewSchedulerService(time.UTC)
	job := &countingJob{name: "overdue", schedule: Hourly}
	failing := &countingJob{name: "failing", schedule: Daily, err: errors.New("boom")}
	require.NoError(t, scheduler.AddJob(job))
	require.NoError(t, scheduler.AddJob(failing))

	require.NoError(t, scheduler.TriggerJobByName(context.Background(), "overdue"))
	assert.Equal(t, 1, job.runs)

	assert.Error(t, scheduler.TriggerJobByName(context.Background(), "failing"))
	assert.Error(t, scheduler.TriggerJobByName(context.Background(), "missing"))
}
