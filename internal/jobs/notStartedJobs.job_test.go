package jobs

import (
	"context"
	"errors"
	"testing"

	"luminaops/internal/events"
	"luminaops/internal/models"
	"luminaops/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockNotStartedLister struct {
	mock.Mock
}

func (m *MockNotStartedLister) ListNotStarted(ctx context.Context) ([]*models.Job, error) {
	args := m.Called(ctx)
	jobs, _ := args.Get(0).([]*models.Job)
	return jobs, args.Error(1)
}

func TestNotStartedJobsJob_AlertsOncePerJob(t *testing.T) {
	waiting := overdueJob()
	waiting.Status = models.JobNeedsCleaning

	lister := new(MockNotStartedLister)
	lister.On("ListNotStarted", mock.Anything).Return([]*models.Job{waiting}, nil).Twice()
	lister.On("ListNotStarted", mock.Anything).Return([]*models.Job{}, nil).Once()

	publisher := &recordingPublisher{}
	job := NewNotStartedJobsJob(lister, publisher, services.QuarterHourly)
	ctx := context.Background()

	require.NoError(t, job.Execute(ctx))
	require.NoError(t, job.Execute(ctx))
	require.NoError(t, job.Execute(ctx))

	published := publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, events.JOB_NOT_STARTED, published[0].Type)
	assert.Equal(t, events.ALERTS_CHANNEL, published[0].Channel)
	assert.Equal(t, waiting.ID.String(), published[0].Data["jobId"])
	assert.Contains(t, published[0].Message, "has not started")
	lister.AssertExpectations(t)
}

func TestNotStartedJobsJob_ListError(t *testing.T) {
	lister := new(MockNotStartedLister)
	lister.On("ListNotStarted", mock.Anything).Return(nil, errors.New("store unavailable"))

	job := NewNotStartedJobsJob(lister, &recordingPublisher{}, services.QuarterHourly)

	assert.Error(t, job.Execute(context.Background()))
	assert.Equal(t, "NotStartedJobsSweep", job.Name())
	assert.Equal(t, services.QuarterHourly, job.Schedule())
}
