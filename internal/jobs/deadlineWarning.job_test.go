package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"luminaops/internal/events"
	"luminaops/internal/models"
	"luminaops/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockDueSoonLister struct {
	mock.Mock
}

func (m *MockDueSoonLister) ListDueSoon(ctx context.Context, within time.Duration) ([]*models.Job, error) {
	args := m.Called(ctx, within)
	jobs, _ := args.Get(0).([]*models.Job)
	return jobs, args.Error(1)
}

func TestDeadlineWarningJob_WarnsOncePerJob(t *testing.T) {
	first := overdueJob()
	first.Deadline = time.Now().Add(30 * time.Minute)
	second := overdueJob()
	second.Deadline = time.Now().Add(45 * time.Minute)

	lister := new(MockDueSoonLister)
	lister.On("ListDueSoon", mock.Anything, time.Hour).Return([]*models.Job{first}, nil).Once()
	lister.On("ListDueSoon", mock.Anything, time.Hour).Return([]*models.Job{first, second}, nil).Once()

	publisher := &recordingPublisher{}
	job := NewDeadlineWarningJob(lister, publisher, services.QuarterHourly, time.Hour)
	ctx := context.Background()

	require.NoError(t, job.Execute(ctx))
	require.NoError(t, job.Execute(ctx))

	published := publisher.published()
	require.Len(t, published, 2)
	assert.Equal(t, first.ID.String(), published[0].Data["jobId"])
	assert.Equal(t, second.ID.String(), published[1].Data["jobId"])
	for _, event := range published {
		assert.Equal(t, events.JOB_DEADLINE_WARNING, event.Type)
	}
	lister.AssertExpectations(t)
}

func TestDeadlineWarningJob_ListError(t *testing.T) {
	lister := new(MockDueSoonLister)
	lister.On("ListDueSoon", mock.Anything, time.Hour).Return(nil, errors.New("store unavailable"))

	job := NewDeadlineWarningJob(lister, &recordingPublisher{}, services.QuarterHourly, time.Hour)

	assert.Error(t, job.Execute(context.Background()))
	assert.Equal(t, "DeadlineWarningSweep", job.Name())
}
