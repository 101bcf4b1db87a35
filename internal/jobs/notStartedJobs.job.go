package jobs

import (
	"context"
	"fmt"

	"luminaops/internal/events"
	"luminaops/internal/models"
	"luminaops/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type NotStartedLister interface {
	ListNotStarted(ctx context.Context) ([]*models.Job, error)
}

// NotStartedJobsJob alerts once per turnover that nobody has started by the
// late-start cutoff on its checkout day.
type NotStartedJobsJob struct {
	jobs     NotStartedLister
	eventBus events.Publisher
	schedule services.Schedule
	alerts   *jobAlerts
	log      logger.Logger
}

func NewNotStartedJobsJob(
	jobs NotStartedLister,
	eventBus events.Publisher,
	schedule services.Schedule,
) *NotStartedJobsJob {
	log := logger.New("notStartedJobsJob")
	log.Info("Creating new not started jobs job", "schedule", schedule)

	return &NotStartedJobsJob{
		jobs:     jobs,
		eventBus: eventBus,
		schedule: schedule,
		alerts:   newJobAlerts(),
		log:      log,
	}
}

func (j *NotStartedJobsJob) Name() string {
	return "NotStartedJobsSweep"
}

func (j *NotStartedJobsJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	waiting, err := j.jobs.ListNotStarted(ctx)
	if err != nil {
		return log.Err("failed to list not started jobs", err)
	}

	sent, failed := j.alerts.sweep(waiting, func(job *models.Job) error {
		err := j.eventBus.Publish(events.ALERTS_CHANNEL, events.Event{
			Type: events.JOB_NOT_STARTED,
			Message: fmt.Sprintf("Turnover %s has not started and is due at %s",
				job.ID.String()[:8], job.Deadline.Format("15:04")),
			Data: jobAlertData(job),
		})
		if err != nil {
			log.Er("failed to publish not started alert", err, "jobID", job.ID)
		}
		return err
	})

	log.Info("Not started sweep completed", "waiting", len(waiting), "alerts", sent, "failed", failed)
	return nil
}

func (j *NotStartedJobsJob) Schedule() services.Schedule {
	return j.schedule
}
