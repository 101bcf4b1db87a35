package jobs

import (
	"context"
	"fmt"
	"time"

	"luminaops/internal/events"
	"luminaops/internal/models"
	"luminaops/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type DueSoonLister interface {
	ListDueSoon(ctx context.Context, within time.Duration) ([]*models.Job, error)
}

// DeadlineWarningJob warns once per open job when its deadline is less than
// window away.
type DeadlineWarningJob struct {
	jobs     DueSoonLister
	eventBus events.Publisher
	schedule services.Schedule
	window   time.Duration
	alerts   *jobAlerts
	log      logger.Logger
}

func NewDeadlineWarningJob(
	jobs DueSoonLister,
	eventBus events.Publisher,
	schedule services.Schedule,
	window time.Duration,
) *DeadlineWarningJob {
	log := logger.New("deadlineWarningJob")
	log.Info("Creating new deadline warning job", "schedule", schedule, "window", window)

	return &DeadlineWarningJob{
		jobs:     jobs,
		eventBus: eventBus,
		schedule: schedule,
		window:   window,
		alerts:   newJobAlerts(),
		log:      log,
	}
}

func (j *DeadlineWarningJob) Name() string {
	return "DeadlineWarningSweep"
}

func (j *DeadlineWarningJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	dueSoon, err := j.jobs.ListDueSoon(ctx, j.window)
	if err != nil {
		return log.Err("failed to list jobs due soon", err)
	}

	sent, failed := j.alerts.sweep(dueSoon, func(job *models.Job) error {
		err := j.eventBus.Publish(events.ALERTS_CHANNEL, events.Event{
			Type: events.JOB_DEADLINE_WARNING,
			Message: fmt.Sprintf("%s job %s is %s and due at %s",
				job.Type, job.ID.String()[:8], job.Status, job.Deadline.Format("15:04")),
			Data: jobAlertData(job),
		})
		if err != nil {
			log.Er("failed to publish deadline warning", err, "jobID", job.ID)
		}
		return err
	})

	log.Info("Deadline warning sweep completed", "dueSoon", len(dueSoon), "alerts", sent, "failed", failed)
	return nil
}

func (j *DeadlineWarningJob) Schedule() services.Schedule {
	return j.schedule
}
