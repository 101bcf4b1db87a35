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

type OverdueLister interface {
	ListOverdue(ctx context.Context) ([]*models.Job, error)
}

// OverdueJobsJob alerts once per job when it passes its deadline while still
// open.
type OverdueJobsJob struct {
	jobs     OverdueLister
	eventBus events.Publisher
	schedule services.Schedule
	alerts   *jobAlerts
	log      logger.Logger
}

func NewOverdueJobsJob(
	jobs OverdueLister,
	eventBus events.Publisher,
	schedule services.Schedule,
) *OverdueJobsJob {
	log := logger.New("overdueJobsJob")
	log.Info("Creating new overdue jobs job", "schedule", schedule)

	return &OverdueJobsJob{
		jobs:     jobs,
		eventBus: eventBus,
		schedule: schedule,
		alerts:   newJobAlerts(),
		log:      log,
	}
}

func (j *OverdueJobsJob) Name() string {
	return "OverdueJobsSweep"
}

func (j *OverdueJobsJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	overdue, err := j.jobs.ListOverdue(ctx)
	if err != nil {
		return log.Err("failed to list overdue jobs", err)
	}

	sent, failed := j.alerts.sweep(overdue, func(job *models.Job) error {
		err := j.eventBus.Publish(events.ALERTS_CHANNEL, events.Event{
			Type: events.JOB_OVERDUE,
			Message: fmt.Sprintf("%s job %s is overdue (due %s)",
				job.Type, job.ID.String()[:8], job.Deadline.Format(time.RFC3339)),
			Data: jobAlertData(job),
		})
		if err != nil {
			log.Er("failed to publish overdue alert", err, "jobID", job.ID)
		}
		return err
	})

	log.Info("Overdue sweep completed", "overdue", len(overdue), "alerts", sent, "failed", failed)
	return nil
}

func (j *OverdueJobsJob) Schedule() services.Schedule {
	return j.schedule
}

func jobAlertData(job *models.Job) map[string]any {
	return map[string]any{
		"jobId":      job.ID.String(),
		"propertyId": job.PropertyID.String(),
		"deadline":   job.Deadline,
	}
}
