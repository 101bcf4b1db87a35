package jobs

import (
	"luminaops/internal/controllers"
	"luminaops/internal/events"
	"luminaops/internal/models"
	"luminaops/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	controllers controllers.Controllers,
	eventBus events.Publisher,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")
	log.Info("Registering jobs")

	overdueJob := NewOverdueJobsJob(controllers.Job, eventBus, services.Hourly)
	if err := schedulerService.AddJob(overdueJob); err != nil {
		return log.Err("failed to register overdue jobs sweep", err)
	}
	log.Info("Registered overdue jobs sweep", "schedule", "hourly")

	notStartedJob := NewNotStartedJobsJob(controllers.Job, eventBus, services.QuarterHourly)
	if err := schedulerService.AddJob(notStartedJob); err != nil {
		return log.Err("failed to register not started jobs sweep", err)
	}
	log.Info("Registered not started jobs sweep", "schedule", "every 15 minutes")

	deadlineJob := NewDeadlineWarningJob(
		controllers.Job,
		eventBus,
		services.QuarterHourly,
		models.DeadlineWarningWindow,
	)
	if err := schedulerService.AddJob(deadlineJob); err != nil {
		return log.Err("failed to register deadline warning sweep", err)
	}
	log.Info("Registered deadline warning sweep", "schedule", "every 15 minutes")

	lowStockJob := NewLowStockJob(controllers.Inventory, eventBus, services.Daily)
	if err := schedulerService.AddJob(lowStockJob); err != nil {
		return log.Err("failed to register low stock digest", err)
	}
	log.Info("Registered low stock digest", "schedule", "daily")

	return nil
}
