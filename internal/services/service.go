package services

import (
	"luminaops/config"
)

type Service struct {
	Scheduler     *SchedulerService
	Advice        *AdviceService
	Notifications *NotificationService
}

func New(config config.Config) Service {
	return Service{
		Scheduler:     NewSchedulerService(config.Location()),
		Advice:        NewAdviceService(config),
		Notifications: NewNotificationService(),
	}
}
