package services

import (
	"luminaops/internal/events"
	"luminaops/internal/models"
	"sync"
	"time"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

// NotificationService keeps the newest notifications raised by operations
// and alert events, newest first.
type NotificationService struct {
	mu    sync.RWMutex
	items []models.Notification
	limit int
	log   logger.Logger
}

func NewNotificationService() *NotificationService {
	return &NotificationService{
		limit: models.MaxNotifications,
		log:   logger.New("notificationService"),
	}
}

// Attach subscribes the feed to the channels that carry user facing events.
func (s *NotificationService) Attach(eventBus *events.EventBus) error {
	log := s.log.Function("Attach")

	for _, channel := range []events.Channel{events.OPERATIONS_CHANNEL, events.ALERTS_CHANNEL} {
		if err := eventBus.Subscribe(channel, s.HandleEvent); err != nil {
			return log.Err("failed to subscribe notification feed", err, "channel", channel)
		}
	}
	return nil
}

func (s *NotificationService) HandleEvent(event events.Event) error {
	if event.Message == "" {
		return nil
	}

	timestamp := event.Timestamp
	if timestamp.IsZero() {
		timestamp = time.Now()
	}

	s.Add(models.Notification{
		ID:      uuid.New(),
		Kind:    string(event.Type),
		Message: event.Message,
		Time:    timestamp,
	})
	return nil
}

func (s *NotificationService) Add(notification models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append([]models.Notification{notification}, s.items...)
	if len(s.items) > s.limit {
		s.items = s.items[:s.limit]
	}
}

func (s *NotificationService) List() []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Notification(nil), s.items...)
}
