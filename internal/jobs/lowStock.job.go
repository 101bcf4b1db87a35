package jobs

import (
	"context"
	"fmt"
	"strings"

	"luminaops/internal/events"
	"luminaops/internal/models"
	"luminaops/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type LowStockLister interface {
	LowStock(ctx context.Context) ([]models.InventoryItemStatus, error)
}

// LowStockJob posts a daily digest of every item under its par level.
type LowStockJob struct {
	inventory LowStockLister
	eventBus  events.Publisher
	schedule  services.Schedule
	log       logger.Logger
}

func NewLowStockJob(
	inventory LowStockLister,
	eventBus events.Publisher,
	schedule services.Schedule,
) *LowStockJob {
	log := logger.New("lowStockJob")
	log.Info("Creating new low stock job", "schedule", schedule)

	return &LowStockJob{
		inventory: inventory,
		eventBus:  eventBus,
		schedule:  schedule,
		log:       log,
	}
}

func (j *LowStockJob) Name() string {
	return "DailyLowStockDigest"
}

func (j *LowStockJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	items, err := j.inventory.LowStock(ctx)
	if err != nil {
		return log.Err("failed to list low stock", err)
	}

	if len(items) == 0 {
		log.Info("No low stock items")
		return nil
	}

	names := make([]string, 0, len(items))
	ids := make([]string, 0, len(items))
	for _, item := range items {
		names = append(names, item.Name)
		ids = append(ids, item.ID.String())
	}

	err = j.eventBus.Publish(events.ALERTS_CHANNEL, events.Event{
		Type:    events.LOW_STOCK,
		Message: fmt.Sprintf("%d items below par: %s", len(items), strings.Join(names, ", ")),
		Data:    map[string]any{"itemIds": ids},
	})
	if err != nil {
		return log.Err("failed to publish low stock digest", err)
	}

	log.Info("Low stock digest published", "items", len(items))
	return nil
}

func (j *LowStockJob) Schedule() services.Schedule {
	return j.schedule
}
