package database

import (
	"context"
	"errors"
	"luminaops/internal/models"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestCacheConstants(t *testing.T) {
	assert.Equal(t, 3, EVENTS_CACHE_INDEX)
}

func newTestDB(t *testing.T) DB {
	t.Helper()
	db, err := NewInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewInMemory(t *testing.T) {
	db, err := NewInMemory()
	require.NoError(t, err)

	assert.NotNil(t, db.SQL)
	assert.NotNil(t, db.Locks)
	assert.Nil(t, db.Cache.Events)

	for _, model := range []any{
		&models.User{},
		&models.Property{},
		&models.Booking{},
		&models.Job{},
		&models.InventoryItem{},
		&models.Issue{},
		&models.ChecklistTemplate{},
	} {
		assert.True(t, db.SQL.Migrator().HasTable(model), "%T table is migrated", model)
	}

	assert.NoError(t, db.Close())
}

func TestNewInMemory_SeedsChecklistTemplates(t *testing.T) {
	db := newTestDB(t)

	var templates []models.ChecklistTemplate
	require.NoError(t, db.SQL.Order("job_type").Find(&templates).Error)
	require.Len(t, templates, 2)

	assert.Equal(t, models.JobMaintenance, templates[0].JobType)
	assert.Len(t, templates[0].Items, len(models.DefaultMaintenanceChecklist))
	assert.Equal(t, models.JobTurnover, templates[1].JobType)
	assert.Equal(t, models.DefaultTurnoverChecklist[0].Label, templates[1].Items[0].Label)
}

func TestNewInMemory_InstancesAreIsolated(t *testing.T) {
	first := newTestDB(t)
	second := newTestDB(t)

	item := models.InventoryItem{ID: uuid.New(), PropertyID: uuid.New(), Name: "Towels", CurrentCount: 4}
	require.NoError(t, first.SQL.Create(&item).Error)

	var count int64
	require.NoError(t, second.SQL.Model(&models.InventoryItem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestDB_JSONColumnsRoundTrip(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	assignee := uuid.New()
	job := models.Job{
		BaseUUIDModel: models.NewBaseUUIDModel(time.Now()),
		PropertyID:    uuid.New(),
		Type:          models.JobTurnover,
		Status:        models.JobNeedsCleaning,
		Priority:      models.PriorityHigh,
		AssignedTo:    []uuid.UUID{assignee},
		Checklist:     models.NewChecklist(models.DefaultTurnoverChecklist),
		MediaURLs:     []string{"https://cdn.test/a.jpg"},
	}
	require.NoError(t, db.SQLWithContext(ctx).Create(&job).Error)

	var stored models.Job
	require.NoError(t, db.SQLWithContext(ctx).First(&stored, "id = ?", job.ID).Error)
	assert.Equal(t, []uuid.UUID{assignee}, []uuid.UUID(stored.AssignedTo))
	assert.Equal(t, job.Checklist[2].ID, stored.Checklist[2].ID)
	assert.Equal(t, []string{"https://cdn.test/a.jpg"}, []string(stored.MediaURLs))

	property := models.Property{
		BaseUUIDModel: models.NewBaseUUIDModel(time.Now()),
		Name:          "Harbour Loft",
		ParLevels:     map[string]int{"Towels": 10},
	}
	require.NoError(t, db.SQLWithContext(ctx).Create(&property).Error)

	var storedProperty models.Property
	require.NoError(t, db.SQLWithContext(ctx).First(&storedProperty, "id = ?", property.ID).Error)
	assert.Equal(t, map[string]int{"Towels": 10}, storedProperty.ParLevels)
}

func TestDB_TransactionRollsBack(t *testing.T) {
	db := newTestDB(t)
	item := models.InventoryItem{ID: uuid.New(), PropertyID: uuid.New(), Name: "Towels", CurrentCount: 4}
	require.NoError(t, db.SQL.Create(&item).Error)

	boom := errors.New("boom")
	err := db.SQL.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&item).Update("current_count", 99).Error; err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	var stored models.InventoryItem
	require.NoError(t, db.SQL.First(&stored, "id = ?", item.ID).Error)
	assert.Equal(t, 4, stored.CurrentCount)
}

func TestKeyedMutex_SerializesSameKey(t *testing.T) {
	locks := NewKeyedMutex()
	counter := 0

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.Lock("job-1")
			defer unlock()
			value := counter
			time.Sleep(time.Microsecond)
			counter = value + 1
		}()
	}
	wg.Wait()

	assert.Equal(t, 50, counter)
	assert.Equal(t, 0, locks.size(), "idle keys are released")
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	locks := NewKeyedMutex()
	unlockA := locks.Lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlockB := locks.Lock("b")
		unlockB()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on a different key blocked")
	}
}
