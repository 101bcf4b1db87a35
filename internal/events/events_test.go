package events

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBus_LocalDelivery(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	received := make(chan Event, 1)
	require.NoError(t, bus.Subscribe(OPERATIONS_CHANNEL, func(event Event) error {
		received <- event
		return nil
	}))

	require.NoError(t, bus.Publish(OPERATIONS_CHANNEL, Event{Type: JOB_COMPLETED, Message: "done"}))

	select {
	case event := <-received:
		assert.Equal(t, JOB_COMPLETED, event.Type)
		assert.Equal(t, OPERATIONS_CHANNEL, event.Channel)
		assert.NotEmpty(t, event.ID)
		assert.NotEmpty(t, event.Origin)
		assert.False(t, event.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestEventBus_ChannelsAreIsolated(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	var mu sync.Mutex
	var alerts []Event
	require.NoError(t, bus.Subscribe(ALERTS_CHANNEL, func(event Event) error {
		mu.Lock()
		defer mu.Unlock()
		alerts = append(alerts, event)
		return nil
	}))

	require.NoError(t, bus.Publish(OPERATIONS_CHANNEL, Event{Type: JOB_CREATED}))
	require.NoError(t, bus.Publish(ALERTS_CHANNEL, Event{Type: LOW_STOCK}))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(alerts) == 1
	}, time.Second, 10*time.Millisecond)

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	require.Len(t, alerts, 1)
	assert.Equal(t, LOW_STOCK, alerts[0].Type)
}

func TestEventBus_HandlerErrorDoesNotFailPublish(t *testing.T) {
	bus := New(nil)
	defer bus.Close()

	require.NoError(t, bus.Subscribe(ALERTS_CHANNEL, func(Event) error {
		return errors.New("handler broke")
	}))

	assert.NoError(t, bus.Publish(ALERTS_CHANNEL, Event{Type: JOB_OVERDUE}))
}
