package websockets

import (
	"context"
	"testing"
	"time"

	"luminaops/internal/events"
	. "luminaops/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserLookup struct {
	mock.Mock
}

func (m *MockUserLookup) GetByID(ctx context.Context, id uuid.UUID) (*User, error) {
	args := m.Called(ctx, id)
	if user := args.Get(0); user != nil {
		return user.(*User), args.Error(1)
	}
	return nil, args.Error(1)
}

func newTestManager(t *testing.T, users UserLookup) (*Manager, *events.EventBus) {
	t.Helper()

	bus := events.New(nil)
	manager, err := New(bus, users)
	require.NoError(t, err)
	t.Cleanup(func() {
		manager.Close()
		_ = bus.Close()
	})
	return manager, bus
}

func connectClient(m *Manager, user *User) *Client {
	client := &Client{
		ID:      uuid.New().String(),
		Manager: m,
		Status:  STATUS_UNAUTHENTICATED,
		send:    make(chan Message, SEND_CHANNEL_SIZE),
	}
	m.hub.register(client)
	if user != nil {
		client.User = user
		m.hub.authenticate(client)
	}
	return client
}

func staff(role Role) *User {
	user := &User{Name: string(role), Role: role, Active: true}
	user.ID = uuid.New()
	return user
}

func receive(t *testing.T, client *Client) Message {
	t.Helper()

	select {
	case message := <-client.send:
		return message
	case <-time.After(time.Second):
		t.Fatal("no message delivered")
		return Message{}
	}
}

func TestRelayOperationsToAuthenticatedClients(t *testing.T) {
	manager, bus := newTestManager(t, &MockUserLookup{})

	cleaner := connectClient(manager, staff(RoleCleaner))
	pending := connectClient(manager, nil)

	require.NoError(t, bus.Publish(events.OPERATIONS_CHANNEL, events.Event{
		Type:    events.JOB_STARTED,
		Message: "Turnover started",
		Data:    map[string]any{"jobId": "job-1"},
	}))

	message := receive(t, cleaner)
	assert.Equal(t, MESSAGE_TYPE_EVENT, message.Type)
	assert.Equal(t, string(events.JOB_STARTED), message.Action)
	assert.Equal(t, events.OPERATIONS_CHANNEL.String(), message.Channel)
	assert.Equal(t, "Turnover started", message.Data["message"])

	assert.Empty(t, pending.send)
}

func TestAlertsOnlyReachAdmins(t *testing.T) {
	manager, bus := newTestManager(t, &MockUserLookup{})

	admin := connectClient(manager, staff(RoleAdmin))
	cleaner := connectClient(manager, staff(RoleCleaner))

	require.NoError(t, bus.Publish(events.ALERTS_CHANNEL, events.Event{
		Type:    events.LOW_STOCK,
		Message: "Toilet Roll below par",
	}))

	message := receive(t, admin)
	assert.Equal(t, string(events.LOW_STOCK), message.Action)

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, cleaner.send)
}

func TestHandleAuthResponse(t *testing.T) {
	active := staff(RoleHandyman)
	inactive := staff(RoleCleaner)
	inactive.Active = false

	users := &MockUserLookup{}
	users.On("GetByID", mock.Anything, active.ID).Return(active, nil)
	users.On("GetByID", mock.Anything, inactive.ID).Return(inactive, nil)

	manager, _ := newTestManager(t, users)

	tests := []struct {
		name       string
		userID     string
		wantType   string
		wantStatus int
	}{
		{name: "active user", userID: active.ID.String(), wantType: MESSAGE_TYPE_AUTH_SUCCESS, wantStatus: STATUS_AUTHENTICATED},
		{name: "inactive user", userID: inactive.ID.String(), wantType: MESSAGE_TYPE_AUTH_FAILURE, wantStatus: STATUS_UNAUTHENTICATED},
		{name: "malformed id", userID: "not-a-uuid", wantType: MESSAGE_TYPE_AUTH_FAILURE, wantStatus: STATUS_UNAUTHENTICATED},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := connectClient(manager, nil)

			client.routeMessage(Message{
				Type: MESSAGE_TYPE_AUTH_RESPONSE,
				Data: map[string]any{"userId": tt.userID},
			})

			assert.Equal(t, tt.wantType, receive(t, client).Type)
			assert.Equal(t, tt.wantStatus, manager.hub.statusOf(client))
		})
	}
}

func TestUnauthenticatedMessagesAreRejected(t *testing.T) {
	manager, _ := newTestManager(t, &MockUserLookup{})
	client := connectClient(manager, nil)

	client.routeMessage(Message{Type: "subscribe"})

	message := receive(t, client)
	assert.Equal(t, MESSAGE_TYPE_AUTH_FAILURE, message.Type)
	assert.Equal(t, "authentication_required", message.Action)
}

func TestCloseShutsClientsDown(t *testing.T) {
	manager, _ := newTestManager(t, &MockUserLookup{})
	client := connectClient(manager, staff(RoleAdmin))

	manager.Close()

	assert.Eventually(t, func() bool { return manager.hub.count() == 0 }, time.Second, 10*time.Millisecond)
	_, open := <-client.send
	assert.False(t, open)
	assert.False(t, manager.hub.send(client, Message{}))
}
