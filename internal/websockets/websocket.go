package websockets

import (
	"context"
	"time"

	"luminaops/internal/events"
	. "luminaops/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	MESSAGE_TYPE_EVENT         = "event"
	MESSAGE_TYPE_ERROR         = "error"
	MESSAGE_TYPE_AUTH_REQUEST  = "auth_request"
	MESSAGE_TYPE_AUTH_RESPONSE = "auth_response"
	MESSAGE_TYPE_AUTH_SUCCESS  = "auth_success"
	MESSAGE_TYPE_AUTH_FAILURE  = "auth_failure"
	PING_INTERVAL              = 30 * time.Second
	PONG_TIMEOUT               = 60 * time.Second
	WRITE_TIMEOUT              = 10 * time.Second
	MAX_MESSAGE_SIZE           = 64 * 1024
	SEND_CHANNEL_SIZE          = 64
)

type Message struct {
	ID        string         `json:"id"`
	Type      string         `json:"type"`
	Channel   string         `json:"channel,omitempty"`
	Action    string         `json:"action,omitempty"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// UserLookup resolves the user id a client presents during the handshake.
type UserLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)
}

type Client struct {
	ID         string
	User       *User
	Connection *websocket.Conn
	Manager    *Manager
	Status     int
	send       chan Message
}

// Manager relays operations and alert events to connected staff. Clients
// authenticate by answering the auth request with their user id; alerts are
// only forwarded to admins.
type Manager struct {
	hub    *Hub
	users  UserLookup
	log    logger.Logger
	ctx    context.Context
	cancel context.CancelFunc
}

func New(eventBus *events.EventBus, users UserLookup) (*Manager, error) {
	log := logger.New("websockets")
	ctx, cancel := context.WithCancel(context.Background())

	manager := &Manager{
		hub:    newHub(),
		users:  users,
		log:    log,
		ctx:    ctx,
		cancel: cancel,
	}

	for _, channel := range []events.Channel{events.OPERATIONS_CHANNEL, events.ALERTS_CHANNEL} {
		if err := eventBus.Subscribe(channel, manager.relayEvent); err != nil {
			cancel()
			return nil, log.Function("New").Err("failed to subscribe to channel", err, "channel", channel)
		}
	}

	log.Function("New").Info("Starting websocket hub")
	go manager.hub.run(ctx, manager)

	return manager, nil
}

func (m *Manager) Close() {
	m.cancel()
}

func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	log := m.log.Function("HandleWebSocket")

	client := &Client{
		ID:         uuid.New().String(),
		Connection: c,
		Manager:    m,
		Status:     STATUS_UNAUTHENTICATED,
		send:       make(chan Message, SEND_CHANNEL_SIZE),
	}

	authRequest := Message{
		ID:        uuid.New().String(),
		Type:      MESSAGE_TYPE_AUTH_REQUEST,
		Channel:   "system",
		Action:    "authenticate",
		Timestamp: time.Now(),
	}

	if err := c.WriteJSON(authRequest); err != nil {
		log.Er("failed to send auth request", err)
		_ = c.Close()
		return
	}

	m.hub.register(client)
	defer func() {
		m.hub.unregister(client)
		_ = c.Close()
	}()

	client.startAuthTimeout()
	go client.readPump()
	client.writePump()
}

// relayEvent is the event bus handler. Messages without text still go out so
// dashboards can refresh counts.
func (m *Manager) relayEvent(event events.Event) error {
	message := Message{
		ID:      event.ID,
		Type:    MESSAGE_TYPE_EVENT,
		Channel: event.Channel.String(),
		Action:  string(event.Type),
		Data: map[string]any{
			"message": event.Message,
			"detail":  event.Data,
		},
		Timestamp: event.Timestamp,
	}

	adminOnly := event.Channel == events.ALERTS_CHANNEL
	sent := m.hub.deliver(message, func(client *Client) bool {
		return !adminOnly || client.User.IsAdmin()
	})

	m.log.Function("relayEvent").Debug("Event relayed", "eventID", event.ID, "type", event.Type, "clients", sent)
	return nil
}

func (c *Client) readPump() {
	log := c.Manager.log.Function("readPump")
	defer func() {
		c.Manager.hub.unregister(c)
		_ = c.Connection.Close()
	}()

	c.Connection.SetReadLimit(MAX_MESSAGE_SIZE)
	_ = c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	c.Connection.SetPongHandler(func(string) error {
		return c.Connection.SetReadDeadline(time.Now().Add(PONG_TIMEOUT))
	})

	for {
		var message Message
		if err := c.Connection.ReadJSON(&message); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Er("unexpected close", err, "clientID", c.ID)
			}
			return
		}

		c.routeMessage(message)
	}
}

// routeMessage only understands the handshake; the feed is server-push.
func (c *Client) routeMessage(message Message) {
	if message.Type == MESSAGE_TYPE_AUTH_RESPONSE {
		c.handleAuthResponse(message)
		return
	}

	if c.Manager.hub.statusOf(c) != STATUS_AUTHENTICATED {
		c.queue(authFailure("authentication_required", "Authentication required"))
		return
	}

	c.Manager.log.Function("routeMessage").Warn("Ignoring client message", "clientID", c.ID, "type", message.Type)
}

func (c *Client) queue(message Message) {
	if !c.Manager.hub.send(c, message) {
		c.Manager.log.Function("queue").Warn("Dropping message for client", "clientID", c.ID, "type", message.Type)
	}
}

func (c *Client) writePump() {
	log := c.Manager.log.Function("writePump")

	ticker := time.NewTicker(PING_INTERVAL)
	defer func() {
		ticker.Stop()
		_ = c.Connection.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
			if !ok {
				_ = c.Connection.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			if err := c.Connection.WriteJSON(message); err != nil {
				log.Er("websocket write error", err, "clientID", c.ID)
				return
			}

		case <-ticker.C:
			_ = c.Connection.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))
			if err := c.Connection.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
