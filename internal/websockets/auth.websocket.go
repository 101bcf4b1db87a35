package websockets

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const AUTH_HANDSHAKE_TIMEOUT = 10 * time.Second

func authFailure(action, reason string) Message {
	return Message{
		ID:        uuid.New().String(),
		Type:      MESSAGE_TYPE_AUTH_FAILURE,
		Channel:   "system",
		Action:    action,
		Data:      map[string]any{"reason": reason},
		Timestamp: time.Now(),
	}
}

func (c *Client) startAuthTimeout() {
	time.AfterFunc(AUTH_HANDSHAKE_TIMEOUT, func() {
		if c.Manager.hub.statusOf(c) != STATUS_UNAUTHENTICATED {
			return
		}

		c.Manager.log.Function("startAuthTimeout").Warn("Client failed to authenticate in time", "clientID", c.ID)
		c.closeConnection()
	})
}

// handleAuthResponse expects {"data": {"userId": "<uuid>"}} naming an active
// user.
func (c *Client) handleAuthResponse(message Message) {
	log := c.Manager.log.Function("handleAuthResponse")

	if c.Manager.hub.statusOf(c) != STATUS_UNAUTHENTICATED {
		log.Warn("Auth response from already authenticated client", "clientID", c.ID)
		return
	}

	rawID, _ := message.Data["userId"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		c.rejectAuth("Invalid user id")
		return
	}

	ctx, cancel := context.WithTimeout(c.Manager.ctx, 5*time.Second)
	defer cancel()

	user, err := c.Manager.users.GetByID(ctx, userID)
	if err != nil || !user.Active {
		c.rejectAuth("Unknown or inactive user")
		return
	}

	c.User = user
	c.Manager.hub.authenticate(c)
	log.Info("Client authenticated", "clientID", c.ID, "userID", user.ID)

	c.queue(Message{
		ID:        uuid.New().String(),
		Type:      MESSAGE_TYPE_AUTH_SUCCESS,
		Channel:   "system",
		Action:    "authenticated",
		Data:      map[string]any{"userId": user.ID.String(), "role": string(user.Role)},
		Timestamp: time.Now(),
	})
}

func (c *Client) rejectAuth(reason string) {
	c.queue(authFailure("authentication_failed", reason))

	c.Manager.log.Function("rejectAuth").Info("Auth failure sent, closing connection", "clientID", c.ID, "reason", reason)
	time.AfterFunc(100*time.Millisecond, c.closeConnection)
}

func (c *Client) closeConnection() {
	if c.Connection != nil {
		_ = c.Connection.Close()
	}
}
