package websockets

import (
	"context"
	"sync"
)

const (
	STATUS_UNAUTHENTICATED = iota
	STATUS_AUTHENTICATED
	STATUS_CLOSED
)

type Hub struct {
	clients map[string]*Client
	mutex   sync.RWMutex
}

func newHub() *Hub {
	return &Hub{clients: make(map[string]*Client)}
}

// run closes every client once the manager shuts down.
func (h *Hub) run(ctx context.Context, m *Manager) {
	<-ctx.Done()

	h.mutex.Lock()
	defer h.mutex.Unlock()

	for id, client := range h.clients {
		client.Status = STATUS_CLOSED
		close(client.send)
		delete(h.clients, id)
	}
	m.log.Function("run").Info("Websocket hub stopped")
}

func (h *Hub) register(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	h.clients[client.ID] = client
}

// unregister is safe to call from both pumps.
func (h *Hub) unregister(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if _, ok := h.clients[client.ID]; !ok {
		return
	}
	delete(h.clients, client.ID)
	client.Status = STATUS_CLOSED
	close(client.send)
}

func (h *Hub) authenticate(client *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	if client.Status == STATUS_UNAUTHENTICATED {
		client.Status = STATUS_AUTHENTICATED
	}
}

func (h *Hub) statusOf(client *Client) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return client.Status
}

// send queues a message for one client unless it has already been closed.
func (h *Hub) send(client *Client, message Message) bool {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	if client.Status == STATUS_CLOSED {
		return false
	}

	select {
	case client.send <- message:
		return true
	default:
		return false
	}
}

func (h *Hub) count() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	return len(h.clients)
}

// deliver queues the message for every authenticated client accepted by the
// filter. Slow clients drop the message rather than block the bus.
func (h *Hub) deliver(message Message, accept func(*Client) bool) int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()

	sent := 0
	for _, client := range h.clients {
		if client.Status != STATUS_AUTHENTICATED || !accept(client) {
			continue
		}

		select {
		case client.send <- message:
			sent++
		default:
		}
	}
	return sent
}
