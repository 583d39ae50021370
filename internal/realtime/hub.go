package realtime

import (
	"sync"
)

// Client represents a single websocket client connection.
// We keep it minimal here; the actual network conn is managed in the ws handler.
type Client interface {
	Send(message []byte) bool
	Close()
}

// Hub tracks which users currently have a live connection and which
// per-booking rooms each connection has joined. It is the only owner of this
// state; handlers go through Hub methods.
//
// Presence policy: at most one connection per user. A second registration for
// the same user is silently ignored, so only the first connection receives
// direct notifications. Delivery is fire-and-forget; durable chat history is
// the fallback for anything missed live.
type Hub struct {
	mu       sync.RWMutex
	presence map[string]Client              // user ID -> registered connection
	users    map[Client]string              // reverse index for Unregister
	rooms    map[string]map[Client]struct{} // booking ID -> members
	joined   map[Client]map[string]struct{} // connection -> joined rooms
}

// NewHub returns an empty hub. Construct one in main and inject it where
// needed; tests build their own.
func NewHub() *Hub {
	return &Hub{
		presence: make(map[string]Client),
		users:    make(map[Client]string),
		rooms:    make(map[string]map[Client]struct{}),
		joined:   make(map[Client]map[string]struct{}),
	}
}

// Register adds a presence entry for the user unless one already exists.
func (h *Hub) Register(userID string, client Client) {
	if userID == "" || client == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.presence[userID]; ok {
		return
	}
	h.presence[userID] = client
	h.users[client] = userID
}

// Lookup returns the user's registered connection. Absence is not an error;
// it means no direct notification can be delivered right now.
func (h *Hub) Lookup(userID string) (Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.presence[userID]
	return c, ok
}

// Unregister removes the connection's presence entry and all of its room
// memberships. Idempotent; called on disconnect.
func (h *Hub) Unregister(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if userID, ok := h.users[client]; ok {
		delete(h.users, client)
		if h.presence[userID] == client {
			delete(h.presence, userID)
		}
	}
	for bookingID := range h.joined[client] {
		if members, ok := h.rooms[bookingID]; ok {
			delete(members, client)
			if len(members) == 0 {
				delete(h.rooms, bookingID)
			}
		}
	}
	delete(h.joined, client)
}

// JoinRoom adds the connection to the room named after the booking.
// Authorization against the booking's participants happens in the ws handler
// before this is called.
func (h *Hub) JoinRoom(client Client, bookingID string) {
	if client == nil || bookingID == "" {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.rooms[bookingID]; !ok {
		h.rooms[bookingID] = make(map[Client]struct{})
	}
	h.rooms[bookingID][client] = struct{}{}
	if _, ok := h.joined[client]; !ok {
		h.joined[client] = make(map[string]struct{})
	}
	h.joined[client][bookingID] = struct{}{}
}

// BroadcastToRoom delivers the message to every room member except exclude.
// No acknowledgment and no retry; a failed write is left for the member's
// reader loop to clean up.
func (h *Hub) BroadcastToRoom(bookingID string, message []byte, exclude Client) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[bookingID] {
		if c == exclude {
			continue
		}
		c.Send(message)
	}
}

// SendToUser delivers a direct notification to the user's registered
// connection. Returns false when the user is not present.
func (h *Hub) SendToUser(userID string, message []byte) bool {
	h.mu.RLock()
	c, ok := h.presence[userID]
	h.mu.RUnlock()
	if !ok {
		return false
	}
	return c.Send(message)
}
