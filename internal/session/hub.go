// Package session holds the in-memory room registry: which participants are
// connected to which room, and the per-room keep-alive refresh that stops a
// document from expiring while its room is occupied.
package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"duoreport/internal/metrics"
	"duoreport/internal/store"
)

const DefaultKeepAliveInterval = 5 * time.Second

// Hub is the process-wide room registry. All admissions and removals are
// serialized under its mutex, so the two-participant cap cannot be lost to
// a racing join.
type Hub struct {
	mu        sync.Mutex
	rooms     map[string]*Room
	keepAlive map[string]context.CancelFunc

	store    *store.Store
	interval time.Duration
	log      *zap.Logger
}

func NewHub(st *store.Store, interval time.Duration, log *zap.Logger) *Hub {
	if interval <= 0 {
		interval = DefaultKeepAliveInterval
	}
	return &Hub{
		rooms:     make(map[string]*Room),
		keepAlive: make(map[string]context.CancelFunc),
		store:     st,
		interval:  interval,
		log:       log,
	}
}

// Admit places the client into the room, creating the room entry on first
// use. Reports the room and whether the client was admitted; a full room
// leaves registry state untouched. The first successful admission starts the
// room's keep-alive task.
func (h *Hub) Admit(roomID string, c *Client) (*Room, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomID]
	if !ok {
		room = NewRoom(roomID, h.log)
		h.rooms[roomID] = room
	}
	if !room.Join(c) {
		return room, false
	}

	h.ensureKeepAliveLocked(roomID)
	metrics.SetActiveRooms(len(h.rooms))
	metrics.ParticipantConnected()
	return room, true
}

// Remove drops the client from the room. When the room empties, its registry
// entry is deleted and its keep-alive task cancelled.
func (h *Hub) Remove(roomID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[roomID]
	if !ok {
		return
	}
	if left := room.Leave(c); left == 0 {
		delete(h.rooms, roomID)
		if cancel, ok := h.keepAlive[roomID]; ok {
			cancel()
			delete(h.keepAlive, roomID)
		}
	}
	metrics.SetActiveRooms(len(h.rooms))
	metrics.ParticipantDisconnected()
}

// ParticipantNames lists connected usernames for a room, in join order.
func (h *Hub) ParticipantNames(roomID string) []string {
	h.mu.Lock()
	room, ok := h.rooms[roomID]
	h.mu.Unlock()
	if !ok {
		return []string{}
	}
	return room.Usernames()
}

// HasRoom reports whether the room currently has a registry entry.
func (h *Hub) HasRoom(roomID string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.rooms[roomID]
	return ok
}

// ensureKeepAliveLocked starts at most one refresh task per room. Callers
// hold h.mu.
func (h *Hub) ensureKeepAliveLocked(roomID string) {
	if _, running := h.keepAlive[roomID]; running {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	h.keepAlive[roomID] = cancel
	go h.keepAliveLoop(ctx, roomID)
}

// keepAliveLoop re-writes the room's document every interval so an idle but
// occupied room keeps its expiry fresh. Cancellation is a normal exit; a
// refresh already in flight when the room empties may land one extra write,
// which is harmless.
func (h *Hub) keepAliveLoop(ctx context.Context, roomID string) {
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			err := h.store.Refresh(ctx, roomID)
			if err != nil && !errors.Is(err, store.ErrNotFound) && !errors.Is(err, context.Canceled) {
				h.log.Warn("keep-alive refresh failed",
					zap.String("room", roomID),
					zap.Error(err))
			}
		}
	}
}
