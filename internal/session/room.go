package session

import (
	"sync"

	"go.uber.org/zap"

	"duoreport/internal/models"
)

// MaxParticipants caps a room at two live connections.
const MaxParticipants = 2

// Room tracks the connected participants for one collaboration session.
// The authoritative document lives in the store; the room only holds live
// connection state.
type Room struct {
	ID string

	mu      sync.Mutex
	clients []*Client
	log     *zap.Logger
}

func NewRoom(id string, log *zap.Logger) *Room {
	return &Room{ID: id, log: log}
}

// Join adds a participant unless the room is full. A rejected join performs
// no mutation.
func (r *Room) Join(c *Client) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.clients) >= MaxParticipants {
		return false
	}
	r.clients = append(r.clients, c)
	return true
}

// Leave removes the participant by identity and reports how many remain.
func (r *Room) Leave(c *Client) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.clients {
		if existing == c {
			r.clients = append(r.clients[:i], r.clients[i+1:]...)
			break
		}
	}
	return len(r.clients)
}

func (r *Room) ParticipantCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// Usernames lists connected participants in join order.
func (r *Room) Usernames() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.clients))
	for i, c := range r.clients {
		names[i] = c.Username
	}
	return names
}

// Broadcast delivers msg to every participant except the sender. A delivery
// failure for one recipient is logged and does not affect the others.
func (r *Room) Broadcast(sender *Client, msg models.Message) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.clients {
		if c == sender {
			continue
		}
		if err := c.Send(msg); err != nil {
			r.log.Warn("broadcast delivery failed",
				zap.String("room", r.ID),
				zap.String("recipient", c.Username),
				zap.Error(err))
		}
	}
}
