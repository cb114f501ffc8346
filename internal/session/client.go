package session

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"duoreport/internal/models"
)

// Client is one participant's live connection into a room.
type Client struct {
	Conn     *websocket.Conn
	Username string
	JoinedAt time.Time

	mu   sync.Mutex
	hook func(models.Message) error
}

func NewClient(conn *websocket.Conn, username string) *Client {
	return &Client{
		Conn:     conn,
		Username: username,
		JoinedAt: time.Now(),
	}
}

// SetSendHook replaces the default WebSocket sender (used in tests).
func (c *Client) SetSendHook(fn func(models.Message) error) {
	c.mu.Lock()
	c.hook = fn
	c.mu.Unlock()
}

func (c *Client) Send(msg models.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.hook != nil {
		return c.hook(msg)
	}
	if c.Conn == nil {
		return nil
	}
	return c.Conn.WriteJSON(msg)
}
