// Package store persists room documents in a shared Redis instance with a
// refreshing expiry. Writes are unconditional full-record overwrites; the
// expiry clock is reset atomically with every write.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"duoreport/internal/models"
)

// ErrNotFound is returned when no document exists for a room (never stored,
// or expired).
var ErrNotFound = errors.New("document not found")

const DefaultTTL = time.Hour

// Store is a Redis-backed document store keyed by "report:" + room id.
type Store struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

func New(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		client: client,
		prefix: "report:",
		ttl:    ttl,
	}
}

func (s *Store) key(roomID string) string {
	return s.prefix + roomID
}

// Get loads the document for a room. Missing or expired records yield
// ErrNotFound. The section set is normalized on the way out.
func (s *Store) Get(ctx context.Context, roomID string) (*models.Document, error) {
	data, err := s.client.Get(ctx, s.key(roomID)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", roomID, err)
	}

	var doc models.Document
	if err := json.Unmarshal([]byte(data), &doc); err != nil {
		return nil, fmt.Errorf("unmarshal document %s: %w", roomID, err)
	}
	doc.Normalize()
	return &doc, nil
}

// Put overwrites the document and resets its expiry in one step.
func (s *Store) Put(ctx context.Context, roomID string, doc *models.Document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal document %s: %w", roomID, err)
	}
	if err := s.client.Set(ctx, s.key(roomID), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("put document %s: %w", roomID, err)
	}
	return nil
}

// CreateIfAbsent seeds the document only when no record exists, so two
// near-simultaneous creators cannot clobber each other. Reports whether
// this call created the record.
func (s *Store) CreateIfAbsent(ctx context.Context, roomID string, doc *models.Document) (bool, error) {
	data, err := json.Marshal(doc)
	if err != nil {
		return false, fmt.Errorf("marshal document %s: %w", roomID, err)
	}
	created, err := s.client.SetNX(ctx, s.key(roomID), data, s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("create document %s: %w", roomID, err)
	}
	return created, nil
}

func (s *Store) Exists(ctx context.Context, roomID string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(roomID)).Result()
	if err != nil {
		return false, fmt.Errorf("check document %s: %w", roomID, err)
	}
	return n > 0, nil
}

// Refresh re-writes the stored document with a bumped last_active timestamp,
// extending its expiry. A missing record is left missing.
func (s *Store) Refresh(ctx context.Context, roomID string) error {
	doc, err := s.Get(ctx, roomID)
	if err != nil {
		return err
	}
	doc.LastActive = time.Now().Unix()
	return s.Put(ctx, roomID, doc)
}

// Ping checks the backing Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Close() error {
	return s.client.Close()
}
