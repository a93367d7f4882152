package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"techreads/pkg/models"
)

// Snapshot is the serialized store state the mirror persists. It exists
// so badge counts survive a gateway restart; it is never used to
// reconcile the store with the remote service.
type Snapshot struct {
	Cart     []models.CartEntry     `json:"cart"`
	Wishlist []models.WishlistEntry `json:"wishlist"`
	Version  uint64                 `json:"version"`
	At       time.Time              `json:"at"`
}

// Snapshot captures the current store state under one lock acquisition.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := Snapshot{
		Cart:     make([]models.CartEntry, len(s.cart)),
		Wishlist: make([]models.WishlistEntry, len(s.wishlist)),
		Version:  s.version,
		At:       time.Now().UTC(),
	}
	copy(snap.Cart, s.cart)
	copy(snap.Wishlist, s.wishlist)
	return snap
}

// Restore replaces the store contents from a snapshot. Only called at
// store creation, before any screen has touched it.
func (s *Store) Restore(snap Snapshot) {
	s.mu.Lock()
	s.cart = append([]models.CartEntry(nil), snap.Cart...)
	s.wishlist = append([]models.WishlistEntry(nil), snap.Wishlist...)
	if snap.Version > s.version {
		s.version = snap.Version
	}
	s.mu.Unlock()
}

// Mirror persists per-user snapshots. Implementations are best-effort;
// the in-memory store remains the behavioral source for badges.
type Mirror interface {
	Save(ctx context.Context, userID string, snap Snapshot) error
	Load(ctx context.Context, userID string) (*Snapshot, error)
}

const mirrorField = "snapshot"

// RedisMirror keeps one hash per user with the serialized snapshot in a
// single field.
type RedisMirror struct {
	client *redis.Client
}

func NewRedisMirror(addr string) *RedisMirror {
	opts, err := redis.ParseURL(addr)
	if err != nil {
		// plain "host:port" form
		opts = &redis.Options{
			Addr:         addr,
			MinIdleConns: 1,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  2 * time.Second,
			WriteTimeout: 2 * time.Second,
		}
	}
	return &RedisMirror{client: redis.NewClient(opts)}
}

func (m *RedisMirror) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return m.client.Ping(ctx).Err()
}

func (m *RedisMirror) Save(ctx context.Context, userID string, snap Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := m.client.HSet(ctx, mirrorKey(userID), mirrorField, b).Err(); err != nil {
		return fmt.Errorf("redis hset: %w", err)
	}
	return nil
}

func (m *RedisMirror) Load(ctx context.Context, userID string) (*Snapshot, error) {
	val, err := m.client.HGet(ctx, mirrorKey(userID), mirrorField).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis hget: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(val), &snap); err != nil {
		return nil, fmt.Errorf("decode snapshot: %w", err)
	}
	return &snap, nil
}

func mirrorKey(userID string) string {
	return "techreads:badges:" + userID
}
