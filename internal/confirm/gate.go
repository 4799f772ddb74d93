// Package confirm implements a generic yes/no gate for destructive actions.
// A caller first requests a confirmation, receiving a token plus a human
// readable prompt naming the target; the destructive operation proceeds only
// when a valid, unexpired token is presented. Tokens are single use.
package confirm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotConfirmed is returned when no valid confirmation exists for the
// presented token.
var ErrNotConfirmed = errors.New("action not confirmed")

// Challenge describes a pending confirmation.
type Challenge struct {
	Token     string    `json:"token"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Dangerous bool      `json:"dangerous"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Gate issues and validates confirmation tokens backed by redis.
type Gate struct {
	client *redis.Client
	ttl    time.Duration
}

// NewGate constructs a gate with the given token lifetime.
func NewGate(client *redis.Client, ttl time.Duration) *Gate {
	if ttl <= 0 {
		ttl = 2 * time.Minute
	}
	return &Gate{client: client, ttl: ttl}
}

// Issue creates a challenge bound to (action, targetID). Dangerous is
// carried as presentation metadata only; it never changes gate behavior.
func (g *Gate) Issue(ctx context.Context, action, targetID, title, message string, dangerous bool) (*Challenge, error) {
	token := uuid.NewString()
	if err := g.client.Set(ctx, g.key(action, targetID, token), "1", g.ttl).Err(); err != nil {
		return nil, fmt.Errorf("store confirmation: %w", err)
	}
	return &Challenge{
		Token:     token,
		Title:     title,
		Message:   message,
		Dangerous: dangerous,
		ExpiresAt: time.Now().Add(g.ttl),
	}, nil
}

// Consume validates and burns a token. A missing, expired, or already used
// token yields ErrNotConfirmed.
func (g *Gate) Consume(ctx context.Context, action, targetID, token string) error {
	if token == "" {
		return ErrNotConfirmed
	}
	val, err := g.client.GetDel(ctx, g.key(action, targetID, token)).Result()
	if err == redis.Nil || val == "" {
		return ErrNotConfirmed
	}
	if err != nil {
		return fmt.Errorf("check confirmation: %w", err)
	}
	return nil
}

func (g *Gate) key(action, targetID, token string) string {
	return "confirm:" + action + ":" + targetID + ":" + token
}
