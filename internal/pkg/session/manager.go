package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	xerrors "fleetflow-service/internal/pkg/errors"

	"github.com/redis/go-redis/v9"
)

// Data is what we keep in Redis per issued token.
type Data struct {
	JTI       string    `json:"jti"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	LoginAt   time.Time `json:"login_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Manager stores operator sessions in Redis, keyed by token jti. A token
// whose session has been deleted is treated as logged out even if its
// signature is still valid.
type Manager struct {
	client *redis.Client
}

func NewManager(client *redis.Client) *Manager {
	return &Manager{client: client}
}

// Create stores a new session with a TTL matching the token expiry.
func (m *Manager) Create(ctx context.Context, data *Data) error {
	ttl := time.Until(data.ExpiresAt)
	if ttl <= 0 {
		return xerrors.Unauthorizedf("session already expired")
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return xerrors.Wrap(err, "marshal session")
	}
	if err := m.client.Set(ctx, m.key(data.JTI), raw, ttl).Err(); err != nil {
		return xerrors.Wrap(err, "store session in redis")
	}
	return nil
}

// Get returns the session for a jti, or ErrUnauthorized if it is gone.
func (m *Manager) Get(ctx context.Context, jti string) (*Data, error) {
	raw, err := m.client.Get(ctx, m.key(jti)).Bytes()
	if err == redis.Nil {
		return nil, xerrors.Unauthorizedf("session not found")
	}
	if err != nil {
		return nil, xerrors.Wrap(err, "fetch session from redis")
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, xerrors.Wrap(err, "unmarshal session")
	}
	return &data, nil
}

// Delete removes a session, logging the operator out.
func (m *Manager) Delete(ctx context.Context, jti string) error {
	if err := m.client.Del(ctx, m.key(jti)).Err(); err != nil {
		return xerrors.Wrap(err, "delete session from redis")
	}
	return nil
}

func (m *Manager) key(jti string) string {
	return fmt.Sprintf("session:%s", jti)
}
