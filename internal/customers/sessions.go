package customers

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"
	"github.com/padoca/confeitaria/internal/redisx"
	"github.com/redis/go-redis/v9"
)

var ErrNoSession = errors.New("session not found or expired")

// Sessions stores login sessions in Redis: an opaque uuid token mapping to
// the customer id, expiring after redisx.TTLSession.
type Sessions struct{ R *redis.Client }

func (s *Sessions) Create(ctx context.Context, customerID int64) (string, error) {
	token := uuid.NewString()
	key := fmt.Sprintf(redisx.KeySession, token)
	if err := s.R.Set(ctx, key, strconv.FormatInt(customerID, 10), redisx.TTLSession).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Resolve maps a token back to the customer id. ErrNoSession for unknown or
// expired tokens.
func (s *Sessions) Resolve(ctx context.Context, token string) (int64, error) {
	if token == "" {
		return 0, ErrNoSession
	}
	v, err := s.R.Get(ctx, fmt.Sprintf(redisx.KeySession, token)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, ErrNoSession
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(v, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrNoSession
	}
	return id, nil
}

func (s *Sessions) Destroy(ctx context.Context, token string) error {
	return s.R.Del(ctx, fmt.Sprintf(redisx.KeySession, token)).Err()
}
