package storage

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"github.com/sensa-code/anesthesiamonitor/models"
)

// RedisStore 把 session 列表作为单个 JSON blob 存在 Redis 的固定 key 下
// （与 App 端 AsyncStorage 同构）。不设 TTL，session 数据不过期。
type RedisStore struct {
	client *redis.Client
	logger *zap.Logger
}

func NewRedisStore(client *redis.Client, logger *zap.Logger) *RedisStore {
	return &RedisStore{client: client, logger: logger}
}

func (s *RedisStore) LoadSessions(ctx context.Context) ([]models.AnesthesiaSession, error) {
	raw, err := s.client.Get(ctx, SessionsKey).Bytes()
	if err != nil {
		if err == redis.Nil {
			return []models.AnesthesiaSession{}, nil
		}
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	return decodeSessions(raw, s.logger), nil
}

func (s *RedisStore) SaveSessions(ctx context.Context, sessions []models.AnesthesiaSession) error {
	data, err := encodeSessions(sessions)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	if err := s.client.Set(ctx, SessionsKey, data, 0).Err(); err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	return nil
}

func (s *RedisStore) SaveSession(ctx context.Context, session models.AnesthesiaSession) error {
	sessions, err := s.LoadSessions(ctx)
	if err != nil {
		return err
	}
	return s.SaveSessions(ctx, upsertSession(sessions, session))
}

func (s *RedisStore) DeleteSession(ctx context.Context, sessionID string) error {
	sessions, err := s.LoadSessions(ctx)
	if err != nil {
		return err
	}
	return s.SaveSessions(ctx, removeSession(sessions, sessionID))
}

func (s *RedisStore) FindLatestUnfinished(ctx context.Context) (*models.AnesthesiaSession, error) {
	sessions, err := s.LoadSessions(ctx)
	if err != nil {
		return nil, err
	}
	return latestUnfinished(sessions), nil
}
