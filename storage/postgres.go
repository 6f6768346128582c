package storage

import (
	"context"
	"database/sql"
	"fmt"

	"go.uber.org/zap"

	"github.com/sensa-code/anesthesiamonitor/models"
)

// PostgresStore 把 session 列表 blob 存在单行表里（id 恒为 1），
// 语义与 Redis/AsyncStorage 的单 key blob 完全一致。
type PostgresStore struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewPostgresStore(db *sql.DB, logger *zap.Logger) *PostgresStore {
	return &PostgresStore{db: db, logger: logger}
}

// Init 建表（幂等）。嵌入方启动时调用一次。
func (s *PostgresStore) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS anesthesia_sessions (
			id INT PRIMARY KEY CHECK (id = 1),
			payload JSONB NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("init sessions table: %w", err)
	}
	return nil
}

func (s *PostgresStore) LoadSessions(ctx context.Context) ([]models.AnesthesiaSession, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM anesthesia_sessions WHERE id = 1`).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return []models.AnesthesiaSession{}, nil
		}
		return nil, fmt.Errorf("load sessions: %w", err)
	}
	return decodeSessions(raw, s.logger), nil
}

func (s *PostgresStore) SaveSessions(ctx context.Context, sessions []models.AnesthesiaSession) error {
	data, err := encodeSessions(sessions)
	if err != nil {
		return fmt.Errorf("encode sessions: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO anesthesia_sessions (id, payload, updated_at)
		VALUES (1, $1, NOW())
		ON CONFLICT (id) DO UPDATE SET payload = EXCLUDED.payload, updated_at = NOW()`,
		data)
	if err != nil {
		return fmt.Errorf("save sessions: %w", err)
	}
	return nil
}

func (s *PostgresStore) SaveSession(ctx context.Context, session models.AnesthesiaSession) error {
	sessions, err := s.LoadSessions(ctx)
	if err != nil {
		return err
	}
	return s.SaveSessions(ctx, upsertSession(sessions, session))
}

func (s *PostgresStore) DeleteSession(ctx context.Context, sessionID string) error {
	sessions, err := s.LoadSessions(ctx)
	if err != nil {
		return err
	}
	return s.SaveSessions(ctx, removeSession(sessions, sessionID))
}

func (s *PostgresStore) FindLatestUnfinished(ctx context.Context) (*models.AnesthesiaSession, error) {
	sessions, err := s.LoadSessions(ctx)
	if err != nil {
		return nil, err
	}
	return latestUnfinished(sessions), nil
}
