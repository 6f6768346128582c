package storage

import (
	"context"
	"sync"

	"github.com/sensa-code/anesthesiamonitor/models"
)

// MemoryStore 纯内存实现，给测试和不带外部存储的嵌入场景用。
type MemoryStore struct {
	mu       sync.RWMutex
	sessions []models.AnesthesiaSession
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sessions: []models.AnesthesiaSession{}}
}

func (s *MemoryStore) LoadSessions(_ context.Context) ([]models.AnesthesiaSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.AnesthesiaSession, len(s.sessions))
	copy(result, s.sessions)
	return result, nil
}

func (s *MemoryStore) SaveSessions(_ context.Context, sessions []models.AnesthesiaSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = make([]models.AnesthesiaSession, len(sessions))
	copy(s.sessions, sessions)
	return nil
}

func (s *MemoryStore) SaveSession(_ context.Context, session models.AnesthesiaSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = upsertSession(s.sessions, session)
	return nil
}

func (s *MemoryStore) DeleteSession(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions = removeSession(s.sessions, sessionID)
	return nil
}

func (s *MemoryStore) FindLatestUnfinished(_ context.Context) (*models.AnesthesiaSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return latestUnfinished(s.sessions), nil
}
