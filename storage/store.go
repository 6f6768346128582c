// Package storage 持久化 session 列表。与 App 端 AsyncStorage 的约定
// 保持一致：整个列表作为一个 JSON blob 存在固定 key 下，读-改-写。
// 载荷损坏按"防御性回退"处理：降级为空列表并告警，绝不把解码错误
// 抛给表单层。
package storage

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/sensa-code/anesthesiamonitor/formatters"
	"github.com/sensa-code/anesthesiamonitor/models"
)

// SessionsKey 所有 session 存放的固定 key（兼容 App 端既有数据）
const SessionsKey = "anesthesia_sessions"

// Store session 持久化接口。实现有 MemoryStore / RedisStore / PostgresStore。
type Store interface {
	// LoadSessions 读取全部 session，存储为空或载荷损坏时返回空列表
	LoadSessions(ctx context.Context) ([]models.AnesthesiaSession, error)
	// SaveSessions 整体覆盖写入
	SaveSessions(ctx context.Context, sessions []models.AnesthesiaSession) error
	// SaveSession 按 ID upsert 单个 session
	SaveSession(ctx context.Context, session models.AnesthesiaSession) error
	// DeleteSession 按 ID 删除，不存在时静默成功
	DeleteSession(ctx context.Context, sessionID string) error
	// FindLatestUnfinished 返回开始时间最新的未结束 session，没有则返回 nil
	FindLatestUnfinished(ctx context.Context) (*models.AnesthesiaSession, error)
}

// decodeSessions 解码 session blob。解不开或不是数组时降级为空列表。
func decodeSessions(raw []byte, logger *zap.Logger) []models.AnesthesiaSession {
	if len(raw) == 0 {
		return []models.AnesthesiaSession{}
	}
	var sessions []models.AnesthesiaSession
	if err := json.Unmarshal(raw, &sessions); err != nil {
		logger.Warn("corrupted sessions payload, falling back to empty list",
			zap.Error(err))
		return []models.AnesthesiaSession{}
	}
	if sessions == nil {
		// "null" 等合法但非数组的 JSON
		return []models.AnesthesiaSession{}
	}
	return sessions
}

func encodeSessions(sessions []models.AnesthesiaSession) ([]byte, error) {
	if sessions == nil {
		sessions = []models.AnesthesiaSession{}
	}
	return json.Marshal(sessions)
}

// upsertSession 按 ID 更新或追加，返回新列表（不改入参）
func upsertSession(sessions []models.AnesthesiaSession, session models.AnesthesiaSession) []models.AnesthesiaSession {
	result := make([]models.AnesthesiaSession, len(sessions))
	copy(result, sessions)
	for i := range result {
		if result[i].ID == session.ID {
			result[i] = session
			return result
		}
	}
	return append(result, session)
}

// removeSession 按 ID 过滤
func removeSession(sessions []models.AnesthesiaSession, sessionID string) []models.AnesthesiaSession {
	result := make([]models.AnesthesiaSession, 0, len(sessions))
	for _, s := range sessions {
		if s.ID != sessionID {
			result = append(result, s)
		}
	}
	return result
}

// latestUnfinished 未结束 session 里开始时间最新的一个。
// startTime 解析失败的按零值时间参与排序，不会 panic。
func latestUnfinished(sessions []models.AnesthesiaSession) *models.AnesthesiaSession {
	var unfinished []models.AnesthesiaSession
	for _, s := range sessions {
		if !s.Finished() {
			unfinished = append(unfinished, s)
		}
	}
	if len(unfinished) == 0 {
		return nil
	}
	sort.SliceStable(unfinished, func(i, j int) bool {
		return startedAt(unfinished[i]).After(startedAt(unfinished[j]))
	})
	latest := unfinished[0]
	return &latest
}

func startedAt(s models.AnesthesiaSession) time.Time {
	t, ok := formatters.ParseTimestamp(s.StartTime)
	if !ok {
		return time.Time{}
	}
	return t
}
