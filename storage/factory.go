package storage

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/sensa-code/anesthesiamonitor/config"
	"github.com/sensa-code/anesthesiamonitor/database"
	"github.com/sensa-code/anesthesiamonitor/logger"
	"github.com/sensa-code/anesthesiamonitor/redisclient"
)

// NewFromConfig 按配置组装存储后端与日志器。嵌入方（同步服务/导出工具）
// 启动时调用一次，cfg.Storage 取 "memory"、"redis" 或 "postgres"。
// postgres 路径会建连、ping 并初始化单行表；redis 路径会 ping。
func NewFromConfig(ctx context.Context, cfg *config.Config) (Store, *zap.Logger, error) {
	log, err := logger.NewLogger(cfg.Log.Level, cfg.Log.Format, "anesthesia-storage")
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}

	switch cfg.Storage {
	case "", "memory":
		log.Info("using in-memory session store")
		return NewMemoryStore(), log, nil

	case "redis":
		client := redisclient.NewRedisClient(&cfg.Redis)
		if err := redisclient.Ping(ctx, client); err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info("using redis session store", zap.String("addr", cfg.Redis.Addr))
		return NewRedisStore(client, log), log, nil

	case "postgres":
		db, err := database.NewPostgresDB(&cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect postgres: %w", err)
		}
		store := NewPostgresStore(db, log)
		if err := store.Init(ctx); err != nil {
			return nil, nil, err
		}
		log.Info("using postgres session store", zap.String("host", cfg.Database.Host))
		return store, log, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage)
	}
}
