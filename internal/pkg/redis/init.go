package redis

import (
	"Trendcast/internal/api/config"
	"Trendcast/internal/pkg/logger"
	"context"
	log "log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

var Rdb *redis.Client

// InitRedis 初始化 Redis 客户端连接，未配置地址时跳过，缓存随之关闭
func InitRedis(cfg config.RedisConfig) error {
	if cfg.Addr == "" {
		log.Info("Redis address not configured, cache disabled")
		return nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,

		MaintNotificationsConfig: &maintnotifications.Config{
			Mode: maintnotifications.ModeDisabled,
		},
	})
	rdb.AddHook(logger.NewRedisLogger())

	ctx := context.Background()

	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return err
	}

	Rdb = rdb
	return nil
}

// Enabled 是否可用
func Enabled() bool {
	return Rdb != nil
}

func Close() error {
	if Rdb == nil {
		return nil
	}
	return Rdb.Close()
}
