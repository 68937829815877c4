package media

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/d60-Lab/gin-blog/config"
	"github.com/d60-Lab/gin-blog/pkg/logger"
)

// New 按 media.backend 构造存储；close 释放底层连接
func New(ctx context.Context, cfg config.MediaConfig) (store Store, closeFn func() error, err error) {
	switch cfg.Backend {
	case "cloudinary":
		s, err := NewCloudinaryStore(cfg.Cloudinary)
		if err != nil {
			return nil, nil, err
		}
		return s, func() error { return nil }, nil
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:        cfg.Redis.Addr,
			Password:    cfg.Redis.Password,
			DB:          cfg.Redis.DB,
			DialTimeout: 5 * time.Second,
		})
		// 连不上只告警：上传时由 Put 返回 ErrUpload，不影响站点启动
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		if err := client.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis media store unreachable, uploads will fail until it is back",
				zap.String("addr", cfg.Redis.Addr), zap.Error(err))
		}
		return NewRedisStore(client, cfg.Redis.TTL, cfg.Redis.BaseURL, cfg.MaxBytes), client.Close, nil
	default:
		return nil, nil, fmt.Errorf("unsupported media backend %q", cfg.Backend)
	}
}
