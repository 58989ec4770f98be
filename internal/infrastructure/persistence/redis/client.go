package redis

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/xiebiao/bookreview/internal/infrastructure/config"
)

// 连接池兜底值:配置未填时也能得到可用的会话存储
const (
	defaultPoolSize     = 20
	defaultMinIdleConns = 5
	pingTimeout         = 3 * time.Second
)

// NewClient 创建Redis客户端
// 设计说明:
// 1. Redis在本服务中承载会话与令牌黑名单(见session.go),
//    读写都在登录态校验的关键路径上,连接池参数从配置读取
// 2. 未配置的池参数落到兜底值,避免零值池导致的串行排队
// 3. 启动时带超时Ping,失败快速暴露而不是等到首个请求才报错
func NewClient(cfg *config.Config) (*redis.Client, error) {
	poolSize := cfg.Redis.PoolSize
	if poolSize <= 0 {
		poolSize = defaultPoolSize
	}
	minIdle := cfg.Redis.MinIdleConns
	if minIdle <= 0 {
		minIdle = defaultMinIdleConns
	}

	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     poolSize,
		MinIdleConns: minIdle,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
	})

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis连接失败: %w", err)
	}

	log.Println("✓ Redis连接成功")
	return client, nil
}
