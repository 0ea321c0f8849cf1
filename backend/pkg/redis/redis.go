package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"faculty-records/backend/config"
	"faculty-records/backend/pkg/session"
)

// Client Redis 客户端封装
// 当前用于会话状态与接口限流；后续可扩展缓存、分布式锁等场景
type Client struct {
	rdb    *goredis.Client
	logger *zap.Logger
}

// NewClient 创建 Redis 连接并执行 Ping 健康检查
func NewClient(cfg *config.RedisConfig, logger *zap.Logger) (*Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Redis 连接失败: %w", err)
	}

	logger.Info("Redis 连接成功", zap.String("addr", cfg.Addr))

	return &Client{rdb: rdb, logger: logger}, nil
}

// ── 会话存储（实现 session.Store）──
//
// 每个账号只保留一个活跃会话标识；登录时覆盖写入即让旧会话失效。

const sessionPrefix = "session:active:"

// SetActive 记录账号的当前活跃会话标识，覆盖旧值
func (c *Client) SetActive(ctx context.Context, userID, sessionID string, ttl time.Duration) error {
	return c.rdb.Set(ctx, sessionPrefix+userID, sessionID, ttl).Err()
}

// GetActive 返回账号的当前活跃会话标识；不存在时返回 session.ErrNotFound
func (c *Client) GetActive(ctx context.Context, userID string) (string, error) {
	val, err := c.rdb.Get(ctx, sessionPrefix+userID).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", session.ErrNotFound
		}
		return "", err
	}
	return val, nil
}

// Delete 清除账号的活跃会话标识
func (c *Client) Delete(ctx context.Context, userID string) error {
	return c.rdb.Del(ctx, sessionPrefix+userID).Err()
}

// ── 接口限流 ──

// CheckRateLimit 固定键滑动窗口计数：窗口内次数超过 limit 返回 false
func (c *Client) CheckRateLimit(ctx context.Context, key string, limit int, window time.Duration) (bool, error) {
	pipe := c.rdb.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return incr.Val() <= int64(limit), nil
}

// Close 关闭 Redis 连接
func (c *Client) Close() error {
	return c.rdb.Close()
}
