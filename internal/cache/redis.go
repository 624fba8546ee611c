package cache

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/vendorhub/payout/internal/config"

	"github.com/redis/go-redis/v9"
)

const defaultKeyPrefix = "vp"

type store struct {
	client *redis.Client
	prefix string
}

// 未启用 Redis 时为 nil，所有读写降级为空操作
var current *store

// InitRedis 初始化 Redis 客户端，未启用时保持降级状态
func InitRedis(cfg *config.RedisConfig) error {
	if current != nil {
		_ = Close()
	}
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	current = &store{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr(),
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
		prefix: prefix,
	}
	return nil
}

// Close 关闭 Redis 连接
func Close() error {
	s := current
	current = nil
	if s == nil {
		return nil
	}
	return s.client.Close()
}

// Enabled 判断缓存是否启用
func Enabled() bool {
	return current != nil
}

// Client 获取 Redis 客户端，未启用时返回 nil
func Client() *redis.Client {
	if current == nil {
		return nil
	}
	return current.client
}

// Prefix 当前 key 前缀
func Prefix() string {
	if current == nil {
		return defaultKeyPrefix
	}
	return current.prefix
}

// Ping 检查 Redis 连通性
func Ping(ctx context.Context) error {
	if current == nil {
		return nil
	}
	return current.client.Ping(ctx).Err()
}

// GetJSON 读取 JSON 缓存，返回是否命中
func GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if current == nil {
		return false, nil
	}
	raw, err := current.client.Get(ctx, current.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if current == nil {
		return nil
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return current.client.Set(ctx, current.key(key), raw, ttl).Err()
}

// Del 删除缓存
func Del(ctx context.Context, key string) error {
	if current == nil {
		return nil
	}
	return current.client.Del(ctx, current.key(key)).Err()
}

func (s *store) key(key string) string {
	return joinKey(s.prefix, key)
}

func joinKey(prefix, key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return prefix
	}
	return prefix + ":" + key
}
