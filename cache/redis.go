package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"fintrack/config"
	"fintrack/models"

	"github.com/redis/go-redis/v9"
)

const (
	// ListKey 列表缓存的键
	ListKey = "fintrack:transactions:list"
	// VersionKey 列表版本号，每次写库后 INCR
	VersionKey = "fintrack:transactions:version"
)

// NewRedisClient 按配置创建 Redis 客户端
func NewRedisClient(cfg config.CacheConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// listEntry 缓存内容，Version 为回源前读到的版本号
type listEntry struct {
	Version int64                `json:"version"`
	Items   []models.Transaction `json:"items"`
}

// RedisListCache 基于 Redis 的列表缓存，整表 JSON 存放在一个键下
type RedisListCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewRedisListCache 创建列表缓存
func NewRedisListCache(client redis.Cmdable, ttl time.Duration) *RedisListCache {
	return &RedisListCache{client: client, ttl: ttl}
}

func (c *RedisListCache) Get(ctx context.Context) ([]models.Transaction, bool, error) {
	vals, err := c.client.MGet(ctx, ListKey, VersionKey).Result()
	if err != nil {
		return nil, false, fmt.Errorf("读取缓存失败: %w", err)
	}
	if len(vals) != 2 {
		return nil, false, nil
	}

	raw, ok := vals[0].(string)
	if !ok {
		return nil, false, nil
	}
	current, err := parseVersion(vals[1])
	if err != nil {
		return nil, false, nil
	}

	var entry listEntry
	if err := json.Unmarshal([]byte(raw), &entry); err != nil {
		// 缓存内容损坏时当作未命中，由调用方回源后覆盖
		return nil, false, nil
	}
	if entry.Version != current {
		return nil, false, nil
	}
	if entry.Items == nil {
		entry.Items = []models.Transaction{}
	}
	return entry.Items, true, nil
}

func (c *RedisListCache) Version(ctx context.Context) (int64, error) {
	v, err := c.client.Get(ctx, VersionKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("读取缓存版本失败: %w", err)
	}
	return v, nil
}

func (c *RedisListCache) Set(ctx context.Context, version int64, list []models.Transaction) error {
	raw, err := json.Marshal(listEntry{Version: version, Items: list})
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, ListKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("写入缓存失败: %w", err)
	}
	return nil
}

func (c *RedisListCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, VersionKey).Err(); err != nil {
		return fmt.Errorf("清除缓存失败: %w", err)
	}
	return nil
}

// parseVersion 版本键不存在时为 0
func parseVersion(v interface{}) (int64, error) {
	if v == nil {
		return 0, nil
	}
	s, ok := v.(string)
	if !ok {
		return 0, fmt.Errorf("版本号类型错误: %T", v)
	}
	return strconv.ParseInt(s, 10, 64)
}
