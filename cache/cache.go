package cache

import (
	"context"

	"fintrack/models"
)

// ListCache 缓存完整的收支记录列表
// 每次写库后 Invalidate 递增版本号；Set 带上回源前读到的版本，
// 版本已变化的缓存内容在 Get 时视为未命中，避免并发写入后回填旧列表
// Get 未命中时返回 ok=false 且 err=nil
type ListCache interface {
	Get(ctx context.Context) (list []models.Transaction, ok bool, err error)
	Version(ctx context.Context) (int64, error)
	Set(ctx context.Context, version int64, list []models.Transaction) error
	Invalidate(ctx context.Context) error
}

// Noop 关闭缓存时使用，永远未命中
type Noop struct{}

func (Noop) Get(context.Context) ([]models.Transaction, bool, error) { return nil, false, nil }

func (Noop) Version(context.Context) (int64, error) { return 0, nil }

func (Noop) Set(context.Context, int64, []models.Transaction) error { return nil }

func (Noop) Invalidate(context.Context) error { return nil }
