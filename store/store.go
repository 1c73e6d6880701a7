package store

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	"fintrack/cache"
	"fintrack/database"
	"fintrack/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateInput 创建记录的输入，指针字段为 nil 表示未提供
type CreateInput struct {
	Amount      *float64
	Date        models.Date
	Description string
	Category    *string
}

// UpdateInput 更新记录的输入，只替换非 nil 字段
type UpdateInput struct {
	Amount      *float64
	Date        *models.Date
	Description *string
	Category    *string
}

// maxAbsAmount decimal(12,2) 列能存放的最大绝对值
const maxAbsAmount = 9999999999.99

// TransactionStore 收支记录存储
type TransactionStore struct {
	db    *database.DB
	cache cache.ListCache
	log   *zap.Logger

	// cacheDown 写库后清除缓存失败时置位，此后 List 只读数据库
	cacheDown atomic.Bool
}

// Option 存储可选项
type Option func(*TransactionStore)

// WithCache 启用列表缓存
func WithCache(c cache.ListCache) Option {
	return func(s *TransactionStore) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithLogger 设置日志
func WithLogger(log *zap.Logger) Option {
	return func(s *TransactionStore) {
		if log != nil {
			s.log = log
		}
	}
}

// New 创建存储
func New(db *database.DB, opts ...Option) *TransactionStore {
	s := &TransactionStore{
		db:    db,
		cache: cache.Noop{},
		log:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List 按日期倒序返回全部记录，同一天内后创建的在前
func (s *TransactionStore) List(ctx context.Context) ([]models.Transaction, error) {
	useCache := !s.cacheDown.Load()
	var version int64
	if useCache {
		if list, ok, err := s.cache.Get(ctx); err != nil {
			s.log.Warn("读取列表缓存失败，回源数据库", zap.Error(err))
		} else if ok {
			return list, nil
		}
		// 版本号必须在查库之前读取
		v, err := s.cache.Version(ctx)
		if err != nil {
			s.log.Warn("读取缓存版本失败，本次不回填", zap.Error(err))
			useCache = false
		}
		version = v
	}

	list := make([]models.Transaction, 0)
	if err := s.db.WithContext(ctx).Order("date DESC").Order("created_at DESC").Find(&list).Error; err != nil {
		return nil, fmt.Errorf("查询记录失败: %w", err)
	}

	if useCache && !s.cacheDown.Load() {
		if err := s.cache.Set(ctx, version, list); err != nil {
			s.log.Warn("写入列表缓存失败", zap.Error(err))
		}
	}
	return list, nil
}

// Get 按 ID 获取单条记录
func (s *TransactionStore) Get(ctx context.Context, id string) (*models.Transaction, error) {
	var txn models.Transaction
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&txn).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("查询记录失败: %w", err)
	}
	return &txn, nil
}

// Create 校验必填字段后写入新记录，校验失败时不写库
func (s *TransactionStore) Create(ctx context.Context, in CreateInput) (*models.Transaction, error) {
	if in.Amount == nil {
		return nil, missing("amount")
	}
	amount, err := normalizeAmount(*in.Amount)
	if err != nil {
		return nil, err
	}
	if in.Date.IsZero() {
		return nil, missing("date")
	}
	description := strings.TrimSpace(in.Description)
	if description == "" {
		return nil, missing("description")
	}

	txn := models.Transaction{
		Amount:      amount,
		Date:        in.Date,
		Description: description,
		Category:    normalizeCategory(in.Category),
	}
	if err := s.db.WithContext(ctx).Create(&txn).Error; err != nil {
		return nil, fmt.Errorf("创建记录失败: %w", err)
	}

	s.invalidate(ctx)
	s.log.Debug("记录已创建", zap.String("id", txn.ID))
	// 返回库中实际存储的值（金额精度、时间戳精度以数据库为准）
	return s.Get(ctx, txn.ID)
}

// Update 替换提供的字段并返回更新后的记录，记录不存在时返回 ErrNotFound
func (s *TransactionStore) Update(ctx context.Context, id string, in UpdateInput) (*models.Transaction, error) {
	txn, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := make(map[string]interface{})
	if in.Amount != nil {
		amount, err := normalizeAmount(*in.Amount)
		if err != nil {
			return nil, err
		}
		updates["amount"] = amount
		txn.Amount = amount
	}
	if in.Date != nil {
		if in.Date.IsZero() {
			return nil, missing("date")
		}
		updates["date"] = *in.Date
		txn.Date = *in.Date
	}
	if in.Description != nil {
		description := strings.TrimSpace(*in.Description)
		if description == "" {
			return nil, missing("description")
		}
		updates["description"] = description
		txn.Description = description
	}
	if in.Category != nil {
		txn.Category = normalizeCategory(in.Category)
		updates["category"] = txn.Category
	}

	if len(updates) == 0 {
		return txn, nil
	}

	if err := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("更新记录失败: %w", err)
	}

	s.invalidate(ctx)
	// 重新读取；查询与更新之间被并发删除时返回 ErrNotFound
	return s.Get(ctx, id)
}

// Delete 删除记录，记录不存在也视为成功
func (s *TransactionStore) Delete(ctx context.Context, id string) error {
	res := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Transaction{})
	if res.Error != nil {
		return fmt.Errorf("删除记录失败: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		s.invalidate(ctx)
	}
	return nil
}

// invalidate 写库成功后调用；清除失败时停用缓存，保证之后的 List 能读到本次写入
func (s *TransactionStore) invalidate(ctx context.Context) {
	if s.cacheDown.Load() {
		return
	}
	if err := s.cache.Invalidate(context.WithoutCancel(ctx)); err != nil {
		s.cacheDown.Store(true)
		s.log.Error("清除列表缓存失败，已停用列表缓存", zap.Error(err))
	}
}

// normalizeAmount 按列精度保留两位小数，超出列范围时报校验错误
func normalizeAmount(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) || math.Abs(v) > maxAbsAmount {
		return 0, &ValidationError{Field: "amount", Message: "超出范围"}
	}
	return math.Round(v*100) / 100, nil
}

// normalizeCategory 空白类别按未设置处理
func normalizeCategory(c *string) *string {
	if c == nil {
		return nil
	}
	v := strings.TrimSpace(*c)
	if v == "" {
		return nil
	}
	return &v
}
