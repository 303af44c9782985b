package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	pkgerrors "inventra/backend/pkg/errors"
	"inventra/backend/pkg/metrics"

	"inventra/backend/internal/repository"
)

// ── 序列号分配业务错误 ──

var (
	ErrCategoryNotFound       = pkgerrors.New(pkgerrors.KindNotFound, "分类不存在")
	ErrCategoryNoAbbreviation = pkgerrors.New(pkgerrors.KindInvalidState, "分类未设置缩写，无法生成序列号")
)

// SerialAllocator 资产序列号分配器
//
// 序列号格式：<YYYY><ABBR><NNN>，NNN 为分类计数器的新值，至少 3 位补零。
// 计数器通过单条 UPDATE ... RETURNING 原子递增，并发请求拿到的区间互不重叠；
// 计数器只增不减，资产换分类时旧分类的计数不回退。
type SerialAllocator struct {
	categories repository.CategoryRepository
	now        func() time.Time
	logger     *zap.Logger
}

// NewSerialAllocator 创建序列号分配器
func NewSerialAllocator(categories repository.CategoryRepository, now func() time.Time, logger *zap.Logger) *SerialAllocator {
	if now == nil {
		now = time.Now
	}
	return &SerialAllocator{categories: categories, now: now, logger: logger}
}

// WithRepo 返回绑定到指定分类仓储（通常是事务内仓储）的分配器
func (a *SerialAllocator) WithRepo(categories repository.CategoryRepository) *SerialAllocator {
	return &SerialAllocator{categories: categories, now: a.now, logger: a.logger}
}

// Allocate 为分类分配 count 个连续序列号，count <= 0 按 1 处理
func (a *SerialAllocator) Allocate(ctx context.Context, categoryID string, count int) ([]string, error) {
	if count <= 0 {
		count = 1
	}

	cat, err := a.categories.AdvanceSerialCounter(ctx, categoryID, count)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, a.explainRejected(ctx, categoryID)
		}
		a.logger.Error("递增分类计数器失败", zap.String("category_id", categoryID), zap.Error(err))
		return nil, err
	}

	year := a.now().Year()
	abbr := strings.ToUpper(cat.Abbreviation)
	first := cat.LastItemSerialNumber - count + 1

	serials := make([]string, count)
	for i := range serials {
		serials[i] = FormatSerial(year, abbr, first+i)
	}

	metrics.SerialNumbersAllocated.WithLabelValues(abbr).Add(float64(count))
	return serials, nil
}

// explainRejected 计数器未被更新时区分原因
func (a *SerialAllocator) explainRejected(ctx context.Context, categoryID string) error {
	cat, err := a.categories.GetByID(ctx, categoryID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrCategoryNotFound
		}
		a.logger.Error("查询分类失败", zap.String("category_id", categoryID), zap.Error(err))
		return err
	}
	if !cat.IsActive {
		return ErrCategoryNotFound
	}
	if cat.Abbreviation == "" {
		return ErrCategoryNoAbbreviation
	}
	return fmt.Errorf("分类 %s 计数器更新未生效", categoryID)
}

// FormatSerial 拼接序列号，序号不足 3 位左侧补零，超过 3 位原样保留
func FormatSerial(year int, abbr string, seq int) string {
	return fmt.Sprintf("%d%s%03d", year, abbr, seq)
}
