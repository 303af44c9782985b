package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	pkgerrors "inventra/backend/pkg/errors"

	"inventra/backend/internal/model"
)

// ItemFilter 资产查询条件，零值字段不参与过滤
type ItemFilter struct {
	CategoryID   string
	FloorID      string
	RoomID       string
	Status       string
	Source       string
	ModelNumber  string
	NameContains string     // 名称包含（大小写不敏感）
	SerialPrefix string     // 序列号前缀
	AcquiredFrom *time.Time // 购置日期下界（含）
	AcquiredTo   *time.Time // 购置日期上界（含）
}

// ItemStatusCounts 资产状态统计
type ItemStatusCounts struct {
	Total      int64           `json:"total"`
	Working    int64           `json:"working"`
	Repairable int64           `json:"repairable"`
	NotWorking int64           `json:"not_working"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// YearAcquisition 按年份的购置统计
type YearAcquisition struct {
	Year  int             `json:"year"`
	Count int64           `json:"count"`
	Value decimal.Decimal `json:"value"`
}

// ItemGroup 按名称/分类/型号分组的资产统计
type ItemGroup struct {
	Name         string `json:"name"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	ModelNumber  string `json:"model_number"`
	Total        int64  `json:"total"`
	Working      int64  `json:"working"`
	Repairable   int64  `json:"repairable"`
	NotWorking   int64  `json:"not_working"`
}

// RoomStatusCount 各房间的资产状态统计
type RoomStatusCount struct {
	RoomID     string `json:"room_id"`
	RoomName   string `json:"room_name"`
	FloorID    string `json:"floor_id"`
	FloorName  string `json:"floor_name"`
	Total      int64  `json:"total"`
	Working    int64  `json:"working"`
	Repairable int64  `json:"repairable"`
	NotWorking int64  `json:"not_working"`
}

// ItemRepository 资产数据访问接口
type ItemRepository interface {
	BatchCreate(ctx context.Context, items []*model.Item) error
	GetByID(ctx context.Context, id string) (*model.Item, error)
	List(ctx context.Context, filter ItemFilter, offset, limit int) ([]model.Item, int64, error)
	Update(ctx context.Context, item *model.Item) error
	CountActive(ctx context.Context, filter ItemFilter) (int64, error)

	// ── 统计 ──
	StatusCounts(ctx context.Context, categoryID string) (*ItemStatusCounts, error)
	CountAcquiredBefore(ctx context.Context, before time.Time) (int64, error)
	AcquisitionByYear(ctx context.Context, categoryID string) ([]YearAcquisition, error)
	GroupByModel(ctx context.Context, categoryID string) ([]ItemGroup, error)
	GroupReport(ctx context.Context, categoryID string, offset, limit int) ([]ItemGroup, int64, error)
	RoomStatusCounts(ctx context.Context) ([]RoomStatusCount, error)
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepo 创建 ItemRepository 实例
func NewItemRepo(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

// statusSums 按状态条件计数的 SELECT 片段
const statusSums = `COUNT(*) AS total,
	COUNT(*) FILTER (WHERE i.status = 'Working') AS working,
	COUNT(*) FILTER (WHERE i.status = 'Repairable') AS repairable,
	COUNT(*) FILTER (WHERE i.status = 'Not working') AS not_working`

func (r *itemRepo) BatchCreate(ctx context.Context, items []*model.Item) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Omit("Category", "Floor", "Room").Create(&items).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id string) (*model.Item, error) {
	var item model.Item
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Floor").
		Preload("Room").
		Where("item_id = ? AND is_active = ?", id, true).
		First(&item).Error
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepo) applyFilter(db *gorm.DB, f ItemFilter) *gorm.DB {
	db = db.Where("items.is_active = ?", true)
	if f.CategoryID != "" {
		db = db.Where("items.category_id = ?", f.CategoryID)
	}
	if f.FloorID != "" {
		db = db.Where("items.floor_id = ?", f.FloorID)
	}
	if f.RoomID != "" {
		db = db.Where("items.room_id = ?", f.RoomID)
	}
	if f.Status != "" {
		db = db.Where("items.status = ?", f.Status)
	}
	if f.Source != "" {
		db = db.Where("items.source = ?", f.Source)
	}
	if f.ModelNumber != "" {
		db = db.Where("items.model_number = ?", f.ModelNumber)
	}
	if f.NameContains != "" {
		db = db.Where("items.name ILIKE ?", "%"+escapeLike(f.NameContains)+"%")
	}
	if f.SerialPrefix != "" {
		db = db.Where("items.serial_number ILIKE ?", escapeLike(f.SerialPrefix)+"%")
	}
	if f.AcquiredFrom != nil {
		db = db.Where("items.acquired_date >= ?", *f.AcquiredFrom)
	}
	if f.AcquiredTo != nil {
		db = db.Where("items.acquired_date <= ?", *f.AcquiredTo)
	}
	return db
}

func (r *itemRepo) List(ctx context.Context, filter ItemFilter, offset, limit int) ([]model.Item, int64, error) {
	var items []model.Item
	var total int64

	db := r.applyFilter(r.db.WithContext(ctx).Model(&model.Item{}), filter)

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if err := db.
		Preload("Category").
		Preload("Floor").
		Preload("Room").
		Order("items.updated_at DESC").
		Offset(offset).Limit(limit).
		Find(&items).Error; err != nil {
		return nil, 0, err
	}

	return items, total, nil
}

// Update 基于 version 的乐观锁更新
func (r *itemRepo) Update(ctx context.Context, item *model.Item) error {
	oldVersion := item.Version
	result := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("item_id = ? AND version = ?", item.ItemID, oldVersion).
		Updates(map[string]interface{}{
			"name":          item.Name,
			"description":   item.Description,
			"model_number":  item.ModelNumber,
			"category_id":   item.CategoryID,
			"floor_id":      item.FloorID,
			"room_id":       item.RoomID,
			"status":        item.Status,
			"source":        item.Source,
			"cost":          item.Cost,
			"acquired_date": item.AcquiredDate,
			"serial_number": item.SerialNumber,
			"is_active":     item.IsActive,
			"updated_by":    item.UpdatedBy,
			"version":       oldVersion + 1,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return pkgerrors.ErrOptimisticLock
	}
	item.Version = oldVersion + 1
	return nil
}

func (r *itemRepo) CountActive(ctx context.Context, filter ItemFilter) (int64, error) {
	var count int64
	err := r.applyFilter(r.db.WithContext(ctx).Model(&model.Item{}), filter).
		Count(&count).Error
	return count, err
}

// ── 统计 ──

func (r *itemRepo) StatusCounts(ctx context.Context, categoryID string) (*ItemStatusCounts, error) {
	var out ItemStatusCounts
	db := r.db.WithContext(ctx).
		Table("items AS i").
		Select(statusSums+", COALESCE(SUM(i.cost), 0) AS total_value").
		Where("i.is_active = ?", true)
	if categoryID != "" {
		db = db.Where("i.category_id = ?", categoryID)
	}
	if err := db.Scan(&out).Error; err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *itemRepo) CountAcquiredBefore(ctx context.Context, before time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Item{}).
		Where("is_active = ? AND acquired_date < ?", true, before).
		Count(&count).Error
	return count, err
}

func (r *itemRepo) AcquisitionByYear(ctx context.Context, categoryID string) ([]YearAcquisition, error) {
	var rows []YearAcquisition
	db := r.db.WithContext(ctx).
		Table("items AS i").
		Select("EXTRACT(YEAR FROM i.acquired_date)::int AS year, COUNT(*) AS count, COALESCE(SUM(i.cost), 0) AS value").
		Where("i.is_active = ?", true)
	if categoryID != "" {
		db = db.Where("i.category_id = ?", categoryID)
	}
	err := db.Group("year").Order("year DESC").Scan(&rows).Error
	return rows, err
}

func (r *itemRepo) GroupByModel(ctx context.Context, categoryID string) ([]ItemGroup, error) {
	var rows []ItemGroup
	err := r.db.WithContext(ctx).
		Table("items AS i").
		Select("i.model_number, i.category_id, "+statusSums).
		Where("i.is_active = ? AND i.category_id = ?", true, categoryID).
		Group("i.model_number, i.category_id").
		Order("total DESC, i.model_number ASC").
		Scan(&rows).Error
	return rows, err
}

func (r *itemRepo) GroupReport(ctx context.Context, categoryID string, offset, limit int) ([]ItemGroup, int64, error) {
	base := r.db.WithContext(ctx).
		Table("items AS i").
		Joins("JOIN categories AS c ON c.category_id = i.category_id").
		Where("i.is_active = ?", true)
	if categoryID != "" {
		base = base.Where("i.category_id = ?", categoryID)
	}

	var total int64
	if err := base.Session(&gorm.Session{}).
		Distinct("i.name", "i.category_id", "i.model_number").
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []ItemGroup
	err := base.Session(&gorm.Session{}).
		Select("i.name, i.category_id, c.name AS category_name, i.model_number, "+statusSums).
		Group("i.name, i.category_id, c.name, i.model_number").
		Order("i.name ASC, i.model_number ASC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

func (r *itemRepo) RoomStatusCounts(ctx context.Context) ([]RoomStatusCount, error) {
	var rows []RoomStatusCount
	err := r.db.WithContext(ctx).
		Table("rooms AS r").
		Select(`r.room_id, r.name AS room_name, f.floor_id, f.name AS floor_name,
	COUNT(i.item_id) AS total,
	COUNT(i.item_id) FILTER (WHERE i.status = 'Working') AS working,
	COUNT(i.item_id) FILTER (WHERE i.status = 'Repairable') AS repairable,
	COUNT(i.item_id) FILTER (WHERE i.status = 'Not working') AS not_working`).
		Joins("JOIN floors AS f ON f.floor_id = r.floor_id").
		Joins("LEFT JOIN items AS i ON i.room_id = r.room_id AND i.is_active = ?", true).
		Where("r.is_active = ?", true).
		Group("r.room_id, r.name, f.floor_id, f.name").
		Order("f.name ASC, r.name ASC").
		Scan(&rows).Error
	return rows, err
}

// escapeLike 转义 LIKE 通配符，用户输入按字面匹配
func escapeLike(s string) string {
	out := make([]rune, 0, len(s))
	for _, c := range s {
		if c == '%' || c == '_' || c == '\\' {
			out = append(out, '\\')
		}
		out = append(out, c)
	}
	return string(out)
}
