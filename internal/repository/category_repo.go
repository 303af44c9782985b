package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"inventra/backend/internal/model"
)

// CategoryItemCount 分类及其启用资产数量
type CategoryItemCount struct {
	model.Category
	ItemCount int64 `json:"item_count"`
}

// CategoryRepository 分类数据访问接口
type CategoryRepository interface {
	Create(ctx context.Context, cat *model.Category) error
	GetByID(ctx context.Context, id string) (*model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
	GetByAbbreviation(ctx context.Context, abbr string) (*model.Category, error)
	List(ctx context.Context) ([]model.Category, error)
	ListWithItemCounts(ctx context.Context, offset, limit int) ([]CategoryItemCount, int64, error)
	Update(ctx context.Context, cat *model.Category) error
	Delete(ctx context.Context, id string, updatedBy string) error

	// AdvanceSerialCounter 原子地将计数器加 count 并返回更新后的分类
	// 分类不存在、已停用或缺少缩写时不修改任何数据，返回 gorm.ErrRecordNotFound
	AdvanceSerialCounter(ctx context.Context, id string, count int) (*model.Category, error)
}

type categoryRepo struct {
	db *gorm.DB
}

// NewCategoryRepo 创建 CategoryRepository 实例
func NewCategoryRepo(db *gorm.DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, cat *model.Category) error {
	return r.db.WithContext(ctx).Create(cat).Error
}

// GetByID 返回分类（含已停用），由调用方判断 IsActive
func (r *categoryRepo) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var cat model.Category
	err := r.db.WithContext(ctx).
		Where("category_id = ?", id).
		First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categoryRepo) GetByName(ctx context.Context, name string) (*model.Category, error) {
	var cat model.Category
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?) AND is_active = ?", name, true).
		First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categoryRepo) GetByAbbreviation(ctx context.Context, abbr string) (*model.Category, error) {
	var cat model.Category
	err := r.db.WithContext(ctx).
		Where("UPPER(abbreviation) = UPPER(?) AND is_active = ?", abbr, true).
		First(&cat).Error
	if err != nil {
		return nil, err
	}
	return &cat, nil
}

func (r *categoryRepo) List(ctx context.Context) ([]model.Category, error) {
	var cats []model.Category
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&cats).Error
	return cats, err
}

func (r *categoryRepo) ListWithItemCounts(ctx context.Context, offset, limit int) ([]CategoryItemCount, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("is_active = ?", true).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []CategoryItemCount
	err := r.db.WithContext(ctx).
		Table("categories AS c").
		Select("c.*, COUNT(i.item_id) AS item_count").
		Joins("LEFT JOIN items AS i ON i.category_id = c.category_id AND i.is_active = ?", true).
		Where("c.is_active = ?", true).
		Group("c.category_id").
		Order("c.name ASC").
		Offset(offset).Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// Update 仅更新名称与缩写，计数器只能经 AdvanceSerialCounter 修改
func (r *categoryRepo) Update(ctx context.Context, cat *model.Category) error {
	return r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("category_id = ?", cat.CategoryID).
		Updates(map[string]interface{}{
			"name":         cat.Name,
			"abbreviation": cat.Abbreviation,
			"updated_by":   cat.UpdatedBy,
		}).Error
}

func (r *categoryRepo) Delete(ctx context.Context, id string, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Category{}).
		Where("category_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": updatedBy,
		}).Error
}

func (r *categoryRepo) AdvanceSerialCounter(ctx context.Context, id string, count int) (*model.Category, error) {
	var cat model.Category
	result := r.db.WithContext(ctx).
		Model(&cat).
		Clauses(clause.Returning{}).
		Where("category_id = ? AND is_active = ? AND abbreviation <> ''", id, true).
		Update("last_item_serial_number", gorm.Expr("last_item_serial_number + ?", count))
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &cat, nil
}

// SubCategoryRepository 子分类数据访问接口
type SubCategoryRepository interface {
	Create(ctx context.Context, sub *model.SubCategory) error
	GetByID(ctx context.Context, id string) (*model.SubCategory, error)
	GetByName(ctx context.Context, categoryID, name string) (*model.SubCategory, error)
	GetByAbbreviation(ctx context.Context, categoryID, abbr string) (*model.SubCategory, error)
	ListByCategory(ctx context.Context, categoryID string) ([]model.SubCategory, error)
	Update(ctx context.Context, sub *model.SubCategory) error
	Delete(ctx context.Context, id string, updatedBy string) error
}

type subCategoryRepo struct {
	db *gorm.DB
}

// NewSubCategoryRepo 创建 SubCategoryRepository 实例
func NewSubCategoryRepo(db *gorm.DB) SubCategoryRepository {
	return &subCategoryRepo{db: db}
}

func (r *subCategoryRepo) Create(ctx context.Context, sub *model.SubCategory) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *subCategoryRepo) GetByID(ctx context.Context, id string) (*model.SubCategory, error) {
	var sub model.SubCategory
	err := r.db.WithContext(ctx).
		Where("sub_category_id = ? AND is_active = ?", id, true).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subCategoryRepo) GetByName(ctx context.Context, categoryID, name string) (*model.SubCategory, error) {
	var sub model.SubCategory
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND LOWER(name) = LOWER(?) AND is_active = ?", categoryID, name, true).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subCategoryRepo) GetByAbbreviation(ctx context.Context, categoryID, abbr string) (*model.SubCategory, error) {
	var sub model.SubCategory
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND UPPER(abbreviation) = UPPER(?) AND is_active = ?", categoryID, abbr, true).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *subCategoryRepo) ListByCategory(ctx context.Context, categoryID string) ([]model.SubCategory, error) {
	var subs []model.SubCategory
	err := r.db.WithContext(ctx).
		Where("category_id = ? AND is_active = ?", categoryID, true).
		Order("name ASC").
		Find(&subs).Error
	return subs, err
}

func (r *subCategoryRepo) Update(ctx context.Context, sub *model.SubCategory) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *subCategoryRepo) Delete(ctx context.Context, id string, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.SubCategory{}).
		Where("sub_category_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": updatedBy,
		}).Error
}
