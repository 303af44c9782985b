package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"

	pkgerrors "inventra/backend/pkg/errors"

	"inventra/backend/internal/dto"
	"inventra/backend/internal/model"
	"inventra/backend/internal/repository"
)

// ── 分类模块业务错误 ──

var (
	ErrCategoryNameExists    = pkgerrors.New(pkgerrors.KindConflict, "分类名称已存在")
	ErrCategoryAbbrExists    = pkgerrors.New(pkgerrors.KindConflict, "分类缩写已存在")
	ErrCategoryHasItems      = pkgerrors.New(pkgerrors.KindInvalidState, "分类下仍有在用资产，无法删除")
	ErrSubCategoryNotFound   = pkgerrors.New(pkgerrors.KindNotFound, "子分类不存在")
	ErrSubCategoryNameExists = pkgerrors.New(pkgerrors.KindConflict, "该分类下子分类名称已存在")
	ErrSubCategoryAbbrExists = pkgerrors.New(pkgerrors.KindConflict, "该分类下子分类缩写已存在")
)

// CategoryService 分类与子分类业务接口
type CategoryService interface {
	Create(ctx context.Context, req *dto.CreateCategoryRequest, actor Actor) (*dto.CategoryResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error)
	List(ctx context.Context) ([]dto.CategoryResponse, error)
	Overview(ctx context.Context, req *dto.PaginationRequest) ([]dto.CategoryResponse, int64, error)
	Update(ctx context.Context, id string, req *dto.UpdateCategoryRequest, actor Actor) (*dto.CategoryResponse, error)
	Delete(ctx context.Context, id string, actor Actor) error

	StatusStats(ctx context.Context, id string) (*dto.StatusStatsResponse, error)
	AcquisitionStats(ctx context.Context, id string) ([]dto.YearAcquisitionResponse, error)

	CreateSub(ctx context.Context, req *dto.CreateSubCategoryRequest, actor Actor) (*dto.SubCategoryResponse, error)
	ListSub(ctx context.Context, categoryID string) ([]dto.SubCategoryResponse, error)
	UpdateSub(ctx context.Context, id string, req *dto.UpdateSubCategoryRequest, actor Actor) (*dto.SubCategoryResponse, error)
	DeleteSub(ctx context.Context, id string, actor Actor) error

	PageSize() int
}

type categoryService struct {
	repo     *repository.Repository
	audit    auditor
	pageSize int
	logger   *zap.Logger
}

// NewCategoryService 创建 CategoryService 实例
func NewCategoryService(repo *repository.Repository, logs ActivityLogService, pageSize int, logger *zap.Logger) CategoryService {
	return &categoryService{
		repo:     repo,
		audit:    auditor{logs: logs, logger: logger},
		pageSize: pageSize,
		logger:   logger,
	}
}

func (s *categoryService) PageSize() int { return s.pageSize }

// ────────────────────── Create ──────────────────────

func (s *categoryService) Create(ctx context.Context, req *dto.CreateCategoryRequest, actor Actor) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(req.Name)
	abbr := strings.ToUpper(strings.TrimSpace(req.Abbreviation))

	if err := s.ensureUnique(ctx, "", name, abbr); err != nil {
		return nil, err
	}

	cat := &model.Category{
		Name:         name,
		Abbreviation: abbr,
		IsActive:     true,
	}
	cat.CreatedBy = &actor.ID
	cat.UpdatedBy = &actor.ID

	if err := s.repo.Category.Create(ctx, cat); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateOf(ctx, "", name, abbr)
		}
		s.logger.Error("创建分类失败", zap.Error(err))
		return nil, err
	}

	s.audit.record(ctx, AuditEntry{
		Action:     model.ActionAdded,
		EntityType: model.EntityCategory,
		EntityID:   cat.CategoryID,
		EntityName: cat.Name,
		Actor:      actor,
		Changes: model.ChangeSet{
			"name":         {From: nil, To: cat.Name},
			"abbreviation": {From: nil, To: cat.Abbreviation},
			"isActive":     {From: nil, To: true},
		},
		Description: fmt.Sprintf("%s(%s) added category '%s'", actor.Name, actor.Role, cat.Name),
	})

	return toCategoryResponse(cat, nil), nil
}

// ────────────────────── Read ──────────────────────

func (s *categoryService) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	cat, err := s.getActive(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(cat, nil), nil
}

func (s *categoryService) List(ctx context.Context) ([]dto.CategoryResponse, error) {
	cats, err := s.repo.Category.List(ctx)
	if err != nil {
		s.logger.Error("列出分类失败", zap.Error(err))
		return nil, err
	}

	result := make([]dto.CategoryResponse, len(cats))
	for i := range cats {
		result[i] = *toCategoryResponse(&cats[i], nil)
	}
	return result, nil
}

// Overview 分页列出分类及其在用资产数量
func (s *categoryService) Overview(ctx context.Context, req *dto.PaginationRequest) ([]dto.CategoryResponse, int64, error) {
	rows, total, err := s.repo.Category.ListWithItemCounts(ctx, req.GetOffset(s.pageSize), req.GetPageSize(s.pageSize))
	if err != nil {
		s.logger.Error("查询分类概览失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.CategoryResponse, len(rows))
	for i := range rows {
		count := rows[i].ItemCount
		result[i] = *toCategoryResponse(&rows[i].Category, &count)
	}
	return result, total, nil
}

// ────────────────────── Update ──────────────────────

func (s *categoryService) Update(ctx context.Context, id string, req *dto.UpdateCategoryRequest, actor Actor) (*dto.CategoryResponse, error) {
	cat, err := s.getActive(ctx, id)
	if err != nil {
		return nil, err
	}

	changes := model.ChangeSet{}
	newName, newAbbr := cat.Name, cat.Abbreviation
	if req.Name != nil {
		newName = strings.TrimSpace(*req.Name)
	}
	if req.Abbreviation != nil {
		newAbbr = strings.ToUpper(strings.TrimSpace(*req.Abbreviation))
	}

	checkName, checkAbbr := "", ""
	if !strings.EqualFold(newName, cat.Name) {
		checkName = newName
	}
	if newAbbr != cat.Abbreviation {
		checkAbbr = newAbbr
	}
	if err := s.ensureUnique(ctx, cat.CategoryID, checkName, checkAbbr); err != nil {
		return nil, err
	}

	diff(changes, "name", cat.Name, newName)
	diff(changes, "abbreviation", cat.Abbreviation, newAbbr)
	if len(changes) == 0 {
		return toCategoryResponse(cat, nil), nil
	}

	cat.Name = newName
	cat.Abbreviation = newAbbr
	cat.UpdatedBy = &actor.ID

	if err := s.repo.Category.Update(ctx, cat); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, s.duplicateOf(ctx, cat.CategoryID, checkName, checkAbbr)
		}
		s.logger.Error("更新分类失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.audit.record(ctx, AuditEntry{
		Action:      model.ActionEditedDetails,
		EntityType:  model.EntityCategory,
		EntityID:    cat.CategoryID,
		EntityName:  cat.Name,
		Actor:       actor,
		Changes:     changes,
		Description: fmt.Sprintf("%s(%s) edited category '%s'", actor.Name, actor.Role, cat.Name),
	})

	return toCategoryResponse(cat, nil), nil
}

// ────────────────────── Delete ──────────────────────

func (s *categoryService) Delete(ctx context.Context, id string, actor Actor) error {
	cat, err := s.getActive(ctx, id)
	if err != nil {
		return err
	}

	n, err := s.repo.Item.CountActive(ctx, repository.ItemFilter{CategoryID: id})
	if err != nil {
		s.logger.Error("统计分类资产失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if n > 0 {
		return ErrCategoryHasItems
	}

	if err := s.repo.Category.Delete(ctx, id, actor.ID); err != nil {
		s.logger.Error("删除分类失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.audit.record(ctx, AuditEntry{
		Action:      model.ActionRemoved,
		EntityType:  model.EntityCategory,
		EntityID:    cat.CategoryID,
		EntityName:  cat.Name,
		Actor:       actor,
		Changes:     model.ChangeSet{"isActive": {From: true, To: false}},
		Description: fmt.Sprintf("%s(%s) removed category '%s'", actor.Name, actor.Role, cat.Name),
	})
	return nil
}

// ────────────────────── 统计 ──────────────────────

func (s *categoryService) StatusStats(ctx context.Context, id string) (*dto.StatusStatsResponse, error) {
	if _, err := s.getActive(ctx, id); err != nil {
		return nil, err
	}
	counts, err := s.repo.Item.StatusCounts(ctx, id)
	if err != nil {
		s.logger.Error("统计分类资产状态失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toStatusStats(counts), nil
}

func (s *categoryService) AcquisitionStats(ctx context.Context, id string) ([]dto.YearAcquisitionResponse, error) {
	if _, err := s.getActive(ctx, id); err != nil {
		return nil, err
	}
	rows, err := s.repo.Item.AcquisitionByYear(ctx, id)
	if err != nil {
		s.logger.Error("统计分类购置情况失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	result := make([]dto.YearAcquisitionResponse, len(rows))
	for i, r := range rows {
		result[i] = dto.YearAcquisitionResponse{Year: r.Year, Count: r.Count, Value: r.Value}
	}
	return result, nil
}

// ────────────────────── SubCategory ──────────────────────

func (s *categoryService) CreateSub(ctx context.Context, req *dto.CreateSubCategoryRequest, actor Actor) (*dto.SubCategoryResponse, error) {
	if _, err := s.getActive(ctx, req.CategoryID); err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	abbr := strings.ToUpper(strings.TrimSpace(req.Abbreviation))
	if err := s.ensureSubUnique(ctx, req.CategoryID, name, abbr); err != nil {
		return nil, err
	}

	sub := &model.SubCategory{
		CategoryID:   req.CategoryID,
		Name:         name,
		Abbreviation: abbr,
		IsActive:     true,
	}
	sub.CreatedBy = &actor.ID
	sub.UpdatedBy = &actor.ID

	if err := s.repo.SubCategory.Create(ctx, sub); err != nil {
		s.logger.Error("创建子分类失败", zap.Error(err))
		return nil, err
	}

	s.audit.record(ctx, AuditEntry{
		Action:     model.ActionAdded,
		EntityType: model.EntitySubCategory,
		EntityID:   sub.SubCategoryID,
		EntityName: sub.Name,
		Actor:      actor,
		Changes: model.ChangeSet{
			"name":         {From: nil, To: sub.Name},
			"abbreviation": {From: nil, To: sub.Abbreviation},
			"category":     {From: nil, To: sub.CategoryID},
		},
		Description: fmt.Sprintf("%s(%s) added sub-category '%s'", actor.Name, actor.Role, sub.Name),
	})

	return toSubCategoryResponse(sub), nil
}

func (s *categoryService) ListSub(ctx context.Context, categoryID string) ([]dto.SubCategoryResponse, error) {
	if _, err := s.getActive(ctx, categoryID); err != nil {
		return nil, err
	}
	subs, err := s.repo.SubCategory.ListByCategory(ctx, categoryID)
	if err != nil {
		s.logger.Error("列出子分类失败", zap.String("category_id", categoryID), zap.Error(err))
		return nil, err
	}
	result := make([]dto.SubCategoryResponse, len(subs))
	for i := range subs {
		result[i] = *toSubCategoryResponse(&subs[i])
	}
	return result, nil
}

func (s *categoryService) UpdateSub(ctx context.Context, id string, req *dto.UpdateSubCategoryRequest, actor Actor) (*dto.SubCategoryResponse, error) {
	sub, err := s.getSub(ctx, id)
	if err != nil {
		return nil, err
	}

	newName, newAbbr := sub.Name, sub.Abbreviation
	if req.Name != nil {
		newName = strings.TrimSpace(*req.Name)
	}
	if req.Abbreviation != nil {
		newAbbr = strings.ToUpper(strings.TrimSpace(*req.Abbreviation))
	}

	checkName, checkAbbr := "", ""
	if !strings.EqualFold(newName, sub.Name) {
		checkName = newName
	}
	if newAbbr != sub.Abbreviation {
		checkAbbr = newAbbr
	}
	if err := s.ensureSubUnique(ctx, sub.CategoryID, checkName, checkAbbr); err != nil {
		return nil, err
	}

	changes := model.ChangeSet{}
	diff(changes, "name", sub.Name, newName)
	diff(changes, "abbreviation", sub.Abbreviation, newAbbr)
	if len(changes) == 0 {
		return toSubCategoryResponse(sub), nil
	}

	sub.Name = newName
	sub.Abbreviation = newAbbr
	sub.UpdatedBy = &actor.ID

	if err := s.repo.SubCategory.Update(ctx, sub); err != nil {
		s.logger.Error("更新子分类失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.audit.record(ctx, AuditEntry{
		Action:      model.ActionEditedDetails,
		EntityType:  model.EntitySubCategory,
		EntityID:    sub.SubCategoryID,
		EntityName:  sub.Name,
		Actor:       actor,
		Changes:     changes,
		Description: fmt.Sprintf("%s(%s) edited sub-category '%s'", actor.Name, actor.Role, sub.Name),
	})

	return toSubCategoryResponse(sub), nil
}

func (s *categoryService) DeleteSub(ctx context.Context, id string, actor Actor) error {
	sub, err := s.getSub(ctx, id)
	if err != nil {
		return err
	}

	if err := s.repo.SubCategory.Delete(ctx, id, actor.ID); err != nil {
		s.logger.Error("删除子分类失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.audit.record(ctx, AuditEntry{
		Action:      model.ActionRemoved,
		EntityType:  model.EntitySubCategory,
		EntityID:    sub.SubCategoryID,
		EntityName:  sub.Name,
		Actor:       actor,
		Changes:     model.ChangeSet{"isActive": {From: true, To: false}},
		Description: fmt.Sprintf("%s(%s) removed sub-category '%s'", actor.Name, actor.Role, sub.Name),
	})
	return nil
}

// ── 辅助函数 ──

func (s *categoryService) getActive(ctx context.Context, id string) (*model.Category, error) {
	cat, err := s.repo.Category.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		s.logger.Error("查询分类失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !cat.IsActive {
		return nil, ErrCategoryNotFound
	}
	return cat, nil
}

func (s *categoryService) getSub(ctx context.Context, id string) (*model.SubCategory, error) {
	sub, err := s.repo.SubCategory.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubCategoryNotFound
		}
		s.logger.Error("查询子分类失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return sub, nil
}

// ensureUnique 检查名称与缩写在启用分类中唯一，空字符串跳过对应检查
func (s *categoryService) ensureUnique(ctx context.Context, selfID, name, abbr string) error {
	if name != "" {
		existing, err := s.repo.Category.GetByName(ctx, name)
		if err == nil && existing.CategoryID != selfID {
			return ErrCategoryNameExists
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("检查分类名称失败", zap.Error(err))
			return err
		}
	}
	if abbr != "" {
		existing, err := s.repo.Category.GetByAbbreviation(ctx, abbr)
		if err == nil && existing.CategoryID != selfID {
			return ErrCategoryAbbrExists
		}
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("检查分类缩写失败", zap.Error(err))
			return err
		}
	}
	return nil
}

// duplicateOf 并发写入撞上唯一索引时重新检查，给出具体的冲突原因
func (s *categoryService) duplicateOf(ctx context.Context, selfID, name, abbr string) error {
	if err := s.ensureUnique(ctx, selfID, name, abbr); errors.Is(err, ErrCategoryAbbrExists) {
		return ErrCategoryAbbrExists
	}
	return ErrCategoryNameExists
}

func (s *categoryService) ensureSubUnique(ctx context.Context, categoryID, name, abbr string) error {
	if name != "" {
		_, err := s.repo.SubCategory.GetByName(ctx, categoryID, name)
		if err == nil {
			return ErrSubCategoryNameExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("检查子分类名称失败", zap.Error(err))
			return err
		}
	}
	if abbr != "" {
		_, err := s.repo.SubCategory.GetByAbbreviation(ctx, categoryID, abbr)
		if err == nil {
			return ErrSubCategoryAbbrExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.logger.Error("检查子分类缩写失败", zap.Error(err))
			return err
		}
	}
	return nil
}

// diff 值不同时记录一条字段变更
func diff(cs model.ChangeSet, field string, from, to any) {
	if from == to {
		return
	}
	cs[field] = model.FieldChange{From: from, To: to}
}

func toCategoryResponse(cat *model.Category, itemCount *int64) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:                   cat.CategoryID,
		Name:                 cat.Name,
		Abbreviation:         cat.Abbreviation,
		LastItemSerialNumber: cat.LastItemSerialNumber,
		ItemCount:            itemCount,
		CreatedAt:            cat.CreatedAt.Format(timeLayout),
		UpdatedAt:            cat.UpdatedAt.Format(timeLayout),
	}
}

func toSubCategoryResponse(sub *model.SubCategory) *dto.SubCategoryResponse {
	return &dto.SubCategoryResponse{
		ID:           sub.SubCategoryID,
		CategoryID:   sub.CategoryID,
		Name:         sub.Name,
		Abbreviation: sub.Abbreviation,
		CreatedAt:    sub.CreatedAt.Format(timeLayout),
		UpdatedAt:    sub.UpdatedAt.Format(timeLayout),
	}
}

func toStatusStats(c *repository.ItemStatusCounts) *dto.StatusStatsResponse {
	return &dto.StatusStatsResponse{
		Total:      c.Total,
		Working:    c.Working,
		Repairable: c.Repairable,
		NotWorking: c.NotWorking,
		TotalValue: c.TotalValue,
	}
}
