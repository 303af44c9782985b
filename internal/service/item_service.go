package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"inventra/backend/config"
	pkgerrors "inventra/backend/pkg/errors"

	"inventra/backend/internal/dto"
	"inventra/backend/internal/model"
	"inventra/backend/internal/repository"
)

// ── 资产模块业务错误 ──

var (
	ErrItemNotFound       = pkgerrors.New(pkgerrors.KindNotFound, "资产不存在")
	ErrBatchTooLarge      = pkgerrors.New(pkgerrors.KindInvalidArgument, "单次创建数量超过上限")
	ErrInvalidCost        = pkgerrors.New(pkgerrors.KindInvalidArgument, "资产价值不能为负数")
	ErrInvalidItemStatus  = pkgerrors.New(pkgerrors.KindInvalidArgument, "资产状态不合法")
	ErrSearchTermRequired = pkgerrors.New(pkgerrors.KindInvalidArgument, "请提供名称或序列号关键字")
	ErrSameCategory       = pkgerrors.New(pkgerrors.KindConflict, "资产已属于该分类")
	ErrItemAlreadyInRoom  = pkgerrors.New(pkgerrors.KindInvalidArgument, "资产已在该房间")
)

// filterAll 过滤条件取该值时表示不过滤
const filterAll = "All"

// ItemService 资产业务接口
//
// 所有变更在业务数据提交后写入操作日志；日志写入失败不回滚业务变更。
type ItemService interface {
	Create(ctx context.Context, req *dto.CreateItemRequest, actor Actor) ([]dto.ItemResponse, error)
	GetByID(ctx context.Context, id string) (*dto.ItemResponse, error)
	List(ctx context.Context, req *dto.PaginationRequest) ([]dto.ItemResponse, int64, error)
	Search(ctx context.Context, req *dto.ItemSearchRequest) ([]dto.ItemResponse, int64, error)
	Filter(ctx context.Context, req *dto.ItemFilterRequest) ([]dto.ItemResponse, int64, error)

	UpdateStatus(ctx context.Context, id string, req *dto.UpdateItemStatusRequest, actor Actor) (*dto.ItemResponse, error)
	Move(ctx context.Context, id string, req *dto.MoveItemRequest, actor Actor) (*dto.ItemResponse, error)
	Update(ctx context.Context, id string, req *dto.UpdateItemRequest, actor Actor) (*dto.ItemResponse, error)
	Delete(ctx context.Context, id string, actor Actor) error
	Logs(ctx context.Context, id string) ([]dto.ActivityLogResponse, error)

	Stats(ctx context.Context) (*dto.ItemStatsResponse, error)
	Similar(ctx context.Context, id string) ([]dto.ItemGroupResponse, error)
	RoomsOverview(ctx context.Context) ([]dto.RoomOverviewResponse, error)
	Report(ctx context.Context, req *dto.ItemReportRequest) ([]dto.ItemGroupResponse, int64, error)

	PageSize() int
}

type itemService struct {
	repo      *repository.Repository
	allocator *SerialAllocator
	logs      ActivityLogService
	audit     auditor
	cfg       *config.InventoryConfig
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

// NewItemService 创建 ItemService 实例
func NewItemService(
	repo *repository.Repository,
	allocator *SerialAllocator,
	logs ActivityLogService,
	cfg *config.InventoryConfig,
	loc *time.Location,
	now func() time.Time,
	logger *zap.Logger,
) ItemService {
	if loc == nil {
		loc = time.Local
	}
	if now == nil {
		now = time.Now
	}
	return &itemService{
		repo:      repo,
		allocator: allocator,
		logs:      logs,
		audit:     auditor{logs: logs, logger: logger},
		cfg:       cfg,
		loc:       loc,
		now:       now,
		logger:    logger,
	}
}

func (s *itemService) PageSize() int { return s.cfg.PageSize }

// ═══════════════════════════════════════════════════════════
// Create 批量创建资产
// ═══════════════════════════════════════════════════════════
//
// 流程：
//   1. 校验数量、价值、日期以及分类/楼层/房间
//   2. 事务内分配 count 个序列号并插入资产
//   3. 提交后为每件资产写入一条 added 日志

func (s *itemService) Create(ctx context.Context, req *dto.CreateItemRequest, actor Actor) ([]dto.ItemResponse, error) {
	count := req.Count
	if count <= 0 {
		count = 1
	}
	if count > s.cfg.MaxBatchSize {
		return nil, ErrBatchTooLarge
	}
	if req.Cost.IsNegative() {
		return nil, ErrInvalidCost
	}
	if !model.ValidItemStatus(req.Status) {
		return nil, ErrInvalidItemStatus
	}
	acquired, err := parseDay(req.AcquiredDate, s.loc)
	if err != nil {
		return nil, err
	}

	cat, err := s.getCategory(ctx, req.CategoryID)
	if err != nil {
		return nil, err
	}
	floor, room, err := s.getPlacement(ctx, req.FloorID, req.RoomID)
	if err != nil {
		return nil, err
	}

	// 事务：分配序列号 + 插入资产
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return nil, err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	serials, err := s.allocator.WithRepo(txRepo.Category).Allocate(ctx, cat.CategoryID, count)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return nil, err
	}

	items := make([]*model.Item, count)
	for i := range items {
		item := &model.Item{
			Name:         strings.TrimSpace(req.Name),
			Description:  req.Description,
			ModelNumber:  strings.TrimSpace(req.ModelNumber),
			CategoryID:   cat.CategoryID,
			FloorID:      floor.FloorID,
			RoomID:       room.RoomID,
			Status:       req.Status,
			Source:       req.Source,
			Cost:         req.Cost,
			AcquiredDate: acquired,
			SerialNumber: serials[i],
			IsActive:     true,
		}
		item.CreatedBy = &actor.ID
		item.UpdatedBy = &actor.ID
		item.Version = 1
		items[i] = item
	}

	if err := txRepo.Item.BatchCreate(ctx, items); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		s.logger.Error("批量创建资产失败", zap.String("category_id", cat.CategoryID), zap.Int("count", count), zap.Error(err))
		return nil, err
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return nil, err
		}
	}

	// 提交后写日志
	entries := make([]AuditEntry, len(items))
	result := make([]dto.ItemResponse, len(items))
	for i, item := range items {
		item.Category, item.Floor, item.Room = cat, floor, room
		entries[i] = AuditEntry{
			Action:     model.ActionAdded,
			EntityType: model.EntityItem,
			EntityID:   item.ItemID,
			EntityName: item.Name,
			Actor:      actor,
			Changes: model.ChangeSet{
				"room":     {From: nil, To: room.Name},
				"floor":    {From: nil, To: floor.Name},
				"status":   {From: nil, To: item.Status},
				"isActive": {From: nil, To: true},
			},
			Description: fmt.Sprintf("%s(%s) added an item '%s' to room '%s'", actor.Name, actor.Role, item.Name, room.Name),
		}
		result[i] = *s.toItemResponse(item)
	}
	s.audit.record(ctx, entries...)

	s.logger.Info("资产创建成功",
		zap.String("category", cat.Abbreviation),
		zap.Int("count", count),
		zap.String("first_serial", serials[0]),
	)
	return result, nil
}

// ────────────────────── Read ──────────────────────

func (s *itemService) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := s.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.toItemResponse(item), nil
}

func (s *itemService) List(ctx context.Context, req *dto.PaginationRequest) ([]dto.ItemResponse, int64, error) {
	return s.list(ctx, repository.ItemFilter{}, req)
}

// Search 名称包含匹配（大小写不敏感）或序列号前缀匹配
func (s *itemService) Search(ctx context.Context, req *dto.ItemSearchRequest) ([]dto.ItemResponse, int64, error) {
	name := strings.TrimSpace(req.Name)
	serial := strings.TrimSpace(req.Serial)
	if name == "" && serial == "" {
		return nil, 0, ErrSearchTermRequired
	}
	return s.list(ctx, repository.ItemFilter{NameContains: name, SerialPrefix: serial}, &req.PaginationRequest)
}

func (s *itemService) Filter(ctx context.Context, req *dto.ItemFilterRequest) ([]dto.ItemResponse, int64, error) {
	f, err := buildItemFilter(req, s.loc)
	if err != nil {
		return nil, 0, err
	}

	return s.list(ctx, f, &req.PaginationRequest)
}

func (s *itemService) list(ctx context.Context, f repository.ItemFilter, page *dto.PaginationRequest) ([]dto.ItemResponse, int64, error) {
	items, total, err := s.repo.Item.List(ctx, f, page.GetOffset(s.cfg.PageSize), page.GetPageSize(s.cfg.PageSize))
	if err != nil {
		s.logger.Error("查询资产列表失败", zap.Error(err))
		return nil, 0, err
	}

	result := make([]dto.ItemResponse, len(items))
	for i := range items {
		result[i] = *s.toItemResponse(&items[i])
	}
	return result, total, nil
}

// ────────────────────── UpdateStatus ──────────────────────

func (s *itemService) UpdateStatus(ctx context.Context, id string, req *dto.UpdateItemStatusRequest, actor Actor) (*dto.ItemResponse, error) {
	if !model.ValidItemStatus(req.Status) {
		return nil, ErrInvalidItemStatus
	}
	item, err := s.getItemForUpdate(ctx, id, req.Version)
	if err != nil {
		return nil, err
	}
	if item.Status == req.Status {
		return s.toItemResponse(item), nil
	}

	oldStatus := item.Status
	item.Status = req.Status
	item.UpdatedBy = &actor.ID

	if err := s.repo.Item.Update(ctx, item); err != nil {
		return nil, s.updateFailed(id, err)
	}

	s.audit.record(ctx, AuditEntry{
		Action:      model.ActionChangedStatus,
		EntityType:  model.EntityItem,
		EntityID:    item.ItemID,
		EntityName:  item.Name,
		Actor:       actor,
		Changes:     model.ChangeSet{"status": {From: oldStatus, To: item.Status}},
		Description: fmt.Sprintf("%s(%s) changed status of '%s' from '%s' to '%s'", actor.Name, actor.Role, item.Name, oldStatus, item.Status),
	})

	return s.toItemResponse(item), nil
}

// ────────────────────── Move ──────────────────────

// Move 移动资产到其他房间，楼层取新房间所在楼层
func (s *itemService) Move(ctx context.Context, id string, req *dto.MoveItemRequest, actor Actor) (*dto.ItemResponse, error) {
	item, err := s.getItemForUpdate(ctx, id, req.Version)
	if err != nil {
		return nil, err
	}
	if item.RoomID == req.RoomID {
		return nil, ErrItemAlreadyInRoom
	}

	room, err := s.repo.Room.GetByID(ctx, req.RoomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("查询房间失败", zap.String("id", req.RoomID), zap.Error(err))
		return nil, err
	}
	floor := room.Floor
	if floor == nil {
		if floor, err = s.repo.Floor.GetByID(ctx, room.FloorID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrFloorNotFound
			}
			return nil, err
		}
	}

	changes := model.ChangeSet{}
	diff(changes, "room", roomName(item), room.Name)
	diff(changes, "floor", floorName(item), floor.Name)
	oldRoom := roomName(item)

	item.RoomID = room.RoomID
	item.FloorID = floor.FloorID
	item.UpdatedBy = &actor.ID

	if err := s.repo.Item.Update(ctx, item); err != nil {
		return nil, s.updateFailed(id, err)
	}
	item.Room, item.Floor = room, floor

	s.audit.record(ctx, AuditEntry{
		Action:      model.ActionMoved,
		EntityType:  model.EntityItem,
		EntityID:    item.ItemID,
		EntityName:  item.Name,
		Actor:       actor,
		Changes:     changes,
		Description: fmt.Sprintf("%s(%s) moved '%s' from room '%s' to room '%s'", actor.Name, actor.Role, item.Name, oldRoom, room.Name),
	})

	return s.toItemResponse(item), nil
}

// ═══════════════════════════════════════════════════════════
// Update 编辑资产详情
// ═══════════════════════════════════════════════════════════
//
// 分类变化时在同一事务内从新分类分配一个序列号；
// 旧分类计数器保持不变，新序列号的差异记录在 itemSerialNumber 字段。

func (s *itemService) Update(ctx context.Context, id string, req *dto.UpdateItemRequest, actor Actor) (*dto.ItemResponse, error) {
	item, err := s.getItemForUpdate(ctx, id, req.Version)
	if err != nil {
		return nil, err
	}

	var newCat *model.Category
	if req.CategoryID != nil {
		if *req.CategoryID == item.CategoryID {
			return nil, ErrSameCategory
		}
		if newCat, err = s.getCategory(ctx, *req.CategoryID); err != nil {
			return nil, err
		}
	}

	changes := model.ChangeSet{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		diff(changes, "name", item.Name, name)
		item.Name = name
	}
	if req.Description != nil {
		diff(changes, "description", item.Description, *req.Description)
		item.Description = *req.Description
	}
	if req.ModelNumber != nil {
		modelNumber := strings.TrimSpace(*req.ModelNumber)
		diff(changes, "modelNumber", item.ModelNumber, modelNumber)
		item.ModelNumber = modelNumber
	}
	if req.Source != nil {
		diff(changes, "source", item.Source, *req.Source)
		item.Source = *req.Source
	}
	if req.Cost != nil {
		if req.Cost.IsNegative() {
			return nil, ErrInvalidCost
		}
		if !req.Cost.Equal(item.Cost) {
			changes["cost"] = model.FieldChange{From: item.Cost.StringFixed(2), To: req.Cost.StringFixed(2)}
			item.Cost = *req.Cost
		}
	}
	if req.AcquiredDate != nil {
		acquired, err := parseDay(*req.AcquiredDate, s.loc)
		if err != nil {
			return nil, err
		}
		diff(changes, "acquiredDate", item.AcquiredDate.In(s.loc).Format(dateLayout), acquired.Format(dateLayout))
		item.AcquiredDate = acquired
	}

	if newCat == nil && len(changes) == 0 {
		return s.toItemResponse(item), nil
	}
	item.UpdatedBy = &actor.ID

	if newCat == nil {
		if err := s.repo.Item.Update(ctx, item); err != nil {
			return nil, s.updateFailed(id, err)
		}
	} else if err := s.recategorize(ctx, item, newCat, changes); err != nil {
		return nil, err
	}

	s.audit.record(ctx, AuditEntry{
		Action:      model.ActionEditedDetails,
		EntityType:  model.EntityItem,
		EntityID:    item.ItemID,
		EntityName:  item.Name,
		Actor:       actor,
		Changes:     changes,
		Description: fmt.Sprintf("%s(%s) edited details of '%s'", actor.Name, actor.Role, item.Name),
	})

	return s.toItemResponse(item), nil
}

// recategorize 事务内分配新序列号并保存资产
func (s *itemService) recategorize(ctx context.Context, item *model.Item, newCat *model.Category, changes model.ChangeSet) error {
	tx, err := s.repo.BeginTx(ctx)
	if err != nil {
		s.logger.Error("开启事务失败", zap.Error(err))
		return err
	}
	defer func() {
		if r := recover(); r != nil {
			if tx != nil {
				tx.Rollback()
			}
			panic(r)
		}
	}()

	txRepo := s.repo.WithTx(tx)

	serials, err := s.allocator.WithRepo(txRepo.Category).Allocate(ctx, newCat.CategoryID, 1)
	if err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return err
	}

	oldCatName := item.CategoryID
	if item.Category != nil {
		oldCatName = item.Category.Name
	}
	changes["category"] = model.FieldChange{From: oldCatName, To: newCat.Name}
	changes["itemSerialNumber"] = model.FieldChange{From: item.SerialNumber, To: serials[0]}

	item.CategoryID = newCat.CategoryID
	item.SerialNumber = serials[0]

	if err := txRepo.Item.Update(ctx, item); err != nil {
		if tx != nil {
			tx.Rollback()
		}
		return s.updateFailed(item.ItemID, err)
	}

	if tx != nil {
		if err := tx.Commit().Error; err != nil {
			s.logger.Error("提交事务失败", zap.Error(err))
			return err
		}
	}
	item.Category = newCat
	return nil
}

// ────────────────────── Delete ──────────────────────

func (s *itemService) Delete(ctx context.Context, id string, actor Actor) error {
	item, err := s.getItem(ctx, id)
	if err != nil {
		return err
	}

	item.IsActive = false
	item.UpdatedBy = &actor.ID
	if err := s.repo.Item.Update(ctx, item); err != nil {
		return s.updateFailed(id, err)
	}

	s.audit.record(ctx, AuditEntry{
		Action:      model.ActionRemoved,
		EntityType:  model.EntityItem,
		EntityID:    item.ItemID,
		EntityName:  item.Name,
		Actor:       actor,
		Changes:     model.ChangeSet{"isActive": {From: true, To: false}},
		Description: fmt.Sprintf("%s(%s) removed item '%s' (%s)", actor.Name, actor.Role, item.Name, item.SerialNumber),
	})
	return nil
}

// Logs 资产的全部操作日志，已删除资产的日志仍可查询
func (s *itemService) Logs(ctx context.Context, id string) ([]dto.ActivityLogResponse, error) {
	return s.logs.ListForEntity(ctx, model.EntityItem, id)
}

// ────────────────────── 统计 ──────────────────────

// Stats 总体状态统计，附带截至上月末的购置数量
func (s *itemService) Stats(ctx context.Context) (*dto.ItemStatsResponse, error) {
	counts, err := s.repo.Item.StatusCounts(ctx, "")
	if err != nil {
		s.logger.Error("统计资产状态失败", zap.Error(err))
		return nil, err
	}

	now := s.now().In(s.loc)
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, s.loc)
	untilLastMonth, err := s.repo.Item.CountAcquiredBefore(ctx, monthStart)
	if err != nil {
		s.logger.Error("统计历史购置数量失败", zap.Error(err))
		return nil, err
	}

	return &dto.ItemStatsResponse{
		StatusStatsResponse:    *toStatusStats(counts),
		AcquiredUntilLastMonth: untilLastMonth,
	}, nil
}

// Similar 同分类在用资产按型号分组
func (s *itemService) Similar(ctx context.Context, id string) ([]dto.ItemGroupResponse, error) {
	item, err := s.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	groups, err := s.repo.Item.GroupByModel(ctx, item.CategoryID)
	if err != nil {
		s.logger.Error("查询同类资产失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toGroupResponses(groups), nil
}

func (s *itemService) RoomsOverview(ctx context.Context) ([]dto.RoomOverviewResponse, error) {
	rows, err := s.repo.Item.RoomStatusCounts(ctx)
	if err != nil {
		s.logger.Error("统计房间资产失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.RoomOverviewResponse, len(rows))
	for i, r := range rows {
		result[i] = dto.RoomOverviewResponse{
			RoomID:     r.RoomID,
			RoomName:   r.RoomName,
			FloorID:    r.FloorID,
			FloorName:  r.FloorName,
			Total:      r.Total,
			Working:    r.Working,
			Repairable: r.Repairable,
			NotWorking: r.NotWorking,
		}
	}
	return result, nil
}

// Report 按名称/分类/型号分组的分页报表
func (s *itemService) Report(ctx context.Context, req *dto.ItemReportRequest) ([]dto.ItemGroupResponse, int64, error) {
	groups, total, err := s.repo.Item.GroupReport(ctx, req.CategoryID,
		req.GetOffset(s.cfg.PageSize), req.GetPageSize(s.cfg.PageSize))
	if err != nil {
		s.logger.Error("生成资产报表失败", zap.Error(err))
		return nil, 0, err
	}
	return toGroupResponses(groups), total, nil
}

// ── 辅助函数 ──

func (s *itemService) getItem(ctx context.Context, id string) (*model.Item, error) {
	item, err := s.repo.Item.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrItemNotFound
		}
		s.logger.Error("查询资产失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	if !item.IsActive {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// getItemForUpdate 读取资产并校验客户端携带的版本号（0 表示不校验）
func (s *itemService) getItemForUpdate(ctx context.Context, id string, version int) (*model.Item, error) {
	item, err := s.getItem(ctx, id)
	if err != nil {
		return nil, err
	}
	if version > 0 && version != item.Version {
		return nil, pkgerrors.ErrOptimisticLock
	}
	return item, nil
}

func (s *itemService) updateFailed(id string, err error) error {
	if errors.Is(err, pkgerrors.ErrOptimisticLock) {
		return err
	}
	s.logger.Error("更新资产失败", zap.String("id", id), zap.Error(err))
	return err
}

func (s *itemService) getCategory(ctx context.Context, id string) (*model.Category, error) {
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

// getPlacement 校验楼层与房间存在且房间位于该楼层
func (s *itemService) getPlacement(ctx context.Context, floorID, roomID string) (*model.Floor, *model.Room, error) {
	floor, err := s.repo.Floor.GetByID(ctx, floorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrFloorNotFound
		}
		s.logger.Error("查询楼层失败", zap.String("id", floorID), zap.Error(err))
		return nil, nil, err
	}
	room, err := s.repo.Room.GetByID(ctx, roomID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrRoomNotFound
		}
		s.logger.Error("查询房间失败", zap.String("id", roomID), zap.Error(err))
		return nil, nil, err
	}
	if room.FloorID != floor.FloorID {
		return nil, nil, ErrRoomNotOnFloor
	}
	return floor, room, nil
}

func (s *itemService) toItemResponse(item *model.Item) *dto.ItemResponse {
	resp := &dto.ItemResponse{
		ID:           item.ItemID,
		Name:         item.Name,
		Description:  item.Description,
		ModelNumber:  item.ModelNumber,
		SerialNumber: item.SerialNumber,
		CategoryID:   item.CategoryID,
		FloorID:      item.FloorID,
		RoomID:       item.RoomID,
		Status:       item.Status,
		Source:       item.Source,
		Cost:         item.Cost,
		AcquiredDate: item.AcquiredDate.In(s.loc).Format(dateLayout),
		Version:      item.Version,
		CreatedAt:    item.CreatedAt.Format(timeLayout),
		UpdatedAt:    item.UpdatedAt.Format(timeLayout),
	}
	if item.Category != nil {
		resp.CategoryName = item.Category.Name
	}
	if item.Floor != nil {
		resp.FloorName = item.Floor.Name
	}
	if item.Room != nil {
		resp.RoomName = item.Room.Name
	}
	return resp
}

func toGroupResponses(groups []repository.ItemGroup) []dto.ItemGroupResponse {
	result := make([]dto.ItemGroupResponse, len(groups))
	for i, g := range groups {
		result[i] = dto.ItemGroupResponse{
			Name:         g.Name,
			CategoryID:   g.CategoryID,
			CategoryName: g.CategoryName,
			ModelNumber:  g.ModelNumber,
			Total:        g.Total,
			Working:      g.Working,
			Repairable:   g.Repairable,
			NotWorking:   g.NotWorking,
		}
	}
	return result
}

// buildItemFilter 校验并转换过滤条件，过滤接口与导出共用
func buildItemFilter(req *dto.ItemFilterRequest, loc *time.Location) (repository.ItemFilter, error) {
	f := repository.ItemFilter{
		CategoryID: unlessAll(req.CategoryID),
		RoomID:     unlessAll(req.RoomID),
		Status:     unlessAll(req.Status),
		Source:     unlessAll(req.Source),
	}
	for _, id := range []string{f.CategoryID, f.RoomID} {
		if id != "" && !validID(id) {
			return f, pkgerrors.ErrInvalidID
		}
	}
	if f.Status != "" && !model.ValidItemStatus(f.Status) {
		return f, ErrInvalidItemStatus
	}

	from, to, err := dayRange(req.StartDate, req.EndDate, loc)
	if err != nil {
		return f, err
	}
	f.AcquiredFrom, f.AcquiredTo = from, to
	return f, nil
}

func unlessAll(v string) string {
	v = strings.TrimSpace(v)
	if v == filterAll {
		return ""
	}
	return v
}

func roomName(item *model.Item) string {
	if item.Room != nil {
		return item.Room.Name
	}
	return item.RoomID
}

func floorName(item *model.Item) string {
	if item.Floor != nil {
		return item.Floor.Name
	}
	return item.FloorID
}
