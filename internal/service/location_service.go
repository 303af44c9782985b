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

// ── 楼层 / 房间业务错误 ──

var (
	ErrFloorNotFound   = pkgerrors.New(pkgerrors.KindNotFound, "楼层不存在")
	ErrFloorNameExists = pkgerrors.New(pkgerrors.KindConflict, "楼层名称已存在")
	ErrFloorHasRooms   = pkgerrors.New(pkgerrors.KindInvalidState, "楼层下仍有房间，无法删除")
	ErrRoomNotFound    = pkgerrors.New(pkgerrors.KindNotFound, "房间不存在")
	ErrRoomNameExists  = pkgerrors.New(pkgerrors.KindConflict, "该楼层下房间名称已存在")
	ErrRoomHasItems    = pkgerrors.New(pkgerrors.KindInvalidState, "房间内仍有在用资产，无法删除")
	ErrRoomNotOnFloor  = pkgerrors.New(pkgerrors.KindInvalidArgument, "房间不属于所选楼层")
)

// LocationService 楼层与房间业务接口
// 房间的增删改写入操作日志，楼层不审计
type LocationService interface {
	CreateFloor(ctx context.Context, req *dto.CreateFloorRequest, actor Actor) (*dto.FloorResponse, error)
	ListFloors(ctx context.Context) ([]dto.FloorResponse, error)
	UpdateFloor(ctx context.Context, id string, req *dto.UpdateFloorRequest, actor Actor) (*dto.FloorResponse, error)
	DeleteFloor(ctx context.Context, id string, actor Actor) error

	CreateRoom(ctx context.Context, req *dto.CreateRoomRequest, actor Actor) (*dto.RoomResponse, error)
	GetRoom(ctx context.Context, id string) (*dto.RoomResponse, error)
	ListRooms(ctx context.Context, req *dto.RoomListRequest) ([]dto.RoomResponse, error)
	UpdateRoom(ctx context.Context, id string, req *dto.UpdateRoomRequest, actor Actor) (*dto.RoomResponse, error)
	DeleteRoom(ctx context.Context, id string, actor Actor) error
}

type locationService struct {
	repo   *repository.Repository
	audit  auditor
	logger *zap.Logger
}

// NewLocationService 创建 LocationService 实例
func NewLocationService(repo *repository.Repository, logs ActivityLogService, logger *zap.Logger) LocationService {
	return &locationService{
		repo:   repo,
		audit:  auditor{logs: logs, logger: logger},
		logger: logger,
	}
}

// ────────────────────── Floor ──────────────────────

func (s *locationService) CreateFloor(ctx context.Context, req *dto.CreateFloorRequest, actor Actor) (*dto.FloorResponse, error) {
	name := strings.TrimSpace(req.Name)
	if err := s.ensureFloorName(ctx, "", name); err != nil {
		return nil, err
	}

	floor := &model.Floor{Name: name, IsActive: true}
	floor.CreatedBy = &actor.ID
	floor.UpdatedBy = &actor.ID

	if err := s.repo.Floor.Create(ctx, floor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrFloorNameExists
		}
		s.logger.Error("创建楼层失败", zap.Error(err))
		return nil, err
	}
	return toFloorResponse(floor), nil
}

func (s *locationService) ListFloors(ctx context.Context) ([]dto.FloorResponse, error) {
	floors, err := s.repo.Floor.List(ctx)
	if err != nil {
		s.logger.Error("列出楼层失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.FloorResponse, len(floors))
	for i := range floors {
		result[i] = *toFloorResponse(&floors[i])
	}
	return result, nil
}

func (s *locationService) UpdateFloor(ctx context.Context, id string, req *dto.UpdateFloorRequest, actor Actor) (*dto.FloorResponse, error) {
	floor, err := s.getFloor(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.ensureFloorName(ctx, floor.FloorID, name); err != nil {
		return nil, err
	}

	floor.Name = name
	floor.UpdatedBy = &actor.ID
	if err := s.repo.Floor.Update(ctx, floor); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrFloorNameExists
		}
		s.logger.Error("更新楼层失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return toFloorResponse(floor), nil
}

func (s *locationService) DeleteFloor(ctx context.Context, id string, actor Actor) error {
	if _, err := s.getFloor(ctx, id); err != nil {
		return err
	}

	n, err := s.repo.Room.CountByFloor(ctx, id)
	if err != nil {
		s.logger.Error("统计楼层房间失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if n > 0 {
		return ErrFloorHasRooms
	}

	if err := s.repo.Floor.Delete(ctx, id, actor.ID); err != nil {
		s.logger.Error("删除楼层失败", zap.String("id", id), zap.Error(err))
		return err
	}
	return nil
}

// ────────────────────── Room ──────────────────────

func (s *locationService) CreateRoom(ctx context.Context, req *dto.CreateRoomRequest, actor Actor) (*dto.RoomResponse, error) {
	floor, err := s.getFloor(ctx, req.FloorID)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if err := s.ensureRoomName(ctx, floor.FloorID, "", name); err != nil {
		return nil, err
	}

	room := &model.Room{FloorID: floor.FloorID, Name: name, IsActive: true}
	room.CreatedBy = &actor.ID
	room.UpdatedBy = &actor.ID

	if err := s.repo.Room.Create(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoomNameExists
		}
		s.logger.Error("创建房间失败", zap.Error(err))
		return nil, err
	}
	room.Floor = floor

	s.audit.record(ctx, AuditEntry{
		Action:     model.ActionAdded,
		EntityType: model.EntityRoom,
		EntityID:   room.RoomID,
		EntityName: room.Name,
		Actor:      actor,
		Changes: model.ChangeSet{
			"name":  {From: nil, To: room.Name},
			"floor": {From: nil, To: floor.Name},
		},
		Description: fmt.Sprintf("%s(%s) added room '%s' on floor '%s'", actor.Name, actor.Role, room.Name, floor.Name),
	})

	return toRoomResponse(room), nil
}

func (s *locationService) GetRoom(ctx context.Context, id string) (*dto.RoomResponse, error) {
	room, err := s.getRoom(ctx, id)
	if err != nil {
		return nil, err
	}
	return toRoomResponse(room), nil
}

func (s *locationService) ListRooms(ctx context.Context, req *dto.RoomListRequest) ([]dto.RoomResponse, error) {
	rooms, err := s.repo.Room.List(ctx, req.FloorID)
	if err != nil {
		s.logger.Error("列出房间失败", zap.Error(err))
		return nil, err
	}
	result := make([]dto.RoomResponse, len(rooms))
	for i := range rooms {
		result[i] = *toRoomResponse(&rooms[i])
	}
	return result, nil
}

func (s *locationService) UpdateRoom(ctx context.Context, id string, req *dto.UpdateRoomRequest, actor Actor) (*dto.RoomResponse, error) {
	room, err := s.getRoom(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(req.Name)
	if name == room.Name {
		return toRoomResponse(room), nil
	}
	if err := s.ensureRoomName(ctx, room.FloorID, room.RoomID, name); err != nil {
		return nil, err
	}

	oldName := room.Name
	room.Name = name
	room.UpdatedBy = &actor.ID
	if err := s.repo.Room.Update(ctx, room); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrRoomNameExists
		}
		s.logger.Error("更新房间失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}

	s.audit.record(ctx, AuditEntry{
		Action:      model.ActionEditedDetails,
		EntityType:  model.EntityRoom,
		EntityID:    room.RoomID,
		EntityName:  room.Name,
		Actor:       actor,
		Changes:     model.ChangeSet{"name": {From: oldName, To: room.Name}},
		Description: fmt.Sprintf("%s(%s) renamed room '%s' to '%s'", actor.Name, actor.Role, oldName, room.Name),
	})

	return toRoomResponse(room), nil
}

func (s *locationService) DeleteRoom(ctx context.Context, id string, actor Actor) error {
	room, err := s.getRoom(ctx, id)
	if err != nil {
		return err
	}

	n, err := s.repo.Item.CountActive(ctx, repository.ItemFilter{RoomID: id})
	if err != nil {
		s.logger.Error("统计房间资产失败", zap.String("id", id), zap.Error(err))
		return err
	}
	if n > 0 {
		return ErrRoomHasItems
	}

	if err := s.repo.Room.Delete(ctx, id, actor.ID); err != nil {
		s.logger.Error("删除房间失败", zap.String("id", id), zap.Error(err))
		return err
	}

	s.audit.record(ctx, AuditEntry{
		Action:      model.ActionRemoved,
		EntityType:  model.EntityRoom,
		EntityID:    room.RoomID,
		EntityName:  room.Name,
		Actor:       actor,
		Changes:     model.ChangeSet{"isActive": {From: true, To: false}},
		Description: fmt.Sprintf("%s(%s) removed room '%s'", actor.Name, actor.Role, room.Name),
	})
	return nil
}

// ── 辅助函数 ──

func (s *locationService) getFloor(ctx context.Context, id string) (*model.Floor, error) {
	floor, err := s.repo.Floor.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrFloorNotFound
		}
		s.logger.Error("查询楼层失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return floor, nil
}

func (s *locationService) getRoom(ctx context.Context, id string) (*model.Room, error) {
	room, err := s.repo.Room.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoomNotFound
		}
		s.logger.Error("查询房间失败", zap.String("id", id), zap.Error(err))
		return nil, err
	}
	return room, nil
}

func (s *locationService) ensureFloorName(ctx context.Context, selfID, name string) error {
	existing, err := s.repo.Floor.GetByName(ctx, name)
	if err == nil && existing.FloorID != selfID {
		return ErrFloorNameExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("检查楼层名称失败", zap.Error(err))
		return err
	}
	return nil
}

func (s *locationService) ensureRoomName(ctx context.Context, floorID, selfID, name string) error {
	existing, err := s.repo.Room.GetByName(ctx, floorID, name)
	if err == nil && existing.RoomID != selfID {
		return ErrRoomNameExists
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		s.logger.Error("检查房间名称失败", zap.Error(err))
		return err
	}
	return nil
}

func toFloorResponse(f *model.Floor) *dto.FloorResponse {
	return &dto.FloorResponse{
		ID:        f.FloorID,
		Name:      f.Name,
		CreatedAt: f.CreatedAt.Format(timeLayout),
		UpdatedAt: f.UpdatedAt.Format(timeLayout),
	}
}

func toRoomResponse(r *model.Room) *dto.RoomResponse {
	resp := &dto.RoomResponse{
		ID:        r.RoomID,
		Name:      r.Name,
		FloorID:   r.FloorID,
		CreatedAt: r.CreatedAt.Format(timeLayout),
		UpdatedAt: r.UpdatedAt.Format(timeLayout),
	}
	if r.Floor != nil {
		resp.FloorName = r.Floor.Name
	}
	return resp
}
