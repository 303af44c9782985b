package repository

import (
	"context"

	"gorm.io/gorm"

	"inventra/backend/internal/model"
)

// FloorRepository 楼层数据访问接口
type FloorRepository interface {
	Create(ctx context.Context, floor *model.Floor) error
	GetByID(ctx context.Context, id string) (*model.Floor, error)
	GetByName(ctx context.Context, name string) (*model.Floor, error)
	List(ctx context.Context) ([]model.Floor, error)
	Update(ctx context.Context, floor *model.Floor) error
	Delete(ctx context.Context, id string, updatedBy string) error
}

type floorRepo struct {
	db *gorm.DB
}

// NewFloorRepo 创建 FloorRepository 实例
func NewFloorRepo(db *gorm.DB) FloorRepository {
	return &floorRepo{db: db}
}

func (r *floorRepo) Create(ctx context.Context, floor *model.Floor) error {
	return r.db.WithContext(ctx).Create(floor).Error
}

func (r *floorRepo) GetByID(ctx context.Context, id string) (*model.Floor, error) {
	var floor model.Floor
	err := r.db.WithContext(ctx).
		Where("floor_id = ? AND is_active = ?", id, true).
		First(&floor).Error
	if err != nil {
		return nil, err
	}
	return &floor, nil
}

// GetByName 按名称查找启用中的楼层（大小写不敏感）
func (r *floorRepo) GetByName(ctx context.Context, name string) (*model.Floor, error) {
	var floor model.Floor
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = LOWER(?) AND is_active = ?", name, true).
		First(&floor).Error
	if err != nil {
		return nil, err
	}
	return &floor, nil
}

func (r *floorRepo) List(ctx context.Context) ([]model.Floor, error) {
	var floors []model.Floor
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&floors).Error
	return floors, err
}

func (r *floorRepo) Update(ctx context.Context, floor *model.Floor) error {
	return r.db.WithContext(ctx).Save(floor).Error
}

func (r *floorRepo) Delete(ctx context.Context, id string, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Floor{}).
		Where("floor_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": updatedBy,
		}).Error
}

// RoomRepository 房间数据访问接口
type RoomRepository interface {
	Create(ctx context.Context, room *model.Room) error
	GetByID(ctx context.Context, id string) (*model.Room, error)
	GetByName(ctx context.Context, floorID, name string) (*model.Room, error)
	List(ctx context.Context, floorID string) ([]model.Room, error)
	CountByFloor(ctx context.Context, floorID string) (int64, error)
	Update(ctx context.Context, room *model.Room) error
	Delete(ctx context.Context, id string, updatedBy string) error
}

type roomRepo struct {
	db *gorm.DB
}

// NewRoomRepo 创建 RoomRepository 实例
func NewRoomRepo(db *gorm.DB) RoomRepository {
	return &roomRepo{db: db}
}

func (r *roomRepo) Create(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *roomRepo) GetByID(ctx context.Context, id string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Preload("Floor").
		Where("room_id = ? AND is_active = ?", id, true).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// GetByName 按楼层与名称查找启用中的房间（大小写不敏感）
func (r *roomRepo) GetByName(ctx context.Context, floorID, name string) (*model.Room, error) {
	var room model.Room
	err := r.db.WithContext(ctx).
		Where("floor_id = ? AND LOWER(name) = LOWER(?) AND is_active = ?", floorID, name, true).
		First(&room).Error
	if err != nil {
		return nil, err
	}
	return &room, nil
}

// List 列出启用中的房间，floorID 为空时不过滤楼层
func (r *roomRepo) List(ctx context.Context, floorID string) ([]model.Room, error) {
	var rooms []model.Room
	db := r.db.WithContext(ctx).Preload("Floor").Where("is_active = ?", true)
	if floorID != "" {
		db = db.Where("floor_id = ?", floorID)
	}
	err := db.Order("name ASC").Find(&rooms).Error
	return rooms, err
}

func (r *roomRepo) CountByFloor(ctx context.Context, floorID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.Room{}).
		Where("floor_id = ? AND is_active = ?", floorID, true).
		Count(&count).Error
	return count, err
}

func (r *roomRepo) Update(ctx context.Context, room *model.Room) error {
	return r.db.WithContext(ctx).Omit("Floor").Save(room).Error
}

func (r *roomRepo) Delete(ctx context.Context, id string, updatedBy string) error {
	return r.db.WithContext(ctx).
		Model(&model.Room{}).
		Where("room_id = ?", id).
		Updates(map[string]interface{}{
			"is_active":  false,
			"updated_by": updatedBy,
		}).Error
}
