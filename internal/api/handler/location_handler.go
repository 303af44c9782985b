package handler

import (
	"github.com/gin-gonic/gin"

	"inventra/backend/internal/dto"
	"inventra/backend/internal/service"
	"inventra/backend/pkg/response"
)

// LocationHandler 楼层与房间 HTTP 处理器
type LocationHandler struct {
	locationSvc service.LocationService
}

// NewLocationHandler 创建 LocationHandler
func NewLocationHandler(locationSvc service.LocationService) *LocationHandler {
	return &LocationHandler{locationSvc: locationSvc}
}

// ────────────────────── 楼层 ──────────────────────

// ListFloors 楼层列表
// GET /api/v1/floors
func (h *LocationHandler) ListFloors(c *gin.Context) {
	floors, err := h.locationSvc.ListFloors(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"list": floors})
}

// CreateFloor 创建楼层
// POST /api/v1/floors
func (h *LocationHandler) CreateFloor(c *gin.Context) {
	var req dto.CreateFloorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	floor, err := h.locationSvc.CreateFloor(c.Request.Context(), &req, actor)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, floor)
}

// UpdateFloor 重命名楼层
// PUT /api/v1/floors/:id
func (h *LocationHandler) UpdateFloor(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateFloorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	floor, err := h.locationSvc.UpdateFloor(c.Request.Context(), id, &req, actor)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, floor)
}

// DeleteFloor 删除楼层
// DELETE /api/v1/floors/:id
func (h *LocationHandler) DeleteFloor(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.locationSvc.DeleteFloor(c.Request.Context(), id, actor); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}

// ────────────────────── 房间 ──────────────────────

// ListRooms 房间列表，可按楼层过滤
// GET /api/v1/rooms?floor_id=
func (h *LocationHandler) ListRooms(c *gin.Context) {
	var req dto.RoomListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindFailed(c)
		return
	}

	rooms, err := h.locationSvc.ListRooms(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, gin.H{"list": rooms})
}

// GetRoom 房间详情
// GET /api/v1/rooms/:id
func (h *LocationHandler) GetRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	room, err := h.locationSvc.GetRoom(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, room)
}

// CreateRoom 创建房间
// POST /api/v1/rooms
func (h *LocationHandler) CreateRoom(c *gin.Context) {
	var req dto.CreateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	room, err := h.locationSvc.CreateRoom(c.Request.Context(), &req, actor)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Created(c, room)
}

// UpdateRoom 重命名房间
// PUT /api/v1/rooms/:id
func (h *LocationHandler) UpdateRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateRoomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindFailed(c)
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	room, err := h.locationSvc.UpdateRoom(c.Request.Context(), id, &req, actor)
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, room)
}

// DeleteRoom 删除房间
// DELETE /api/v1/rooms/:id
func (h *LocationHandler) DeleteRoom(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	actor, ok := MustGetActor(c)
	if !ok {
		return
	}

	if err := h.locationSvc.DeleteRoom(c.Request.Context(), id, actor); err != nil {
		response.FromError(c, err)
		return
	}

	response.OK(c, nil)
}
