package dto

// ── 楼层 / 房间 DTO ──

// CreateFloorRequest 创建楼层请求
type CreateFloorRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// UpdateFloorRequest 更新楼层请求
type UpdateFloorRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// FloorResponse 楼层信息响应
type FloorResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// CreateRoomRequest 创建房间请求
type CreateRoomRequest struct {
	FloorID string `json:"floor_id" binding:"required,uuid"`
	Name    string `json:"name"     binding:"required,min=1,max=100"`
}

// UpdateRoomRequest 更新房间请求
type UpdateRoomRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
}

// RoomListRequest 房间列表查询参数
type RoomListRequest struct {
	FloorID string `form:"floor_id" binding:"omitempty,uuid"`
}

// RoomResponse 房间信息响应
type RoomResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	FloorID   string `json:"floor_id"`
	FloorName string `json:"floor_name,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
