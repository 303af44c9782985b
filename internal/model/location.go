package model

// Floor 楼层表，对应 floors
type Floor struct {
	FloorID  string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"floor_id"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	IsActive bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName 指定表名
func (Floor) TableName() string { return "floors" }

// Room 房间表，对应 rooms，隶属某一楼层
type Room struct {
	RoomID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"room_id"`
	FloorID  string `gorm:"type:uuid;not null"                             json:"floor_id"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	IsActive bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	// 关联
	Floor *Floor `gorm:"foreignKey:FloorID;references:FloorID" json:"floor,omitempty"`
}

// TableName 指定表名
func (Room) TableName() string { return "rooms" }
