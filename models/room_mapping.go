package models

import "time"

// RoomMapping links rooms across the two catalogs by id. One row per
// (turarRoomId, projectRoomId) pair; the same room may appear in any
// number of pairs.
type RoomMapping struct {
	ID            uint `gorm:"primaryKey" json:"id"`
	TurarRoomID   uint `gorm:"column:turar_room_id;uniqueIndex:idx_room_mapping_pair" json:"turarRoomId"`
	ProjectRoomID uint `gorm:"column:project_room_id;uniqueIndex:idx_room_mapping_pair" json:"projectRoomId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	TurarRoom   *TurarRoom `gorm:"foreignKey:TurarRoomID" json:"turarRoom,omitempty"`
	ProjectRoom *Room      `gorm:"foreignKey:ProjectRoomID" json:"projectRoom,omitempty"`
}
