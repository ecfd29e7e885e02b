package models

import "time"

type Equipment struct {
	ID       uint    `gorm:"primaryKey" json:"id"`
	Code     string  `gorm:"size:100" json:"code"`
	Name     string  `gorm:"size:500" json:"name"`
	Quantity int     `gorm:"default:1" json:"quantity"`
	Unit     string  `gorm:"size:50" json:"unit"`
	Notes    *string `gorm:"type:text" json:"notes,omitempty"`
	RoomID   uint    `gorm:"column:room_id;index" json:"roomId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
