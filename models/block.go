package models

import "time"

type Block struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Code    string `gorm:"size:50" json:"code"`
	Name    string `gorm:"size:255" json:"name"`
	FloorID uint   `gorm:"column:floor_id;index" json:"floorId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Floor       *Floor       `gorm:"foreignKey:FloorID" json:"floor,omitempty"`
	Departments []Department `gorm:"foreignKey:BlockID;constraint:OnDelete:CASCADE" json:"departments,omitempty"`
}
