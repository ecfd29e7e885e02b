package models

import "time"

// Floor is the root of the floor-plan catalog ("Проектировщики").
type Floor struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	FloorNumber int    `gorm:"column:floor_number;uniqueIndex" json:"floorNumber"`
	Name        string `gorm:"size:255" json:"name"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Blocks []Block `gorm:"foreignKey:FloorID;constraint:OnDelete:CASCADE" json:"blocks,omitempty"`
}
