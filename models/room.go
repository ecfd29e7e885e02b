package models

import "time"

type Room struct {
	ID           uint     `gorm:"primaryKey" json:"id"`
	Name         string   `gorm:"size:255" json:"name"`
	Code         *string  `gorm:"size:50" json:"code,omitempty"`
	Area         *float64 `json:"area,omitempty"`
	Description  *string  `gorm:"type:text" json:"description,omitempty"`
	DepartmentID uint     `gorm:"column:department_id;index" json:"departmentId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Department *Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Equipment  []Equipment `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"equipment,omitempty"`
}
