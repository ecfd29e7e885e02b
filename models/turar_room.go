package models

import "time"

type TurarRoom struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	Name         string  `gorm:"size:255" json:"name"`
	Description  *string `gorm:"type:text" json:"description,omitempty"`
	DepartmentID uint    `gorm:"column:department_id;index" json:"departmentId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Department *TurarDepartment `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
	Equipment  []TurarEquipment `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"equipment,omitempty"`
}
