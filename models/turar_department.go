package models

import "time"

// TurarDepartment is the root of the inventory catalog ("Турар").
type TurarDepartment struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;index" json:"name"`
	Description *string `gorm:"type:text" json:"description,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Rooms []TurarRoom `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"rooms,omitempty"`
}
