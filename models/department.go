package models

import "time"

// Department belongs to a Block in the floor-plan catalog. Department
// mappings reference it by name, not by id, so renames must be mirrored
// in the mapping table (see DepartmentMapping).
type Department struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;index" json:"name"`
	Code        *string `gorm:"size:50" json:"code,omitempty"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	BlockID     uint    `gorm:"column:block_id;index" json:"blockId"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Block *Block `gorm:"foreignKey:BlockID" json:"block,omitempty"`
	Rooms []Room `gorm:"foreignKey:DepartmentID;constraint:OnDelete:CASCADE" json:"rooms,omitempty"`
}
