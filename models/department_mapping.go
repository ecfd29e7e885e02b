package models

import "time"

// DepartmentMapping links a Turar department to a floor-plan department
// by name string, not by foreign key. Mappings survive a catalog rebuild
// as long as names are reproduced verbatim; a rename without updating the
// mapping orphans it (see ConnectionService.OrphanedMappings).
type DepartmentMapping struct {
	ID                    uint   `gorm:"primaryKey" json:"id"`
	TurarDepartmentName   string `gorm:"size:255;uniqueIndex:idx_department_mapping_pair" json:"turarDepartmentName"`
	ProjectDepartmentName string `gorm:"size:255;uniqueIndex:idx_department_mapping_pair" json:"projectDepartmentName"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
