package models

import (
	"time"

	"gorm.io/datatypes"
)

// ImportLog records one seed/import run: which dataset was replaced and
// the counts the importer reported (stored as a JSON blob so each
// importer can log its own shape).
type ImportLog struct {
	ID     uint           `gorm:"primaryKey" json:"id"`
	RunID  string         `gorm:"column:run_id;size:36;index" json:"runId"`
	Source string         `gorm:"size:50;index" json:"source"`
	Stats  datatypes.JSON `json:"stats"`

	CreatedAt time.Time `json:"createdAt"`
}
