package services

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hospital-backend/models"
)

// recordImportLog writes one ImportLog row for a finished seed run.
// Logging must never fail the import itself.
func recordImportLog(db *gorm.DB, source string, stats interface{}) {
	raw, err := json.Marshal(stats)
	if err != nil {
		log.Printf("⚠️ failed to marshal import stats for %s: %v", source, err)
		return
	}
	entry := models.ImportLog{
		RunID:  uuid.NewString(),
		Source: source,
		Stats:  raw,
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("⚠️ failed to record import log for %s: %v", source, err)
	}
}

// ImportLogService exposes the import history for the admin UI.
type ImportLogService struct {
	DB *gorm.DB
}

func NewImportLogService(db *gorm.DB) *ImportLogService {
	return &ImportLogService{DB: db}
}

func (s *ImportLogService) List() ([]models.ImportLog, error) {
	var logs []models.ImportLog
	err := s.DB.Order("id DESC").Limit(100).Find(&logs).Error
	return logs, err
}
