package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"hospital-backend/models"
)

// RoomMappingService owns the room-level mapping table. Unlike
// department mappings these are id-based, backed by a composite unique
// index on (turar_room_id, project_room_id).
type RoomMappingService struct {
	DB    *gorm.DB
	Cache *ConnectionsCache
}

func NewRoomMappingService(db *gorm.DB, cache *ConnectionsCache) *RoomMappingService {
	return &RoomMappingService{DB: db, Cache: cache}
}

// List returns every room mapping with full ancestry on both sides:
// the Turar room with its department, the floor-plan room with its
// department, block and floor.
func (s *RoomMappingService) List() ([]models.RoomMapping, error) {
	var mappings []models.RoomMapping
	err := s.DB.
		Preload("TurarRoom.Department").
		Preload("TurarRoom.Equipment").
		Preload("ProjectRoom.Department.Block.Floor").
		Preload("ProjectRoom.Equipment").
		Find(&mappings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load room mappings: %w", err)
	}
	return mappings, nil
}

// Create links a Turar room to a floor-plan room. The exact pair may
// exist only once; the same room may take part in any number of pairs.
// The returned row carries both rooms with their owning departments.
func (s *RoomMappingService) Create(ctx context.Context, turarRoomID, projectRoomID uint) (models.RoomMapping, error) {
	if turarRoomID == 0 || projectRoomID == 0 {
		return models.RoomMapping{}, ErrRoomIDsRequired
	}

	var existing models.RoomMapping
	err := s.DB.Where("turar_room_id = ? AND project_room_id = ?", turarRoomID, projectRoomID).
		First(&existing).Error
	if err == nil {
		return models.RoomMapping{}, ErrRoomMappingExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.RoomMapping{}, fmt.Errorf("failed to check existing room mapping: %w", err)
	}

	mapping := models.RoomMapping{
		TurarRoomID:   turarRoomID,
		ProjectRoomID: projectRoomID,
	}
	if err := s.DB.Create(&mapping).Error; err != nil {
		if isDuplicateErr(err) {
			return models.RoomMapping{}, ErrRoomMappingExists
		}
		return models.RoomMapping{}, fmt.Errorf("failed to create room mapping: %w", err)
	}

	if err := s.DB.
		Preload("TurarRoom.Department").
		Preload("ProjectRoom.Department").
		First(&mapping, mapping.ID).Error; err != nil {
		return models.RoomMapping{}, fmt.Errorf("failed to reload room mapping: %w", err)
	}

	s.Cache.Invalidate(ctx)
	return mapping, nil
}

// Delete removes one room mapping by id.
func (s *RoomMappingService) Delete(ctx context.Context, id uint) error {
	result := s.DB.Delete(&models.RoomMapping{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete room mapping: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.Cache.Invalidate(ctx)
	return nil
}
