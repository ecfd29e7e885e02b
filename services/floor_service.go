package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"gorm.io/gorm"

	"hospital-backend/models"
	"hospital-backend/utils"
)

// FloorService owns the floor-plan catalog: floors holding blocks,
// departments, rooms and equipment, five levels.
type FloorService struct {
	DB    *gorm.DB
	Cache *ConnectionsCache
}

func NewFloorService(db *gorm.DB, cache *ConnectionsCache) *FloorService {
	return &FloorService{DB: db, Cache: cache}
}

// List returns every floor nested down to equipment, ordered by floor
// number.
func (s *FloorService) List() ([]models.Floor, error) {
	var floors []models.Floor
	err := s.DB.
		Preload("Blocks.Departments.Rooms.Equipment").
		Order("floor_number ASC").
		Find(&floors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load floors: %w", err)
	}
	return floors, nil
}

type UpdateDepartmentInput struct {
	Name        string  `json:"name"`
	Code        *string `json:"code"`
	Description *string `json:"description"`
}

func (s *FloorService) UpdateDepartment(ctx context.Context, id uint, input UpdateDepartmentInput) (models.Department, error) {
	var department models.Department
	if err := s.DB.First(&department, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Department{}, ErrNotFound
		}
		return models.Department{}, fmt.Errorf("failed to load department: %w", err)
	}

	department.Name = input.Name
	department.Code = input.Code
	department.Description = input.Description
	if err := s.DB.Save(&department).Error; err != nil {
		return models.Department{}, fmt.Errorf("failed to update department: %w", err)
	}

	s.Cache.Invalidate(ctx)
	return department, nil
}

type UpdateRoomInput struct {
	Name        string   `json:"name"`
	Code        *string  `json:"code"`
	Area        *float64 `json:"area"`
	Description *string  `json:"description"`
}

func (s *FloorService) UpdateRoom(ctx context.Context, id uint, input UpdateRoomInput) (models.Room, error) {
	var room models.Room
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Room{}, ErrNotFound
		}
		return models.Room{}, fmt.Errorf("failed to load room: %w", err)
	}

	room.Name = input.Name
	room.Code = input.Code
	room.Area = input.Area
	room.Description = input.Description
	if err := s.DB.Save(&room).Error; err != nil {
		return models.Room{}, fmt.Errorf("failed to update room: %w", err)
	}

	s.Cache.Invalidate(ctx)
	return room, nil
}

// floorSeedRow mirrors the floor-plan file's column names.
type floorSeedRow struct {
	Floor         interface{} `json:"Этаж"`
	Block         string      `json:"БЛОК"`
	Department    string      `json:"ОТДЕЛЕНИЕ"`
	RoomCode      string      `json:"Код помещения"`
	RoomName      string      `json:"Наименование помещения"`
	EquipmentCode *string     `json:"Код оборудования"`
	EquipmentName *string     `json:"Наименование оборудования"`
	Unit          *string     `json:"Ед. изм."`
	Quantity      interface{} `json:"Кол-во"`
	Notes         *string     `json:"Примечания"`
}

// FloorSeedResult reports what a floor-plan import created.
type FloorSeedResult struct {
	FloorsCount    int `json:"floorsCount"`
	BlocksCount    int `json:"blocksCount"`
	RoomsCount     int `json:"roomsCount"`
	EquipmentCount int `json:"equipmentCount"`
}

var floorFilePattern = regexp.MustCompile(`^(\d+)F_filled\.json$`)

// SeedFromDir rebuilds the whole floor-plan catalog from the
// `<n>F_filled.json` files in dir. Blocks, departments and rooms are
// deduplicated by composite key (floor+block, floor+block+department,
// and so on) since the source rows are flat, one per equipment line.
// The rebuild runs in a single transaction.
func (s *FloorService) SeedFromDir(ctx context.Context, dir string) (FloorSeedResult, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return FloorSeedResult{}, fmt.Errorf("failed to read floors directory: %w", err)
	}

	type floorFile struct {
		number int
		path   string
	}
	var files []floorFile
	for _, entry := range entries {
		match := floorFilePattern.FindStringSubmatch(entry.Name())
		if match == nil {
			continue
		}
		number, _ := strconv.Atoi(match[1])
		files = append(files, floorFile{number: number, path: filepath.Join(dir, entry.Name())})
	}
	if len(files) == 0 {
		return FloorSeedResult{}, fmt.Errorf("no <n>F_filled.json files found in %s", dir)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].number < files[j].number })

	var result FloorSeedResult
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		for _, model := range []interface{}{
			&models.Equipment{}, &models.Room{}, &models.Department{}, &models.Block{}, &models.Floor{},
		} {
			if err := tx.Where("1 = 1").Delete(model).Error; err != nil {
				return fmt.Errorf("failed to clear floor catalog: %w", err)
			}
		}

		for _, file := range files {
			if err := s.importFloorFile(tx, file.path, file.number, &result); err != nil {
				return err
			}
		}
		result.FloorsCount = len(files)
		return nil
	})
	if err != nil {
		return FloorSeedResult{}, err
	}

	recordImportLog(s.DB, "floors", result)
	s.Cache.Invalidate(ctx)
	log.Printf("✅ Loaded %d floors (%d rooms, %d equipment rows)", result.FloorsCount, result.RoomsCount, result.EquipmentCount)
	return result, nil
}

func (s *FloorService) importFloorFile(tx *gorm.DB, path string, floorNumber int, result *FloorSeedResult) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read floor file %s: %w", path, err)
	}
	var rows []floorSeedRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return fmt.Errorf("failed to parse floor file %s: %w", path, err)
	}

	floor := models.Floor{
		FloorNumber: floorNumber,
		Name:        fmt.Sprintf("%d этаж", floorNumber),
	}
	if err := tx.Create(&floor).Error; err != nil {
		return fmt.Errorf("failed to create floor %d: %w", floorNumber, err)
	}

	blocks := make(map[string]models.Block)
	departments := make(map[string]models.Department)
	rooms := make(map[string]models.Room)

	for _, row := range rows {
		if rowFloorNumber(row.Floor) != floorNumber {
			continue
		}
		if row.Block == "" || row.Department == "" {
			continue
		}

		blockKey := fmt.Sprintf("%d-%s", floorNumber, row.Block)
		block, ok := blocks[blockKey]
		if !ok {
			block = models.Block{
				Code:    row.Block,
				Name:    fmt.Sprintf("Блок %s", row.Block),
				FloorID: floor.ID,
			}
			if err := tx.Create(&block).Error; err != nil {
				return fmt.Errorf("failed to create block %q: %w", row.Block, err)
			}
			blocks[blockKey] = block
			result.BlocksCount++
		}

		departmentKey := blockKey + "-" + row.Department
		department, ok := departments[departmentKey]
		if !ok {
			department = models.Department{
				Name:    row.Department,
				BlockID: block.ID,
			}
			if err := tx.Create(&department).Error; err != nil {
				return fmt.Errorf("failed to create department %q: %w", row.Department, err)
			}
			departments[departmentKey] = department
		}

		if row.RoomCode == "" || row.RoomName == "" {
			continue
		}
		roomKey := departmentKey + "-" + row.RoomCode
		room, ok := rooms[roomKey]
		if !ok {
			code := row.RoomCode
			room = models.Room{
				Name:         row.RoomName,
				Code:         &code,
				DepartmentID: department.ID,
			}
			if err := tx.Create(&room).Error; err != nil {
				return fmt.Errorf("failed to create room %q: %w", row.RoomName, err)
			}
			rooms[roomKey] = room
			result.RoomsCount++
		}

		if row.EquipmentCode == nil || row.EquipmentName == nil {
			continue
		}
		unit := "шт."
		if row.Unit != nil && *row.Unit != "" {
			unit = *row.Unit
		}
		equipment := models.Equipment{
			Code:     *row.EquipmentCode,
			Name:     *row.EquipmentName,
			Quantity: utils.ParseQuantity(row.Quantity),
			Unit:     unit,
			Notes:    row.Notes,
			RoomID:   room.ID,
		}
		if err := tx.Create(&equipment).Error; err != nil {
			return fmt.Errorf("failed to create equipment %q: %w", *row.EquipmentName, err)
		}
		result.EquipmentCount++
	}
	return nil
}

func rowFloorNumber(raw interface{}) int {
	switch v := raw.(type) {
	case float64:
		return int(v)
	case string:
		n, err := strconv.Atoi(v)
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}
