package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"

	"gorm.io/gorm"

	"hospital-backend/models"
	"hospital-backend/utils"
)

// TurarService owns the inventory catalog: departments holding rooms
// holding equipment, three levels.
type TurarService struct {
	DB    *gorm.DB
	Cache *ConnectionsCache
}

func NewTurarService(db *gorm.DB, cache *ConnectionsCache) *TurarService {
	return &TurarService{DB: db, Cache: cache}
}

// List returns every Turar department nested down to equipment, in
// collated name order.
func (s *TurarService) List() ([]models.TurarDepartment, error) {
	var departments []models.TurarDepartment
	if err := s.DB.Preload("Rooms.Equipment").Find(&departments).Error; err != nil {
		return nil, fmt.Errorf("failed to load turar departments: %w", err)
	}
	utils.SortByCollatedName(departments, func(d models.TurarDepartment) string { return d.Name })
	return departments, nil
}

type UpdateTurarDepartmentInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (s *TurarService) UpdateDepartment(ctx context.Context, id uint, input UpdateTurarDepartmentInput) (models.TurarDepartment, error) {
	var department models.TurarDepartment
	if err := s.DB.First(&department, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TurarDepartment{}, ErrNotFound
		}
		return models.TurarDepartment{}, fmt.Errorf("failed to load turar department: %w", err)
	}

	department.Name = input.Name
	department.Description = input.Description
	if err := s.DB.Save(&department).Error; err != nil {
		return models.TurarDepartment{}, fmt.Errorf("failed to update turar department: %w", err)
	}

	s.Cache.Invalidate(ctx)
	return department, nil
}

type UpdateTurarRoomInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (s *TurarService) UpdateRoom(ctx context.Context, id uint, input UpdateTurarRoomInput) (models.TurarRoom, error) {
	var room models.TurarRoom
	if err := s.DB.First(&room, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.TurarRoom{}, ErrNotFound
		}
		return models.TurarRoom{}, fmt.Errorf("failed to load turar room: %w", err)
	}

	room.Name = input.Name
	room.Description = input.Description
	if err := s.DB.Save(&room).Error; err != nil {
		return models.TurarRoom{}, fmt.Errorf("failed to update turar room: %w", err)
	}

	s.Cache.Invalidate(ctx)
	return room, nil
}

// turarSeedRow mirrors the inventory file's column names.
type turarSeedRow struct {
	Department string      `json:"Отделение/Блок"`
	Room       string      `json:"Помещение/Кабинет"`
	Code       string      `json:"Код оборудования"`
	Name       string      `json:"Наименование"`
	Quantity   interface{} `json:"Кол-во"`
}

// TurarSeedResult reports what a Turar import created.
type TurarSeedResult struct {
	DepartmentsCount int `json:"departmentsCount"`
	EquipmentCount   int `json:"equipmentCount"`
}

// SeedFromFile rebuilds the whole Turar catalog from the inventory
// file: delete everything child-first, then group the flat rows by
// department and room in first-seen order and recreate the tree. The
// rebuild runs in a single transaction, so an interrupted import leaves
// the previous catalog intact. Department mappings reference the
// catalog by name and survive the rebuild as long as names are
// reproduced verbatim.
func (s *TurarService) SeedFromFile(ctx context.Context, path string) (TurarSeedResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return TurarSeedResult{}, fmt.Errorf("failed to read turar file: %w", err)
	}
	var rows []turarSeedRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return TurarSeedResult{}, fmt.Errorf("failed to parse turar file: %w", err)
	}

	// Group by department, then by room, preserving first-seen order.
	type roomGroup struct {
		name  string
		items []turarSeedRow
	}
	type departmentGroup struct {
		name  string
		rooms []*roomGroup
		index map[string]*roomGroup
	}
	departments := make([]*departmentGroup, 0)
	departmentIndex := make(map[string]*departmentGroup)
	for _, row := range rows {
		dept, ok := departmentIndex[row.Department]
		if !ok {
			dept = &departmentGroup{name: row.Department, index: make(map[string]*roomGroup)}
			departmentIndex[row.Department] = dept
			departments = append(departments, dept)
		}
		room, ok := dept.index[row.Room]
		if !ok {
			room = &roomGroup{name: row.Room}
			dept.index[row.Room] = room
			dept.rooms = append(dept.rooms, room)
		}
		room.items = append(room.items, row)
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.TurarEquipment{}).Error; err != nil {
			return fmt.Errorf("failed to clear turar equipment: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.TurarRoom{}).Error; err != nil {
			return fmt.Errorf("failed to clear turar rooms: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.TurarDepartment{}).Error; err != nil {
			return fmt.Errorf("failed to clear turar departments: %w", err)
		}

		for _, deptGroup := range departments {
			department := models.TurarDepartment{Name: deptGroup.name}
			if err := tx.Create(&department).Error; err != nil {
				return fmt.Errorf("failed to create department %q: %w", deptGroup.name, err)
			}
			for _, roomGroup := range deptGroup.rooms {
				room := models.TurarRoom{Name: roomGroup.name, DepartmentID: department.ID}
				if err := tx.Create(&room).Error; err != nil {
					return fmt.Errorf("failed to create room %q: %w", roomGroup.name, err)
				}
				for _, item := range roomGroup.items {
					equipment := models.TurarEquipment{
						Code:     item.Code,
						Name:     item.Name,
						Quantity: utils.ParseQuantity(item.Quantity),
						RoomID:   room.ID,
					}
					if err := tx.Create(&equipment).Error; err != nil {
						return fmt.Errorf("failed to create equipment %q: %w", item.Name, err)
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return TurarSeedResult{}, err
	}

	result := TurarSeedResult{
		DepartmentsCount: len(departments),
		EquipmentCount:   len(rows),
	}
	recordImportLog(s.DB, "turar", result)
	s.Cache.Invalidate(ctx)
	log.Printf("✅ Loaded %d equipment rows into %d turar departments", result.EquipmentCount, result.DepartmentsCount)
	return result, nil
}

const travmpunktName = "Травмпункт"

// TravmpunktStats counts what the bootstrap ended up with.
type TravmpunktStats struct {
	Rooms     int `json:"rooms"`
	Equipment int `json:"equipment"`
}

// CreateTravmpunkt makes sure the trauma unit fixture exists: the
// department itself, 30 numbered rooms, a baseline equipment set in
// every room, an X-ray unit in the first 10 and an ultrasound unit in
// the first 5. Idempotent: once the department has any rooms the call
// only reports current counts.
func (s *TurarService) CreateTravmpunkt(ctx context.Context) (models.TurarDepartment, TravmpunktStats, error) {
	var department models.TurarDepartment
	err := s.DB.Where("name = ?", travmpunktName).First(&department).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		description := "Травматологический пункт на 30 кабинетов"
		department = models.TurarDepartment{Name: travmpunktName, Description: &description}
		if err := s.DB.Create(&department).Error; err != nil {
			return models.TurarDepartment{}, TravmpunktStats{}, fmt.Errorf("failed to create travmpunkt: %w", err)
		}
	} else if err != nil {
		return models.TurarDepartment{}, TravmpunktStats{}, fmt.Errorf("failed to look up travmpunkt: %w", err)
	}

	var roomCount int64
	if err := s.DB.Model(&models.TurarRoom{}).Where("department_id = ?", department.ID).Count(&roomCount).Error; err != nil {
		return models.TurarDepartment{}, TravmpunktStats{}, fmt.Errorf("failed to count travmpunkt rooms: %w", err)
	}

	if roomCount == 0 {
		err = s.DB.Transaction(func(tx *gorm.DB) error {
			for i := 1; i <= 30; i++ {
				description := fmt.Sprintf("Травматологический кабинет №%d", i)
				room := models.TurarRoom{
					Name:         fmt.Sprintf("Кабинет травматологии %02d", i),
					Description:  &description,
					DepartmentID: department.ID,
				}
				if err := tx.Create(&room).Error; err != nil {
					return fmt.Errorf("failed to create travmpunkt room %d: %w", i, err)
				}

				equipment := []models.TurarEquipment{
					{Code: fmt.Sprintf("TP-%03d-001", i), Name: "Кушетка медицинская", Quantity: 1, RoomID: room.ID},
					{Code: fmt.Sprintf("TP-%03d-002", i), Name: "Стол медицинский", Quantity: 1, RoomID: room.ID},
					{Code: fmt.Sprintf("TP-%03d-003", i), Name: "Стул медицинский", Quantity: 2, RoomID: room.ID},
				}
				if i <= 10 {
					equipment = append(equipment, models.TurarEquipment{
						Code: fmt.Sprintf("TP-%03d-004", i), Name: "Рентгеновский аппарат передвижной", Quantity: 1, RoomID: room.ID,
					})
				}
				if i <= 5 {
					equipment = append(equipment, models.TurarEquipment{
						Code: fmt.Sprintf("TP-%03d-005", i), Name: "УЗИ-аппарат", Quantity: 1, RoomID: room.ID,
					})
				}
				if err := tx.Create(&equipment).Error; err != nil {
					return fmt.Errorf("failed to create travmpunkt equipment for room %d: %w", i, err)
				}
			}
			return nil
		})
		if err != nil {
			return models.TurarDepartment{}, TravmpunktStats{}, err
		}
		s.Cache.Invalidate(ctx)
	}

	var full models.TurarDepartment
	if err := s.DB.Preload("Rooms.Equipment").First(&full, department.ID).Error; err != nil {
		return models.TurarDepartment{}, TravmpunktStats{}, fmt.Errorf("failed to reload travmpunkt: %w", err)
	}

	stats := TravmpunktStats{Rooms: len(full.Rooms)}
	for _, room := range full.Rooms {
		stats.Equipment += len(room.Equipment)
	}
	return full, stats, nil
}
