package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"gorm.io/gorm"

	"hospital-backend/models"
	"hospital-backend/utils"
)

// ConnectionService owns the department-level mapping table and the
// reconciliation view joining both catalogs through it.
type ConnectionService struct {
	DB    *gorm.DB
	Cache *ConnectionsCache
}

func NewConnectionService(db *gorm.DB, cache *ConnectionsCache) *ConnectionService {
	return &ConnectionService{DB: db, Cache: cache}
}

// ReconciliationData is the payload of GET /api/connections: every
// mapping row plus both catalogs nested down to equipment.
type ReconciliationData struct {
	Mappings           []models.DepartmentMapping `json:"mappings"`
	TurarDepartments   []models.TurarDepartment   `json:"turarDepartments"`
	ProjectDepartments []models.Department        `json:"projectDepartments"`
}

// GroupedConnection is one Turar department with every floor-plan
// department linked to it. ProjectDepartments is empty (not nil) when
// nothing is linked yet.
type GroupedConnection struct {
	TurarDepartment    models.TurarDepartment `json:"turarDepartment"`
	ProjectDepartments []models.Department    `json:"projectDepartments"`
}

// ConnectionGroups partitions both catalogs for display: every Turar
// department appears exactly once in Groups; every floor-plan
// department with no inbound mapping appears exactly once in Unmapped.
// A floor-plan department referenced by several mappings shows up under
// each of its Turar counterparts.
type ConnectionGroups struct {
	Groups   []GroupedConnection `json:"groups"`
	Unmapped []models.Department `json:"unmappedProjectDepartments"`
}

// OrphanedMappings lists mapping rows whose names no longer resolve in
// the catalogs. Department mappings match by name string, so a catalog
// rebuild with changed spelling silently detaches them; this is the
// check that makes that visible.
type OrphanedMappings struct {
	MissingTurar   []models.DepartmentMapping `json:"missingTurar"`
	MissingProject []models.DepartmentMapping `json:"missingProject"`
}

// ListReconciled loads mappings and both catalogs. Department order is
// collated (locale- and numeric-aware), matching how the UI lists them.
// The assembled payload is cached for a short window; any mutation of
// the mapping tables or the catalogs invalidates it.
func (s *ConnectionService) ListReconciled(ctx context.Context) (ReconciliationData, error) {
	var data ReconciliationData
	if s.Cache.Get(ctx, &data) {
		return data, nil
	}

	if err := s.DB.Order("turar_department_name ASC").Find(&data.Mappings).Error; err != nil {
		return ReconciliationData{}, fmt.Errorf("failed to load department mappings: %w", err)
	}
	if err := s.DB.Preload("Rooms.Equipment").Find(&data.TurarDepartments).Error; err != nil {
		return ReconciliationData{}, fmt.Errorf("failed to load turar departments: %w", err)
	}
	if err := s.DB.Preload("Rooms.Equipment").Find(&data.ProjectDepartments).Error; err != nil {
		return ReconciliationData{}, fmt.Errorf("failed to load project departments: %w", err)
	}

	utils.SortByCollatedName(data.TurarDepartments, func(d models.TurarDepartment) string { return d.Name })
	utils.SortByCollatedName(data.ProjectDepartments, func(d models.Department) string { return d.Name })

	s.Cache.Set(ctx, data)
	return data, nil
}

// GroupedConnections builds the display partition from the reconciled
// payload.
func (s *ConnectionService) GroupedConnections(ctx context.Context) (ConnectionGroups, error) {
	data, err := s.ListReconciled(ctx)
	if err != nil {
		return ConnectionGroups{}, err
	}
	return GroupConnections(data), nil
}

// GroupConnections is the pure grouping step: for every Turar
// department collect the floor-plan departments reachable through any
// mapping row with a matching name, then bucket the floor-plan
// departments nothing points at.
func GroupConnections(data ReconciliationData) ConnectionGroups {
	projectByName := make(map[string][]models.Department)
	for _, dept := range data.ProjectDepartments {
		projectByName[dept.Name] = append(projectByName[dept.Name], dept)
	}

	mappedProject := make(map[string]bool)
	byTurarName := make(map[string][]string)
	for _, m := range data.Mappings {
		mappedProject[m.ProjectDepartmentName] = true
		byTurarName[m.TurarDepartmentName] = append(byTurarName[m.TurarDepartmentName], m.ProjectDepartmentName)
	}

	groups := make([]GroupedConnection, 0, len(data.TurarDepartments))
	for _, turarDept := range data.TurarDepartments {
		linked := make([]models.Department, 0)
		for _, projectName := range byTurarName[turarDept.Name] {
			linked = append(linked, projectByName[projectName]...)
		}
		groups = append(groups, GroupedConnection{
			TurarDepartment:    turarDept,
			ProjectDepartments: linked,
		})
	}

	unmapped := make([]models.Department, 0)
	for _, dept := range data.ProjectDepartments {
		if !mappedProject[dept.Name] {
			unmapped = append(unmapped, dept)
		}
	}

	return ConnectionGroups{Groups: groups, Unmapped: unmapped}
}

// CreateDepartmentMapping links a Turar department to a floor-plan
// department by name. The exact pair may exist only once.
func (s *ConnectionService) CreateDepartmentMapping(ctx context.Context, turarName, projectName string) (models.DepartmentMapping, error) {
	turarName = strings.TrimSpace(turarName)
	projectName = strings.TrimSpace(projectName)
	if turarName == "" || projectName == "" {
		return models.DepartmentMapping{}, ErrEmptyName
	}

	var existing models.DepartmentMapping
	err := s.DB.Where("turar_department_name = ? AND project_department_name = ?", turarName, projectName).
		First(&existing).Error
	if err == nil {
		return models.DepartmentMapping{}, ErrMappingExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.DepartmentMapping{}, fmt.Errorf("failed to check existing mapping: %w", err)
	}

	mapping := models.DepartmentMapping{
		TurarDepartmentName:   turarName,
		ProjectDepartmentName: projectName,
	}
	if err := s.DB.Create(&mapping).Error; err != nil {
		if isDuplicateErr(err) {
			return models.DepartmentMapping{}, ErrMappingExists
		}
		return models.DepartmentMapping{}, fmt.Errorf("failed to create mapping: %w", err)
	}

	s.Cache.Invalidate(ctx)
	return mapping, nil
}

// DeleteDepartmentMapping removes one mapping row by id.
func (s *ConnectionService) DeleteDepartmentMapping(ctx context.Context, id uint) error {
	result := s.DB.Delete(&models.DepartmentMapping{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete mapping: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	s.Cache.Invalidate(ctx)
	return nil
}

// OrphanedMappings flags mapping rows whose department names no longer
// exist in the respective catalog.
func (s *ConnectionService) OrphanedMappings() (OrphanedMappings, error) {
	var orphans OrphanedMappings
	err := s.DB.
		Where("turar_department_name NOT IN (?)", s.DB.Model(&models.TurarDepartment{}).Select("name")).
		Find(&orphans.MissingTurar).Error
	if err != nil {
		return OrphanedMappings{}, fmt.Errorf("failed to check turar side: %w", err)
	}
	err = s.DB.
		Where("project_department_name NOT IN (?)", s.DB.Model(&models.Department{}).Select("name")).
		Find(&orphans.MissingProject).Error
	if err != nil {
		return OrphanedMappings{}, fmt.Errorf("failed to check project side: %w", err)
	}
	return orphans, nil
}

// mappingSeedRow mirrors the reference file's column names.
type mappingSeedRow struct {
	ProjectDepartment string `json:"ОТДЕЛЕНИЕ Проектировщики"`
	TurarDepartment   string `json:"Отделения Турар"`
}

// SeedResult reports what a mappings import created.
type SeedResult struct {
	MappingsCount int                        `json:"mappingsCount"`
	Mappings      []models.DepartmentMapping `json:"mappings"`
}

// SeedDepartmentMappings replaces the whole mapping table from the
// deduplicated reference file. Pairs with a blank side are dropped,
// repeated pairs collapse to one row, and a residual duplicate insert
// (the unique index is the last line of defense) is skipped rather than
// failing the batch. The replace runs in one transaction.
func (s *ConnectionService) SeedDepartmentMappings(ctx context.Context, path string) (SeedResult, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return SeedResult{}, fmt.Errorf("failed to read mappings file: %w", err)
	}
	var rows []mappingSeedRow
	if err := json.Unmarshal(raw, &rows); err != nil {
		return SeedResult{}, fmt.Errorf("failed to parse mappings file: %w", err)
	}

	result := SeedResult{Mappings: make([]models.DepartmentMapping, 0, len(rows))}
	skipped := 0

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.DepartmentMapping{}).Error; err != nil {
			return fmt.Errorf("failed to clear department mappings: %w", err)
		}

		seen := make(map[string]bool, len(rows))
		for _, row := range rows {
			turarName := strings.TrimSpace(row.TurarDepartment)
			projectName := strings.TrimSpace(row.ProjectDepartment)
			if turarName == "" || projectName == "" {
				skipped++
				continue
			}
			key := turarName + "|||" + projectName
			if seen[key] {
				skipped++
				continue
			}
			seen[key] = true

			mapping := models.DepartmentMapping{
				TurarDepartmentName:   turarName,
				ProjectDepartmentName: projectName,
			}
			if err := tx.Create(&mapping).Error; err != nil {
				if isDuplicateErr(err) {
					log.Printf("⚠️ skipping duplicate mapping: %s -> %s", turarName, projectName)
					skipped++
					continue
				}
				return fmt.Errorf("failed to create mapping %s -> %s: %w", turarName, projectName, err)
			}
			result.Mappings = append(result.Mappings, mapping)
		}
		result.MappingsCount = len(result.Mappings)
		return nil
	})
	if err != nil {
		return SeedResult{}, err
	}

	recordImportLog(s.DB, "mappings", map[string]interface{}{
		"rows":    len(rows),
		"created": result.MappingsCount,
		"skipped": skipped,
	})
	s.Cache.Invalidate(ctx)
	log.Printf("✅ Loaded %d unique department mappings (%d rows skipped)", result.MappingsCount, skipped)
	return result, nil
}
