package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hospital-backend/models"
)

func newConnectionService(t *testing.T) *ConnectionService {
	t.Helper()
	return NewConnectionService(newTestDB(t), NewConnectionsCache(nil))
}

func TestCreateDepartmentMappingRejectsBlankNames(t *testing.T) {
	svc := newConnectionService(t)
	ctx := context.Background()

	tests := []struct {
		name        string
		turarName   string
		projectName string
	}{
		{"both empty", "", ""},
		{"turar empty", "", "Хирургия"},
		{"project empty", "Травмпункт", ""},
		{"whitespace only", "   ", "Хирургия"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateDepartmentMapping(ctx, tt.turarName, tt.projectName)
			assert.ErrorIs(t, err, ErrEmptyName)
		})
	}
}

func TestCreateDepartmentMappingTrimsNames(t *testing.T) {
	svc := newConnectionService(t)

	mapping, err := svc.CreateDepartmentMapping(context.Background(), "  Травмпункт  ", " Хирургия ")
	require.NoError(t, err)
	assert.Equal(t, "Травмпункт", mapping.TurarDepartmentName)
	assert.Equal(t, "Хирургия", mapping.ProjectDepartmentName)
}

func TestCreateDepartmentMappingDuplicatePair(t *testing.T) {
	svc := newConnectionService(t)
	ctx := context.Background()

	_, err := svc.CreateDepartmentMapping(ctx, "Травмпункт", "Хирургия")
	require.NoError(t, err)

	_, err = svc.CreateDepartmentMapping(ctx, "Травмпункт", "Хирургия")
	assert.ErrorIs(t, err, ErrMappingExists)

	// Different pairs sharing a side are allowed: many-to-many.
	_, err = svc.CreateDepartmentMapping(ctx, "Травмпункт", "Терапия")
	require.NoError(t, err)
	_, err = svc.CreateDepartmentMapping(ctx, "Приёмное отделение", "Хирургия")
	require.NoError(t, err)
}

func TestDeleteDepartmentMapping(t *testing.T) {
	svc := newConnectionService(t)
	ctx := context.Background()

	mapping, err := svc.CreateDepartmentMapping(ctx, "Травмпункт", "Хирургия")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteDepartmentMapping(ctx, mapping.ID))
	assert.ErrorIs(t, svc.DeleteDepartmentMapping(ctx, mapping.ID), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteDepartmentMapping(ctx, 9999), ErrNotFound)
}

func TestGroupConnectionsPartition(t *testing.T) {
	svc := newConnectionService(t)
	ctx := context.Background()
	db := svc.DB

	turarA := createTurarDepartment(t, db, "Травмпункт")
	turarB := createTurarDepartment(t, db, "Лаборатория")
	projectX := createProjectDepartment(t, db, 1, "Хирургия")
	projectY := createProjectDepartment(t, db, 2, "Терапия")
	projectZ := createProjectDepartment(t, db, 3, "Рентген")

	_, err := svc.CreateDepartmentMapping(ctx, turarA.Name, projectX.Name)
	require.NoError(t, err)
	_, err = svc.CreateDepartmentMapping(ctx, turarA.Name, projectY.Name)
	require.NoError(t, err)

	groups, err := svc.GroupedConnections(ctx)
	require.NoError(t, err)

	// Every Turar department appears exactly once.
	require.Len(t, groups.Groups, 2)
	byName := make(map[string]GroupedConnection)
	for _, g := range groups.Groups {
		byName[g.TurarDepartment.Name] = g
	}

	linked := byName[turarA.Name].ProjectDepartments
	require.Len(t, linked, 2)
	linkedNames := []string{linked[0].Name, linked[1].Name}
	assert.ElementsMatch(t, []string{projectX.Name, projectY.Name}, linkedNames)

	// A Turar department without links is still emitted, with an empty
	// (not nil) list.
	assert.NotNil(t, byName[turarB.Name].ProjectDepartments)
	assert.Empty(t, byName[turarB.Name].ProjectDepartments)

	// Unmapped bucket holds exactly the untouched project department.
	require.Len(t, groups.Unmapped, 1)
	assert.Equal(t, projectZ.Name, groups.Unmapped[0].Name)
}

func TestGroupConnectionsSharedProjectDepartment(t *testing.T) {
	svc := newConnectionService(t)
	ctx := context.Background()
	db := svc.DB

	turarA := createTurarDepartment(t, db, "Травмпункт")
	turarB := createTurarDepartment(t, db, "Лаборатория")
	shared := createProjectDepartment(t, db, 1, "Хирургия")

	_, err := svc.CreateDepartmentMapping(ctx, turarA.Name, shared.Name)
	require.NoError(t, err)
	_, err = svc.CreateDepartmentMapping(ctx, turarB.Name, shared.Name)
	require.NoError(t, err)

	groups, err := svc.GroupedConnections(ctx)
	require.NoError(t, err)

	// The shared department shows up under both Turar counterparts and
	// never in the unmapped bucket.
	require.Len(t, groups.Groups, 2)
	for _, g := range groups.Groups {
		require.Len(t, g.ProjectDepartments, 1)
		assert.Equal(t, shared.Name, g.ProjectDepartments[0].Name)
	}
	assert.Empty(t, groups.Unmapped)
}

func TestListReconciledCollatedOrder(t *testing.T) {
	svc := newConnectionService(t)
	db := svc.DB

	// Numeric-aware: "Отделение 10" sorts after "Отделение 2".
	createTurarDepartment(t, db, "Отделение 10")
	createTurarDepartment(t, db, "Отделение 2")
	createTurarDepartment(t, db, "Аптека")

	data, err := svc.ListReconciled(context.Background())
	require.NoError(t, err)

	names := make([]string, 0, len(data.TurarDepartments))
	for _, d := range data.TurarDepartments {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"Аптека", "Отделение 2", "Отделение 10"}, names)
}

func writeMappingsFile(t *testing.T, rows []map[string]string) string {
	t.Helper()
	raw, err := json.Marshal(rows)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "proektturar_dedup.json")
	require.NoError(t, os.WriteFile(path, raw, 0o644))
	return path
}

func TestSeedDepartmentMappingsDedupesAndDropsBlanks(t *testing.T) {
	svc := newConnectionService(t)

	path := writeMappingsFile(t, []map[string]string{
		{"Отделения Турар": "X", "ОТДЕЛЕНИЕ Проектировщики": "Y"},
		{"Отделения Турар": "X", "ОТДЕЛЕНИЕ Проектировщики": "Y"},
		{"Отделения Турар": "", "ОТДЕЛЕНИЕ Проектировщики": "Z"},
		{"Отделения Турар": "W", "ОТДЕЛЕНИЕ Проектировщики": ""},
	})

	result, err := svc.SeedDepartmentMappings(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.MappingsCount)
	require.Len(t, result.Mappings, 1)
	assert.Equal(t, "X", result.Mappings[0].TurarDepartmentName)
	assert.Equal(t, "Y", result.Mappings[0].ProjectDepartmentName)
}

func TestSeedDepartmentMappingsReplacesExistingRows(t *testing.T) {
	svc := newConnectionService(t)
	ctx := context.Background()

	_, err := svc.CreateDepartmentMapping(ctx, "Старое", "Отделение")
	require.NoError(t, err)

	path := writeMappingsFile(t, []map[string]string{
		{"Отделения Турар": "Новое", "ОТДЕЛЕНИЕ Проектировщики": "Отделение"},
	})
	result, err := svc.SeedDepartmentMappings(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, 1, result.MappingsCount)

	var all []models.DepartmentMapping
	require.NoError(t, svc.DB.Find(&all).Error)
	require.Len(t, all, 1)
	assert.Equal(t, "Новое", all[0].TurarDepartmentName)
}

func TestSeedDepartmentMappingsRecordsImportLog(t *testing.T) {
	svc := newConnectionService(t)

	path := writeMappingsFile(t, []map[string]string{
		{"Отделения Турар": "X", "ОТДЕЛЕНИЕ Проектировщики": "Y"},
	})
	_, err := svc.SeedDepartmentMappings(context.Background(), path)
	require.NoError(t, err)

	var logs []models.ImportLog
	require.NoError(t, svc.DB.Where("source = ?", "mappings").Find(&logs).Error)
	require.Len(t, logs, 1)
	assert.NotEmpty(t, logs[0].RunID)
}

func TestOrphanedMappings(t *testing.T) {
	svc := newConnectionService(t)
	ctx := context.Background()
	db := svc.DB

	createTurarDepartment(t, db, "Травмпункт")
	createProjectDepartment(t, db, 1, "Хирургия")

	_, err := svc.CreateDepartmentMapping(ctx, "Травмпункт", "Хирургия")
	require.NoError(t, err)
	_, err = svc.CreateDepartmentMapping(ctx, "Травмпункт", "Снесённое отделение")
	require.NoError(t, err)
	_, err = svc.CreateDepartmentMapping(ctx, "Переименованное", "Хирургия")
	require.NoError(t, err)

	orphans, err := svc.OrphanedMappings()
	require.NoError(t, err)

	require.Len(t, orphans.MissingProject, 1)
	assert.Equal(t, "Снесённое отделение", orphans.MissingProject[0].ProjectDepartmentName)
	require.Len(t, orphans.MissingTurar, 1)
	assert.Equal(t, "Переименованное", orphans.MissingTurar[0].TurarDepartmentName)
}
