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

func floorRow(floor interface{}, block, dept, roomCode, roomName string, eqCode, eqName *string, quantity interface{}) map[string]interface{} {
	return map[string]interface{}{
		"Этаж":                      floor,
		"БЛОК":                      block,
		"ОТДЕЛЕНИЕ":                 dept,
		"Код помещения":             roomCode,
		"Наименование помещения":    roomName,
		"Код оборудования":          eqCode,
		"Наименование оборудования": eqName,
		"Ед. изм.":                  nil,
		"Кол-во":                    quantity,
		"Примечания":                nil,
	}
}

func strPtr(s string) *string { return &s }

func writeFloorsDir(t *testing.T, files map[string][]map[string]interface{}) string {
	t.Helper()
	dir := t.TempDir()
	for name, rows := range files {
		raw, err := json.Marshal(rows)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), raw, 0o644))
	}
	return dir
}

func TestSeedFromDirDeduplicatesByCompositeKey(t *testing.T) {
	db := newTestDB(t)
	svc := NewFloorService(db, NewConnectionsCache(nil))

	// Flat rows, one per equipment line: block, department and room
	// repeat and must collapse to single entities.
	dir := writeFloorsDir(t, map[string][]map[string]interface{}{
		"1F_filled.json": {
			floorRow(1, "А", "Хирургия", "101", "Операционная", strPtr("EQ-001"), strPtr("Стол операционный"), 1),
			floorRow(1, "А", "Хирургия", "101", "Операционная", strPtr("EQ-002"), strPtr("Лампа"), 2),
			floorRow(1, "А", "Хирургия", "102", "Палата", nil, nil, nil),
			floorRow(1, "Б", "Терапия", "110", "Кабинет врача", strPtr("EQ-003"), strPtr("Кушетка"), "1"),
			// Wrong floor number: skipped.
			floorRow(2, "А", "Хирургия", "201", "Палата", nil, nil, nil),
		},
	})

	result, err := svc.SeedFromDir(context.Background(), dir)
	require.NoError(t, err)
	assert.Equal(t, 1, result.FloorsCount)
	assert.Equal(t, 2, result.BlocksCount)
	assert.Equal(t, 3, result.RoomsCount)
	assert.Equal(t, 3, result.EquipmentCount)

	floors, err := svc.List()
	require.NoError(t, err)
	require.Len(t, floors, 1)
	assert.Equal(t, "1 этаж", floors[0].Name)
	require.Len(t, floors[0].Blocks, 2)

	var surgery *models.Department
	for i := range floors[0].Blocks {
		for j := range floors[0].Blocks[i].Departments {
			if floors[0].Blocks[i].Departments[j].Name == "Хирургия" {
				surgery = &floors[0].Blocks[i].Departments[j]
			}
		}
	}
	require.NotNil(t, surgery)
	require.Len(t, surgery.Rooms, 2)
	assert.Len(t, surgery.Rooms[0].Equipment, 2)
}

func TestSeedFromDirOrdersFloorsByNumber(t *testing.T) {
	db := newTestDB(t)
	svc := NewFloorService(db, NewConnectionsCache(nil))

	dir := writeFloorsDir(t, map[string][]map[string]interface{}{
		"2F_filled.json": {floorRow(2, "А", "Терапия", "201", "Палата", nil, nil, nil)},
		"1F_filled.json": {floorRow(1, "А", "Хирургия", "101", "Палата", nil, nil, nil)},
	})

	_, err := svc.SeedFromDir(context.Background(), dir)
	require.NoError(t, err)

	floors, err := svc.List()
	require.NoError(t, err)
	require.Len(t, floors, 2)
	assert.Equal(t, 1, floors[0].FloorNumber)
	assert.Equal(t, 2, floors[1].FloorNumber)
}

func TestSeedFromDirReplacesExistingCatalog(t *testing.T) {
	db := newTestDB(t)
	svc := NewFloorService(db, NewConnectionsCache(nil))
	ctx := context.Background()

	dir1 := writeFloorsDir(t, map[string][]map[string]interface{}{
		"1F_filled.json": {floorRow(1, "А", "Старое", "101", "Палата", nil, nil, nil)},
	})
	_, err := svc.SeedFromDir(ctx, dir1)
	require.NoError(t, err)

	dir2 := writeFloorsDir(t, map[string][]map[string]interface{}{
		"1F_filled.json": {floorRow(1, "А", "Новое", "101", "Палата", nil, nil, nil)},
	})
	_, err = svc.SeedFromDir(ctx, dir2)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Department{}).Where("name = ?", "Старое").Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeedFromDirFailsWithoutFiles(t *testing.T) {
	svc := NewFloorService(newTestDB(t), NewConnectionsCache(nil))
	_, err := svc.SeedFromDir(context.Background(), t.TempDir())
	assert.Error(t, err)
}

func TestUpdateDepartment(t *testing.T) {
	db := newTestDB(t)
	svc := NewFloorService(db, NewConnectionsCache(nil))
	ctx := context.Background()

	dept := createProjectDepartment(t, db, 1, "Хирургия")

	code := "СХ-01"
	updated, err := svc.UpdateDepartment(ctx, dept.ID, UpdateDepartmentInput{
		Name: "Хирургическое отделение",
		Code: &code,
	})
	require.NoError(t, err)
	assert.Equal(t, "Хирургическое отделение", updated.Name)
	require.NotNil(t, updated.Code)
	assert.Equal(t, code, *updated.Code)

	_, err = svc.UpdateDepartment(ctx, 9999, UpdateDepartmentInput{Name: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateRoom(t *testing.T) {
	db := newTestDB(t)
	svc := NewFloorService(db, NewConnectionsCache(nil))
	ctx := context.Background()

	dept := createProjectDepartment(t, db, 1, "Хирургия")
	room := createProjectRoom(t, db, dept.ID, "Кабинет 101")

	area := 24.5
	updated, err := svc.UpdateRoom(ctx, room.ID, UpdateRoomInput{
		Name: "Кабинет 101А",
		Area: &area,
	})
	require.NoError(t, err)
	assert.Equal(t, "Кабинет 101А", updated.Name)
	require.NotNil(t, updated.Area)
	assert.Equal(t, area, *updated.Area)

	_, err = svc.UpdateRoom(ctx, 9999, UpdateRoomInput{Name: "X"})
	assert.ErrorIs(t, err, ErrNotFound)
}
