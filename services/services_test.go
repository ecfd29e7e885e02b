package services

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"hospital-backend/config"
	"hospital-backend/models"
)

// newTestDB opens a private in-memory database with the full schema.
// Max one open connection, otherwise the pool hands out fresh empty
// in-memory databases.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, config.Migrate(db))
	return db
}

func createTurarDepartment(t *testing.T, db *gorm.DB, name string) models.TurarDepartment {
	t.Helper()
	dept := models.TurarDepartment{Name: name}
	require.NoError(t, db.Create(&dept).Error)
	return dept
}

func createTurarRoom(t *testing.T, db *gorm.DB, departmentID uint, name string) models.TurarRoom {
	t.Helper()
	room := models.TurarRoom{Name: name, DepartmentID: departmentID}
	require.NoError(t, db.Create(&room).Error)
	return room
}

// createProjectDepartment builds the full ancestry a floor-plan
// department needs: floor and block included.
func createProjectDepartment(t *testing.T, db *gorm.DB, floorNumber int, name string) models.Department {
	t.Helper()
	floor := models.Floor{FloorNumber: floorNumber, Name: "этаж"}
	require.NoError(t, db.Create(&floor).Error)
	block := models.Block{Code: "А", Name: "Блок А", FloorID: floor.ID}
	require.NoError(t, db.Create(&block).Error)
	dept := models.Department{Name: name, BlockID: block.ID}
	require.NoError(t, db.Create(&dept).Error)
	return dept
}

func createProjectRoom(t *testing.T, db *gorm.DB, departmentID uint, name string) models.Room {
	t.Helper()
	room := models.Room{Name: name, DepartmentID: departmentID}
	require.NoError(t, db.Create(&room).Error)
	return room
}
