package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateRoomMappingRequiresBothIDs(t *testing.T) {
	svc := NewRoomMappingService(newTestDB(t), NewConnectionsCache(nil))
	ctx := context.Background()

	_, err := svc.Create(ctx, 0, 0)
	assert.ErrorIs(t, err, ErrRoomIDsRequired)
	_, err = svc.Create(ctx, 1, 0)
	assert.ErrorIs(t, err, ErrRoomIDsRequired)
	_, err = svc.Create(ctx, 0, 1)
	assert.ErrorIs(t, err, ErrRoomIDsRequired)
}

func TestCreateRoomMappingPairUniqueness(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomMappingService(db, NewConnectionsCache(nil))
	ctx := context.Background()

	turarDept := createTurarDepartment(t, db, "Травмпункт")
	turarRoom := createTurarRoom(t, db, turarDept.ID, "Кабинет 1")
	projectDept := createProjectDepartment(t, db, 1, "Хирургия")
	roomB := createProjectRoom(t, db, projectDept.ID, "Кабинет 101")
	roomC := createProjectRoom(t, db, projectDept.ID, "Кабинет 102")

	_, err := svc.Create(ctx, turarRoom.ID, roomB.ID)
	require.NoError(t, err)

	// Same pair again is rejected.
	_, err = svc.Create(ctx, turarRoom.ID, roomB.ID)
	assert.ErrorIs(t, err, ErrRoomMappingExists)

	// A distinct pair sharing the turar room is fine.
	_, err = svc.Create(ctx, turarRoom.ID, roomC.ID)
	require.NoError(t, err)
}

func TestCreateRoomMappingLoadsAncestry(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomMappingService(db, NewConnectionsCache(nil))

	turarDept := createTurarDepartment(t, db, "Травмпункт")
	turarRoom := createTurarRoom(t, db, turarDept.ID, "Кабинет 1")
	projectDept := createProjectDepartment(t, db, 1, "Хирургия")
	projectRoom := createProjectRoom(t, db, projectDept.ID, "Кабинет 101")

	mapping, err := svc.Create(context.Background(), turarRoom.ID, projectRoom.ID)
	require.NoError(t, err)

	require.NotNil(t, mapping.TurarRoom)
	require.NotNil(t, mapping.TurarRoom.Department)
	assert.Equal(t, turarDept.Name, mapping.TurarRoom.Department.Name)
	require.NotNil(t, mapping.ProjectRoom)
	require.NotNil(t, mapping.ProjectRoom.Department)
	assert.Equal(t, projectDept.Name, mapping.ProjectRoom.Department.Name)
}

func TestListRoomMappingsIncludesFullAncestry(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomMappingService(db, NewConnectionsCache(nil))

	turarDept := createTurarDepartment(t, db, "Травмпункт")
	turarRoom := createTurarRoom(t, db, turarDept.ID, "Кабинет 1")
	projectDept := createProjectDepartment(t, db, 1, "Хирургия")
	projectRoom := createProjectRoom(t, db, projectDept.ID, "Кабинет 101")

	_, err := svc.Create(context.Background(), turarRoom.ID, projectRoom.ID)
	require.NoError(t, err)

	mappings, err := svc.List()
	require.NoError(t, err)
	require.Len(t, mappings, 1)

	project := mappings[0].ProjectRoom
	require.NotNil(t, project)
	require.NotNil(t, project.Department)
	require.NotNil(t, project.Department.Block)
	require.NotNil(t, project.Department.Block.Floor)
	assert.Equal(t, 1, project.Department.Block.Floor.FloorNumber)
}

func TestDeleteRoomMapping(t *testing.T) {
	db := newTestDB(t)
	svc := NewRoomMappingService(db, NewConnectionsCache(nil))
	ctx := context.Background()

	turarDept := createTurarDepartment(t, db, "Травмпункт")
	turarRoom := createTurarRoom(t, db, turarDept.ID, "Кабинет 1")
	projectDept := createProjectDepartment(t, db, 1, "Хирургия")
	projectRoom := createProjectRoom(t, db, projectDept.ID, "Кабинет 101")

	mapping, err := svc.Create(ctx, turarRoom.ID, projectRoom.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, mapping.ID))
	assert.ErrorIs(t, svc.Delete(ctx, mapping.ID), ErrNotFound)
}
