package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hospital-backend/services"
)

// ConnectionController serves the reconciliation view and the CRUD for
// both mapping tables.
type ConnectionController struct {
	Connections  *services.ConnectionService
	RoomMappings *services.RoomMappingService

	// MappingsFile is the reference file POST /connections/seed reads.
	MappingsFile string
}

func NewConnectionController(connections *services.ConnectionService, roomMappings *services.RoomMappingService, mappingsFile string) *ConnectionController {
	return &ConnectionController{
		Connections:  connections,
		RoomMappings: roomMappings,
		MappingsFile: mappingsFile,
	}
}

// GetConnections handles GET /api/connections.
func (ctl *ConnectionController) GetConnections(c *gin.Context) {
	data, err := ctl.Connections.ListReconciled(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Ошибка при получении данных соединений")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":            true,
		"mappings":           data.Mappings,
		"turarDepartments":   data.TurarDepartments,
		"projectDepartments": data.ProjectDepartments,
	})
}

// GetGroupedConnections handles GET /api/connections/grouped.
func (ctl *ConnectionController) GetGroupedConnections(c *gin.Context) {
	groups, err := ctl.Connections.GroupedConnections(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Ошибка при группировке соединений")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":                    true,
		"groups":                     groups.Groups,
		"unmappedProjectDepartments": groups.Unmapped,
	})
}

// GetOrphanedMappings handles GET /api/connections/orphans.
func (ctl *ConnectionController) GetOrphanedMappings(c *gin.Context) {
	orphans, err := ctl.Connections.OrphanedMappings()
	if err != nil {
		respondServiceError(c, err, "Ошибка при проверке связей")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "orphans": orphans})
}

type createDepartmentMappingPayload struct {
	TurarDepartmentName   string `json:"turarDepartmentName"`
	ProjectDepartmentName string `json:"projectDepartmentName"`
}

// CreateDepartmentMapping handles POST /api/connections/departments.
func (ctl *ConnectionController) CreateDepartmentMapping(c *gin.Context) {
	var payload createDepartmentMappingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Некорректный запрос", "details": err.Error()})
		return
	}
	if payload.TurarDepartmentName == "" || payload.ProjectDepartmentName == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Не указаны названия отделений"})
		return
	}

	mapping, err := ctl.Connections.CreateDepartmentMapping(c.Request.Context(), payload.TurarDepartmentName, payload.ProjectDepartmentName)
	if err != nil {
		respondServiceError(c, err, "Ошибка при создании связи отделений")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":           true,
		"departmentMapping": mapping,
		"message":           "Связь отделений создана",
	})
}

type deleteMappingPayload struct {
	MappingID uint `json:"mappingId"`
}

// DeleteDepartmentMapping handles DELETE /api/connections/departments.
func (ctl *ConnectionController) DeleteDepartmentMapping(c *gin.Context) {
	var payload deleteMappingPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.MappingID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Не указан ID связи"})
		return
	}

	if err := ctl.Connections.DeleteDepartmentMapping(c.Request.Context(), payload.MappingID); err != nil {
		respondServiceError(c, err, "Ошибка при удалении связи отделений")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Связь отделений удалена"})
}

// SeedDepartmentMappings handles POST /api/connections/seed.
func (ctl *ConnectionController) SeedDepartmentMappings(c *gin.Context) {
	result, err := ctl.Connections.SeedDepartmentMappings(c.Request.Context(), ctl.MappingsFile)
	if err != nil {
		respondServiceError(c, err, "Ошибка при загрузке данных сопоставлений")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"mappingsCount": result.MappingsCount,
		"mappings":      result.Mappings,
	})
}

// GetRoomMappings handles GET /api/connections/rooms.
func (ctl *ConnectionController) GetRoomMappings(c *gin.Context) {
	mappings, err := ctl.RoomMappings.List()
	if err != nil {
		respondServiceError(c, err, "Ошибка при получении связей кабинетов")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "roomMappings": mappings})
}

type createRoomMappingPayload struct {
	TurarRoomID   uint `json:"turarRoomId"`
	ProjectRoomID uint `json:"projectRoomId"`
}

// CreateRoomMapping handles POST /api/connections/rooms.
func (ctl *ConnectionController) CreateRoomMapping(c *gin.Context) {
	var payload createRoomMappingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Некорректный запрос", "details": err.Error()})
		return
	}
	if payload.TurarRoomID == 0 || payload.ProjectRoomID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Не указаны ID кабинетов"})
		return
	}

	mapping, err := ctl.RoomMappings.Create(c.Request.Context(), payload.TurarRoomID, payload.ProjectRoomID)
	if err != nil {
		respondServiceError(c, err, "Ошибка при создании связи кабинетов")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "roomMapping": mapping})
}

// DeleteRoomMapping handles DELETE /api/connections/rooms.
func (ctl *ConnectionController) DeleteRoomMapping(c *gin.Context) {
	var payload deleteMappingPayload
	if err := c.ShouldBindJSON(&payload); err != nil || payload.MappingID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Не указан ID связи"})
		return
	}

	if err := ctl.RoomMappings.Delete(c.Request.Context(), payload.MappingID); err != nil {
		respondServiceError(c, err, "Ошибка при удалении связи кабинетов")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Связь удалена"})
}
