package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hospital-backend/services"
)

// FloorController serves the floor-plan catalog.
type FloorController struct {
	Floors *services.FloorService

	// FloorsDir holds the <n>F_filled.json files POST /floors/seed reads.
	FloorsDir string
}

func NewFloorController(floors *services.FloorService, floorsDir string) *FloorController {
	return &FloorController{Floors: floors, FloorsDir: floorsDir}
}

// GetFloors handles GET /api/floors.
func (ctl *FloorController) GetFloors(c *gin.Context) {
	floors, err := ctl.Floors.List()
	if err != nil {
		respondServiceError(c, err, "Не удалось получить данные этажей")
		return
	}
	c.JSON(http.StatusOK, floors)
}

// SeedFloors handles POST /api/floors/seed.
func (ctl *FloorController) SeedFloors(c *gin.Context) {
	result, err := ctl.Floors.SeedFromDir(c.Request.Context(), ctl.FloorsDir)
	if err != nil {
		respondServiceError(c, err, "Ошибка при загрузке данных этажей")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":        true,
		"floorsCount":    result.FloorsCount,
		"blocksCount":    result.BlocksCount,
		"roomsCount":     result.RoomsCount,
		"equipmentCount": result.EquipmentCount,
	})
}

// UpdateDepartment handles PUT /api/departments/:id.
func (ctl *FloorController) UpdateDepartment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var input services.UpdateDepartmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Некорректный запрос", "details": err.Error()})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Название отделения обязательно"})
		return
	}

	department, err := ctl.Floors.UpdateDepartment(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Ошибка при обновлении отделения")
		return
	}
	c.JSON(http.StatusOK, department)
}

// UpdateRoom handles PUT /api/rooms/:id.
func (ctl *FloorController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var input services.UpdateRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Некорректный запрос", "details": err.Error()})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Название кабинета обязательно"})
		return
	}

	room, err := ctl.Floors.UpdateRoom(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Ошибка при обновлении кабинета")
		return
	}
	c.JSON(http.StatusOK, room)
}
