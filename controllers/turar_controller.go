package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hospital-backend/services"
)

// TurarController serves the inventory catalog.
type TurarController struct {
	Turar *services.TurarService

	// TurarFile is the inventory file POST /turar/seed reads.
	TurarFile string
}

func NewTurarController(turar *services.TurarService, turarFile string) *TurarController {
	return &TurarController{Turar: turar, TurarFile: turarFile}
}

// GetTurar handles GET /api/turar.
func (ctl *TurarController) GetTurar(c *gin.Context) {
	departments, err := ctl.Turar.List()
	if err != nil {
		respondServiceError(c, err, "Не удалось получить данные Турар")
		return
	}
	c.JSON(http.StatusOK, departments)
}

// SeedTurar handles POST /api/turar/seed.
func (ctl *TurarController) SeedTurar(c *gin.Context) {
	result, err := ctl.Turar.SeedFromFile(c.Request.Context(), ctl.TurarFile)
	if err != nil {
		respondServiceError(c, err, "Ошибка при загрузке данных Турар")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":          true,
		"departmentsCount": result.DepartmentsCount,
		"equipmentCount":   result.EquipmentCount,
	})
}

// UpdateDepartment handles PUT /api/turar/departments/:id.
func (ctl *TurarController) UpdateDepartment(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var input services.UpdateTurarDepartmentInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Некорректный запрос", "details": err.Error()})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Название отделения обязательно"})
		return
	}

	department, err := ctl.Turar.UpdateDepartment(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Ошибка при обновлении отделения Турар")
		return
	}
	c.JSON(http.StatusOK, department)
}

// UpdateRoom handles PUT /api/turar/rooms/:id.
func (ctl *TurarController) UpdateRoom(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}
	var input services.UpdateTurarRoomInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Некорректный запрос", "details": err.Error()})
		return
	}
	if input.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Название кабинета обязательно"})
		return
	}

	room, err := ctl.Turar.UpdateRoom(c.Request.Context(), id, input)
	if err != nil {
		respondServiceError(c, err, "Ошибка при обновлении кабинета Турар")
		return
	}
	c.JSON(http.StatusOK, room)
}

// CreateTravmpunkt handles POST /api/turar/create-travmpunkt.
func (ctl *TurarController) CreateTravmpunkt(c *gin.Context) {
	department, stats, err := ctl.Turar.CreateTravmpunkt(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Ошибка при создании Травмпункта")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"message":    "Травмпункт успешно создан/обновлен",
		"department": department,
		"stats":      stats,
	})
}
