package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hospital-backend/services"
)

// ImportController exposes the import history.
type ImportController struct {
	Imports *services.ImportLogService
}

func NewImportController(imports *services.ImportLogService) *ImportController {
	return &ImportController{Imports: imports}
}

// GetImports handles GET /api/imports.
func (ctl *ImportController) GetImports(c *gin.Context) {
	logs, err := ctl.Imports.List()
	if err != nil {
		respondServiceError(c, err, "Ошибка при получении истории загрузок")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "imports": logs})
}
