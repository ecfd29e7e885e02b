package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"hospital-backend/services"
)

// ExportController streams xlsx workbooks built by the export service.
type ExportController struct {
	Export *services.ExportService
}

func NewExportController(export *services.ExportService) *ExportController {
	return &ExportController{Export: export}
}

func writeWorkbook(c *gin.Context, f *excelize.File, fileName string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", "attachment; filename="+fileName)
	if err := f.Write(c.Writer); err != nil {
		log.Printf("❌ Failed to write workbook %s: %v", fileName, err)
	}
}

// ExportFloors handles GET /api/export/floors.
func (ctl *ExportController) ExportFloors(c *gin.Context) {
	f, fileName, err := ctl.Export.FloorsWorkbook()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Ошибка при экспорте данных", "details": err.Error()})
		return
	}
	writeWorkbook(c, f, fileName)
}

// ExportTurar handles GET /api/export/turar.
func (ctl *ExportController) ExportTurar(c *gin.Context) {
	f, fileName, err := ctl.Export.TurarWorkbook()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Ошибка при экспорте данных", "details": err.Error()})
		return
	}
	writeWorkbook(c, f, fileName)
}

// ExportConnections handles GET /api/export/connections.
func (ctl *ExportController) ExportConnections(c *gin.Context) {
	f, fileName, err := ctl.Export.ConnectionsWorkbook(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Ошибка при экспорте данных", "details": err.Error()})
		return
	}
	writeWorkbook(c, f, fileName)
}
