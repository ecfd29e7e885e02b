package controllers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hospital-backend/services"
)

// respondServiceError maps the service error taxonomy onto HTTP:
// validation and duplicate pairs are client errors, a missing row is
// 404, anything else is a storage failure surfaced as a generic 500
// with the underlying text in details.
func respondServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, services.ErrEmptyName), errors.Is(err, services.ErrRoomIDsRequired):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, services.ErrMappingExists), errors.Is(err, services.ErrRoomMappingExists):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Связь уже существует"})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Запись не найдена"})
	default:
		log.Printf("❌ %s: %v", fallback, err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   fallback,
			"details": err.Error(),
		})
	}
}

// parseIDParam reads the numeric :id path parameter.
func parseIDParam(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Некорректный ID"})
		return 0, false
	}
	return uint(id), true
}
