package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"hospital-backend/controllers"
	"hospital-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires the controllers onto the /api surface the frontend
// expects.
func SetupRouter(
	cc *controllers.ConnectionController,
	fc *controllers.FloorController,
	tc *controllers.TurarController,
	ec *controllers.ExportController,
	ic *controllers.ImportController,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestLogger(), gin.Recovery())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		connections := api.Group("/connections")
		{
			connections.GET("", cc.GetConnections)
			connections.GET("/grouped", cc.GetGroupedConnections)
			connections.GET("/orphans", cc.GetOrphanedMappings)
			connections.POST("/seed", cc.SeedDepartmentMappings)

			connections.POST("/departments", cc.CreateDepartmentMapping)
			connections.DELETE("/departments", cc.DeleteDepartmentMapping)

			connections.GET("/rooms", cc.GetRoomMappings)
			connections.POST("/rooms", cc.CreateRoomMapping)
			connections.DELETE("/rooms", cc.DeleteRoomMapping)
		}

		floors := api.Group("/floors")
		{
			floors.GET("", fc.GetFloors)
			floors.POST("/seed", fc.SeedFloors)
		}
		api.PUT("/departments/:id", fc.UpdateDepartment)
		api.PUT("/rooms/:id", fc.UpdateRoom)

		turar := api.Group("/turar")
		{
			turar.GET("", tc.GetTurar)
			turar.POST("/seed", tc.SeedTurar)
			turar.POST("/create-travmpunkt", tc.CreateTravmpunkt)
			turar.PUT("/departments/:id", tc.UpdateDepartment)
			turar.PUT("/rooms/:id", tc.UpdateRoom)
		}

		export := api.Group("/export")
		{
			export.GET("/floors", ec.ExportFloors)
			export.GET("/turar", ec.ExportTurar)
			export.GET("/connections", ec.ExportConnections)
		}

		api.GET("/imports", ic.GetImports)
	}

	return r
}
