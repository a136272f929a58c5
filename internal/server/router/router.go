package router

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/mamadbah2/livestock-gva/internal/domain/models"
	"github.com/mamadbah2/livestock-gva/internal/server/handlers"
	"github.com/mamadbah2/livestock-gva/internal/server/middleware"
)

// New wires the Gin engine with required routes and middlewares. GVA routes
// are served both at the root and under /api.
func New(handler *handlers.GVAHandler, logger *zap.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.ZapLogger(logger))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	registerGVA(r.Group("/gva"), handler)
	registerGVA(r.Group("/api/gva"), handler)

	if logger != nil {
		logger.Info("router initialized")
	}

	return r
}

func registerGVA(g *gin.RouterGroup, h *handlers.GVAHandler) {
	authors := []models.Role{models.RoleVeterinarian, models.RoleAdmin}
	readers := []models.Role{models.RoleVeterinarian, models.RoleAdmin, models.RoleParavet}

	g.Use(middleware.Identity())
	g.POST("/calculate", middleware.RequireRole(authors...), h.Calculate)
	g.GET("/reports", middleware.RequireRole(readers...), h.List)
	g.GET("/reports/:id", middleware.RequireRole(readers...), h.Get)
	g.GET("/reports/:id/pdf", middleware.RequireRole(authors...), h.PDF)
	g.GET("/settings", middleware.RequireRole(models.RoleAdmin), h.Settings)
}
