// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"greenroute/internal/http/handlers"
	"greenroute/internal/http/middleware"
	"greenroute/internal/modules/poi"
)

type ServerDeps struct {
	Planner handlers.RoutePlanner
	POIs    *poi.Service
	Log     *zap.Logger
}

func NewRouter(deps ServerDeps) *gin.Engine {
	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(deps.Log))
	r.Use(middleware.Recovery(deps.Log))

	routeHandler := handlers.NewRouteHandler(deps.Planner, deps.Log)
	r.POST("/api/ai/route", routeHandler.Plan)

	locationHandler := handlers.NewLocationHandler(deps.POIs, deps.Log)
	r.GET("/api/locations", locationHandler.List)
	r.POST("/api/locations", locationHandler.Create)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	return r
}
