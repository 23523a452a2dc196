package router

import (
	"sampark-api/core/middleware"
	"sampark-api/modules/connection/controller"

	"github.com/labstack/echo/v4"
)

type ConnectionRouter struct {
	controller *controller.ConnectionController
}

func NewConnectionRouter(controller *controller.ConnectionController) *ConnectionRouter {
	return &ConnectionRouter{
		controller: controller,
	}
}

func (r *ConnectionRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	connections := g.Group("/connections")

	// Guests may request a connection (NFC tap flow), so auth is optional
	// here; everything else requires the caller's identity.
	connections.POST("/request", r.controller.Request, mw.OptionalAuthMiddleware())
	connections.GET("/status", r.controller.Status)

	connections.GET("", r.controller.List, mw.AuthMiddleware())
	connections.GET("/count", r.controller.Count, mw.AuthMiddleware())
	connections.POST("/respond", r.controller.Respond, mw.AuthMiddleware())
}
