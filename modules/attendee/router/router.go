package router

import (
	"sampark-api/core/middleware"
	"sampark-api/modules/attendee/controller"

	"github.com/labstack/echo/v4"
)

type AttendeeRouter struct {
	controller *controller.AttendeeController
}

func NewAttendeeRouter(controller *controller.AttendeeController) *AttendeeRouter {
	return &AttendeeRouter{
		controller: controller,
	}
}

func (r *AttendeeRouter) Register(g *echo.Group, mw *middleware.Middleware) {
	g.POST("/auth/register", r.controller.Register)

	attendees := g.Group("/attendees")
	attendees.GET("/search", r.controller.Search)
	attendees.GET("/me", r.controller.GetMe, mw.AuthMiddleware())
	attendees.PUT("/me", r.controller.UpdateMe, mw.AuthMiddleware())

	admin := g.Group("/admin")
	admin.Use(mw.AdminMiddleware())
	admin.GET("/attendees", r.controller.AdminList)
	admin.PUT("/attendees/:id", r.controller.AdminUpdate)
	admin.POST("/attendees/:id/approve", r.controller.Approve)
	admin.POST("/backfill-slugs", r.controller.BackfillSlugs)
}
