package auth

import (
	"sampark-api/core/cache"
	"sampark-api/core/database"
	"sampark-api/core/middleware"
	attendeeRepo "sampark-api/modules/attendee/repository"
	"sampark-api/modules/auth/controller"
	"sampark-api/modules/auth/router"
	"sampark-api/modules/auth/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the auth module.
func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware, c cache.ICache) *service.AuthService {
	attendees := attendeeRepo.NewAttendeeRepository(db)
	svc := service.NewAuthService(attendees, c)
	ctrl := controller.NewAuthController(svc)
	r := router.NewAuthRouter(ctrl)

	r.Register(g, mw)

	return svc
}
