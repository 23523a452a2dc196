package connection

import (
	"sampark-api/core/database"
	"sampark-api/core/middleware"
	attendeeRepo "sampark-api/modules/attendee/repository"
	"sampark-api/modules/connection/controller"
	"sampark-api/modules/connection/repository"
	"sampark-api/modules/connection/router"
	"sampark-api/modules/connection/service"
	mailerService "sampark-api/modules/mailer/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the connection module and returns the service for use
// by other modules.
func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware, mailer *mailerService.MailerService) *service.ConnectionService {
	repo := repository.NewConnectionRepository(db)
	attendees := attendeeRepo.NewAttendeeRepository(db)
	svc := service.NewConnectionService(repo, attendees, mailer)
	ctrl := controller.NewConnectionController(svc)
	r := router.NewConnectionRouter(ctrl)

	r.Register(g, mw)

	return svc
}
