package attendee

import (
	"sampark-api/core/database"
	"sampark-api/core/middleware"
	"sampark-api/modules/attendee/controller"
	"sampark-api/modules/attendee/repository"
	"sampark-api/modules/attendee/router"
	"sampark-api/modules/attendee/service"
	mailerService "sampark-api/modules/mailer/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the attendee module and returns the service for use by
// other modules.
func Init(g *echo.Group, db database.IDatabase, mw *middleware.Middleware, mailer *mailerService.MailerService) *service.AttendeeService {
	repo := repository.NewAttendeeRepository(db)
	svc := service.NewAttendeeService(repo, mailer)
	ctrl := controller.NewAttendeeController(svc)
	r := router.NewAttendeeRouter(ctrl)

	r.Register(g, mw)

	return svc
}
