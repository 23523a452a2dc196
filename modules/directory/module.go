package directory

import (
	"sampark-api/core/cache"
	"sampark-api/core/database"
	attendeeRepo "sampark-api/modules/attendee/repository"
	connectionRepo "sampark-api/modules/connection/repository"
	"sampark-api/modules/directory/controller"
	"sampark-api/modules/directory/router"
	"sampark-api/modules/directory/service"

	"github.com/labstack/echo/v4"
)

// Init initializes the public directory module.
func Init(g *echo.Group, db database.IDatabase, c cache.ICache) *service.DirectoryService {
	attendees := attendeeRepo.NewAttendeeRepository(db)
	connections := connectionRepo.NewConnectionRepository(db)
	svc := service.NewDirectoryService(attendees, connections, c)
	ctrl := controller.NewDirectoryController(svc)
	r := router.NewDirectoryRouter(ctrl)

	r.Register(g)

	return svc
}
