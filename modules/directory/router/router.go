package router

import (
	"sampark-api/modules/directory/controller"

	"github.com/labstack/echo/v4"
)

type DirectoryRouter struct {
	controller *controller.DirectoryController
}

func NewDirectoryRouter(controller *controller.DirectoryController) *DirectoryRouter {
	return &DirectoryRouter{
		controller: controller,
	}
}

// Register wires the public, unauthenticated surfaces.
func (r *DirectoryRouter) Register(g *echo.Group) {
	g.GET("/directory", r.controller.ListPublic)
	g.GET("/public/profile/:slug", r.controller.ResolveSlug)
}
