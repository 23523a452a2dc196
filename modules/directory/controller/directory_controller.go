package controller

import (
	"sampark-api/core/controller"
	"sampark-api/modules/directory/service"

	"github.com/labstack/echo/v4"
)

type DirectoryController struct {
	controller.BaseController
	service *service.DirectoryService
}

func NewDirectoryController(service *service.DirectoryService) *DirectoryController {
	return &DirectoryController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// ListPublic returns the public browse listing with connection counts.
func (c *DirectoryController) ListPublic(ctx echo.Context) error {
	resp, appErr := c.service.ListPublic(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Directory retrieved")
}

// ResolveSlug returns the public profile behind a shareable slug.
func (c *DirectoryController) ResolveSlug(ctx echo.Context) error {
	profile, appErr := c.service.ResolveSlug(ctx.Request().Context(), ctx.Param("slug"))
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, profile, "Profile retrieved")
}
