package controller

import (
	"sampark-api/core/controller"
	"sampark-api/core/errors"
	"sampark-api/core/params"
	"sampark-api/core/utils"
	"sampark-api/modules/connection/dto"
	"sampark-api/modules/connection/entity"
	"sampark-api/modules/connection/service"

	"github.com/labstack/echo/v4"
)

type ConnectionController struct {
	controller.BaseController
	service *service.ConnectionService
}

func NewConnectionController(service *service.ConnectionService) *ConnectionController {
	return &ConnectionController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

// claims returns the token claims when the caller is authenticated, or
// nil on the optional-auth endpoints.
func (c *ConnectionController) claims(ctx echo.Context) *utils.TokenClaims {
	tokenData := ctx.Get("token_data")
	if tokenData == nil {
		return nil
	}
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return nil
	}
	return claims
}

// Request creates a connection request. Authenticated callers always act
// as themselves; guests supply a name/phone instead of an email.
func (c *ConnectionController) Request(ctx echo.Context) error {
	var req dto.RequestConnectionRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	// The token identity overrides any client-supplied source email.
	if claims := c.claims(ctx); claims != nil {
		req.SourceEmail = claims.Email
	}

	if appErr := c.service.Request(ctx.Request().Context(), &req); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Connection request sent")
}

// Respond accepts or rejects a pending request addressed to the caller.
func (c *ConnectionController) Respond(ctx echo.Context) error {
	claims := c.claims(ctx)
	if claims == nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	var req dto.RespondRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	decision := entity.ConnectionStatus(req.Decision)
	if appErr := c.service.Respond(ctx.Request().Context(), claims.Email, req.SourceEmail, decision); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Connection "+req.Decision)
}

// Status reports the pair status; symmetric in its arguments.
func (c *ConnectionController) Status(ctx echo.Context) error {
	source := ctx.QueryParam("source")
	target := ctx.QueryParam("target")

	status, appErr := c.service.GetStatus(ctx.Request().Context(), source, target)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, &dto.StatusResponse{Status: string(status)}, "Status retrieved")
}

// List returns the caller's connections, newest first.
func (c *ConnectionController) List(ctx echo.Context) error {
	claims := c.claims(ctx)
	if claims == nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	p := params.FromContext(ctx)
	resp, appErr := c.service.List(ctx.Request().Context(), claims.Email, p)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Connections retrieved")
}

// Count returns the caller's accepted connection count.
func (c *ConnectionController) Count(ctx echo.Context) error {
	claims := c.claims(ctx)
	if claims == nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	count, appErr := c.service.CountAccepted(ctx.Request().Context(), claims.Email)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, &dto.CountResponse{Count: count}, "Count retrieved")
}
