package controller

import (
	"sampark-api/core/controller"
	"sampark-api/core/errors"
	"sampark-api/core/logger"
	"sampark-api/core/params"
	"sampark-api/core/utils"
	"sampark-api/modules/attendee/dto"
	"sampark-api/modules/attendee/mapper"
	"sampark-api/modules/attendee/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type AttendeeController struct {
	controller.BaseController
	service *service.AttendeeService
}

func NewAttendeeController(service *service.AttendeeService) *AttendeeController {
	return &AttendeeController{
		BaseController: controller.NewBaseController(),
		service:        service,
	}
}

func (c *AttendeeController) getClaims(ctx echo.Context) (*utils.TokenClaims, error) {
	tokenData := ctx.Get("token_data")
	if tokenData == nil {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Token data not found in context", nil)
	}
	claims, ok := tokenData.(*utils.TokenClaims)
	if !ok {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "Invalid token data format", nil)
	}
	return claims, nil
}

// Register handles public registration submissions.
func (c *AttendeeController) Register(ctx echo.Context) error {
	var req dto.RegisterRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	resp, appErr := c.service.Register(ctx.Request().Context(), &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Registration submitted")
}

// GetMe returns the authenticated attendee's own profile.
func (c *AttendeeController) GetMe(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	attendee, appErr := c.service.GetByEmail(ctx.Request().Context(), claims.Email)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, mapper.ToAttendeeResponse(attendee), "Profile retrieved")
}

// UpdateMe updates the authenticated attendee's editable fields.
func (c *AttendeeController) UpdateMe(ctx echo.Context) error {
	claims, err := c.getClaims(ctx)
	if err != nil {
		return c.Unauthorized(errors.ErrUnauthorized, "Unauthorized", nil)
	}

	var req dto.UpdateProfileRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	attendee, appErr := c.service.UpdateProfile(ctx.Request().Context(), claims.UserID, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, mapper.ToAttendeeResponse(attendee), "Profile updated")
}

// Search matches approved attendees by name, theme or university. An
// empty query returns a capped explore listing.
func (c *AttendeeController) Search(ctx echo.Context) error {
	query := ctx.QueryParam("q")
	p := params.FromContext(ctx)

	attendees, appErr := c.service.Search(ctx.Request().Context(), query, p)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, mapper.ToAttendeeResponses(attendees), "Search results")
}

// AdminList returns all attendees for the admin console.
func (c *AttendeeController) AdminList(ctx echo.Context) error {
	p := params.FromContext(ctx)

	attendees, appErr := c.service.AdminList(ctx.Request().Context(), p)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, mapper.ToAttendeeResponses(attendees), "Attendees retrieved")
}

// AdminUpdate edits an attendee row from the admin console.
func (c *AttendeeController) AdminUpdate(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid attendee ID", nil)
	}

	var req dto.AdminUpdateRequest
	if err := ctx.Bind(&req); err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid request body", nil)
	}

	attendee, appErr := c.service.AdminUpdate(ctx.Request().Context(), id, &req)
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, mapper.ToAttendeeResponse(attendee), "Attendee updated")
}

// Approve transitions an attendee to Approved and emails credentials.
func (c *AttendeeController) Approve(ctx echo.Context) error {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return c.BadRequest(errors.ErrInvalidRequestData, "Invalid attendee ID", nil)
	}

	logger.Info("AttendeeController:Approve:Start", "id", id)
	if appErr := c.service.Approve(ctx.Request().Context(), id); appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, nil, "Attendee approved")
}

// BackfillSlugs assigns public slugs to rows that predate slugs.
func (c *AttendeeController) BackfillSlugs(ctx echo.Context) error {
	resp, appErr := c.service.BackfillSlugs(ctx.Request().Context())
	if appErr != nil {
		return c.ErrorResponse(ctx, appErr)
	}
	return c.SuccessResponse(ctx, resp, "Slugs backfilled")
}
