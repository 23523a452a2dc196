package service

import (
	"context"
	"time"

	"sampark-api/core/cache"
	"sampark-api/core/errors"
	"sampark-api/core/logger"
	"sampark-api/core/utils"
	attendeeEntity "sampark-api/modules/attendee/entity"
	attendeeRepo "sampark-api/modules/attendee/repository"
	"sampark-api/modules/auth/dto"
)

type AuthService struct {
	attendees attendeeRepo.AttendeeRepositoryInterface
	cache     cache.ICache
}

func NewAuthService(attendees attendeeRepo.AttendeeRepositoryInterface, c cache.ICache) *AuthService {
	return &AuthService{
		attendees: attendees,
		cache:     c,
	}
}

// Login verifies the emailed credential against the stored hash and
// issues the session token. Only approved attendees may log in.
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, *errors.AppError) {
	if utils.NormalizeEmail(req.Email) == "" || req.Password == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "email and password are required", nil)
	}

	attendee, err := s.attendees.GetByEmail(ctx, req.Email)
	if err == attendeeRepo.ErrNotFound {
		// Same answer as a bad password; don't reveal which.
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid credentials", nil)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStoreUnavailable, "failed to look up attendee", err)
	}

	if attendee.Status != attendeeEntity.AttendeeStatusApproved {
		return nil, errors.NewAppError(errors.ErrForbidden, "registration is pending approval", nil)
	}

	if !utils.ComparePassword(attendee.PasswordHash, req.Password) {
		return nil, errors.NewAppError(errors.ErrUnauthorized, "invalid credentials", nil)
	}

	token, err := utils.GenerateToken(attendee.ID, attendee.Email, attendee.Slug)
	if err != nil {
		logger.Error("AuthService:Login:GenerateToken:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to issue token", err)
	}

	return &dto.LoginResponse{
		Token: token,
		User: dto.LoginUser{
			ID:    attendee.ID.String(),
			Name:  attendee.Name,
			Email: attendee.Email,
			Theme: attendee.Theme,
			Slug:  attendee.Slug,
		},
	}, nil
}

// Logout blacklists the token for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, token string) *errors.AppError {
	claims, err := utils.ValidateAndParseToken(token)
	if err != nil {
		return errors.NewAppError(errors.ErrUnauthorized, "invalid token", nil)
	}

	ttl := time.Duration(0)
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}

	if err := s.cache.BlacklistToken(ctx, token, ttl); err != nil {
		logger.Error("AuthService:Logout:BlacklistToken:Error:", err)
		return errors.NewAppError(errors.ErrStoreUnavailable, "failed to revoke token", err)
	}
	return nil
}
