package service

import (
	"context"

	"sampark-api/core/errors"
	"sampark-api/core/logger"
	"sampark-api/core/params"
	"sampark-api/core/utils"
	"sampark-api/modules/attendee/dto"
	"sampark-api/modules/attendee/entity"
	"sampark-api/modules/attendee/repository"
	mailerDto "sampark-api/modules/mailer/dto"
	mailerService "sampark-api/modules/mailer/service"

	"github.com/google/uuid"
)

const slugGenerationAttempts = 5

type AttendeeService struct {
	repo   repository.AttendeeRepositoryInterface
	mailer *mailerService.MailerService
}

func NewAttendeeService(repo repository.AttendeeRepositoryInterface, mailer *mailerService.MailerService) *AttendeeService {
	return &AttendeeService{
		repo:   repo,
		mailer: mailer,
	}
}

// Register appends a new attendee with status Pending. The generated
// credential is stored only as a bcrypt hash; a usable credential is
// rotated and emailed on approval.
func (s *AttendeeService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, *errors.AppError) {
	if req.Name == "" || req.Email == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "name and email are required", nil)
	}

	credential := utils.GenerateCredential()
	if credential == "" {
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to generate credential", nil)
	}
	hash, err := utils.HashPassword(credential)
	if err != nil {
		logger.Error("AttendeeService:Register:HashPassword:Error:", err)
		return nil, errors.NewAppError(errors.ErrInternalServer, "failed to hash credential", err)
	}

	slug, appErr := s.newSlug(ctx, req.Name)
	if appErr != nil {
		return nil, appErr
	}

	attendee := &entity.Attendee{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		University:        req.University,
		Department:        req.Department,
		Year:              req.Year,
		Theme:             req.Theme,
		ParticipationType: req.ParticipationType,
		TeamName:          req.TeamName,
		Note:              req.Note,
		PasswordHash:      hash,
		Status:            entity.AttendeeStatusPending,
		Slug:              slug,
	}

	if err := s.repo.Create(ctx, attendee); err != nil {
		logger.Error("AttendeeService:Register:Create:Error:", err)
		return nil, errors.NewAppError(errors.ErrStoreUnavailable, "failed to save registration", err)
	}

	return &dto.RegisterResponse{
		Slug:    slug,
		Message: "Registration submitted! Please wait for admin approval to receive your credentials.",
	}, nil
}

// newSlug generates a public slug and verifies non-collision against the
// store before accepting it.
func (s *AttendeeService) newSlug(ctx context.Context, name string) (string, *errors.AppError) {
	for i := 0; i < slugGenerationAttempts; i++ {
		slug := utils.GeneratePublicSlug(name)
		if slug == "" {
			continue
		}
		exists, err := s.repo.SlugExists(ctx, slug)
		if err != nil {
			logger.Error("AttendeeService:newSlug:SlugExists:Error:", err)
			return "", errors.NewAppError(errors.ErrStoreUnavailable, "failed to verify slug", err)
		}
		if !exists {
			return slug, nil
		}
	}
	return "", errors.NewAppError(errors.ErrInternalServer, "failed to generate unique slug", nil)
}

func (s *AttendeeService) GetByEmail(ctx context.Context, email string) (*entity.Attendee, *errors.AppError) {
	if utils.NormalizeEmail(email) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "email is required", nil)
	}
	attendee, err := s.repo.GetByEmail(ctx, email)
	if err == repository.ErrNotFound {
		return nil, errors.NewAppError(errors.ErrNotFound, "attendee not found", nil)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStoreUnavailable, "failed to look up attendee", err)
	}
	return attendee, nil
}

func (s *AttendeeService) GetBySlug(ctx context.Context, slug string) (*entity.Attendee, *errors.AppError) {
	if slug == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "slug is required", nil)
	}
	attendee, err := s.repo.GetBySlug(ctx, slug)
	if err == repository.ErrNotFound {
		return nil, errors.NewAppError(errors.ErrNotFound, "profile not found", nil)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStoreUnavailable, "failed to look up profile", err)
	}
	return attendee, nil
}

func (s *AttendeeService) UpdateProfile(ctx context.Context, id uuid.UUID, req *dto.UpdateProfileRequest) (*entity.Attendee, *errors.AppError) {
	attendee, err := s.repo.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return nil, errors.NewAppError(errors.ErrNotFound, "attendee not found", nil)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStoreUnavailable, "failed to look up attendee", err)
	}

	if req.Name != "" {
		attendee.Name = req.Name
	}
	attendee.Phone = req.Phone
	attendee.University = req.University
	attendee.Department = req.Department
	attendee.Year = req.Year
	attendee.Theme = req.Theme
	attendee.ParticipationType = req.ParticipationType
	attendee.TeamName = req.TeamName
	attendee.Note = req.Note
	attendee.Linkedin = req.Linkedin
	attendee.Instagram = req.Instagram
	attendee.Github = req.Github

	if err := s.repo.UpdateProfile(ctx, attendee); err != nil {
		logger.Error("AttendeeService:UpdateProfile:Error:", err)
		return nil, errors.NewAppError(errors.ErrStoreUnavailable, "failed to update profile", err)
	}
	return attendee, nil
}

// Approve flips the attendee to Approved, rotates the login credential
// and emails the fresh one. Rotation is required because the original
// plaintext is never stored.
func (s *AttendeeService) Approve(ctx context.Context, id uuid.UUID) *errors.AppError {
	attendee, err := s.repo.GetByID(ctx, id)
	if err == repository.ErrNotFound {
		return errors.NewAppError(errors.ErrNotFound, "attendee not found", nil)
	}
	if err != nil {
		return errors.NewAppError(errors.ErrStoreUnavailable, "failed to look up attendee", err)
	}

	credential := utils.GenerateCredential()
	if credential == "" {
		return errors.NewAppError(errors.ErrInternalServer, "failed to generate credential", nil)
	}
	hash, err := utils.HashPassword(credential)
	if err != nil {
		logger.Error("AttendeeService:Approve:HashPassword:Error:", err)
		return errors.NewAppError(errors.ErrInternalServer, "failed to hash credential", err)
	}

	if err := s.repo.UpdatePasswordHash(ctx, attendee.ID, hash); err != nil {
		return errors.NewAppError(errors.ErrStoreUnavailable, "failed to store credential", err)
	}
	if err := s.repo.UpdateStatus(ctx, attendee.ID, entity.AttendeeStatusApproved); err != nil {
		return errors.NewAppError(errors.ErrStoreUnavailable, "failed to update status", err)
	}

	if s.mailer != nil {
		mailErr := s.mailer.SendWelcomeEmail(&mailerDto.WelcomeEmailPayload{
			To:         attendee.Email,
			Name:       attendee.Name,
			LoginEmail: attendee.Email,
			Credential: credential,
		})
		if mailErr != nil {
			// Approval already took effect; the email can be re-sent.
			logger.Error("AttendeeService:Approve:SendWelcomeEmail:Error:", mailErr)
		}
	}

	return nil
}

func (s *AttendeeService) Search(ctx context.Context, query string, p params.QueryParams) ([]entity.Attendee, *errors.AppError) {
	attendees, err := s.repo.Search(ctx, query, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStoreUnavailable, "search failed", err)
	}
	return attendees, nil
}

func (s *AttendeeService) AdminList(ctx context.Context, p params.QueryParams) ([]entity.Attendee, *errors.AppError) {
	attendees, err := s.repo.GetAll(ctx, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStoreUnavailable, "failed to list attendees", err)
	}
	return attendees, nil
}

func (s *AttendeeService) AdminUpdate(ctx context.Context, id uuid.UUID, req *dto.AdminUpdateRequest) (*entity.Attendee, *errors.AppError) {
	return s.UpdateProfile(ctx, id, &req.UpdateProfileRequest)
}

// BackfillSlugs assigns slugs to attendees registered before slugs
// existed.
func (s *AttendeeService) BackfillSlugs(ctx context.Context) (*dto.BackfillSlugsResponse, *errors.AppError) {
	missing, err := s.repo.ListMissingSlugs(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStoreUnavailable, "failed to list attendees", err)
	}

	updated := 0
	for _, attendee := range missing {
		slug, appErr := s.newSlug(ctx, attendee.Name)
		if appErr != nil {
			return nil, appErr
		}
		if err := s.repo.UpdateSlug(ctx, attendee.ID, slug); err != nil {
			logger.Error("AttendeeService:BackfillSlugs:UpdateSlug:Error:", err, "id", attendee.ID)
			return nil, errors.NewAppError(errors.ErrStoreUnavailable, "failed to update slug", err)
		}
		updated++
	}

	return &dto.BackfillSlugsResponse{Updated: updated}, nil
}
