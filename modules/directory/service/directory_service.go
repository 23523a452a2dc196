package service

import (
	"context"
	"encoding/json"
	"time"

	"sampark-api/core/cache"
	"sampark-api/core/constants"
	"sampark-api/core/errors"
	"sampark-api/core/logger"
	"sampark-api/core/params"
	"sampark-api/core/utils"
	attendeeRepo "sampark-api/modules/attendee/repository"
	connectionRepo "sampark-api/modules/connection/repository"
	"sampark-api/modules/directory/dto"
)

const directoryCacheTTL = 60 * time.Second

// DirectoryService builds the read-only public listing by joining the
// attendee directory with accepted-connection counts.
type DirectoryService struct {
	attendees   attendeeRepo.AttendeeRepositoryInterface
	connections connectionRepo.ConnectionRepositoryInterface
	cache       cache.ICache
}

func NewDirectoryService(attendees attendeeRepo.AttendeeRepositoryInterface, connections connectionRepo.ConnectionRepositoryInterface, c cache.ICache) *DirectoryService {
	return &DirectoryService{
		attendees:   attendees,
		connections: connections,
		cache:       c,
	}
}

// ListPublic returns approved attendees with their accepted counts. All
// counts come from a single pass over the ledger, merged in memory —
// never a per-attendee rescan. The result is cached briefly; counts may
// lag by the TTL, which the browse surface tolerates.
func (s *DirectoryService) ListPublic(ctx context.Context) (*dto.PublicDirectoryResponse, *errors.AppError) {
	if s.cache != nil {
		if cached, ok, err := s.cache.GetString(ctx, constants.RedisKeyPublicDirectory); err == nil && ok {
			var resp dto.PublicDirectoryResponse
			if err := json.Unmarshal([]byte(cached), &resp); err == nil {
				return &resp, nil
			}
		} else if err != nil {
			logger.Warn("DirectoryService:ListPublic:CacheGet:Error:", "error", err)
		}
	}

	attendees, err := s.attendees.Search(ctx, "", params.QueryParams{Limit: params.MaxLimit})
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStoreUnavailable, "failed to list attendees", err)
	}

	counts, err := s.connections.CountAcceptedAll(ctx)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStoreUnavailable, "failed to count connections", err)
	}

	out := make([]dto.PublicAttendee, 0, len(attendees))
	for _, a := range attendees {
		out = append(out, dto.PublicAttendee{
			Name:              a.Name,
			Theme:             a.Theme,
			Bio:               a.Note,
			ParticipationType: a.ParticipationType,
			University:        a.University,
			Linkedin:          a.Linkedin,
			Instagram:         a.Instagram,
			Github:            a.Github,
			Slug:              a.Slug,
			Connections:       counts[utils.NormalizeEmail(a.Email)],
		})
	}

	resp := &dto.PublicDirectoryResponse{
		Attendees: out,
		Total:     len(out),
	}

	if s.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			if err := s.cache.SetString(ctx, constants.RedisKeyPublicDirectory, string(data), directoryCacheTTL); err != nil {
				logger.Warn("DirectoryService:ListPublic:CacheSet:Error:", "error", err)
			}
		}
	}

	return resp, nil
}

// ResolveSlug maps a shareable profile slug to a public-safe summary.
func (s *DirectoryService) ResolveSlug(ctx context.Context, slug string) (*dto.PublicAttendee, *errors.AppError) {
	if slug == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "slug is required", nil)
	}

	a, err := s.attendees.GetBySlug(ctx, slug)
	if err == attendeeRepo.ErrNotFound {
		return nil, errors.NewAppError(errors.ErrNotFound, "profile not found", nil)
	}
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStoreUnavailable, "failed to resolve profile", err)
	}

	count, err := s.connections.CountAccepted(ctx, a.Email)
	if err != nil {
		logger.Error("DirectoryService:ResolveSlug:CountAccepted:Error:", err)
		count = 0
	}

	return &dto.PublicAttendee{
		Name:              a.Name,
		Theme:             a.Theme,
		Bio:               a.Note,
		ParticipationType: a.ParticipationType,
		University:        a.University,
		Linkedin:          a.Linkedin,
		Instagram:         a.Instagram,
		Github:            a.Github,
		Slug:              a.Slug,
		Connections:       count,
	}, nil
}
