package service

import (
	"context"
	"fmt"
	"strings"

	"sampark-api/core/errors"
	"sampark-api/core/logger"
	"sampark-api/core/params"
	"sampark-api/core/utils"
	attendeeRepo "sampark-api/modules/attendee/repository"
	"sampark-api/modules/connection/dto"
	"sampark-api/modules/connection/entity"
	"sampark-api/modules/connection/repository"
	mailerDto "sampark-api/modules/mailer/dto"
	mailerService "sampark-api/modules/mailer/service"
)

type ConnectionService struct {
	repo         repository.ConnectionRepositoryInterface
	attendeeRepo attendeeRepo.AttendeeRepositoryInterface
	mailer       *mailerService.MailerService
}

func NewConnectionService(repo repository.ConnectionRepositoryInterface, attendees attendeeRepo.AttendeeRepositoryInterface, mailer *mailerService.MailerService) *ConnectionService {
	return &ConnectionService{
		repo:         repo,
		attendeeRepo: attendees,
		mailer:       mailer,
	}
}

// Request creates a Pending ledger row for source → target.
//
// Registered sources must resolve in the attendee directory; guest
// sources carry a name/phone instead and skip both resolution and the
// pair pre-check (a guest has no stable identity to deduplicate on).
// The pre-check only exists for friendly conflict messages — the real
// uniqueness guarantee is the storage-level pair index, surfaced here as
// ErrPairExists when a concurrent request wins the race.
func (s *ConnectionService) Request(ctx context.Context, req *dto.RequestConnectionRequest) *errors.AppError {
	target := strings.TrimSpace(req.TargetEmail)
	source := strings.TrimSpace(req.SourceEmail)

	if target == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "target email is required", nil)
	}
	if source == "" && strings.TrimSpace(req.SourceName) == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "source email or name is required", nil)
	}

	if source != "" && utils.SameEmail(source, target) {
		return errors.NewAppError(errors.ErrAlreadyExists, "cannot connect with yourself", nil)
	}

	sourceName := strings.TrimSpace(req.SourceName)
	sourcePhone := strings.TrimSpace(req.SourcePhone)

	if source != "" {
		sourceUser, err := s.attendeeRepo.GetByEmail(ctx, source)
		if err == attendeeRepo.ErrNotFound {
			return errors.NewAppError(errors.ErrNotFound, fmt.Sprintf("user %s is not registered", source), nil)
		}
		if err != nil {
			return errors.NewAppError(errors.ErrStoreUnavailable, "failed to resolve source user", err)
		}
		sourceName = sourceUser.Name
		if sourcePhone == "" {
			sourcePhone = sourceUser.Phone
		}

		status, appErr := s.GetStatus(ctx, source, target)
		if appErr != nil {
			return appErr
		}
		switch status {
		case entity.StatusAccepted:
			return errors.NewAppError(errors.ErrAlreadyExists, "already connected", nil)
		case entity.StatusPending:
			return errors.NewAppError(errors.ErrAlreadyExists, "request already pending", nil)
		}
		// None or Rejected: a new request may proceed.
	}

	conn := &entity.Connection{
		SourceEmail: source,
		TargetEmail: target,
		SourceName:  sourceName,
		SourcePhone: sourcePhone,
		Note:        strings.TrimSpace(req.Note),
		Status:      entity.StatusPending,
	}

	if err := s.repo.Create(ctx, conn); err != nil {
		if err == repository.ErrPairExists {
			return errors.NewAppError(errors.ErrAlreadyExists, "connection request already exists", nil)
		}
		return errors.NewAppError(errors.ErrStoreUnavailable, "failed to save connection request", err)
	}

	s.notifyTarget(ctx, conn)
	return nil
}

// notifyTarget emails the target about the new request when they resolve
// in the directory. Best effort; the request row is already committed.
func (s *ConnectionService) notifyTarget(ctx context.Context, conn *entity.Connection) {
	if s.mailer == nil {
		return
	}
	targetUser, err := s.attendeeRepo.GetByEmail(ctx, conn.TargetEmail)
	if err != nil {
		if err != attendeeRepo.ErrNotFound {
			logger.Error("ConnectionService:notifyTarget:GetByEmail:Error:", err)
		}
		return
	}
	mailErr := s.mailer.SendConnectionRequestEmail(&mailerDto.ConnectionRequestEmailPayload{
		To:         targetUser.Email,
		TargetName: targetUser.Name,
		SourceName: conn.SourceName,
		Note:       conn.Note,
	})
	if mailErr != nil {
		logger.Error("ConnectionService:notifyTarget:Send:Error:", mailErr)
	}
}

// GetStatus answers for the unordered pair, so both parties see the same
// status regardless of who asks.
func (s *ConnectionService) GetStatus(ctx context.Context, a, b string) (entity.ConnectionStatus, *errors.AppError) {
	if strings.TrimSpace(a) == "" || strings.TrimSpace(b) == "" {
		return entity.StatusNone, errors.NewAppError(errors.ErrInvalidInput, "both emails are required", nil)
	}

	conn, err := s.repo.GetByPair(ctx, a, b)
	if err == repository.ErrNotFound {
		return entity.StatusNone, nil
	}
	if err != nil {
		return entity.StatusNone, errors.NewAppError(errors.ErrStoreUnavailable, "failed to check connection status", err)
	}
	return conn.Status, nil
}

// Respond applies the one irreversible transition: Pending → Accepted or
// Rejected. Only the row's target may respond, and only while the row is
// still Pending — the conditional update means a stale retry can never
// overwrite a terminal status.
func (s *ConnectionService) Respond(ctx context.Context, responderEmail, sourceEmail string, decision entity.ConnectionStatus) *errors.AppError {
	if strings.TrimSpace(sourceEmail) == "" {
		return errors.NewAppError(errors.ErrInvalidInput, "source email is required", nil)
	}
	if decision != entity.StatusAccepted && decision != entity.StatusRejected {
		return errors.NewAppError(errors.ErrInvalidInput, "decision must be Accepted or Rejected", nil)
	}

	updated, err := s.repo.UpdateStatusIfPending(ctx, sourceEmail, responderEmail, decision)
	if err != nil {
		return errors.NewAppError(errors.ErrStoreUnavailable, "failed to update connection", err)
	}
	if updated {
		return nil
	}

	// Nothing transitioned: either the request never existed for this
	// responder, or it was already resolved.
	conn, err := s.repo.GetDirected(ctx, sourceEmail, responderEmail)
	if err == repository.ErrNotFound {
		return errors.NewAppError(errors.ErrNotFound, "no connection request found", nil)
	}
	if err != nil {
		return errors.NewAppError(errors.ErrStoreUnavailable, "failed to look up connection", err)
	}
	return errors.NewAppError(errors.ErrAlreadyExists, fmt.Sprintf("request already resolved (status: %s)", conn.Status), nil)
}

// List returns the user's ledger entries newest-first, annotated with
// direction and the counterpart's display name. Counterparts that are
// registered attendees resolve through the directory; guests fall back
// to the name captured at request time.
func (s *ConnectionService) List(ctx context.Context, email string, p params.QueryParams) (*dto.ListConnectionsResponse, *errors.AppError) {
	if strings.TrimSpace(email) == "" {
		return nil, errors.NewAppError(errors.ErrInvalidInput, "email is required", nil)
	}

	conns, err := s.repo.ListForUser(ctx, email, p)
	if err != nil {
		return nil, errors.NewAppError(errors.ErrStoreUnavailable, "failed to list connections", err)
	}

	nameCache := make(map[string]string)
	items := make([]dto.ConnectionItem, 0, len(conns))
	for _, conn := range conns {
		item := dto.ConnectionItem{
			ID:          conn.ID.String(),
			Note:        conn.Note,
			Status:      string(conn.Status),
			CreatedAt:   conn.CreatedAt,
			RespondedAt: conn.RespondedAt,
		}

		if utils.SameEmail(conn.TargetEmail, email) {
			item.Direction = dto.DirectionIncoming
			item.CounterpartEmail = conn.SourceEmail
			item.CounterpartName = s.resolveName(ctx, nameCache, conn.SourceEmail, conn.SourceName)
		} else {
			item.Direction = dto.DirectionOutgoing
			item.CounterpartEmail = conn.TargetEmail
			item.CounterpartName = s.resolveName(ctx, nameCache, conn.TargetEmail, conn.TargetEmail)
		}

		items = append(items, item)
	}

	return &dto.ListConnectionsResponse{
		Connections: items,
		Total:       len(items),
	}, nil
}

func (s *ConnectionService) resolveName(ctx context.Context, cache map[string]string, email, fallback string) string {
	if strings.TrimSpace(email) == "" {
		return fallback
	}
	key := utils.NormalizeEmail(email)
	if name, ok := cache[key]; ok {
		if name == "" {
			return fallback
		}
		return name
	}

	attendee, err := s.attendeeRepo.GetByEmail(ctx, email)
	if err != nil {
		if err != attendeeRepo.ErrNotFound {
			logger.Error("ConnectionService:resolveName:GetByEmail:Error:", err)
		}
		cache[key] = ""
		return fallback
	}
	cache[key] = attendee.Name
	return attendee.Name
}

// CountAccepted uses the symmetric policy: an accepted connection counts
// for both parties.
func (s *ConnectionService) CountAccepted(ctx context.Context, email string) (int, *errors.AppError) {
	if strings.TrimSpace(email) == "" {
		return 0, errors.NewAppError(errors.ErrInvalidInput, "email is required", nil)
	}
	count, err := s.repo.CountAccepted(ctx, email)
	if err != nil {
		return 0, errors.NewAppError(errors.ErrStoreUnavailable, "failed to count connections", err)
	}
	return count, nil
}
