package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sampark-api/core/database"
	"sampark-api/core/logger"
	"sampark-api/core/params"
	"sampark-api/modules/attendee/entity"

	"github.com/google/uuid"
)

// ErrNotFound is returned when no attendee matches; callers translate it
// into their own error taxonomy.
var ErrNotFound = errors.New("attendee not found")

const attendeeColumns = `id, created_at, updated_at, name, email, phone, university, department,
	year, theme, participation_type, team_name, note, password_hash, status,
	linkedin, instagram, github, slug`

type AttendeeRepositoryInterface interface {
	Create(ctx context.Context, attendee *entity.Attendee) error
	GetByEmail(ctx context.Context, email string) (*entity.Attendee, error)
	GetBySlug(ctx context.Context, slug string) (*entity.Attendee, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Attendee, error)
	GetAll(ctx context.Context, p params.QueryParams) ([]entity.Attendee, error)
	Search(ctx context.Context, query string, p params.QueryParams) ([]entity.Attendee, error)
	UpdateProfile(ctx context.Context, attendee *entity.Attendee) error
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AttendeeStatus) error
	UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error
	UpdateSlug(ctx context.Context, id uuid.UUID, slug string) error
	SlugExists(ctx context.Context, slug string) (bool, error)
	ListMissingSlugs(ctx context.Context) ([]entity.Attendee, error)
}

type AttendeeRepository struct {
	db database.IDatabase
}

func NewAttendeeRepository(db database.IDatabase) *AttendeeRepository {
	return &AttendeeRepository{db: db}
}

func (r *AttendeeRepository) Create(ctx context.Context, attendee *entity.Attendee) error {
	query := `
		INSERT INTO attendees (name, email, phone, university, department, year,
			theme, participation_type, team_name, note, password_hash, status,
			linkedin, instagram, github, slug, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING id
	`
	now := time.Now()
	attendee.CreatedAt = now
	attendee.UpdatedAt = now
	if attendee.Status == "" {
		attendee.Status = entity.AttendeeStatusPending
	}

	row := r.db.QueryRowContext(ctx, query,
		attendee.Name,
		attendee.Email,
		attendee.Phone,
		attendee.University,
		attendee.Department,
		attendee.Year,
		attendee.Theme,
		attendee.ParticipationType,
		attendee.TeamName,
		attendee.Note,
		attendee.PasswordHash,
		attendee.Status,
		attendee.Linkedin,
		attendee.Instagram,
		attendee.Github,
		attendee.Slug,
		attendee.CreatedAt,
		attendee.UpdatedAt,
	)
	if err := row.Scan(&attendee.ID); err != nil {
		logger.Error("AttendeeRepository:Create:Error:", err)
		return err
	}
	return nil
}

// GetByEmail returns the first matching attendee by normalized email. The
// store does not enforce email uniqueness; ordering by created_at makes
// duplicate rows resolve deterministically to the oldest one.
func (r *AttendeeRepository) GetByEmail(ctx context.Context, email string) (*entity.Attendee, error) {
	query := `
		SELECT ` + attendeeColumns + `
		FROM attendees
		WHERE lower(trim(email)) = lower(trim($1))
		ORDER BY created_at ASC
		LIMIT 1
	`
	var a entity.Attendee
	err := r.db.GetContext(ctx, &a, query, email)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error("AttendeeRepository:GetByEmail:Error:", err)
		return nil, err
	}
	return &a, nil
}

func (r *AttendeeRepository) GetBySlug(ctx context.Context, slug string) (*entity.Attendee, error) {
	query := `
		SELECT ` + attendeeColumns + `
		FROM attendees
		WHERE slug = $1
		ORDER BY created_at ASC
		LIMIT 1
	`
	var a entity.Attendee
	err := r.db.GetContext(ctx, &a, query, slug)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error("AttendeeRepository:GetBySlug:Error:", err)
		return nil, err
	}
	return &a, nil
}

func (r *AttendeeRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Attendee, error) {
	query := `SELECT ` + attendeeColumns + ` FROM attendees WHERE id = $1`
	var a entity.Attendee
	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error("AttendeeRepository:GetByID:Error:", err)
		return nil, err
	}
	return &a, nil
}

func (r *AttendeeRepository) GetAll(ctx context.Context, p params.QueryParams) ([]entity.Attendee, error) {
	query := `
		SELECT ` + attendeeColumns + `
		FROM attendees
		ORDER BY created_at ASC
		LIMIT $1 OFFSET $2
	`
	var attendees []entity.Attendee
	if err := r.db.SelectContext(ctx, &attendees, query, p.Limit, p.Offset); err != nil {
		logger.Error("AttendeeRepository:GetAll:Error:", err)
		return nil, err
	}
	return attendees, nil
}

func (r *AttendeeRepository) Search(ctx context.Context, query string, p params.QueryParams) ([]entity.Attendee, error) {
	sqlQuery := `
		SELECT ` + attendeeColumns + `
		FROM attendees
		WHERE status = 'Approved'
		  AND ($1 = '' OR name ILIKE '%' || $1 || '%'
		       OR theme ILIKE '%' || $1 || '%'
		       OR university ILIKE '%' || $1 || '%')
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3
	`
	var attendees []entity.Attendee
	if err := r.db.SelectContext(ctx, &attendees, sqlQuery, query, p.Limit, p.Offset); err != nil {
		logger.Error("AttendeeRepository:Search:Error:", err)
		return nil, err
	}
	return attendees, nil
}

// UpdateProfile overwrites the editable columns only. Identity (email),
// credential hash, status and slug are managed by their own operations.
func (r *AttendeeRepository) UpdateProfile(ctx context.Context, attendee *entity.Attendee) error {
	query := `
		UPDATE attendees
		SET name = $1, phone = $2, university = $3, department = $4, year = $5,
		    theme = $6, participation_type = $7, team_name = $8, note = $9,
		    linkedin = $10, instagram = $11, github = $12, updated_at = $13
		WHERE id = $14
	`
	err := r.db.ExecContext(ctx, query,
		attendee.Name,
		attendee.Phone,
		attendee.University,
		attendee.Department,
		attendee.Year,
		attendee.Theme,
		attendee.ParticipationType,
		attendee.TeamName,
		attendee.Note,
		attendee.Linkedin,
		attendee.Instagram,
		attendee.Github,
		time.Now(),
		attendee.ID,
	)
	if err != nil {
		logger.Error("AttendeeRepository:UpdateProfile:Error:", err)
		return err
	}
	return nil
}

func (r *AttendeeRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AttendeeStatus) error {
	query := `UPDATE attendees SET status = $1, updated_at = $2 WHERE id = $3`
	if err := r.db.ExecContext(ctx, query, status, time.Now(), id); err != nil {
		logger.Error("AttendeeRepository:UpdateStatus:Error:", err)
		return err
	}
	return nil
}

func (r *AttendeeRepository) UpdatePasswordHash(ctx context.Context, id uuid.UUID, hash string) error {
	query := `UPDATE attendees SET password_hash = $1, updated_at = $2 WHERE id = $3`
	if err := r.db.ExecContext(ctx, query, hash, time.Now(), id); err != nil {
		logger.Error("AttendeeRepository:UpdatePasswordHash:Error:", err)
		return err
	}
	return nil
}

func (r *AttendeeRepository) UpdateSlug(ctx context.Context, id uuid.UUID, slug string) error {
	query := `UPDATE attendees SET slug = $1, updated_at = $2 WHERE id = $3`
	if err := r.db.ExecContext(ctx, query, slug, time.Now(), id); err != nil {
		logger.Error("AttendeeRepository:UpdateSlug:Error:", err)
		return err
	}
	return nil
}

func (r *AttendeeRepository) SlugExists(ctx context.Context, slug string) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM attendees WHERE slug = $1`
	if err := r.db.GetContext(ctx, &count, query, slug); err != nil {
		logger.Error("AttendeeRepository:SlugExists:Error:", err)
		return false, err
	}
	return count > 0, nil
}

func (r *AttendeeRepository) ListMissingSlugs(ctx context.Context) ([]entity.Attendee, error) {
	query := `SELECT ` + attendeeColumns + ` FROM attendees WHERE slug = '' ORDER BY created_at ASC`
	var attendees []entity.Attendee
	if err := r.db.SelectContext(ctx, &attendees, query); err != nil {
		logger.Error("AttendeeRepository:ListMissingSlugs:Error:", err)
		return nil, err
	}
	return attendees, nil
}
