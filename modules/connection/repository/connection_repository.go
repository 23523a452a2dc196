package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"sampark-api/core/database"
	"sampark-api/core/logger"
	"sampark-api/core/params"
	"sampark-api/modules/connection/entity"

	"github.com/lib/pq"
)

var (
	// ErrPairExists surfaces a violation of the pair-uniqueness index: a
	// live (Pending/Accepted) row already exists for the unordered pair.
	// Under concurrent requests this is how the losing racer finds out.
	ErrPairExists = errors.New("connection pair already exists")

	ErrNotFound = errors.New("connection not found")
)

const pqUniqueViolation = "23505"

type ConnectionRepositoryInterface interface {
	Create(ctx context.Context, conn *entity.Connection) error
	GetByPair(ctx context.Context, a, b string) (*entity.Connection, error)
	GetDirected(ctx context.Context, source, target string) (*entity.Connection, error)
	UpdateStatusIfPending(ctx context.Context, source, target string, status entity.ConnectionStatus) (bool, error)
	ListForUser(ctx context.Context, email string, p params.QueryParams) ([]entity.Connection, error)
	CountAccepted(ctx context.Context, email string) (int, error)
	CountAcceptedAll(ctx context.Context) (map[string]int, error)
}

type ConnectionRepository struct {
	db database.IDatabase
}

func NewConnectionRepository(db database.IDatabase) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// Create appends a Pending row. The partial unique index on the
// normalized pair rejects a second live row; that storage-level check is
// what makes concurrent duplicate requests resolve to exactly one winner.
func (r *ConnectionRepository) Create(ctx context.Context, conn *entity.Connection) error {
	query := `
		INSERT INTO connections (source_email, target_email, source_name, source_phone, note, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`
	conn.CreatedAt = time.Now()
	if conn.Status == "" {
		conn.Status = entity.StatusPending
	}

	row := r.db.QueryRowContext(ctx, query,
		conn.SourceEmail,
		conn.TargetEmail,
		conn.SourceName,
		conn.SourcePhone,
		conn.Note,
		conn.Status,
		conn.CreatedAt,
	)
	if err := row.Scan(&conn.ID); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return ErrPairExists
		}
		logger.Error("ConnectionRepository:Create:Error:", err)
		return err
	}
	return nil
}

// GetByPair finds the live row for an unordered pair, matching either
// direction. Rejected rows are older history; the most recent row wins so
// a fresh Pending row after a rejection is the one reported.
func (r *ConnectionRepository) GetByPair(ctx context.Context, a, b string) (*entity.Connection, error) {
	query := `
		SELECT id, created_at, responded_at, source_email, target_email, source_name, source_phone, note, status
		FROM connections
		WHERE (lower(trim(source_email)) = lower(trim($1)) AND lower(trim(target_email)) = lower(trim($2)))
		   OR (lower(trim(source_email)) = lower(trim($2)) AND lower(trim(target_email)) = lower(trim($1)))
		ORDER BY CASE WHEN status IN ('Pending', 'Accepted') THEN 0 ELSE 1 END, created_at DESC
		LIMIT 1
	`
	var conn entity.Connection
	err := r.db.GetContext(ctx, &conn, query, a, b)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error("ConnectionRepository:GetByPair:Error:", err)
		return nil, err
	}
	return &conn, nil
}

// GetDirected finds the row where source requested target, most recent
// first. Direction matters for respond: only the addressee may answer.
func (r *ConnectionRepository) GetDirected(ctx context.Context, source, target string) (*entity.Connection, error) {
	query := `
		SELECT id, created_at, responded_at, source_email, target_email, source_name, source_phone, note, status
		FROM connections
		WHERE lower(trim(source_email)) = lower(trim($1))
		  AND lower(trim(target_email)) = lower(trim($2))
		ORDER BY created_at DESC
		LIMIT 1
	`
	var conn entity.Connection
	err := r.db.GetContext(ctx, &conn, query, source, target)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.Error("ConnectionRepository:GetDirected:Error:", err)
		return nil, err
	}
	return &conn, nil
}

// UpdateStatusIfPending performs the single irreversible transition as a
// conditional update. Returns false when no Pending row matched, so a
// stale retry can never flip an already-terminal row.
func (r *ConnectionRepository) UpdateStatusIfPending(ctx context.Context, source, target string, status entity.ConnectionStatus) (bool, error) {
	query := `
		UPDATE connections
		SET status = $1, responded_at = $2
		WHERE lower(trim(source_email)) = lower(trim($3))
		  AND lower(trim(target_email)) = lower(trim($4))
		  AND status = 'Pending'
	`
	result, err := r.db.SQLx().ExecContext(ctx, query, status, time.Now(), source, target)
	if err != nil {
		logger.Error("ConnectionRepository:UpdateStatusIfPending:Error:", err)
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

func (r *ConnectionRepository) ListForUser(ctx context.Context, email string, p params.QueryParams) ([]entity.Connection, error) {
	query := `
		SELECT id, created_at, responded_at, source_email, target_email, source_name, source_phone, note, status
		FROM connections
		WHERE lower(trim(source_email)) = lower(trim($1))
		   OR lower(trim(target_email)) = lower(trim($1))
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	var conns []entity.Connection
	if err := r.db.SelectContext(ctx, &conns, query, email, p.Limit, p.Offset); err != nil {
		logger.Error("ConnectionRepository:ListForUser:Error:", err)
		return nil, err
	}
	return conns, nil
}

// CountAccepted counts accepted rows in either direction: the
// relationship is mutual, so both parties count it.
func (r *ConnectionRepository) CountAccepted(ctx context.Context, email string) (int, error) {
	var count int
	query := `
		SELECT COUNT(*)
		FROM connections
		WHERE status = 'Accepted'
		  AND (lower(trim(source_email)) = lower(trim($1))
		       OR lower(trim(target_email)) = lower(trim($1)))
	`
	if err := r.db.GetContext(ctx, &count, query, email); err != nil {
		logger.Error("ConnectionRepository:CountAccepted:Error:", err)
		return 0, err
	}
	return count, nil
}

// CountAcceptedAll computes accepted counts for every attendee in one
// scan of the ledger, keyed by normalized email. The directory join uses
// this instead of re-counting per attendee.
func (r *ConnectionRepository) CountAcceptedAll(ctx context.Context) (map[string]int, error) {
	query := `
		SELECT email, COUNT(*) AS count
		FROM (
			SELECT lower(trim(source_email)) AS email FROM connections WHERE status = 'Accepted' AND source_email <> ''
			UNION ALL
			SELECT lower(trim(target_email)) AS email FROM connections WHERE status = 'Accepted'
		) both_sides
		GROUP BY email
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.Error("ConnectionRepository:CountAcceptedAll:Error:", err)
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var email string
		var count int
		if err := rows.Scan(&email, &count); err != nil {
			return nil, err
		}
		counts[email] = count
	}
	return counts, rows.Err()
}
