package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/alumni-directory-api/internal/models"
)

var (
	// ErrNotPending is returned when a review lost the pending-status race.
	ErrNotPending = errors.New("update request is no longer pending")
	// ErrDuplicate is returned on a unique-key violation.
	ErrDuplicate = errors.New("duplicate update request")
)

const uniqueViolation = "23505"

const updateRequestColumns = `id, roll_number, old_data, new_data, status, submitted_at, reviewed_at, reviewed_by, notes`

// UpdateRequestRepository persists the moderation queue.
type UpdateRequestRepository struct {
	db *sqlx.DB
}

// NewUpdateRequestRepository constructs the repository.
func NewUpdateRequestRepository(db *sqlx.DB) *UpdateRequestRepository {
	return &UpdateRequestRepository{db: db}
}

// Create inserts a new request, filling id, status and submittedAt when unset.
func (r *UpdateRequestRepository) Create(ctx context.Context, req *models.UpdateRequest) error {
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.Status == "" {
		req.Status = models.UpdateRequestStatusPending
	}
	if req.SubmittedAt.IsZero() {
		req.SubmittedAt = time.Now().UTC()
	}
	const query = `INSERT INTO update_requests
	(id, roll_number, old_data, new_data, status, submitted_at, reviewed_at, reviewed_by, notes)
	VALUES (:id, :roll_number, :old_data, :new_data, :status, :submitted_at, :reviewed_at, :reviewed_by, :notes)`
	if _, err := r.db.NamedExecContext(ctx, query, req); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrDuplicate
		}
		return fmt.Errorf("create update request: %w", err)
	}
	return nil
}

// GetByID fetches a request by identifier.
func (r *UpdateRequestRepository) GetByID(ctx context.Context, id string) (*models.UpdateRequest, error) {
	query := "SELECT " + updateRequestColumns + " FROM update_requests WHERE id = $1"
	var req models.UpdateRequest
	if err := r.db.GetContext(ctx, &req, query, id); err != nil {
		return nil, err
	}
	return &req, nil
}

// List returns one page of requests, newest first, and the total match count.
func (r *UpdateRequestRepository) List(ctx context.Context, filter models.UpdateRequestFilter) ([]models.UpdateRequest, int, error) {
	where := ""
	args := make([]interface{}, 0, 1)
	if filter.Status != "" {
		args = append(args, filter.Status)
		where = " WHERE status = $1"
	}

	limit := filter.Limit
	if limit <= 0 || limit > models.MaxLimit {
		limit = models.DefaultLimit
	}
	offset := filter.Offset
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf("SELECT %s FROM update_requests%s ORDER BY submitted_at DESC, id LIMIT %d OFFSET %d",
		updateRequestColumns, where, limit, offset)

	requests := make([]models.UpdateRequest, 0, limit)
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list update requests: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM update_requests"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count update requests: %w", err)
	}
	return requests, total, nil
}

// ReviewParams carries a reviewer decision.
type ReviewParams struct {
	ID         string
	RollNumber string
	ReviewedBy string
	ReviewedAt time.Time
	Notes      *string
}

// Approve marks the request approved and applies it to the alumni record in one
// transaction. The status update only matches a pending row, so of two
// concurrent approvals exactly one proceeds; the other gets ErrNotPending. A
// missing record yields sql.ErrNoRows. Errors from apply roll everything back
// and are returned unchanged.
func (r *UpdateRequestRepository) Approve(ctx context.Context, params ReviewParams, apply func(record *models.Alumni) error) (*models.Alumni, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin approve tx: %w", err)
	}

	if err := markReviewed(ctx, tx, params, models.UpdateRequestStatusApproved); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	var record models.Alumni
	query := "SELECT " + alumniColumns + " FROM alumni WHERE roll_number = $1 FOR UPDATE"
	if err := tx.GetContext(ctx, &record, query, params.RollNumber); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("lock alumni: %w", err)
	}

	if err := apply(&record); err != nil {
		_ = tx.Rollback()
		return nil, err
	}
	record.UpdatedAt = params.ReviewedAt
	if err := updateAlumni(ctx, tx, &record); err != nil {
		_ = tx.Rollback()
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit approve tx: %w", err)
	}
	return &record, nil
}

// Reject marks a pending request rejected without touching the alumni record.
func (r *UpdateRequestRepository) Reject(ctx context.Context, params ReviewParams) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin reject tx: %w", err)
	}
	if err := markReviewed(ctx, tx, params, models.UpdateRequestStatusRejected); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit reject tx: %w", err)
	}
	return nil
}

func markReviewed(ctx context.Context, tx *sqlx.Tx, params ReviewParams, status models.UpdateRequestStatus) error {
	const query = `UPDATE update_requests SET status = $2, reviewed_at = $3, reviewed_by = $4, notes = $5
	WHERE id = $1 AND status = $6`
	result, err := tx.ExecContext(ctx, query,
		params.ID, status, params.ReviewedAt, params.ReviewedBy, params.Notes, models.UpdateRequestStatusPending)
	if err != nil {
		return fmt.Errorf("update request status: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("check update request rows: %w", err)
	}
	if rows == 0 {
		return ErrNotPending
	}
	return nil
}
