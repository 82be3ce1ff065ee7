package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/alumni-directory-api/internal/models"
)

// AlumniRepository reads the canonical alumni records.
type AlumniRepository struct {
	db *sqlx.DB
}

// NewAlumniRepository constructs an AlumniRepository.
func NewAlumniRepository(db *sqlx.DB) *AlumniRepository {
	return &AlumniRepository{db: db}
}

// Search returns one ranked page of summaries plus the total match count. Both
// statements run in the same read-only snapshot.
func (r *AlumniRepository) Search(ctx context.Context, filter models.AlumniSearchFilter, page models.PageRequest) ([]models.AlumniSummary, int, error) {
	p := buildAlumniPredicate(filter)
	where := p.where()
	countArgs := append([]interface{}(nil), p.args...)
	query := fmt.Sprintf("SELECT %s FROM alumni%s%s LIMIT %d OFFSET %d",
		alumniSummaryColumns, where, alumniOrderBy(p), page.Limit, page.Offset())

	tx, err := r.db.BeginTxx(ctx, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, 0, fmt.Errorf("begin search tx: %w", err)
	}

	rows := make([]models.AlumniSummary, 0, page.Limit)
	if err := tx.SelectContext(ctx, &rows, query, p.args...); err != nil {
		_ = tx.Rollback()
		return nil, 0, fmt.Errorf("search alumni: %w", err)
	}

	var total int
	if err := tx.GetContext(ctx, &total, "SELECT COUNT(*) FROM alumni"+where, countArgs...); err != nil {
		_ = tx.Rollback()
		return nil, 0, fmt.Errorf("count alumni: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, 0, fmt.Errorf("commit search tx: %w", err)
	}
	return rows, total, nil
}

// Export returns full records matching the filter in directory order, capped at limit rows.
func (r *AlumniRepository) Export(ctx context.Context, filter models.AlumniSearchFilter, limit int) ([]models.Alumni, error) {
	p := buildAlumniPredicate(filter)
	query := fmt.Sprintf("SELECT %s FROM alumni%s%s LIMIT %d", alumniColumns, p.where(), alumniOrderBy(p), limit)
	records := make([]models.Alumni, 0)
	if err := r.db.SelectContext(ctx, &records, query, p.args...); err != nil {
		return nil, fmt.Errorf("export alumni: %w", err)
	}
	return records, nil
}

// FindByRollNumber fetches the full record.
func (r *AlumniRepository) FindByRollNumber(ctx context.Context, rollNumber string) (*models.Alumni, error) {
	query := "SELECT " + alumniColumns + " FROM alumni WHERE roll_number = $1"
	var record models.Alumni
	if err := r.db.GetContext(ctx, &record, query, rollNumber); err != nil {
		return nil, err
	}
	return &record, nil
}

// ExistsByRollNumber checks whether a record with the roll number exists.
func (r *AlumniRepository) ExistsByRollNumber(ctx context.Context, rollNumber string) (bool, error) {
	var exists int
	if err := r.db.GetContext(ctx, &exists, "SELECT 1 FROM alumni WHERE roll_number = $1 LIMIT 1", rollNumber); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("check roll number: %w", err)
	}
	return true, nil
}

// updateAlumni persists every editable column of a locked record.
func updateAlumni(ctx context.Context, tx *sqlx.Tx, record *models.Alumni) error {
	const query = `UPDATE alumni SET name = :name, gender = :gender, year_of_entry = :year_of_entry,
       year_of_graduation = :year_of_graduation, program_name = :program_name, specialization = :specialization,
       department = :department, serial_no = :serial_no, email = :email, phone = :phone, linked_in = :linked_in,
       twitter = :twitter, instagram = :instagram, facebook = :facebook, last_position = :last_position,
       last_organization = :last_organization, nature_of_job = :nature_of_job,
       current_location_india = :current_location_india, current_overseas_location = :current_overseas_location,
       country = :country, achievements = :achievements, college_clubs = :college_clubs, hostels = :hostels,
       higher_studies = :higher_studies, startup = :startup, photo_link = :photo_link, updated_at = :updated_at
       WHERE roll_number = :roll_number`
	if _, err := tx.NamedExecContext(ctx, query, record); err != nil {
		return fmt.Errorf("update alumni: %w", err)
	}
	return nil
}
