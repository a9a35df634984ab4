package repositories

import (
	"database/sql"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
)

type AwardRepository struct {
	db *sql.DB
}

func NewAwardRepository(db *sql.DB) *AwardRepository {
	return &AwardRepository{db: db}
}

// Create inserts a new award. The unique index on
// (season_id, period_type, period_start, award_type) makes selection
// create-once: a constraint violation means the period is already decided.
func (r *AwardRepository) Create(award *models.Award) error {
	query := `
		INSERT INTO awards (
			id, season_id, period_type, period_start, award_type,
			user_id, score, metadata, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		award.ID, award.SeasonID, string(award.PeriodType), award.PeriodStart.Format(dateLayout),
		string(award.AwardType), award.UserID, award.Score, award.Metadata, award.CreatedAt,
	)

	return err
}

// Exists checks whether an award has already been decided for the key
func (r *AwardRepository) Exists(seasonID string, periodType models.PeriodType, periodStart time.Time, awardType models.AwardType) (bool, error) {
	query := `
		SELECT COUNT(*) FROM awards
		WHERE season_id = ? AND period_type = ? AND period_start = ? AND award_type = ?
	`
	var count int
	err := r.db.QueryRow(query, seasonID, string(periodType), periodStart.Format(dateLayout), string(awardType)).Scan(&count)
	return count > 0, err
}

const awardColumns = `id, season_id, period_type, period_start, award_type, user_id, score, metadata, created_at`

// List retrieves awards with optional filters, newest first
func (r *AwardRepository) List(seasonID, userID string, awardType models.AwardType, offset, limit int) ([]*models.Award, error) {
	query := `SELECT ` + awardColumns + ` FROM awards WHERE 1=1`
	var args []interface{}

	if seasonID != "" {
		query += ` AND season_id = ?`
		args = append(args, seasonID)
	}
	if userID != "" {
		query += ` AND user_id = ?`
		args = append(args, userID)
	}
	if awardType != "" {
		query += ` AND award_type = ?`
		args = append(args, string(awardType))
	}

	query += ` ORDER BY created_at DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var awards []*models.Award
	for rows.Next() {
		award := &models.Award{}
		err := rows.Scan(
			&award.ID, &award.SeasonID, &award.PeriodType, &award.PeriodStart,
			&award.AwardType, &award.UserID, &award.Score, &award.Metadata, &award.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		awards = append(awards, award)
	}

	return awards, rows.Err()
}
