package repositories

import (
	"database/sql"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
)

type PlayOfDayRepository struct {
	db *sql.DB
}

func NewPlayOfDayRepository(db *sql.DB) *PlayOfDayRepository {
	return &PlayOfDayRepository{db: db}
}

// Create inserts a new play of the day. The unique index on
// (season_id, play_date) makes selection create-once.
func (r *PlayOfDayRepository) Create(play *models.PlayOfTheDay) error {
	query := `
		INSERT INTO plays_of_day (
			id, season_id, play_date, commit_sha, user_id, score, metadata, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		play.ID, play.SeasonID, play.PlayDate.Format(dateLayout), play.CommitSHA,
		play.UserID, play.Score, play.Metadata, play.CreatedAt,
	)

	return err
}

// Exists checks whether a play has already been decided for the date
func (r *PlayOfDayRepository) Exists(seasonID string, playDate time.Time) (bool, error) {
	query := `SELECT COUNT(*) FROM plays_of_day WHERE season_id = ? AND play_date = ?`
	var count int
	err := r.db.QueryRow(query, seasonID, playDate.Format(dateLayout)).Scan(&count)
	return count > 0, err
}

// List retrieves plays of the day, newest date first
func (r *PlayOfDayRepository) List(seasonID string, offset, limit int) ([]*models.PlayOfTheDay, error) {
	query := `
		SELECT id, season_id, play_date, commit_sha, user_id, score, metadata, created_at
		FROM plays_of_day WHERE 1=1
	`
	var args []interface{}

	if seasonID != "" {
		query += ` AND season_id = ?`
		args = append(args, seasonID)
	}

	query += ` ORDER BY play_date DESC LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plays []*models.PlayOfTheDay
	for rows.Next() {
		play := &models.PlayOfTheDay{}
		err := rows.Scan(
			&play.ID, &play.SeasonID, &play.PlayDate, &play.CommitSHA,
			&play.UserID, &play.Score, &play.Metadata, &play.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		plays = append(plays, play)
	}

	return plays, rows.Err()
}
