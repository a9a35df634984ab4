package repositories

import (
	"database/sql"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
)

type AbsenceRepository struct {
	db *sql.DB
}

func NewAbsenceRepository(db *sql.DB) *AbsenceRepository {
	return &AbsenceRepository{db: db}
}

// Create creates a new absence
func (r *AbsenceRepository) Create(absence *models.Absence) error {
	query := `
		INSERT INTO absences (id, user_id, season_id, start_date, end_date, reason, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		absence.ID, absence.UserID, absence.SeasonID,
		absence.StartDate.Format(dateLayout), absence.EndDate.Format(dateLayout),
		absence.Reason, absence.CreatedAt,
	)

	return err
}

// IsUserAbsentOn checks whether the user has a declared absence covering
// the given date
func (r *AbsenceRepository) IsUserAbsentOn(userID string, date time.Time) (bool, error) {
	query := `
		SELECT COUNT(*) FROM absences
		WHERE user_id = ? AND start_date <= ? AND end_date >= ?
	`
	day := models.TruncateToDay(date).Format(dateLayout)
	var count int
	err := r.db.QueryRow(query, userID, day, day).Scan(&count)
	return count > 0, err
}

// GetByUserAndSeason retrieves all absences for a user in a season
func (r *AbsenceRepository) GetByUserAndSeason(userID, seasonID string) ([]*models.Absence, error) {
	query := `
		SELECT id, user_id, season_id, start_date, end_date, reason, created_at
		FROM absences WHERE user_id = ? AND season_id = ?
		ORDER BY start_date ASC
	`

	rows, err := r.db.Query(query, userID, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var absences []*models.Absence
	for rows.Next() {
		absence := &models.Absence{}
		err := rows.Scan(
			&absence.ID, &absence.UserID, &absence.SeasonID,
			&absence.StartDate, &absence.EndDate, &absence.Reason, &absence.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		absences = append(absences, absence)
	}

	return absences, rows.Err()
}
