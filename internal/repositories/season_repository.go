package repositories

import (
	"database/sql"

	"github.com/alimgiray/gitcourt/internal/models"
)

type SeasonRepository struct {
	db *sql.DB
}

func NewSeasonRepository(db *sql.DB) *SeasonRepository {
	return &SeasonRepository{db: db}
}

const seasonColumns = `id, project_id, name, start_at, end_at, status, created_at, updated_at`

// Create creates a new season
func (r *SeasonRepository) Create(season *models.Season) error {
	query := `
		INSERT INTO seasons (id, project_id, name, start_at, end_at, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		season.ID, season.ProjectID, season.Name, season.StartAt.UTC(), season.EndAt.UTC(),
		string(season.Status), season.CreatedAt, season.UpdatedAt,
	)

	return err
}

func scanSeason(row interface{ Scan(...interface{}) error }) (*models.Season, error) {
	season := &models.Season{}
	err := row.Scan(
		&season.ID, &season.ProjectID, &season.Name, &season.StartAt, &season.EndAt,
		&season.Status, &season.CreatedAt, &season.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return season, nil
}

// GetByID retrieves a season by ID, or nil if not found
func (r *SeasonRepository) GetByID(id string) (*models.Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons WHERE id = ?`

	season, err := scanSeason(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return season, nil
}

func (r *SeasonRepository) querySeasons(query string, args ...interface{}) ([]*models.Season, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var seasons []*models.Season
	for rows.Next() {
		season, err := scanSeason(rows)
		if err != nil {
			return nil, err
		}
		seasons = append(seasons, season)
	}

	return seasons, rows.Err()
}

// GetAllActive retrieves all active seasons across projects
func (r *SeasonRepository) GetAllActive() ([]*models.Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons WHERE status = 'active' ORDER BY start_at ASC`
	return r.querySeasons(query)
}

// GetActiveByProjectID retrieves the active season for a project, or nil
func (r *SeasonRepository) GetActiveByProjectID(projectID string) (*models.Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons WHERE project_id = ? AND status = 'active'`

	season, err := scanSeason(r.db.QueryRow(query, projectID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return season, nil
}

// GetByProjectID retrieves all seasons for a project ordered by start date
func (r *SeasonRepository) GetByProjectID(projectID string) ([]*models.Season, error) {
	query := `SELECT ` + seasonColumns + ` FROM seasons WHERE project_id = ? ORDER BY start_at ASC`
	return r.querySeasons(query, projectID)
}

// UpdateStatus updates the lifecycle status of a season
func (r *SeasonRepository) UpdateStatus(id string, status models.SeasonStatus) error {
	query := `UPDATE seasons SET status = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`
	_, err := r.db.Exec(query, string(status), id)
	return err
}
