package repositories

import (
	"database/sql"

	"github.com/alimgiray/gitcourt/internal/models"
)

type ScoreCoefficientsRepository struct {
	db *sql.DB
}

func NewScoreCoefficientsRepository(db *sql.DB) *ScoreCoefficientsRepository {
	return &ScoreCoefficientsRepository{db: db}
}

// Create creates score coefficients for a project
func (r *ScoreCoefficientsRepository) Create(coefficients *models.ScoreCoefficients) error {
	query := `
		INSERT INTO project_configs (
			id, project_id, additions_weight, deletions_weight, commit_base,
			multi_file_bonus, fix_bonus, wip_penalty, max_additions_cap, max_deletions_cap,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		coefficients.ID, coefficients.ProjectID, coefficients.AdditionsWeight, coefficients.DeletionsWeight,
		coefficients.CommitBase, coefficients.MultiFileBonus, coefficients.FixBonus, coefficients.WipPenalty,
		coefficients.MaxAdditionsCap, coefficients.MaxDeletionsCap, coefficients.CreatedAt, coefficients.UpdatedAt,
	)

	return err
}

// GetByProjectID retrieves score coefficients for a project, or nil if none exist
func (r *ScoreCoefficientsRepository) GetByProjectID(projectID string) (*models.ScoreCoefficients, error) {
	query := `
		SELECT id, project_id, additions_weight, deletions_weight, commit_base,
		       multi_file_bonus, fix_bonus, wip_penalty, max_additions_cap, max_deletions_cap,
		       created_at, updated_at
		FROM project_configs WHERE project_id = ?
	`

	coefficients := &models.ScoreCoefficients{}
	err := r.db.QueryRow(query, projectID).Scan(
		&coefficients.ID, &coefficients.ProjectID, &coefficients.AdditionsWeight, &coefficients.DeletionsWeight,
		&coefficients.CommitBase, &coefficients.MultiFileBonus, &coefficients.FixBonus, &coefficients.WipPenalty,
		&coefficients.MaxAdditionsCap, &coefficients.MaxDeletionsCap, &coefficients.CreatedAt, &coefficients.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return coefficients, nil
}

// Update updates score coefficients for a project
func (r *ScoreCoefficientsRepository) Update(coefficients *models.ScoreCoefficients) error {
	query := `
		UPDATE project_configs SET
			additions_weight = ?, deletions_weight = ?, commit_base = ?,
			multi_file_bonus = ?, fix_bonus = ?, wip_penalty = ?,
			max_additions_cap = ?, max_deletions_cap = ?, updated_at = CURRENT_TIMESTAMP
		WHERE project_id = ?
	`

	_, err := r.db.Exec(query,
		coefficients.AdditionsWeight, coefficients.DeletionsWeight, coefficients.CommitBase,
		coefficients.MultiFileBonus, coefficients.FixBonus, coefficients.WipPenalty,
		coefficients.MaxAdditionsCap, coefficients.MaxDeletionsCap, coefficients.ProjectID,
	)

	return err
}
