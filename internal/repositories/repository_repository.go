package repositories

import (
	"database/sql"

	"github.com/alimgiray/gitcourt/internal/models"
)

type RepositoryRepository struct {
	db *sql.DB
}

func NewRepositoryRepository(db *sql.DB) *RepositoryRepository {
	return &RepositoryRepository{db: db}
}

const repositoryColumns = `id, project_id, name, owner, branch, status, error_message,
	       last_sync_at, last_ingested_sha, created_at, updated_at`

// Create creates a new repository
func (r *RepositoryRepository) Create(repo *models.Repository) error {
	query := `
		INSERT INTO repositories (
			id, project_id, name, owner, branch, status, error_message,
			last_sync_at, last_ingested_sha, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		repo.ID, repo.ProjectID, repo.Name, repo.Owner, repo.Branch, string(repo.Status),
		repo.ErrorMessage, repo.LastSyncAt, repo.LastIngestedSHA, repo.CreatedAt, repo.UpdatedAt,
	)

	return err
}

func scanRepository(row interface{ Scan(...interface{}) error }) (*models.Repository, error) {
	repo := &models.Repository{}
	err := row.Scan(
		&repo.ID, &repo.ProjectID, &repo.Name, &repo.Owner, &repo.Branch, &repo.Status,
		&repo.ErrorMessage, &repo.LastSyncAt, &repo.LastIngestedSHA, &repo.CreatedAt, &repo.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// GetByID retrieves a repository by ID, or nil if not found
func (r *RepositoryRepository) GetByID(id string) (*models.Repository, error) {
	query := `SELECT ` + repositoryColumns + ` FROM repositories WHERE id = ?`

	repo, err := scanRepository(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return repo, nil
}

// GetByProjectID retrieves all repositories for a project
func (r *RepositoryRepository) GetByProjectID(projectID string) ([]*models.Repository, error) {
	query := `SELECT ` + repositoryColumns + ` FROM repositories WHERE project_id = ? ORDER BY created_at ASC`

	rows, err := r.db.Query(query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var repos []*models.Repository
	for rows.Next() {
		repo, err := scanRepository(rows)
		if err != nil {
			return nil, err
		}
		repos = append(repos, repo)
	}

	return repos, rows.Err()
}

// Update updates a repository's sync metadata and status
func (r *RepositoryRepository) Update(repo *models.Repository) error {
	query := `
		UPDATE repositories SET
			name = ?, owner = ?, branch = ?, status = ?, error_message = ?,
			last_sync_at = ?, last_ingested_sha = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		repo.Name, repo.Owner, repo.Branch, string(repo.Status), repo.ErrorMessage,
		repo.LastSyncAt, repo.LastIngestedSHA, repo.UpdatedAt, repo.ID,
	)

	return err
}
