package repositories

import (
	"database/sql"

	"github.com/alimgiray/gitcourt/internal/models"
)

type ProjectRepository struct {
	db *sql.DB
}

func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create creates a new project
func (r *ProjectRepository) Create(project *models.Project) error {
	query := `
		INSERT INTO projects (id, name, created_at, updated_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, project.ID, project.Name, project.CreatedAt, project.UpdatedAt)
	return err
}

// GetByID retrieves a project by ID, or nil if not found
func (r *ProjectRepository) GetByID(id string) (*models.Project, error) {
	query := `SELECT id, name, created_at, updated_at FROM projects WHERE id = ?`

	project := &models.Project{}
	err := r.db.QueryRow(query, id).Scan(&project.ID, &project.Name, &project.CreatedAt, &project.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return project, nil
}

// GetAll retrieves all projects
func (r *ProjectRepository) GetAll() ([]*models.Project, error) {
	query := `SELECT id, name, created_at, updated_at FROM projects ORDER BY created_at ASC`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*models.Project
	for rows.Next() {
		project := &models.Project{}
		err := rows.Scan(&project.ID, &project.Name, &project.CreatedAt, &project.UpdatedAt)
		if err != nil {
			return nil, err
		}
		projects = append(projects, project)
	}

	return projects, rows.Err()
}
