package repositories

import (
	"database/sql"
	"strings"

	"github.com/alimgiray/gitcourt/internal/models"
)

type GitIdentityRepository struct {
	db *sql.DB
}

func NewGitIdentityRepository(db *sql.DB) *GitIdentityRepository {
	return &GitIdentityRepository{db: db}
}

// Create creates a new git identity mapping
func (r *GitIdentityRepository) Create(identity *models.GitIdentity) error {
	query := `
		INSERT INTO git_identities (id, user_id, git_email, created_at)
		VALUES (?, ?, ?, ?)
	`

	_, err := r.db.Exec(query, identity.ID, identity.UserID, identity.GitEmail, identity.CreatedAt)
	return err
}

// GetUserIDByEmail resolves a git author email to a user ID. Returns an
// empty string when the email has no mapping.
func (r *GitIdentityRepository) GetUserIDByEmail(gitEmail string) (string, error) {
	query := `SELECT user_id FROM git_identities WHERE git_email = ?`

	var userID string
	err := r.db.QueryRow(query, strings.ToLower(gitEmail)).Scan(&userID)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return userID, nil
}

// GetByUserID retrieves all git identities mapped to a user
func (r *GitIdentityRepository) GetByUserID(userID string) ([]*models.GitIdentity, error) {
	query := `
		SELECT id, user_id, git_email, created_at
		FROM git_identities WHERE user_id = ?
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var identities []*models.GitIdentity
	for rows.Next() {
		identity := &models.GitIdentity{}
		err := rows.Scan(&identity.ID, &identity.UserID, &identity.GitEmail, &identity.CreatedAt)
		if err != nil {
			return nil, err
		}
		identities = append(identities, identity)
	}

	return identities, rows.Err()
}
