package repositories

import (
	"database/sql"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
)

type CommitRepository struct {
	db *sql.DB
}

func NewCommitRepository(db *sql.DB) *CommitRepository {
	return &CommitRepository{db: db}
}

const commitColumns = `id, repository_id, sha, author_name, author_email, committer_name, committer_email,
	       commit_date, message_title, message_body, additions, deletions, files_changed,
	       is_merge, parent_count, created_at`

// Create inserts a new commit. The unique index on sha is the authority
// for deduplication: a constraint violation is returned as-is so callers
// can classify it with IsUniqueConstraintErr.
func (r *CommitRepository) Create(commit *models.Commit) error {
	query := `
		INSERT INTO commits (
			id, repository_id, sha, author_name, author_email, committer_name, committer_email,
			commit_date, message_title, message_body, additions, deletions, files_changed,
			is_merge, parent_count, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.Exec(query,
		commit.ID, commit.RepositoryID, commit.SHA, commit.AuthorName, commit.AuthorEmail,
		commit.CommitterName, commit.CommitterEmail, commit.CommitDate.UTC(), commit.MessageTitle,
		commit.MessageBody, commit.Additions, commit.Deletions, commit.FilesChanged,
		commit.IsMerge, commit.ParentCount, commit.CreatedAt.UTC(),
	)

	return err
}

func (r *CommitRepository) scanCommit(row interface{ Scan(...interface{}) error }) (*models.Commit, error) {
	commit := &models.Commit{}
	err := row.Scan(
		&commit.ID, &commit.RepositoryID, &commit.SHA, &commit.AuthorName, &commit.AuthorEmail,
		&commit.CommitterName, &commit.CommitterEmail, &commit.CommitDate, &commit.MessageTitle,
		&commit.MessageBody, &commit.Additions, &commit.Deletions, &commit.FilesChanged,
		&commit.IsMerge, &commit.ParentCount, &commit.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return commit, nil
}

// GetBySHA retrieves a commit by its SHA
func (r *CommitRepository) GetBySHA(sha string) (*models.Commit, error) {
	query := `SELECT ` + commitColumns + ` FROM commits WHERE sha = ?`

	commit, err := r.scanCommit(r.db.QueryRow(query, sha))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return commit, nil
}

// CountByRepositoryID returns the number of commits stored for a repository
func (r *CommitRepository) CountByRepositoryID(repositoryID string) (int, error) {
	query := `SELECT COUNT(*) FROM commits WHERE repository_id = ?`
	var count int
	err := r.db.QueryRow(query, repositoryID).Scan(&count)
	return count, err
}

func (r *CommitRepository) queryCommits(query string, args ...interface{}) ([]*models.Commit, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var commits []*models.Commit
	for rows.Next() {
		commit, err := r.scanCommit(rows)
		if err != nil {
			return nil, err
		}
		commits = append(commits, commit)
	}

	return commits, rows.Err()
}

// GetNonMergeByProjectAndDate retrieves all non-merge commits across a
// project's repositories whose commit date falls on the given day.
func (r *CommitRepository) GetNonMergeByProjectAndDate(projectID string, date time.Time) ([]*models.Commit, error) {
	dayStart := models.TruncateToDay(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT ` + commitColumns + `
		FROM commits
		WHERE repository_id IN (SELECT id FROM repositories WHERE project_id = ?)
		  AND commit_date >= ? AND commit_date < ?
		  AND is_merge = 0
		ORDER BY commit_date ASC
	`
	return r.queryCommits(query, projectID, dayStart, dayEnd)
}

// GetByProjectAndRange retrieves all commits across a project's
// repositories within [from, to) ordered by commit date.
func (r *CommitRepository) GetByProjectAndRange(projectID string, from, to time.Time) ([]*models.Commit, error) {
	query := `
		SELECT ` + commitColumns + `
		FROM commits
		WHERE repository_id IN (SELECT id FROM repositories WHERE project_id = ?)
		  AND commit_date >= ? AND commit_date < ?
		ORDER BY commit_date ASC
	`
	return r.queryCommits(query, projectID, from.UTC(), to.UTC())
}
