package models

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Commit represents a Git commit stored by the ingestion pipeline.
// Commits are immutable once stored.
type Commit struct {
	ID             string    `json:"id"`
	RepositoryID   string    `json:"repository_id"`
	SHA            string    `json:"sha"`
	AuthorName     string    `json:"author_name"`
	AuthorEmail    string    `json:"author_email"`
	CommitterName  string    `json:"committer_name"`
	CommitterEmail string    `json:"committer_email"`
	CommitDate     time.Time `json:"commit_date"`
	MessageTitle   string    `json:"message_title"`
	MessageBody    *string   `json:"message_body"`
	Additions      int       `json:"additions"`
	Deletions      int       `json:"deletions"`
	FilesChanged   int       `json:"files_changed"`
	IsMerge        bool      `json:"is_merge"`
	ParentCount    int       `json:"parent_count"`
	CreatedAt      time.Time `json:"created_at"`
}

// NewCommit creates a new Commit with a generated UUID.
// The SHA is normalized to lowercase and emails are lowercased on receipt.
func NewCommit(repositoryID, sha, authorName, authorEmail string, commitDate time.Time) *Commit {
	return &Commit{
		ID:           uuid.New().String(),
		RepositoryID: repositoryID,
		SHA:          NormalizeSHA(sha),
		AuthorName:   authorName,
		AuthorEmail:  strings.ToLower(authorEmail),
		CommitDate:   commitDate,
		ParentCount:  1,
		CreatedAt:    time.Now(),
	}
}

// SetCommitter sets the committer identity, lowercasing the email
func (c *Commit) SetCommitter(name, email string) {
	c.CommitterName = name
	c.CommitterEmail = strings.ToLower(email)
}

// SetStats sets the commit statistics
func (c *Commit) SetStats(additions, deletions, filesChanged int) {
	c.Additions = additions
	c.Deletions = deletions
	c.FilesChanged = filesChanged
}

// SetMerge marks this commit as a merge commit with the given parent count
func (c *Commit) SetMerge(parentCount int) {
	c.IsMerge = true
	c.ParentCount = parentCount
}

// NormalizeSHA lowercases a commit SHA
func NormalizeSHA(sha string) string {
	return strings.ToLower(strings.TrimSpace(sha))
}

// IsValidSHA reports whether sha is exactly 40 hex characters
func IsValidSHA(sha string) bool {
	if len(sha) != 40 {
		return false
	}
	for _, r := range sha {
		switch {
		case r >= '0' && r <= '9':
		case r >= 'a' && r <= 'f':
		case r >= 'A' && r <= 'F':
		default:
			return false
		}
	}
	return true
}

// Validate validates the Commit fields
func (c *Commit) Validate() error {
	if c.RepositoryID == "" {
		return errors.New("repository ID is required")
	}
	if !IsValidSHA(c.SHA) {
		return errors.New("SHA must be exactly 40 hex characters")
	}
	if c.AuthorName == "" {
		return errors.New("author name is required")
	}
	if c.AuthorEmail == "" {
		return errors.New("author email is required")
	}
	if c.CommitterName == "" {
		return errors.New("committer name is required")
	}
	if c.CommitterEmail == "" {
		return errors.New("committer email is required")
	}
	if c.CommitDate.IsZero() {
		return errors.New("commit date is required")
	}
	if c.MessageTitle == "" {
		return errors.New("message title is required")
	}
	if len(c.MessageTitle) > 500 {
		return errors.New("message title cannot exceed 500 characters")
	}
	if c.Additions < 0 {
		return errors.New("additions cannot be negative")
	}
	if c.Deletions < 0 {
		return errors.New("deletions cannot be negative")
	}
	if c.FilesChanged < 0 {
		return errors.New("files changed cannot be negative")
	}
	if c.ParentCount < 0 {
		return errors.New("parent count cannot be negative")
	}
	return nil
}
