package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/repositories"
	"github.com/alimgiray/gitcourt/pkg/logger"
	"github.com/sirupsen/logrus"
)

// MaxBatchSize is the largest number of commit records accepted per batch
const MaxBatchSize = 1000

// ErrRepositoryNotFound is returned when a repository does not exist
var ErrRepositoryNotFound = errors.New("repository not found")

// CommitInput is one commit record in an ingestion batch
type CommitInput struct {
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
}

// CommitInsertResult is the per-record outcome of an ingestion batch
type CommitInsertResult struct {
	SHA      string `json:"sha"`
	Inserted bool   `json:"inserted"`
	Error    string `json:"error,omitempty"`
}

// IngestResult summarizes an ingestion batch
type IngestResult struct {
	Total           int                  `json:"total"`
	Inserted        int                  `json:"inserted"`
	Skipped         int                  `json:"skipped"`
	Errors          int                  `json:"errors"`
	LastIngestedSHA *string              `json:"last_ingested_sha"`
	Details         []CommitInsertResult `json:"details"`
}

type IngestionService struct {
	commitRepo   *repositories.CommitRepository
	repoRepo     *repositories.RepositoryRepository
	auditLogRepo *repositories.AuditLogRepository
}

func NewIngestionService(
	commitRepo *repositories.CommitRepository,
	repoRepo *repositories.RepositoryRepository,
	auditLogRepo *repositories.AuditLogRepository,
) *IngestionService {
	return &IngestionService{
		commitRepo:   commitRepo,
		repoRepo:     repoRepo,
		auditLogRepo: auditLogRepo,
	}
}

// IngestBatch ingests a batch of commit records for one repository.
//
// Record-level validation failures are reported in the result details and
// do not abort the batch. A duplicate SHA within the batch rejects the
// whole batch. A commit whose SHA already exists in storage is counted
// as skipped; the unique index on sha is the authority under concurrent
// batches, so an insert conflict is also a skip, never an error.
// Replaying the same batch yields the same end state with every record
// skipped.
func (s *IngestionService) IngestBatch(repositoryID string, inputs []CommitInput) (*IngestResult, error) {
	repo, err := s.repoRepo.GetByID(repositoryID)
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, ErrRepositoryNotFound
	}

	if len(inputs) == 0 {
		return nil, errors.New("batch must contain at least one commit")
	}
	if len(inputs) > MaxBatchSize {
		return nil, fmt.Errorf("batch cannot exceed %d commits", MaxBatchSize)
	}

	// Duplicate SHAs within the batch reject the whole batch
	seen := make(map[string]bool, len(inputs))
	for _, input := range inputs {
		sha := models.NormalizeSHA(input.SHA)
		if seen[sha] {
			return nil, fmt.Errorf("duplicate SHA in batch: %s", sha)
		}
		seen[sha] = true
	}

	repo.MarkSyncing()
	if err := s.repoRepo.Update(repo); err != nil {
		return nil, err
	}

	result := &IngestResult{Total: len(inputs)}

	for _, input := range inputs {
		detail := s.ingestOne(repositoryID, input)
		result.Details = append(result.Details, detail)

		switch {
		case detail.Inserted:
			result.Inserted++
			sha := detail.SHA
			result.LastIngestedSHA = &sha
		case detail.Error == "":
			result.Skipped++
		default:
			result.Errors++
		}
	}

	repo.RecordSync(result.LastIngestedSHA)
	if result.Errors > 0 {
		repo.MarkError(fmt.Sprintf("failed to ingest %d commits", result.Errors))
	} else {
		repo.MarkHealthy()
	}
	if err := s.repoRepo.Update(repo); err != nil {
		return nil, err
	}

	entry := models.NewAuditLog(
		"ingest_commits",
		"repository",
		repositoryID,
		fmt.Sprintf("Ingested %d commits: %d inserted, %d skipped, %d errors",
			result.Total, result.Inserted, result.Skipped, result.Errors),
	)
	if err := s.auditLogRepo.Create(entry); err != nil {
		return nil, err
	}

	logger.WithFields(logrus.Fields{
		"repository_id": repositoryID,
		"total":         result.Total,
		"inserted":      result.Inserted,
		"skipped":       result.Skipped,
		"errors":        result.Errors,
	}).Info("Ingestion batch processed")

	return result, nil
}

// ingestOne validates and inserts a single commit record
func (s *IngestionService) ingestOne(repositoryID string, input CommitInput) CommitInsertResult {
	sha := models.NormalizeSHA(input.SHA)

	commit := models.NewCommit(repositoryID, sha, input.AuthorName, input.AuthorEmail, input.CommitDate)
	commit.SetCommitter(input.CommitterName, input.CommitterEmail)
	commit.SetStats(input.Additions, input.Deletions, input.FilesChanged)
	commit.MessageTitle = input.MessageTitle
	commit.MessageBody = input.MessageBody
	if input.IsMerge {
		commit.SetMerge(input.ParentCount)
	} else {
		commit.ParentCount = input.ParentCount
	}

	if err := commit.Validate(); err != nil {
		return CommitInsertResult{SHA: sha, Error: err.Error()}
	}

	if err := s.commitRepo.Create(commit); err != nil {
		if repositories.IsUniqueConstraintErr(err) {
			// Already stored, possibly by a concurrent batch
			return CommitInsertResult{SHA: sha}
		}
		return CommitInsertResult{SHA: sha, Error: err.Error()}
	}

	return CommitInsertResult{SHA: sha, Inserted: true}
}

// SyncStatus is the sync read model for a repository
type SyncStatus struct {
	RepositoryID    string            `json:"repository_id"`
	Status          models.RepoStatus `json:"status"`
	LastSyncAt      *time.Time        `json:"last_sync_at"`
	LastIngestedSHA *string           `json:"last_ingested_sha"`
	TotalCommits    int               `json:"total_commits"`
	ErrorMessage    *string           `json:"error_message"`
}

// GetSyncStatus returns the sync status for a repository
func (s *IngestionService) GetSyncStatus(repositoryID string) (*SyncStatus, error) {
	repo, err := s.repoRepo.GetByID(repositoryID)
	if err != nil {
		return nil, err
	}
	if repo == nil {
		return nil, ErrRepositoryNotFound
	}

	total, err := s.commitRepo.CountByRepositoryID(repositoryID)
	if err != nil {
		return nil, err
	}

	return &SyncStatus{
		RepositoryID:    repo.ID,
		Status:          repo.Status,
		LastSyncAt:      repo.LastSyncAt,
		LastIngestedSHA: repo.LastIngestedSHA,
		TotalCommits:    total,
		ErrorMessage:    repo.ErrorMessage,
	}, nil
}
