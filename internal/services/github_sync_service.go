package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/repositories"
	"github.com/alimgiray/gitcourt/pkg/logger"
	"github.com/google/go-github/v57/github"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

const (
	// maxSyncAttempts bounds retries against the GitHub API
	maxSyncAttempts = 3
	syncPageSize    = 100
)

type GitHubSyncService struct {
	repoRepo           *repositories.RepositoryRepository
	ingestionService   *IngestionService
	aggregationService *AggregationService
	token              string
}

func NewGitHubSyncService(
	repoRepo *repositories.RepositoryRepository,
	ingestionService *IngestionService,
	aggregationService *AggregationService,
	token string,
) *GitHubSyncService {
	return &GitHubSyncService{
		repoRepo:           repoRepo,
		ingestionService:   ingestionService,
		aggregationService: aggregationService,
		token:              token,
	}
}

// createGitHubClient creates a GitHub client with the configured token
func (s *GitHubSyncService) createGitHubClient(ctx context.Context) *github.Client {
	if s.token == "" {
		return github.NewClient(nil)
	}
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: s.token},
	)
	tc := oauth2.NewClient(ctx, ts)
	return github.NewClient(tc)
}

// SyncRepository pulls commits from the GitHub API and ingests them.
// Remote calls are retried with exponential backoff up to a fixed
// attempt count; after the last failure the repository is left in an
// error state with the message stored.
func (s *GitHubSyncService) SyncRepository(ctx context.Context, repositoryID string) error {
	repo, err := s.repoRepo.GetByID(repositoryID)
	if err != nil {
		return err
	}
	if repo == nil {
		return ErrRepositoryNotFound
	}

	commits, err := s.fetchCommitsWithRetry(ctx, repo)
	if err != nil {
		repo.MarkError(err.Error())
		if updateErr := s.repoRepo.Update(repo); updateErr != nil {
			return updateErr
		}
		return err
	}
	if len(commits) == 0 {
		return nil
	}

	inserted, err := s.ingestFetched(ctx, repo, commits)
	if err != nil {
		return err
	}

	if len(inserted) > 0 {
		if _, err := s.aggregationService.AggregateCommits(repo.ProjectID, inserted); err != nil && err != ErrNoActiveSeason {
			return err
		}
	}

	logger.WithFields(logrus.Fields{
		"repository_id": repositoryID,
		"fetched":       len(commits),
		"inserted":      len(inserted),
	}).Info("Repository synced from GitHub")

	return nil
}

// fetchCommitsWithRetry lists and hydrates commits, retrying transient
// API failures with exponential backoff
func (s *GitHubSyncService) fetchCommitsWithRetry(ctx context.Context, repo *models.Repository) ([]CommitInput, error) {
	var lastErr error
	for attempt := 1; attempt <= maxSyncAttempts; attempt++ {
		commits, err := s.fetchCommits(ctx, repo)
		if err == nil {
			return commits, nil
		}
		lastErr = err

		logger.WithFields(logrus.Fields{
			"repository_id": repo.ID,
			"attempt":       attempt,
		}).WithError(err).Warn("GitHub fetch failed")

		if attempt < maxSyncAttempts {
			backoff := time.Duration(1<<uint(attempt)) * time.Second
			select {
			case <-time.After(backoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, fmt.Errorf("github fetch failed after %d attempts: %w", maxSyncAttempts, lastErr)
}

// fetchCommits pages through the branch history since the last sync and
// hydrates each commit with its stats
func (s *GitHubSyncService) fetchCommits(ctx context.Context, repo *models.Repository) ([]CommitInput, error) {
	client := s.createGitHubClient(ctx)

	opt := &github.CommitsListOptions{
		SHA:         repo.Branch,
		ListOptions: github.ListOptions{PerPage: syncPageSize},
	}
	if repo.LastSyncAt != nil {
		opt.Since = *repo.LastSyncAt
	}

	var listed []*github.RepositoryCommit
	for {
		page, resp, err := client.Repositories.ListCommits(ctx, repo.Owner, repo.Name, opt)
		if err != nil {
			return nil, fmt.Errorf("failed to list commits: %w", err)
		}
		listed = append(listed, page...)
		if resp.NextPage == 0 {
			break
		}
		opt.Page = resp.NextPage
	}

	// Oldest first so last_ingested_sha ends on the branch tip
	var inputs []CommitInput
	for i := len(listed) - 1; i >= 0; i-- {
		detail, _, err := client.Repositories.GetCommit(ctx, repo.Owner, repo.Name, listed[i].GetSHA(), nil)
		if err != nil {
			return nil, fmt.Errorf("failed to get commit %s: %w", listed[i].GetSHA(), err)
		}
		inputs = append(inputs, commitInputFromAPI(detail))
	}

	return inputs, nil
}

// commitInputFromAPI converts a GitHub API commit to an ingestion record
func commitInputFromAPI(rc *github.RepositoryCommit) CommitInput {
	commit := rc.GetCommit()

	title := commit.GetMessage()
	var body *string
	if idx := strings.Index(title, "\n"); idx >= 0 {
		rest := strings.TrimSpace(title[idx+1:])
		if rest != "" {
			body = &rest
		}
		title = title[:idx]
	}
	if len(title) > 500 {
		title = title[:500]
	}

	input := CommitInput{
		SHA:            rc.GetSHA(),
		AuthorName:     commit.GetAuthor().GetName(),
		AuthorEmail:    commit.GetAuthor().GetEmail(),
		CommitterName:  commit.GetCommitter().GetName(),
		CommitterEmail: commit.GetCommitter().GetEmail(),
		CommitDate:     commit.GetAuthor().GetDate().Time,
		MessageTitle:   title,
		MessageBody:    body,
		ParentCount:    len(rc.Parents),
		IsMerge:        len(rc.Parents) > 1,
	}
	if stats := rc.GetStats(); stats != nil {
		input.Additions = stats.GetAdditions()
		input.Deletions = stats.GetDeletions()
	}
	input.FilesChanged = len(rc.Files)

	return input
}

// ingestFetched feeds fetched commits through the ingestion pipeline in
// batches and returns the commits that were actually inserted
func (s *GitHubSyncService) ingestFetched(ctx context.Context, repo *models.Repository, inputs []CommitInput) ([]*models.Commit, error) {
	var inserted []*models.Commit

	for start := 0; start < len(inputs); start += MaxBatchSize {
		if err := ctx.Err(); err != nil {
			return inserted, err
		}
		end := start + MaxBatchSize
		if end > len(inputs) {
			end = len(inputs)
		}

		result, err := s.ingestionService.IngestBatch(repo.ID, inputs[start:end])
		if err != nil {
			return inserted, err
		}

		for _, detail := range result.Details {
			if !detail.Inserted {
				continue
			}
			commit, err := s.ingestionService.commitRepo.GetBySHA(detail.SHA)
			if err != nil {
				return inserted, err
			}
			if commit != nil {
				inserted = append(inserted, commit)
			}
		}
	}

	return inserted, nil
}
