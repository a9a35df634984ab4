package services

import (
	"database/sql"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/repositories"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// testEnv wires all repositories and services against an in-memory
// database seeded with one project, one repository and one active season
type testEnv struct {
	db *sql.DB

	userRepo     *repositories.UserRepository
	identityRepo *repositories.GitIdentityRepository
	commitRepo   *repositories.CommitRepository
	repoRepo     *repositories.RepositoryRepository
	statsRepo    *repositories.PlayerPeriodStatsRepository
	seasonRepo   *repositories.SeasonRepository
	absenceRepo  *repositories.AbsenceRepository
	awardRepo    *repositories.AwardRepository
	playRepo     *repositories.PlayOfDayRepository
	auditLogRepo *repositories.AuditLogRepository

	scoringService     *ScoringService
	ingestionService   *IngestionService
	aggregationService *AggregationService
	leaderboardService *LeaderboardService
	awardService       *AwardService

	project *models.Project
	repo    *models.Repository
	season  *models.Season
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })

	schema, err := os.ReadFile("../../migrations/001_initial.sql")
	require.NoError(t, err)
	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	env := &testEnv{
		db:           db,
		userRepo:     repositories.NewUserRepository(db),
		identityRepo: repositories.NewGitIdentityRepository(db),
		commitRepo:   repositories.NewCommitRepository(db),
		repoRepo:     repositories.NewRepositoryRepository(db),
		statsRepo:    repositories.NewPlayerPeriodStatsRepository(db),
		seasonRepo:   repositories.NewSeasonRepository(db),
		absenceRepo:  repositories.NewAbsenceRepository(db),
		awardRepo:    repositories.NewAwardRepository(db),
		playRepo:     repositories.NewPlayOfDayRepository(db),
		auditLogRepo: repositories.NewAuditLogRepository(db),
	}

	projectRepo := repositories.NewProjectRepository(db)
	coefficientsRepo := repositories.NewScoreCoefficientsRepository(db)

	env.scoringService = NewScoringService(coefficientsRepo, projectRepo, env.commitRepo, env.auditLogRepo)
	env.ingestionService = NewIngestionService(env.commitRepo, env.repoRepo, env.auditLogRepo)
	env.aggregationService = NewAggregationService(env.commitRepo, env.statsRepo, env.identityRepo, env.seasonRepo, env.scoringService)
	env.leaderboardService = NewLeaderboardService(env.statsRepo, env.seasonRepo)
	env.awardService = NewAwardService(env.statsRepo, env.awardRepo, env.playRepo, env.absenceRepo, env.commitRepo, env.identityRepo, env.seasonRepo, env.scoringService)

	env.project = models.NewProject("Test Project")
	require.NoError(t, projectRepo.Create(env.project))

	env.repo = models.NewRepository(env.project.ID, "acme", "widgets")
	require.NoError(t, env.repoRepo.Create(env.repo))

	env.season = models.NewSeason(env.project.ID, "Season 1",
		time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, env.seasonRepo.Create(env.season))
	require.NoError(t, env.seasonRepo.UpdateStatus(env.season.ID, models.SeasonActive))
	env.season.Status = models.SeasonActive

	return env
}

// createPlayer creates a user with a mapped git identity
func (env *testEnv) createPlayer(t *testing.T, name, email string) *models.User {
	t.Helper()
	user := models.NewUser(name, email)
	require.NoError(t, env.userRepo.Create(user))
	identity := models.NewGitIdentity(user.ID, email)
	require.NoError(t, env.identityRepo.Create(identity))
	return user
}

var shaCounter int

// nextSHA generates a unique valid commit SHA
func nextSHA() string {
	shaCounter++
	return fmt.Sprintf("%040x", shaCounter)
}

// commitInput builds a valid ingestion record
func commitInput(email, title string, date time.Time, additions, deletions, filesChanged int) CommitInput {
	return CommitInput{
		SHA:            nextSHA(),
		AuthorName:     "Author",
		AuthorEmail:    email,
		CommitterName:  "Author",
		CommitterEmail: email,
		CommitDate:     date,
		MessageTitle:   title,
		Additions:      additions,
		Deletions:      deletions,
		FilesChanged:   filesChanged,
	}
}

// ingestAndAggregate pushes commits through ingestion and rolls the
// inserted ones into the period stats
func (env *testEnv) ingestAndAggregate(t *testing.T, inputs ...CommitInput) *IngestResult {
	t.Helper()
	result, err := env.ingestionService.IngestBatch(env.repo.ID, inputs)
	require.NoError(t, err)

	var inserted []*models.Commit
	for _, detail := range result.Details {
		if !detail.Inserted {
			continue
		}
		commit, err := env.commitRepo.GetBySHA(detail.SHA)
		require.NoError(t, err)
		require.NotNil(t, commit)
		inserted = append(inserted, commit)
	}
	if len(inserted) > 0 {
		_, err = env.aggregationService.AggregateCommits(env.project.ID, inserted)
		require.NoError(t, err)
	}
	return result
}
