package services

import (
	"testing"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAggregateCommits(t *testing.T) {
	day := time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)

	t.Run("Commit lands in all four buckets", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.createPlayer(t, "Jane", "jane@example.com")

		env.ingestAndAggregate(t, commitInput("jane@example.com", "add feature", day, 100, 10, 2))

		expectations := map[models.PeriodType]time.Time{
			models.PeriodDay:    time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC),
			models.PeriodWeek:   time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC),
			models.PeriodMonth:  time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			models.PeriodSeason: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		}

		for periodType, periodStart := range expectations {
			stats, err := env.statsRepo.GetByKey(user.ID, env.season.ID, periodType, periodStart)
			require.NoError(t, err)
			require.NotNil(t, stats, "expected stats for %s", periodType)
			assert.Equal(t, 1, stats.Commits)
			assert.Equal(t, 100, stats.Additions)
			assert.Equal(t, 110, stats.PTS)
		}
	})

	t.Run("Buckets accumulate across commits", func(t *testing.T) {
		env := newTestEnv(t)
		user := env.createPlayer(t, "Jane", "jane@example.com")

		env.ingestAndAggregate(t,
			commitInput("jane@example.com", "first", day, 100, 0, 1),
			commitInput("jane@example.com", "second", day.Add(2*time.Hour), 50, 20, 1),
		)

		stats, err := env.statsRepo.GetByKey(user.ID, env.season.ID, models.PeriodDay, time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		require.NotNil(t, stats)
		assert.Equal(t, 2, stats.Commits)
		assert.Equal(t, 150, stats.Additions)
		assert.Equal(t, 20, stats.Deletions)
		// PTS: (10+100) + (10+50)
		assert.Equal(t, 170, stats.PTS)
	})

	t.Run("Unmapped author contributes nothing", func(t *testing.T) {
		env := newTestEnv(t)

		counted, err := env.aggregationService.AggregateCommits(env.project.ID, []*models.Commit{
			storedCommit(t, env, "ghost@example.com", "drive-by", day),
		})
		require.NoError(t, err)
		assert.Equal(t, 0, counted)

		users, err := env.statsRepo.GetDistinctUserIDs(env.season.ID)
		require.NoError(t, err)
		assert.Empty(t, users)
	})

	t.Run("Commit outside the season is skipped", func(t *testing.T) {
		env := newTestEnv(t)
		env.createPlayer(t, "Jane", "jane@example.com")

		outside := time.Date(2024, 12, 25, 10, 0, 0, 0, time.UTC)
		counted, err := env.aggregationService.AggregateCommits(env.project.ID, []*models.Commit{
			storedCommit(t, env, "jane@example.com", "too early", outside),
		})
		require.NoError(t, err)
		assert.Equal(t, 0, counted)
	})

	t.Run("No active season", func(t *testing.T) {
		env := newTestEnv(t)
		require.NoError(t, env.seasonRepo.UpdateStatus(env.season.ID, models.SeasonClosed))

		_, err := env.aggregationService.AggregateCommits(env.project.ID, nil)
		assert.Equal(t, ErrNoActiveSeason, err)
	})
}

func TestReaggregateSeason(t *testing.T) {
	env := newTestEnv(t)
	user := env.createPlayer(t, "Jane", "jane@example.com")
	day := time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)

	env.ingestAndAggregate(t, commitInput("jane@example.com", "add feature", day, 100, 0, 1))

	// Change coefficients, then replay the season
	coefficients, err := env.scoringService.GetOrCreateCoefficients(env.project.ID)
	require.NoError(t, err)
	coefficients.CommitBase = 100
	require.NoError(t, env.scoringService.UpdateCoefficients(coefficients))

	// Existing rows still carry the old base until the replay runs
	stats, err := env.statsRepo.GetByKey(user.ID, env.season.ID, models.PeriodDay, time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, 110, stats.PTS)

	counted, err := env.aggregationService.ReaggregateSeason(env.project.ID, env.season.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, counted)

	stats, err = env.statsRepo.GetByKey(user.ID, env.season.ID, models.PeriodDay, time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.NotNil(t, stats)
	assert.Equal(t, 1, stats.Commits)
	assert.Equal(t, 200, stats.PTS)
}

// storedCommit inserts a commit directly through the repository
func storedCommit(t *testing.T, env *testEnv, email, title string, date time.Time) *models.Commit {
	t.Helper()
	commit := models.NewCommit(env.repo.ID, nextSHA(), "Author", email, date)
	commit.SetCommitter("Author", email)
	commit.MessageTitle = title
	require.NoError(t, env.commitRepo.Create(commit))
	return commit
}
