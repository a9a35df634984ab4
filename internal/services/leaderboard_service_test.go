package services

import (
	"testing"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLeaderboard(t *testing.T) {
	day := time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)
	dayStart := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)

	t.Run("Orders by impact score", func(t *testing.T) {
		env := newTestEnv(t)
		env.createPlayer(t, "Alice", "alice@example.com")
		env.createPlayer(t, "Bob", "bob@example.com")

		env.ingestAndAggregate(t,
			commitInput("alice@example.com", "big feature", day, 500, 0, 1),
			commitInput("bob@example.com", "small tweak", day, 10, 0, 1),
		)

		page, err := env.leaderboardService.GetLeaderboard(LeaderboardQuery{
			SeasonID:    env.season.ID,
			PeriodType:  models.PeriodDay,
			PeriodStart: &dayStart,
		})
		require.NoError(t, err)

		require.Len(t, page.Entries, 2)
		assert.Equal(t, 2, page.Total)
		assert.Equal(t, "alice@example.com", page.Entries[0].UserEmail)
		assert.Equal(t, 1, page.Entries[0].Rank)
		assert.Equal(t, "bob@example.com", page.Entries[1].UserEmail)
		assert.Equal(t, 2, page.Entries[1].Rank)
	})

	t.Run("Ties break by commits then email", func(t *testing.T) {
		env := newTestEnv(t)
		env.createPlayer(t, "Alice", "alice@example.com")
		env.createPlayer(t, "Bob", "bob@example.com")
		env.createPlayer(t, "Carol", "carol@example.com")

		// Alice and Carol: identical totals. Bob: same impact split
		// over two commits, so commits desc puts him first.
		env.ingestAndAggregate(t,
			commitInput("alice@example.com", "work", day, 100, 0, 1),
			commitInput("carol@example.com", "work", day, 100, 0, 1),
			commitInput("bob@example.com", "work", day, 40, 0, 1),
			commitInput("bob@example.com", "more work", day, 40, 0, 1),
		)

		// Tie impact for all three: Alice/Carol 10+100=110, Bob (10+40)*2=100
		// Adjust Bob up to 110 with a third commit of zero additions
		env.ingestAndAggregate(t, commitInput("bob@example.com", "final", day, 0, 0, 1))

		page, err := env.leaderboardService.GetLeaderboard(LeaderboardQuery{
			SeasonID:    env.season.ID,
			PeriodType:  models.PeriodDay,
			PeriodStart: &dayStart,
		})
		require.NoError(t, err)
		require.Len(t, page.Entries, 3)

		// All three have impact 110; Bob has 3 commits, the others 1,
		// and Alice beats Carol on email
		assert.Equal(t, "bob@example.com", page.Entries[0].UserEmail)
		assert.Equal(t, "alice@example.com", page.Entries[1].UserEmail)
		assert.Equal(t, "carol@example.com", page.Entries[2].UserEmail)
	})

	t.Run("Retired players are excluded", func(t *testing.T) {
		env := newTestEnv(t)
		alice := env.createPlayer(t, "Alice", "alice@example.com")
		env.createPlayer(t, "Bob", "bob@example.com")

		env.ingestAndAggregate(t,
			commitInput("alice@example.com", "work", day, 100, 0, 1),
			commitInput("bob@example.com", "work", day, 10, 0, 1),
		)

		require.NoError(t, env.userRepo.UpdateStatus(alice.ID, models.UserRetired))

		page, err := env.leaderboardService.GetLeaderboard(LeaderboardQuery{
			SeasonID:    env.season.ID,
			PeriodType:  models.PeriodDay,
			PeriodStart: &dayStart,
		})
		require.NoError(t, err)

		require.Len(t, page.Entries, 1)
		assert.Equal(t, 1, page.Total)
		assert.Equal(t, "bob@example.com", page.Entries[0].UserEmail)
	})

	t.Run("Pagination", func(t *testing.T) {
		env := newTestEnv(t)
		env.createPlayer(t, "Alice", "alice@example.com")
		env.createPlayer(t, "Bob", "bob@example.com")
		env.createPlayer(t, "Carol", "carol@example.com")

		env.ingestAndAggregate(t,
			commitInput("alice@example.com", "work", day, 300, 0, 1),
			commitInput("bob@example.com", "work", day, 200, 0, 1),
			commitInput("carol@example.com", "work", day, 100, 0, 1),
		)

		page, err := env.leaderboardService.GetLeaderboard(LeaderboardQuery{
			SeasonID:    env.season.ID,
			PeriodType:  models.PeriodDay,
			PeriodStart: &dayStart,
			Page:        2,
			Limit:       2,
		})
		require.NoError(t, err)

		assert.Equal(t, 3, page.Total)
		require.Len(t, page.Entries, 1)
		assert.Equal(t, "carol@example.com", page.Entries[0].UserEmail)
		assert.Equal(t, 3, page.Entries[0].Rank)
	})

	t.Run("Invalid sort column", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.leaderboardService.GetLeaderboard(LeaderboardQuery{
			SeasonID:   env.season.ID,
			PeriodType: models.PeriodDay,
			SortBy:     "email; DROP TABLE users",
		})
		assert.Error(t, err)
	})

	t.Run("Unknown season", func(t *testing.T) {
		env := newTestEnv(t)
		_, err := env.leaderboardService.GetLeaderboard(LeaderboardQuery{
			SeasonID:   "missing",
			PeriodType: models.PeriodDay,
		})
		assert.Equal(t, ErrSeasonNotFound, err)
	})
}

func TestLeaderboardTrend(t *testing.T) {
	env := newTestEnv(t)
	env.createPlayer(t, "Alice", "alice@example.com")

	previous := time.Date(2025, 6, 17, 10, 0, 0, 0, time.UTC)
	current := time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)
	currentStart := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)

	env.ingestAndAggregate(t,
		commitInput("alice@example.com", "yesterday", previous, 100, 0, 1),
		commitInput("alice@example.com", "today", current, 300, 0, 1),
	)

	page, err := env.leaderboardService.GetLeaderboard(LeaderboardQuery{
		SeasonID:    env.season.ID,
		PeriodType:  models.PeriodDay,
		PeriodStart: &currentStart,
	})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Equal(t, models.TrendUp, page.Entries[0].Trend)

	// Yesterday has no prior row, so no trend
	previousStart := time.Date(2025, 6, 17, 0, 0, 0, 0, time.UTC)
	page, err = env.leaderboardService.GetLeaderboard(LeaderboardQuery{
		SeasonID:    env.season.ID,
		PeriodType:  models.PeriodDay,
		PeriodStart: &previousStart,
	})
	require.NoError(t, err)
	require.Len(t, page.Entries, 1)
	assert.Empty(t, page.Entries[0].Trend)
}

func TestComputeTrend(t *testing.T) {
	testCases := []struct {
		name     string
		current  float64
		previous float64
		expected models.Trend
	}{
		{"Clearly up", 120, 100, models.TrendUp},
		{"Clearly down", 80, 100, models.TrendDown},
		{"Within the band", 103, 100, models.TrendNeutral},
		{"Exactly at the upper bound", 105, 100, models.TrendNeutral},
		{"Just above the upper bound", 105.1, 100, models.TrendUp},
		{"Exactly at the lower bound", 95, 100, models.TrendNeutral},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ComputeTrend(tc.current, tc.previous))
		})
	}
}
