package services

import (
	"testing"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectPlayerOfPeriod(t *testing.T) {
	day := time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)
	weekStart := time.Date(2025, 6, 16, 0, 0, 0, 0, time.UTC)

	t.Run("Highest impact wins the week", func(t *testing.T) {
		env := newTestEnv(t)
		alice := env.createPlayer(t, "Alice", "alice@example.com")
		env.createPlayer(t, "Bob", "bob@example.com")

		env.ingestAndAggregate(t,
			commitInput("alice@example.com", "big feature", day, 500, 0, 1),
			commitInput("bob@example.com", "small tweak", day, 10, 0, 1),
		)

		award, err := env.awardService.SelectPlayerOfPeriod(env.season, models.PeriodWeek, weekStart)
		require.NoError(t, err)
		require.NotNil(t, award)
		assert.Equal(t, alice.ID, award.UserID)
		assert.Equal(t, models.AwardPlayerOfWeek, award.AwardType)
		assert.InDelta(t, 510.0, award.Score, 0.0001)
	})

	t.Run("Selection is create-once", func(t *testing.T) {
		env := newTestEnv(t)
		env.createPlayer(t, "Alice", "alice@example.com")
		env.ingestAndAggregate(t, commitInput("alice@example.com", "work", day, 100, 0, 1))

		first, err := env.awardService.SelectPlayerOfPeriod(env.season, models.PeriodWeek, weekStart)
		require.NoError(t, err)
		require.NotNil(t, first)

		second, err := env.awardService.SelectPlayerOfPeriod(env.season, models.PeriodWeek, weekStart)
		require.NoError(t, err)
		assert.Nil(t, second)

		awards, err := env.awardRepo.List(env.season.ID, "", "", 0, 10)
		require.NoError(t, err)
		assert.Len(t, awards, 1)
	})

	t.Run("Absent candidate skips the week", func(t *testing.T) {
		env := newTestEnv(t)
		alice := env.createPlayer(t, "Alice", "alice@example.com")
		env.ingestAndAggregate(t, commitInput("alice@example.com", "work", day, 100, 0, 1))

		absence := models.NewAbsence(alice.ID, env.season.ID, weekStart, weekStart.AddDate(0, 0, 6))
		require.NoError(t, env.absenceRepo.Create(absence))

		award, err := env.awardService.SelectPlayerOfPeriod(env.season, models.PeriodWeek, weekStart)
		require.NoError(t, err)
		assert.Nil(t, award)
	})

	t.Run("Empty period produces no award", func(t *testing.T) {
		env := newTestEnv(t)
		award, err := env.awardService.SelectPlayerOfPeriod(env.season, models.PeriodWeek, weekStart)
		require.NoError(t, err)
		assert.Nil(t, award)
	})

	t.Run("Retired winner keeps the award", func(t *testing.T) {
		env := newTestEnv(t)
		alice := env.createPlayer(t, "Alice", "alice@example.com")
		env.createPlayer(t, "Bob", "bob@example.com")

		env.ingestAndAggregate(t,
			commitInput("alice@example.com", "big feature", day, 500, 0, 1),
			commitInput("bob@example.com", "small tweak", day, 10, 0, 1),
		)
		require.NoError(t, env.userRepo.UpdateStatus(alice.ID, models.UserRetired))

		award, err := env.awardService.SelectPlayerOfPeriod(env.season, models.PeriodWeek, weekStart)
		require.NoError(t, err)
		require.NotNil(t, award)
		assert.Equal(t, alice.ID, award.UserID)
	})
}

func TestRunForSeasonFirstPartialWeek(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "Alice", "alice@example.com")

	// The season starts Wednesday 2025-01-01, so its first commits key to
	// the Monday before, 2024-12-30
	env.ingestAndAggregate(t,
		commitInput("alice@example.com", "opening work", time.Date(2025, 1, 2, 9, 0, 0, 0, time.UTC), 100, 0, 1),
	)

	nextMonday := time.Date(2025, 1, 6, 12, 0, 0, 0, time.UTC)
	require.NoError(t, env.awardService.RunForSeason(env.season, nextMonday))

	awards, err := env.awardRepo.List(env.season.ID, "", models.AwardPlayerOfWeek, 0, 10)
	require.NoError(t, err)
	require.Len(t, awards, 1)
	assert.Equal(t, alice.ID, awards[0].UserID)
	assert.Equal(t, "2024-12-30", awards[0].PeriodStart.Format("2006-01-02"))
}

func TestSelectMVP(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createPlayer(t, "Alice", "alice@example.com")
	env.createPlayer(t, "Bob", "bob@example.com")

	env.ingestAndAggregate(t,
		commitInput("alice@example.com", "january", time.Date(2025, 1, 10, 9, 0, 0, 0, time.UTC), 300, 0, 1),
		commitInput("alice@example.com", "june", time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC), 300, 0, 1),
		commitInput("bob@example.com", "lone commit", time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC), 100, 0, 1),
	)

	award, err := env.awardService.SelectMVP(env.season)
	require.NoError(t, err)
	require.NotNil(t, award)
	assert.Equal(t, alice.ID, award.UserID)
	assert.Equal(t, models.AwardMVP, award.AwardType)
	assert.Equal(t, models.PeriodSeason, award.PeriodType)
	// Summed over all period rows: each commit counts in its day, week,
	// month and season buckets, so 2 commits of impact 310 store 2480
	assert.InDelta(t, 2480.0, award.Score, 0.0001)

	// MVP is not re-awarded
	again, err := env.awardService.SelectMVP(env.season)
	require.NoError(t, err)
	assert.Nil(t, again)
}

func TestRookieDetermination(t *testing.T) {
	env := newTestEnv(t)
	veteran := env.createPlayer(t, "Vera", "vera@example.com")
	rookie := env.createPlayer(t, "Rory", "rory@example.com")

	// An earlier season with stats for the veteran only
	earlier := models.NewSeason(env.project.ID, "Season 0",
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
	require.NoError(t, env.seasonRepo.Create(earlier))

	oldStats := models.NewPlayerPeriodStats(veteran.ID, earlier.ID, models.PeriodSeason, earlier.StartAt)
	oldStats.Commits = 5
	require.NoError(t, env.statsRepo.UpsertAdd(oldStats))

	isRookie, err := env.awardService.IsRookie(veteran.ID, env.season)
	require.NoError(t, err)
	assert.False(t, isRookie)

	isRookie, err = env.awardService.IsRookie(rookie.ID, env.season)
	require.NoError(t, err)
	assert.True(t, isRookie)
}

func TestSelectRookieOfYear(t *testing.T) {
	// Mondays of four consecutive weeks in the 2025 season
	weeks := []time.Time{
		time.Date(2025, 6, 2, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 9, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 16, 10, 0, 0, 0, time.UTC),
		time.Date(2025, 6, 23, 10, 0, 0, 0, time.UTC),
	}

	t.Run("Three active weeks are not enough", func(t *testing.T) {
		env := newTestEnv(t)
		env.createPlayer(t, "Rory", "rory@example.com")

		for _, week := range weeks[:3] {
			env.ingestAndAggregate(t, commitInput("rory@example.com", "weekly work", week, 500, 0, 1))
		}

		award, err := env.awardService.SelectRookieOfYear(env.season)
		require.NoError(t, err)
		assert.Nil(t, award)
	})

	t.Run("Four active weeks qualify", func(t *testing.T) {
		env := newTestEnv(t)
		rory := env.createPlayer(t, "Rory", "rory@example.com")

		for _, week := range weeks {
			env.ingestAndAggregate(t, commitInput("rory@example.com", "weekly work", week, 100, 0, 1))
		}

		award, err := env.awardService.SelectRookieOfYear(env.season)
		require.NoError(t, err)
		require.NotNil(t, award)
		assert.Equal(t, rory.ID, award.UserID)
		assert.Equal(t, models.AwardRookieOfYear, award.AwardType)
		// Average impact per active week: 110 each week
		assert.InDelta(t, 110.0, award.Score, 0.0001)
	})

	t.Run("Veterans are not considered", func(t *testing.T) {
		env := newTestEnv(t)
		veteran := env.createPlayer(t, "Vera", "vera@example.com")

		earlier := models.NewSeason(env.project.ID, "Season 0",
			time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))
		require.NoError(t, env.seasonRepo.Create(earlier))
		oldStats := models.NewPlayerPeriodStats(veteran.ID, earlier.ID, models.PeriodSeason, earlier.StartAt)
		oldStats.Commits = 1
		require.NoError(t, env.statsRepo.UpsertAdd(oldStats))

		for _, week := range weeks {
			env.ingestAndAggregate(t, commitInput("vera@example.com", "weekly work", week, 500, 0, 1))
		}

		award, err := env.awardService.SelectRookieOfYear(env.season)
		require.NoError(t, err)
		assert.Nil(t, award)
	})
}

func TestSelectRookieOfMonth(t *testing.T) {
	monthStart := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("Best average per active day wins", func(t *testing.T) {
		env := newTestEnv(t)
		rory := env.createPlayer(t, "Rory", "rory@example.com")
		env.createPlayer(t, "Sam", "sam@example.com")

		// Rory: one active day at 510. Sam: two active days averaging 110.
		env.ingestAndAggregate(t,
			commitInput("rory@example.com", "burst", time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC), 500, 0, 1),
			commitInput("sam@example.com", "steady", time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC), 100, 0, 1),
			commitInput("sam@example.com", "steady", time.Date(2025, 6, 5, 9, 0, 0, 0, time.UTC), 100, 0, 1),
		)

		award, err := env.awardService.SelectRookieOfMonth(env.season, monthStart)
		require.NoError(t, err)
		require.NotNil(t, award)
		assert.Equal(t, rory.ID, award.UserID)
		assert.Equal(t, models.AwardRookieOfMonth, award.AwardType)
		assert.InDelta(t, 510.0, award.Score, 0.0001)
	})

	t.Run("Absent winner skips the month", func(t *testing.T) {
		env := newTestEnv(t)
		rory := env.createPlayer(t, "Rory", "rory@example.com")
		env.ingestAndAggregate(t, commitInput("rory@example.com", "work", time.Date(2025, 6, 3, 9, 0, 0, 0, time.UTC), 100, 0, 1))

		// Covers June 16th, the month's reference date
		absence := models.NewAbsence(rory.ID, env.season.ID,
			time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			time.Date(2025, 6, 20, 0, 0, 0, 0, time.UTC))
		require.NoError(t, env.absenceRepo.Create(absence))

		award, err := env.awardService.SelectRookieOfMonth(env.season, monthStart)
		require.NoError(t, err)
		assert.Nil(t, award)
	})
}

func TestSelectPlayOfDay(t *testing.T) {
	day := time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)

	t.Run("Highest play score wins", func(t *testing.T) {
		env := newTestEnv(t)
		env.createPlayer(t, "Alice", "alice@example.com")
		bob := env.createPlayer(t, "Bob", "bob@example.com")

		env.ingestAndAggregate(t,
			commitInput("alice@example.com", "feature", day, 200, 0, 1),
			commitInput("bob@example.com", "bigger feature", day, 300, 0, 1),
		)

		play, err := env.awardService.SelectPlayOfDay(env.season, day)
		require.NoError(t, err)
		require.NotNil(t, play)
		assert.Equal(t, bob.ID, play.UserID)
		assert.InDelta(t, 310.0, play.Score, 0.0001)

		// The day is decided once
		again, err := env.awardService.SelectPlayOfDay(env.season, day)
		require.NoError(t, err)
		assert.Nil(t, again)
	})

	t.Run("Play score subtracts the turnover penalty", func(t *testing.T) {
		env := newTestEnv(t)
		env.createPlayer(t, "Alice", "alice@example.com")

		env.ingestAndAggregate(t, commitInput("alice@example.com", "debug rig", day, 100, 0, 1))

		play, err := env.awardService.SelectPlayOfDay(env.season, day)
		require.NoError(t, err)
		require.NotNil(t, play)
		// PTS 110 minus |−10|*0.7
		assert.InDelta(t, 103.0, play.Score, 0.0001)
	})

	t.Run("Merge commits are ignored", func(t *testing.T) {
		env := newTestEnv(t)
		alice := env.createPlayer(t, "Alice", "alice@example.com")

		merge := commitInput("alice@example.com", "merge branch", day, 10000, 0, 1)
		merge.IsMerge = true
		merge.ParentCount = 2

		env.ingestAndAggregate(t,
			merge,
			commitInput("alice@example.com", "real work", day, 50, 0, 1),
		)

		play, err := env.awardService.SelectPlayOfDay(env.season, day)
		require.NoError(t, err)
		require.NotNil(t, play)
		assert.Equal(t, alice.ID, play.UserID)
		assert.InDelta(t, 60.0, play.Score, 0.0001)
	})

	t.Run("Unmapped winner skips the day", func(t *testing.T) {
		env := newTestEnv(t)
		env.createPlayer(t, "Alice", "alice@example.com")

		env.ingestAndAggregate(t,
			commitInput("alice@example.com", "feature", day, 100, 0, 1),
			commitInput("ghost@example.com", "anonymous masterpiece", day, 900, 0, 1),
		)

		play, err := env.awardService.SelectPlayOfDay(env.season, day)
		require.NoError(t, err)
		assert.Nil(t, play)
	})

	t.Run("No commits on the day", func(t *testing.T) {
		env := newTestEnv(t)
		play, err := env.awardService.SelectPlayOfDay(env.season, day)
		require.NoError(t, err)
		assert.Nil(t, play)
	})
}

func TestRunForAllActiveSeasons(t *testing.T) {
	env := newTestEnv(t)
	env.createPlayer(t, "Alice", "alice@example.com")

	day := time.Date(2025, 6, 18, 10, 0, 0, 0, time.UTC)
	env.ingestAndAggregate(t, commitInput("alice@example.com", "work", day, 100, 0, 1))

	err := env.awardService.RunForAllActiveSeasons(time.Date(2025, 6, 25, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	// The completed week (June 16) has an award
	awards, err := env.awardRepo.List(env.season.ID, "", models.AwardPlayerOfWeek, 0, 10)
	require.NoError(t, err)
	assert.Len(t, awards, 1)
}
