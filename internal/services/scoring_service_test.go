package services

import (
	"testing"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/stretchr/testify/assert"
)

func testCommit(title string, additions, deletions, filesChanged int) *models.Commit {
	commit := models.NewCommit("repo-1", "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2", "Jane", "jane@example.com", time.Now())
	commit.SetCommitter("Jane", "jane@example.com")
	commit.SetStats(additions, deletions, filesChanged)
	commit.MessageTitle = title
	return commit
}

func TestCalculatePTS(t *testing.T) {
	coefficients := models.NewScoreCoefficients("test-project")

	t.Run("Additions under cap", func(t *testing.T) {
		commit := testCommit("add feature", 100, 0, 1)
		assert.Equal(t, 110, CalculatePTS(commit, coefficients))
	})

	t.Run("Additions over cap are truncated", func(t *testing.T) {
		commit := testCommit("huge vendored drop", 1500, 0, 1)
		assert.Equal(t, 1010, CalculatePTS(commit, coefficients))
	})

	t.Run("Zero additions still earn the base", func(t *testing.T) {
		commit := testCommit("rename only", 0, 0, 1)
		assert.Equal(t, 10, CalculatePTS(commit, coefficients))
	})

	t.Run("Fractional weight truncates to integer", func(t *testing.T) {
		custom := models.NewScoreCoefficients("test-project")
		custom.AdditionsWeight = 0.5
		commit := testCommit("add feature", 3, 0, 1)
		// 10 + 3*0.5 = 11.5 -> 11
		assert.Equal(t, 11, CalculatePTS(commit, custom))
	})
}

func TestCalculateREB(t *testing.T) {
	coefficients := models.NewScoreCoefficients("test-project")

	testCases := []struct {
		name      string
		deletions int
		expected  int
	}{
		{"No deletions", 0, 0},
		{"Deletions under cap", 100, 60},
		{"Deletions at cap", 1000, 600},
		{"Deletions over cap", 5000, 600},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			commit := testCommit("cleanup", 0, tc.deletions, 1)
			assert.Equal(t, tc.expected, CalculateREB(commit, coefficients))
		})
	}
}

func TestCalculateAST(t *testing.T) {
	coefficients := models.NewScoreCoefficients("test-project")

	t.Run("Bonus above three files", func(t *testing.T) {
		commit := testCommit("refactor", 10, 0, 4)
		assert.Equal(t, 5, CalculateAST(commit, coefficients))
	})

	t.Run("No bonus at exactly three files", func(t *testing.T) {
		commit := testCommit("refactor", 10, 0, 3)
		assert.Equal(t, 0, CalculateAST(commit, coefficients))
	})
}

func TestCalculateBLKAndTOV(t *testing.T) {
	coefficients := models.NewScoreCoefficients("test-project")

	t.Run("Fix commit with one file", func(t *testing.T) {
		commit := testCommit("fix: crash on startup", 10, 0, 1)
		assert.Equal(t, 15, CalculateBLK(commit, coefficients))
		assert.Equal(t, 0, CalculateAST(commit, coefficients))
		assert.Equal(t, 0, CalculateTOV(commit, coefficients))
	})

	t.Run("Keyword match is case-insensitive", func(t *testing.T) {
		commit := testCommit("HOTFIX for prod", 10, 0, 1)
		assert.Equal(t, 15, CalculateBLK(commit, coefficients))
	})

	t.Run("WIP commit takes the penalty", func(t *testing.T) {
		commit := testCommit("wip: half done", 10, 0, 1)
		assert.Equal(t, 0, CalculateBLK(commit, coefficients))
		assert.Equal(t, -10, CalculateTOV(commit, coefficients))
	})

	t.Run("Keyword checks are independent", func(t *testing.T) {
		commit := testCommit("fix wip leftovers", 10, 0, 1)
		assert.Equal(t, 15, CalculateBLK(commit, coefficients))
		assert.Equal(t, -10, CalculateTOV(commit, coefficients))
	})
}

func TestImpactAndPlayOfDayDiverge(t *testing.T) {
	coefficients := models.NewScoreCoefficients("test-project")

	t.Run("Same result without turnovers", func(t *testing.T) {
		commit := testCommit("add feature", 100, 50, 2)
		metrics := CalculateMetrics(commit, coefficients)
		assert.Equal(t, metrics.ImpactScore, CalculatePlayOfDayScore(commit, coefficients))
	})

	t.Run("Signed penalty versus absolute value", func(t *testing.T) {
		commit := testCommit("debug session leftovers", 100, 0, 1)

		// With the usual negative penalty both formulas subtract the
		// same amount and coincide numerically
		metrics := CalculateMetrics(commit, coefficients)
		assert.Equal(t, -10, metrics.TOV)
		assert.Equal(t, metrics.ImpactScore, CalculatePlayOfDayScore(commit, coefficients))

		// A positive turnover value exposes the divergence: impact adds
		// it, the play score still subtracts its absolute value
		positive := models.NewScoreCoefficients("test-project")
		positive.WipPenalty = 10
		metricsPos := CalculateMetrics(commit, positive)
		playPos := CalculatePlayOfDayScore(commit, positive)
		assert.Equal(t, 10, metricsPos.TOV)
		assert.NotEqual(t, metricsPos.ImpactScore, playPos)
		assert.InDelta(t, metricsPos.ImpactScore-14.0, playPos, 0.0001)
	})
}

func TestCalculateMetrics(t *testing.T) {
	coefficients := models.NewScoreCoefficients("test-project")
	commit := testCommit("fix: rewrite parser", 200, 100, 5)

	metrics := CalculateMetrics(commit, coefficients)

	assert.Equal(t, 210, metrics.PTS)
	assert.Equal(t, 60, metrics.REB)
	assert.Equal(t, 5, metrics.AST)
	assert.Equal(t, 15, metrics.BLK)
	assert.Equal(t, 0, metrics.TOV)
	assert.InDelta(t, 210*1.0+60*0.6+5*0.8+15*1.2, metrics.ImpactScore, 0.0001)
}
