package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

const validSHA = "a1b2c3d4e5f6a1b2c3d4e5f6a1b2c3d4e5f6a1b2"

func TestIsValidSHA(t *testing.T) {
	testCases := []struct {
		name  string
		sha   string
		valid bool
	}{
		{"Valid lowercase SHA", validSHA, true},
		{"Valid uppercase SHA", strings.ToUpper(validSHA), true},
		{"Too short", validSHA[:39], false},
		{"Too long", validSHA + "a", false},
		{"Non-hex characters", strings.Replace(validSHA, "a", "g", 1), false},
		{"Empty", "", false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.valid, IsValidSHA(tc.sha))
		})
	}
}

func TestNormalizeSHA(t *testing.T) {
	assert.Equal(t, validSHA, NormalizeSHA(strings.ToUpper(validSHA)))
	assert.Equal(t, validSHA, NormalizeSHA("  "+validSHA+" "))
}

func TestNewCommit(t *testing.T) {
	commit := NewCommit("repo-1", strings.ToUpper(validSHA), "Jane", "Jane@Example.COM", time.Now())

	assert.Equal(t, validSHA, commit.SHA)
	assert.Equal(t, "jane@example.com", commit.AuthorEmail)
	assert.Equal(t, 1, commit.ParentCount)
	assert.False(t, commit.IsMerge)
	assert.NotEmpty(t, commit.ID)
}

func TestCommitValidate(t *testing.T) {
	newValid := func() *Commit {
		commit := NewCommit("repo-1", validSHA, "Jane", "jane@example.com", time.Now())
		commit.SetCommitter("Jane", "jane@example.com")
		commit.MessageTitle = "add feature"
		return commit
	}

	t.Run("Valid commit", func(t *testing.T) {
		assert.NoError(t, newValid().Validate())
	})

	t.Run("Invalid SHA", func(t *testing.T) {
		commit := newValid()
		commit.SHA = "abc123"
		assert.Error(t, commit.Validate())
	})

	t.Run("Missing author email", func(t *testing.T) {
		commit := newValid()
		commit.AuthorEmail = ""
		assert.Error(t, commit.Validate())
	})

	t.Run("Title over 500 characters", func(t *testing.T) {
		commit := newValid()
		commit.MessageTitle = strings.Repeat("x", 501)
		assert.Error(t, commit.Validate())
	})

	t.Run("Negative additions", func(t *testing.T) {
		commit := newValid()
		commit.Additions = -1
		assert.Error(t, commit.Validate())
	})
}
