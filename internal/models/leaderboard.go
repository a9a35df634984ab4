package models

import "time"

// Trend indicates period-over-period movement of a player's impact score
type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// LeaderboardSortColumns lists the columns a leaderboard may be sorted by
var LeaderboardSortColumns = []string{
	"impact_score", "pts", "reb", "ast", "blk", "tov",
	"commits", "additions", "deletions", "files_changed",
}

// IsValidLeaderboardSort checks whether column is a sortable leaderboard column
func IsValidLeaderboardSort(column string) bool {
	for _, c := range LeaderboardSortColumns {
		if c == column {
			return true
		}
	}
	return false
}

// LeaderboardEntry is one ranked row of a leaderboard page
type LeaderboardEntry struct {
	Rank         int        `json:"rank"`
	UserID       string     `json:"user_id"`
	UserName     string     `json:"user_name"`
	UserEmail    string     `json:"user_email"`
	PeriodType   PeriodType `json:"period_type"`
	PeriodStart  time.Time  `json:"period_start"`
	Commits      int        `json:"commits"`
	Additions    int        `json:"additions"`
	Deletions    int        `json:"deletions"`
	FilesChanged int        `json:"files_changed"`
	PTS          int        `json:"pts"`
	REB          int        `json:"reb"`
	AST          int        `json:"ast"`
	BLK          int        `json:"blk"`
	TOV          int        `json:"tov"`
	ImpactScore  float64    `json:"impact_score"`
	Trend        Trend      `json:"trend,omitempty"`
}

// PlayerTotals holds summed stats for one player across period rows
type PlayerTotals struct {
	UserID       string  `json:"user_id"`
	UserEmail    string  `json:"user_email"`
	Commits      int     `json:"commits"`
	Additions    int     `json:"additions"`
	Deletions    int     `json:"deletions"`
	FilesChanged int     `json:"files_changed"`
	PTS          int     `json:"pts"`
	REB          int     `json:"reb"`
	AST          int     `json:"ast"`
	BLK          int     `json:"blk"`
	TOV          int     `json:"tov"`
	ImpactScore  float64 `json:"impact_score"`
}
