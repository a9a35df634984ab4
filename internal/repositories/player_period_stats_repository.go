package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/alimgiray/gitcourt/internal/models"
)

type PlayerPeriodStatsRepository struct {
	db *sql.DB
}

func NewPlayerPeriodStatsRepository(db *sql.DB) *PlayerPeriodStatsRepository {
	return &PlayerPeriodStatsRepository{db: db}
}

// UpsertAdd inserts a period stats row or, when the
// (user, season, period_type, period_start) bucket already exists,
// increments its counters by the given row's values.
func (r *PlayerPeriodStatsRepository) UpsertAdd(stats *models.PlayerPeriodStats) error {
	query := `
		INSERT INTO player_period_stats (
			id, user_id, season_id, period_type, period_start,
			commits, additions, deletions, files_changed,
			pts, reb, ast, blk, tov, impact_score,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, season_id, period_type, period_start)
		DO UPDATE SET
			commits = commits + excluded.commits,
			additions = additions + excluded.additions,
			deletions = deletions + excluded.deletions,
			files_changed = files_changed + excluded.files_changed,
			pts = pts + excluded.pts,
			reb = reb + excluded.reb,
			ast = ast + excluded.ast,
			blk = blk + excluded.blk,
			tov = tov + excluded.tov,
			impact_score = impact_score + excluded.impact_score,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := r.db.Exec(query,
		stats.ID, stats.UserID, stats.SeasonID, string(stats.PeriodType), stats.PeriodStart.Format(dateLayout),
		stats.Commits, stats.Additions, stats.Deletions, stats.FilesChanged,
		stats.PTS, stats.REB, stats.AST, stats.BLK, stats.TOV, stats.ImpactScore,
		stats.CreatedAt, stats.UpdatedAt,
	)

	return err
}

const periodStatsColumns = `id, user_id, season_id, period_type, period_start,
	       commits, additions, deletions, files_changed,
	       pts, reb, ast, blk, tov, impact_score, created_at, updated_at`

func scanPeriodStats(row interface{ Scan(...interface{}) error }) (*models.PlayerPeriodStats, error) {
	stats := &models.PlayerPeriodStats{}
	err := row.Scan(
		&stats.ID, &stats.UserID, &stats.SeasonID, &stats.PeriodType, &stats.PeriodStart,
		&stats.Commits, &stats.Additions, &stats.Deletions, &stats.FilesChanged,
		&stats.PTS, &stats.REB, &stats.AST, &stats.BLK, &stats.TOV, &stats.ImpactScore,
		&stats.CreatedAt, &stats.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// GetByKey retrieves the stats row for one period bucket, or nil if absent
func (r *PlayerPeriodStatsRepository) GetByKey(userID, seasonID string, periodType models.PeriodType, periodStart time.Time) (*models.PlayerPeriodStats, error) {
	query := `
		SELECT ` + periodStatsColumns + `
		FROM player_period_stats
		WHERE user_id = ? AND season_id = ? AND period_type = ? AND period_start = ?
	`

	stats, err := scanPeriodStats(r.db.QueryRow(query, userID, seasonID, string(periodType), periodStart.Format(dateLayout)))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// DeleteBySeasonID deletes all period stats rows for a season. Used by the
// re-aggregation pass to rebuild from raw commits.
func (r *PlayerPeriodStatsRepository) DeleteBySeasonID(seasonID string) error {
	query := `DELETE FROM player_period_stats WHERE season_id = ?`
	_, err := r.db.Exec(query, seasonID)
	return err
}

// CountForPeriod returns the number of non-retired players with a stats row
// in the given period bucket.
func (r *PlayerPeriodStatsRepository) CountForPeriod(seasonID string, periodType models.PeriodType, periodStart time.Time) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM player_period_stats ps
		JOIN users u ON u.id = ps.user_id
		WHERE ps.season_id = ? AND ps.period_type = ? AND ps.period_start = ?
		  AND u.status != 'retired'
	`
	var count int
	err := r.db.QueryRow(query, seasonID, string(periodType), periodStart.Format(dateLayout)).Scan(&count)
	return count, err
}

// GetLeaderboard returns one ranked page of non-retired players for a
// period bucket. The primary sort column is validated by the caller; ties
// are always broken by commits descending then user email ascending, so
// the ordering is total.
func (r *PlayerPeriodStatsRepository) GetLeaderboard(
	seasonID string,
	periodType models.PeriodType,
	periodStart time.Time,
	sortBy, order string,
	offset, limit int,
) ([]*models.LeaderboardEntry, error) {
	if !models.IsValidLeaderboardSort(sortBy) {
		return nil, fmt.Errorf("invalid sort column: %s", sortBy)
	}
	direction := "DESC"
	if order == "asc" {
		direction = "ASC"
	}

	query := fmt.Sprintf(`
		SELECT ps.user_id, u.name, u.email, ps.period_type, ps.period_start,
		       ps.commits, ps.additions, ps.deletions, ps.files_changed,
		       ps.pts, ps.reb, ps.ast, ps.blk, ps.tov, ps.impact_score
		FROM player_period_stats ps
		JOIN users u ON u.id = ps.user_id
		WHERE ps.season_id = ? AND ps.period_type = ? AND ps.period_start = ?
		  AND u.status != 'retired'
		ORDER BY ps.%s %s, ps.commits DESC, u.email ASC
		LIMIT ? OFFSET ?
	`, sortBy, direction)

	rows, err := r.db.Query(query, seasonID, string(periodType), periodStart.Format(dateLayout), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*models.LeaderboardEntry
	for rows.Next() {
		entry := &models.LeaderboardEntry{}
		err := rows.Scan(
			&entry.UserID, &entry.UserName, &entry.UserEmail, &entry.PeriodType, &entry.PeriodStart,
			&entry.Commits, &entry.Additions, &entry.Deletions, &entry.FilesChanged,
			&entry.PTS, &entry.REB, &entry.AST, &entry.BLK, &entry.TOV, &entry.ImpactScore,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

// GetTopForPeriod returns the single best player-period row for a bucket
// by impact score, with the standard tie-break. Unlike the leaderboard
// query, no retired filter applies: awards stand regardless of a player's
// current status. Returns nil if the bucket is empty.
func (r *PlayerPeriodStatsRepository) GetTopForPeriod(seasonID string, periodType models.PeriodType, periodStart time.Time) (*models.LeaderboardEntry, error) {
	query := `
		SELECT ps.user_id, u.name, u.email, ps.period_type, ps.period_start,
		       ps.commits, ps.additions, ps.deletions, ps.files_changed,
		       ps.pts, ps.reb, ps.ast, ps.blk, ps.tov, ps.impact_score
		FROM player_period_stats ps
		JOIN users u ON u.id = ps.user_id
		WHERE ps.season_id = ? AND ps.period_type = ? AND ps.period_start = ?
		ORDER BY ps.impact_score DESC, ps.commits DESC, u.email ASC
		LIMIT 1
	`

	entry := &models.LeaderboardEntry{}
	err := r.db.QueryRow(query, seasonID, string(periodType), periodStart.Format(dateLayout)).Scan(
		&entry.UserID, &entry.UserName, &entry.UserEmail, &entry.PeriodType, &entry.PeriodStart,
		&entry.Commits, &entry.Additions, &entry.Deletions, &entry.FilesChanged,
		&entry.PTS, &entry.REB, &entry.AST, &entry.BLK, &entry.TOV, &entry.ImpactScore,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return entry, nil
}

// GetSeasonTotals sums every period row for a season grouped by user,
// ordered by impact score with the standard tie-break. A commit lands in
// four buckets, so each total counts it four times.
func (r *PlayerPeriodStatsRepository) GetSeasonTotals(seasonID string) ([]*models.PlayerTotals, error) {
	query := `
		SELECT ps.user_id, u.email,
		       SUM(ps.commits), SUM(ps.additions), SUM(ps.deletions), SUM(ps.files_changed),
		       SUM(ps.pts), SUM(ps.reb), SUM(ps.ast), SUM(ps.blk), SUM(ps.tov), SUM(ps.impact_score)
		FROM player_period_stats ps
		JOIN users u ON u.id = ps.user_id
		WHERE ps.season_id = ?
		GROUP BY ps.user_id, u.email
		ORDER BY SUM(ps.impact_score) DESC, SUM(ps.commits) DESC, u.email ASC
	`

	rows, err := r.db.Query(query, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []*models.PlayerTotals
	for rows.Next() {
		t := &models.PlayerTotals{}
		err := rows.Scan(
			&t.UserID, &t.UserEmail,
			&t.Commits, &t.Additions, &t.Deletions, &t.FilesChanged,
			&t.PTS, &t.REB, &t.AST, &t.BLK, &t.TOV, &t.ImpactScore,
		)
		if err != nil {
			return nil, err
		}
		totals = append(totals, t)
	}

	return totals, rows.Err()
}

// GetUserTotals sums all period rows of one period type for a single user
// in a season. Returns nil when the user has no rows.
func (r *PlayerPeriodStatsRepository) GetUserTotals(userID, seasonID string, periodType models.PeriodType) (*models.PlayerTotals, error) {
	query := `
		SELECT ps.user_id, u.email,
		       SUM(ps.commits), SUM(ps.additions), SUM(ps.deletions), SUM(ps.files_changed),
		       SUM(ps.pts), SUM(ps.reb), SUM(ps.ast), SUM(ps.blk), SUM(ps.tov), SUM(ps.impact_score)
		FROM player_period_stats ps
		JOIN users u ON u.id = ps.user_id
		WHERE ps.user_id = ? AND ps.season_id = ? AND ps.period_type = ?
		GROUP BY ps.user_id, u.email
	`

	t := &models.PlayerTotals{}
	err := r.db.QueryRow(query, userID, seasonID, string(periodType)).Scan(
		&t.UserID, &t.UserEmail,
		&t.Commits, &t.Additions, &t.Deletions, &t.FilesChanged,
		&t.PTS, &t.REB, &t.AST, &t.BLK, &t.TOV, &t.ImpactScore,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// GetUserCareerTotals sums a user's season-bucket rows across all
// seasons. Returns nil when the user has no rows anywhere.
func (r *PlayerPeriodStatsRepository) GetUserCareerTotals(userID string) (*models.PlayerTotals, int, error) {
	query := `
		SELECT ps.user_id, u.email, COUNT(DISTINCT ps.season_id),
		       SUM(ps.commits), SUM(ps.additions), SUM(ps.deletions), SUM(ps.files_changed),
		       SUM(ps.pts), SUM(ps.reb), SUM(ps.ast), SUM(ps.blk), SUM(ps.tov), SUM(ps.impact_score)
		FROM player_period_stats ps
		JOIN users u ON u.id = ps.user_id
		WHERE ps.user_id = ? AND ps.period_type = ?
		GROUP BY ps.user_id, u.email
	`

	t := &models.PlayerTotals{}
	var seasons int
	err := r.db.QueryRow(query, userID, string(models.PeriodSeason)).Scan(
		&t.UserID, &t.UserEmail, &seasons,
		&t.Commits, &t.Additions, &t.Deletions, &t.FilesChanged,
		&t.PTS, &t.REB, &t.AST, &t.BLK, &t.TOV, &t.ImpactScore,
	)
	if err == sql.ErrNoRows {
		return nil, 0, nil
	}
	if err != nil {
		return nil, 0, err
	}
	return t, seasons, nil
}

// GetActivePeriods returns a user's period rows of one type with at least
// one commit, optionally bounded to [from, to) when both are non-zero.
func (r *PlayerPeriodStatsRepository) GetActivePeriods(userID, seasonID string, periodType models.PeriodType, from, to time.Time) ([]*models.PlayerPeriodStats, error) {
	query := `
		SELECT ` + periodStatsColumns + `
		FROM player_period_stats
		WHERE user_id = ? AND season_id = ? AND period_type = ? AND commits > 0
	`
	args := []interface{}{userID, seasonID, string(periodType)}

	if !from.IsZero() && !to.IsZero() {
		query += ` AND period_start >= ? AND period_start < ?`
		args = append(args, from.Format(dateLayout), to.Format(dateLayout))
	}
	query += ` ORDER BY period_start ASC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []*models.PlayerPeriodStats
	for rows.Next() {
		stats, err := scanPeriodStats(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, stats)
	}

	return result, rows.Err()
}

// GetDistinctUserIDs returns the IDs of all users with stats in a season
func (r *PlayerPeriodStatsRepository) GetDistinctUserIDs(seasonID string) ([]string, error) {
	query := `SELECT DISTINCT user_id FROM player_period_stats WHERE season_id = ?`

	rows, err := r.db.Query(query, seasonID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var userIDs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		userIDs = append(userIDs, id)
	}

	return userIDs, rows.Err()
}

// HasStatsInEarlierSeason checks whether a user has any stats row in a
// season of the same project that started before the given date. Used for
// rookie determination.
func (r *PlayerPeriodStatsRepository) HasStatsInEarlierSeason(userID, projectID string, beforeStart time.Time) (bool, error) {
	query := `
		SELECT COUNT(*)
		FROM player_period_stats ps
		JOIN seasons s ON s.id = ps.season_id
		WHERE ps.user_id = ? AND s.project_id = ? AND s.start_at < ?
	`
	var count int
	err := r.db.QueryRow(query, userID, projectID, beforeStart.UTC()).Scan(&count)
	return count > 0, err
}
