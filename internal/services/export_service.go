package services

import (
	"bytes"
	"fmt"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/repositories"
	"github.com/xuri/excelize/v2"
)

type ExportService struct {
	statsRepo  *repositories.PlayerPeriodStatsRepository
	seasonRepo *repositories.SeasonRepository
	awardRepo  *repositories.AwardRepository
}

func NewExportService(
	statsRepo *repositories.PlayerPeriodStatsRepository,
	seasonRepo *repositories.SeasonRepository,
	awardRepo *repositories.AwardRepository,
) *ExportService {
	return &ExportService{
		statsRepo:  statsRepo,
		seasonRepo: seasonRepo,
		awardRepo:  awardRepo,
	}
}

var leaderboardHeaders = []string{
	"Rank", "Name", "Email", "Commits", "Additions", "Deletions",
	"Files Changed", "PTS", "REB", "AST", "BLK", "TOV", "Impact Score",
}

// ExportSeasonLeaderboard writes the season standings and awards of a
// season into an Excel workbook
func (s *ExportService) ExportSeasonLeaderboard(seasonID string) (*bytes.Buffer, error) {
	season, err := s.seasonRepo.GetByID(seasonID)
	if err != nil {
		return nil, err
	}
	if season == nil {
		return nil, ErrSeasonNotFound
	}

	entries, err := s.statsRepo.GetLeaderboard(
		seasonID, models.PeriodSeason, models.TruncateToDay(season.StartAt),
		"impact_score", "desc", 0, maxLeaderboardLimit,
	)
	if err != nil {
		return nil, err
	}

	awards, err := s.awardRepo.List(seasonID, "", "", 0, maxLeaderboardLimit)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Standings"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for col, header := range leaderboardHeaders {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return nil, err
		}
	}

	for i, entry := range entries {
		row := i + 2
		values := []interface{}{
			i + 1, entry.UserName, entry.UserEmail, entry.Commits,
			entry.Additions, entry.Deletions, entry.FilesChanged,
			entry.PTS, entry.REB, entry.AST, entry.BLK, entry.TOV,
			entry.ImpactScore,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return nil, err
			}
		}
	}

	if err := s.writeAwardsSheet(f, awards); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf, nil
}

func (s *ExportService) writeAwardsSheet(f *excelize.File, awards []*models.Award) error {
	sheet := "Awards"
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}

	headers := []string{"Award", "Period Type", "Period Start", "User ID", "Score"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, header); err != nil {
			return err
		}
	}

	for i, award := range awards {
		row := i + 2
		values := []interface{}{
			string(award.AwardType), string(award.PeriodType),
			award.PeriodStart.Format("2006-01-02"), award.UserID, award.Score,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	return nil
}
