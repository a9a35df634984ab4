package services

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/alimgiray/gitcourt/internal/models"
	"github.com/alimgiray/gitcourt/internal/repositories"
)

var fixKeywords = []string{"fix", "bug", "hotfix", "revert"}
var wipKeywords = []string{"wip", "tmp", "debug", "test"}

// CalculatePTS calculates Points for a commit: base plus capped additions
// times weight, truncated to integer.
func CalculatePTS(commit *models.Commit, coefficients *models.ScoreCoefficients) int {
	capped := commit.Additions
	if capped > coefficients.MaxAdditionsCap {
		capped = coefficients.MaxAdditionsCap
	}
	return int(float64(coefficients.CommitBase) + float64(capped)*coefficients.AdditionsWeight)
}

// CalculateREB calculates Rebounds for a commit: capped deletions times
// weight, truncated to integer.
func CalculateREB(commit *models.Commit, coefficients *models.ScoreCoefficients) int {
	capped := commit.Deletions
	if capped > coefficients.MaxDeletionsCap {
		capped = coefficients.MaxDeletionsCap
	}
	return int(float64(capped) * coefficients.DeletionsWeight)
}

// CalculateAST calculates Assists for a commit: the multi-file bonus when
// more than 3 files changed.
func CalculateAST(commit *models.Commit, coefficients *models.ScoreCoefficients) int {
	if commit.FilesChanged > 3 {
		return coefficients.MultiFileBonus
	}
	return 0
}

// CalculateBLK calculates Blocks for a commit: the fix bonus when the
// message title contains a fix keyword. Case-insensitive.
func CalculateBLK(commit *models.Commit, coefficients *models.ScoreCoefficients) int {
	title := strings.ToLower(commit.MessageTitle)
	for _, keyword := range fixKeywords {
		if strings.Contains(title, keyword) {
			return coefficients.FixBonus
		}
	}
	return 0
}

// CalculateTOV calculates Turnovers for a commit: the wip penalty
// (negative) when the message title contains a wip keyword.
// Case-insensitive; independent of the fix keyword check.
func CalculateTOV(commit *models.Commit, coefficients *models.ScoreCoefficients) int {
	title := strings.ToLower(commit.MessageTitle)
	for _, keyword := range wipKeywords {
		if strings.Contains(title, keyword) {
			return coefficients.WipPenalty
		}
	}
	return 0
}

// CalculateImpactScore calculates the composite impact score:
// PTS*1.0 + REB*0.6 + AST*0.8 + BLK*1.2 + TOV*0.7, with TOV signed.
func CalculateImpactScore(pts, reb, ast, blk, tov int) float64 {
	return float64(pts)*1.0 +
		float64(reb)*0.6 +
		float64(ast)*0.8 +
		float64(blk)*1.2 +
		float64(tov)*0.7
}

// CalculatePlayOfDayScore calculates the Play of the Day score for a
// commit: PTS*1.0 + REB*0.6 + AST*0.8 + BLK*1.2 - |TOV|*0.7. Unlike
// CalculateImpactScore this subtracts the absolute turnover value, so the
// two scores differ for any commit with nonzero TOV.
func CalculatePlayOfDayScore(commit *models.Commit, coefficients *models.ScoreCoefficients) float64 {
	pts := CalculatePTS(commit, coefficients)
	reb := CalculateREB(commit, coefficients)
	ast := CalculateAST(commit, coefficients)
	blk := CalculateBLK(commit, coefficients)
	tov := CalculateTOV(commit, coefficients)

	return float64(pts)*1.0 +
		float64(reb)*0.6 +
		float64(ast)*0.8 +
		float64(blk)*1.2 -
		math.Abs(float64(tov))*0.7
}

// CalculateMetrics calculates all five metrics and the impact score for a
// commit. Pure function of the commit and coefficients.
func CalculateMetrics(commit *models.Commit, coefficients *models.ScoreCoefficients) models.CommitMetrics {
	pts := CalculatePTS(commit, coefficients)
	reb := CalculateREB(commit, coefficients)
	ast := CalculateAST(commit, coefficients)
	blk := CalculateBLK(commit, coefficients)
	tov := CalculateTOV(commit, coefficients)

	return models.CommitMetrics{
		PTS:         pts,
		REB:         reb,
		AST:         ast,
		BLK:         blk,
		TOV:         tov,
		ImpactScore: CalculateImpactScore(pts, reb, ast, blk, tov),
	}
}

type ScoringService struct {
	coefficientsRepo *repositories.ScoreCoefficientsRepository
	projectRepo      *repositories.ProjectRepository
	commitRepo       *repositories.CommitRepository
	auditLogRepo     *repositories.AuditLogRepository
}

func NewScoringService(
	coefficientsRepo *repositories.ScoreCoefficientsRepository,
	projectRepo *repositories.ProjectRepository,
	commitRepo *repositories.CommitRepository,
	auditLogRepo *repositories.AuditLogRepository,
) *ScoringService {
	return &ScoringService{
		coefficientsRepo: coefficientsRepo,
		projectRepo:      projectRepo,
		commitRepo:       commitRepo,
		auditLogRepo:     auditLogRepo,
	}
}

// ErrProjectNotFound is returned when a project does not exist
var ErrProjectNotFound = errors.New("project not found")

// GetOrCreateCoefficients returns the project's score coefficients,
// creating them lazily with defaults on first access.
func (s *ScoringService) GetOrCreateCoefficients(projectID string) (*models.ScoreCoefficients, error) {
	project, err := s.projectRepo.GetByID(projectID)
	if err != nil {
		return nil, err
	}
	if project == nil {
		return nil, ErrProjectNotFound
	}

	coefficients, err := s.coefficientsRepo.GetByProjectID(projectID)
	if err != nil {
		return nil, err
	}
	if coefficients != nil {
		return coefficients, nil
	}

	coefficients = models.NewScoreCoefficients(projectID)
	if err := s.coefficientsRepo.Create(coefficients); err != nil {
		// Another caller may have created the row concurrently
		if repositories.IsUniqueConstraintErr(err) {
			return s.coefficientsRepo.GetByProjectID(projectID)
		}
		return nil, err
	}

	return coefficients, nil
}

// UpdateCoefficients validates and persists new coefficients for a project
// and writes an audit log entry.
func (s *ScoringService) UpdateCoefficients(coefficients *models.ScoreCoefficients) error {
	if err := coefficients.Validate(); err != nil {
		return err
	}

	existing, err := s.GetOrCreateCoefficients(coefficients.ProjectID)
	if err != nil {
		return err
	}

	coefficients.ID = existing.ID
	if err := s.coefficientsRepo.Update(coefficients); err != nil {
		return err
	}

	entry := models.NewAuditLog(
		"update_score_coefficients",
		"project_config",
		coefficients.ProjectID,
		fmt.Sprintf("Updated scoring coefficients for project %s", coefficients.ProjectID),
	)
	return s.auditLogRepo.Create(entry)
}

// CommitMetricsBreakdown is the per-commit metrics read model with a
// human-readable explanation of each metric.
type CommitMetricsBreakdown struct {
	CommitSHA    string               `json:"commit_sha"`
	AuthorEmail  string               `json:"author_email"`
	MessageTitle string               `json:"message_title"`
	Additions    int                  `json:"additions"`
	Deletions    int                  `json:"deletions"`
	FilesChanged int                  `json:"files_changed"`
	IsMerge      bool                 `json:"is_merge"`
	Metrics      models.CommitMetrics `json:"metrics"`
	Breakdown    map[string]string    `json:"breakdown"`
}

// ErrCommitNotFound is returned when a commit does not exist
var ErrCommitNotFound = errors.New("commit not found")

// GetCommitMetrics calculates the metrics for a stored commit together
// with a breakdown explanation.
func (s *ScoringService) GetCommitMetrics(sha, projectID string) (*CommitMetricsBreakdown, error) {
	commit, err := s.commitRepo.GetBySHA(models.NormalizeSHA(sha))
	if err != nil {
		return nil, err
	}
	if commit == nil {
		return nil, ErrCommitNotFound
	}

	coefficients, err := s.GetOrCreateCoefficients(projectID)
	if err != nil {
		return nil, err
	}

	metrics := CalculateMetrics(commit, coefficients)

	astReason := "No bonus"
	if commit.FilesChanged > 3 {
		astReason = "Multi-file bonus"
	}
	blkReason := "No bonus"
	if metrics.BLK > 0 {
		blkReason = "Fix commit bonus"
	}
	tovReason := "No penalty"
	if metrics.TOV < 0 {
		tovReason = "WIP commit penalty"
	}

	breakdown := map[string]string{
		"pts":          fmt.Sprintf("Base (%d) + min(%d, %d) x %g = %d", coefficients.CommitBase, commit.Additions, coefficients.MaxAdditionsCap, coefficients.AdditionsWeight, metrics.PTS),
		"reb":          fmt.Sprintf("min(%d, %d) x %g = %d", commit.Deletions, coefficients.MaxDeletionsCap, coefficients.DeletionsWeight, metrics.REB),
		"ast":          fmt.Sprintf("%s = %d", astReason, metrics.AST),
		"blk":          fmt.Sprintf("%s = %d", blkReason, metrics.BLK),
		"tov":          fmt.Sprintf("%s = %d", tovReason, metrics.TOV),
		"impact_score": fmt.Sprintf("PTS x 1.0 + REB x 0.6 + AST x 0.8 + BLK x 1.2 + TOV x 0.7 = %.2f", metrics.ImpactScore),
	}

	return &CommitMetricsBreakdown{
		CommitSHA:    commit.SHA,
		AuthorEmail:  commit.AuthorEmail,
		MessageTitle: commit.MessageTitle,
		Additions:    commit.Additions,
		Deletions:    commit.Deletions,
		FilesChanged: commit.FilesChanged,
		IsMerge:      commit.IsMerge,
		Metrics:      metrics,
		Breakdown:    breakdown,
	}, nil
}
