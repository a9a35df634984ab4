package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alimgiray/gitcourt/internal/handlers"
	"github.com/alimgiray/gitcourt/internal/middleware"
	"github.com/alimgiray/gitcourt/internal/repositories"
	"github.com/alimgiray/gitcourt/internal/services"
	"github.com/alimgiray/gitcourt/internal/workers"
	"github.com/alimgiray/gitcourt/pkg/config"
	"github.com/alimgiray/gitcourt/pkg/database"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	if err := config.Load(); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.AppConfig

	gin.SetMode(cfg.Server.Mode)

	// Initialize database
	if err := database.Init(cfg.Database.Path); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer database.Close()

	if err := database.RunSQLScripts(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(database.DB)
	identityRepo := repositories.NewGitIdentityRepository(database.DB)
	projectRepo := repositories.NewProjectRepository(database.DB)
	repoRepo := repositories.NewRepositoryRepository(database.DB)
	commitRepo := repositories.NewCommitRepository(database.DB)
	coefficientsRepo := repositories.NewScoreCoefficientsRepository(database.DB)
	statsRepo := repositories.NewPlayerPeriodStatsRepository(database.DB)
	seasonRepo := repositories.NewSeasonRepository(database.DB)
	absenceRepo := repositories.NewAbsenceRepository(database.DB)
	awardRepo := repositories.NewAwardRepository(database.DB)
	playRepo := repositories.NewPlayOfDayRepository(database.DB)
	jobRepo := repositories.NewJobRepository(database.DB)
	auditLogRepo := repositories.NewAuditLogRepository(database.DB)

	// Services
	scoringService := services.NewScoringService(coefficientsRepo, projectRepo, commitRepo, auditLogRepo)
	ingestionService := services.NewIngestionService(commitRepo, repoRepo, auditLogRepo)
	aggregationService := services.NewAggregationService(commitRepo, statsRepo, identityRepo, seasonRepo, scoringService)
	leaderboardService := services.NewLeaderboardService(statsRepo, seasonRepo)
	awardService := services.NewAwardService(statsRepo, awardRepo, playRepo, absenceRepo, commitRepo, identityRepo, seasonRepo, scoringService)
	seasonService := services.NewSeasonService(seasonRepo, projectRepo)
	userService := services.NewUserService(userRepo, identityRepo, absenceRepo, statsRepo, seasonRepo)
	projectService := services.NewProjectService(projectRepo, repoRepo)
	jobService := services.NewJobService(jobRepo)
	syncService := services.NewGitHubSyncService(repoRepo, ingestionService, aggregationService, cfg.GitHub.Token)
	exportService := services.NewExportService(statsRepo, seasonRepo, awardRepo)
	schedulerService := services.NewSchedulerService(projectRepo, repoRepo, jobService)

	// Workers
	workerManager := workers.NewWorkerManager(jobService, syncService, aggregationService, awardService, seasonRepo)
	if err := workerManager.StartAll(cfg); err != nil {
		log.Fatalf("Failed to start workers: %v", err)
	}
	defer workerManager.StopAll()

	schedulerService.StartScheduler()
	defer schedulerService.Stop()

	// Router
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())

	setupRoutes(router,
		ingestionService, aggregationService, projectService, commitRepo,
		scoringService, leaderboardService, awardService, userService,
		seasonService, jobService, exportService,
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on :%s", cfg.Server.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	log.Println("Server stopped")
}

func setupRoutes(
	router *gin.Engine,
	ingestionService *services.IngestionService,
	aggregationService *services.AggregationService,
	projectService *services.ProjectService,
	commitRepo *repositories.CommitRepository,
	scoringService *services.ScoringService,
	leaderboardService *services.LeaderboardService,
	awardService *services.AwardService,
	userService *services.UserService,
	seasonService *services.SeasonService,
	jobService *services.JobService,
	exportService *services.ExportService,
) {
	ingestionHandler := handlers.NewIngestionHandler(ingestionService, aggregationService, projectService, commitRepo)
	scoringHandler := handlers.NewScoringHandler(scoringService)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardService)
	awardHandler := handlers.NewAwardHandler(awardService)
	playerHandler := handlers.NewPlayerHandler(userService)
	projectHandler := handlers.NewProjectHandler(projectService, seasonService, jobService)
	exportHandler := handlers.NewExportHandler(exportService)

	api := router.Group("/api")
	{
		api.POST("/projects", projectHandler.CreateProject)
		api.GET("/projects", projectHandler.GetProjects)
		api.POST("/projects/:id/repositories", projectHandler.AddRepository)
		api.GET("/projects/:id/repositories", projectHandler.GetRepositories)
		api.POST("/projects/:id/repositories/:repo_id/sync", projectHandler.TriggerSync)
		api.POST("/projects/:id/repositories/:repo_id/sync/commits", ingestionHandler.IngestCommits)
		api.GET("/projects/:id/repositories/:repo_id/sync/status", ingestionHandler.GetSyncStatus)
		api.GET("/projects/:id/config", scoringHandler.GetCoefficients)
		api.PUT("/projects/:id/config", scoringHandler.UpdateCoefficients)
		api.GET("/projects/:id/commits/:sha/metrics", scoringHandler.GetCommitMetrics)
		api.POST("/projects/:id/seasons", projectHandler.CreateSeason)
		api.GET("/projects/:id/seasons", projectHandler.GetSeasons)
		api.POST("/projects/:id/seasons/:season_id/activate", projectHandler.ActivateSeason)

		api.GET("/seasons/:id/leaderboard", leaderboardHandler.GetLeaderboard)
		api.GET("/seasons/:id/awards", awardHandler.ListAwards)
		api.GET("/seasons/:id/plays", awardHandler.ListPlaysOfDay)
		api.GET("/seasons/:id/export", exportHandler.ExportSeason)

		api.POST("/users", playerHandler.CreateUser)
		api.POST("/users/:id/retire", playerHandler.RetireUser)
		api.POST("/users/:id/identities", playerHandler.AddGitIdentity)
		api.GET("/users/:id/identities", playerHandler.GetGitIdentities)
		api.POST("/users/:id/absences", playerHandler.DeclareAbsence)
		api.GET("/users/:id/seasons/:season_id/stats", playerHandler.GetPlayerSeasonStats)
		api.GET("/users/:id/career", playerHandler.GetPlayerCareerStats)
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
