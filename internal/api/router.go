package api

import (
	"github.com/atp-media/rear-differential/internal/api/handler"
	"github.com/atp-media/rear-differential/internal/api/middleware"
	"github.com/atp-media/rear-differential/internal/config"
	"github.com/atp-media/rear-differential/internal/logger"
	"github.com/atp-media/rear-differential/internal/repository"
	"github.com/atp-media/rear-differential/internal/service"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Repos bundles the repositories the router wires into handlers.
type Repos struct {
	Training   *repository.TrainingRepository
	Media      *repository.MediaRepository
	Prediction *repository.PredictionRepository
	Movie      *repository.MovieRepository
	Flyway     *repository.FlywayRepository
}

// NewRepos constructs every repository over one database handle.
func NewRepos(db *gorm.DB) *Repos {
	return &Repos{
		Training:   repository.NewTrainingRepository(db),
		Media:      repository.NewMediaRepository(db),
		Prediction: repository.NewPredictionRepository(db),
		Movie:      repository.NewMovieRepository(db),
		Flyway:     repository.NewFlywayRepository(db),
	}
}

// SetupRouter configures the Gin router with all routes.
func SetupRouter(
	repos *Repos,
	rejection *service.RejectionService,
	log *logger.Logger,
	serverCfg *config.ServerConfig,
) *gin.Engine {
	// Set Gin mode
	switch serverCfg.Mode {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.DebugMode)
	}

	r := gin.New()

	// Add middleware
	r.Use(gin.Recovery())
	r.Use(middleware.LoggerMiddleware(log))
	r.Use(middleware.CORS(middleware.CORSConfig{
		AllowedOrigins:  serverCfg.CORS.AllowedOrigins,
		AllowAllOrigins: serverCfg.CORS.AllowAllOrigins,
	}))

	// Create handlers
	healthHandler := handler.NewHealthHandler()
	trainingHandler := handler.NewTrainingHandler(repos.Training, rejection)
	mediaHandler := handler.NewMediaHandler(repos.Media, rejection)
	predictionHandler := handler.NewPredictionHandler(repos.Prediction)
	movieHandler := handler.NewMovieHandler(repos.Movie)
	flywayHandler := handler.NewFlywayHandler(repos.Flyway)

	// Health check
	r.GET("/health", healthHandler.Health)

	// Training records
	r.GET("/training", trainingHandler.List)
	r.PATCH("/training/:imdb_id", trainingHandler.Update)
	r.PATCH("/training/:imdb_id/label", trainingHandler.UpdateLabel)
	r.PATCH("/training/:imdb_id/reviewed", trainingHandler.UpdateReviewed)
	r.PATCH("/training/:imdb_id/reject", trainingHandler.Reject)

	// Media records
	r.GET("/media", mediaHandler.List)
	r.PATCH("/media/:hash/pipeline", mediaHandler.UpdatePipeline)
	r.PATCH("/media/:hash/soft_delete", mediaHandler.SoftDelete)

	// Read-only views
	r.GET("/prediction", predictionHandler.List)
	r.GET("/movies", movieHandler.List)
	r.GET("/flyway", flywayHandler.List)

	return r
}
