package router

import (
	"log"
	"net/http"

	"firebase.google.com/go/v4/auth"
	sentryecho "github.com/getsentry/sentry-go/echo"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/vibewham/vibe-wham/backend/internal/discovery"
	"github.com/vibewham/vibe-wham/backend/internal/handlers"
	"github.com/vibewham/vibe-wham/backend/internal/middleware"
	"github.com/vibewham/vibe-wham/backend/internal/models"
	"github.com/vibewham/vibe-wham/backend/internal/repositories"
	"github.com/vibewham/vibe-wham/backend/pkg/config"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo, sentryEnabled bool) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	if sentryEnabled {
		e.Use(sentryecho.New(sentryecho.Options{Repanic: true}))
	}
	e.HTTPErrorHandler = HTTPErrorHandler
	log.Println("Global middleware configured.")
}

// HTTPErrorHandler renders every failure as {"error": string} (or
// {"errors": [...]} for multi-field validation failures) and reports
// unexpected errors to Sentry. Internal errors never leak detail.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	var body interface{} = map[string]string{"error": "Internal server error."}

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		switch msg := he.Message.(type) {
		case string:
			body = map[string]string{"error": msg}
		case map[string]interface{}:
			body = msg
		default:
			body = map[string]interface{}{"error": msg}
		}
	}

	if code >= http.StatusInternalServerError {
		body = map[string]string{"error": "Internal server error."}
		log.Printf("request failed: %v", err)
		if hub := sentryecho.GetHubFromContext(c); hub != nil {
			hub.CaptureException(err)
		}
	}

	if jsonErr := c.JSON(code, body); jsonErr != nil {
		log.Printf("failed to write error response: %v", jsonErr)
	}
}

// SetupRoutes configures all application routes and injects dependencies
func SetupRoutes(e *echo.Echo, pgdb *gorm.DB, mgClient *mongo.Client, firebaseAuthClient *auth.Client, cfg *config.Config) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.Post{},
		&models.Comment{},
		&models.Vote{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/", func(c echo.Context) error {
		return c.JSON(200, map[string]string{"message": "Vibe-Wham API"})
	})

	// --- Initialize Repositories ---
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	voteRepo := repositories.NewPostgresVoteRepository(pgdb)
	reportRepo := repositories.NewMongoReportRepository(mgClient.Database(cfg.MongoDatabase))

	engine := discovery.NewEngine(postRepo)

	// --- Protected routes (require a verified caller identity) ---
	api := e.Group("/api/v1")
	if firebaseAuthClient != nil {
		api.Use(middleware.FirebaseAuthMiddleware(firebaseAuthClient))
		log.Println("Firebase identity middleware applied to /api/v1 group.")
	} else {
		api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
		log.Println("JWT identity middleware applied to /api/v1 group.")
	}

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, engine, cfg.DiscoverTimeout)
	postHandler.RegisterPostRoutes(api)
	log.Println("Post routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo)
	commentHandler.RegisterCommentRoutes(api)
	log.Println("Comment routes configured.")

	// Vote routes
	voteHandler := handlers.NewVoteHandler(voteRepo, postRepo, commentRepo)
	voteHandler.RegisterVoteRoutes(api)
	log.Println("Vote routes configured.")

	// Report routes
	reportHandler := handlers.NewReportHandler(reportRepo, postRepo, commentRepo)
	reportHandler.RegisterReportRoutes(api)
	log.Println("Report routes configured.")

	log.Println("All routes configured.")
}
