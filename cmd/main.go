package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/lshigami/kioku/config"
	"github.com/lshigami/kioku/database"
	"github.com/lshigami/kioku/internal/controller"
	"github.com/lshigami/kioku/internal/logger"
	"github.com/lshigami/kioku/internal/model"
	"github.com/lshigami/kioku/internal/remote"
	"github.com/lshigami/kioku/internal/repository"
	"github.com/lshigami/kioku/internal/service"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

func main() {
	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	logger.Init(cfg.LogLevel)

	app := fx.New(
		fx.Provide(
			func() *config.Config { return cfg },
			database.NewDatabase,
			NewGinEngine,
			remote.NewClient,
		),

		fx.Provide(
			repository.NewDeckRepository,
			repository.NewCardRepository,
			repository.NewTagRepository,
			repository.NewQuizRepository,
			repository.NewQuestionRepository,
			repository.NewQuizTagRepository,
			repository.NewAttemptRepository,
			repository.NewStudySessionRepository,
			repository.NewUserRepository,
			repository.NewAppStateRepository,
			repository.NewSyncQueueRepository,
		),

		fx.Provide(
			service.NewDeckService,
			service.NewCardService,
			service.NewTagService,
			service.NewQuizService,
			service.NewQuestionService,
			service.NewQuizTagService,
			service.NewAttemptService,
			service.NewStatsService,
			service.NewStudySessionService,
			service.NewUserService,
			service.NewBundleService,
			service.NewSyncService,
		),

		fx.Provide(
			controller.NewDeckController,
			controller.NewQuizController,
			controller.NewUserController,
			controller.NewSyncController,
		),

		fx.Invoke(AutoMigrateDB),
		fx.Invoke(RegisterRoutesAndStartServer),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down")
}

func NewGinEngine() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	// The desktop frontend talks to this server from a file:// or
	// localhost origin.
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	return r
}

func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	deckCtrl *controller.DeckController,
	quizCtrl *controller.QuizController,
	userCtrl *controller.UserController,
	syncCtrl *controller.SyncController,
) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	deckCtrl.RegisterRoutes(api)
	quizCtrl.RegisterRoutes(api)
	userCtrl.RegisterRoutes(api)
	syncCtrl.RegisterRoutes(api)

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Kioku server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations")
	err := db.AutoMigrate(
		&model.LocalUser{},
		&model.AppState{},
		&model.Deck{},
		&model.Card{},
		&model.Tag{},
		&model.Quiz{},
		&model.QuizTag{},
		&model.Question{},
		&model.Choice{},
		&model.QuizAttempt{},
		&model.QuestionResult{},
		&model.StudySession{},
		&model.SyncQueueItem{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed")
	return nil
}
