package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	gorillahandlers "github.com/gorilla/handlers"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	_ "github.com/jackc/pgx/v5/stdlib"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/sbilibin2017/student-housing/docs"
	"github.com/sbilibin2017/student-housing/internal/config"
	"github.com/sbilibin2017/student-housing/internal/facades"
	"github.com/sbilibin2017/student-housing/internal/handlers"
	"github.com/sbilibin2017/student-housing/internal/jwt"
	"github.com/sbilibin2017/student-housing/internal/logger"
	"github.com/sbilibin2017/student-housing/internal/middlewares"
	"github.com/sbilibin2017/student-housing/internal/migrations"
	"github.com/sbilibin2017/student-housing/internal/repositories"
	"github.com/sbilibin2017/student-housing/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// presignRateLimitPrefix namespaces the upload counters in Redis.
const presignRateLimitPrefix = "ratelimit:presign"

// @title student-housing API
// @version 1.0.0
// @description Marketplace of student housing: listings, reviews, users and image uploads
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the CLI: serve runs the HTTP API, migrate applies the schema.
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "housing",
		Short:         "Student housing marketplace API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "config.env", "Path to configuration file")

	var migrate bool
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			printBuildInfo()
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if migrate {
				if err := migrations.Migrate(cmd.Context(), cfg.Postgres.DSN()); err != nil {
					return err
				}
			}
			return run(cmd.Context(), cfg)
		},
	}
	serveCmd.Flags().BoolVar(&migrate, "migrate", true, "Apply pending migrations before serving")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			defer logger.Sync()

			return migrations.Migrate(cmd.Context(), cfg.Postgres.DSN())
		},
	}

	root.AddCommand(serveCmd, migrateCmd)
	return root
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Build version: %s\nBuild date: %s\nBuild commit: %s\n", buildVersion, buildDate, buildCommit)
}

// loadConfig reads the configuration and initializes the global logger.
func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if err := logger.Initialize(cfg.App.LogLevel, "version", buildVersion); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger.Log.Infof("Logger initialized with level %s", cfg.App.LogLevel)
	return cfg, nil
}

// newIdentityProvider returns the provider selected by the configuration.
func newIdentityProvider(cfg config.IdentityConfig, db *sqlx.DB) services.IdentityProvider {
	if cfg.Provider == config.IdentityAuth0 {
		return facades.NewAuth0Provider(cfg)
	}
	return facades.NewLocalProvider(repositories.NewCredentialRepository(db))
}

// run connects the database, Redis and the external collaborators and
// serves the HTTP API until ctx is cancelled or a shutdown signal arrives.
func run(ctx context.Context, cfg *config.Config) error {
	// Connect to PostgreSQL
	logger.Log.Infow("Connecting to PostgreSQL", "host", cfg.Postgres.Host, "db", cfg.Postgres.DB)
	db, err := sqlx.ConnectContext(ctx, "pgx", cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.Postgres.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Postgres.MaxIdleConns)

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         cfg.Redis.Addr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// External collaborators
	events := facades.NewEventPublisher(facades.NewKafkaWriter(cfg.Kafka))
	defer func() {
		if err := events.Close(); err != nil {
			logger.Log.Errorw("closing event publisher", "err", err)
		}
	}()
	presigner, err := facades.NewS3Presigner(cfg.Storage)
	if err != nil {
		return fmt.Errorf("object storage client: %w", err)
	}
	geocoder := facades.NewGoogleGeocoder(cfg.Geocoding)
	identity := newIdentityProvider(cfg.Identity, db)

	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWT.SecretKey),
		jwt.WithExpiration(cfg.JWT.Expiration),
	)

	// Initialize repositories
	userReadRepo := repositories.NewUserReadRepository(db)
	userWriteRepo := repositories.NewUserWriteRepository(db)
	housingReadRepo := repositories.NewHousingReadRepository(db)
	housingWriteRepo := repositories.NewHousingWriteRepository(db)
	reviewReadRepo := repositories.NewReviewReadRepository(db)
	reviewWriteRepo := repositories.NewReviewWriteRepository(db)
	limiter := repositories.NewRateLimitRepository(rdb, presignRateLimitPrefix, cfg.Uploads.RateLimit, cfg.Uploads.RateWindow)

	// Initialize services
	userService := services.NewUserService(userReadRepo, userWriteRepo, identity, tokens, cfg.Policy.StudentEmailDomains)
	housingService := services.NewHousingService(housingReadRepo, housingWriteRepo, userReadRepo, geocoder, events)
	reviewService := services.NewReviewService(reviewReadRepo, reviewWriteRepo, userReadRepo, housingReadRepo, events)
	uploadService := services.NewUploadService(presigner, limiter)

	// Setup router
	r := chi.NewRouter()
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(middlewares.LoggingMiddleware)

	authMiddleware := middlewares.AuthMiddleware(tokens)

	r.Route("/api", func(r chi.Router) {
		r.Route("/housing", func(r chi.Router) {
			r.Get("/", handlers.NewListHousingHandler(housingService))
			r.Post("/", handlers.NewCreateHousingHandler(housingService))
			r.Get("/{id}", handlers.NewGetHousingHandler(housingService))
			r.Put("/{id}", handlers.NewUpdateHousingHandler(housingService))
			r.Delete("/{id}", handlers.NewDeleteHousingHandler(housingService))
			r.Get("/{id}/recent", handlers.NewIsRecentHousingHandler(housingService))
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", handlers.NewListReviewsHandler(reviewService))
			r.Get("/{id}", handlers.NewGetReviewHandler(reviewService))

			// Protected routes with JWT middleware
			r.Group(func(r chi.Router) {
				r.Use(authMiddleware)
				r.Post("/", handlers.NewCreateReviewHandler(reviewService))
				r.Put("/{id}", handlers.NewUpdateReviewHandler(reviewService))
				r.Delete("/{id}", handlers.NewDeleteReviewHandler(reviewService))
			})
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", handlers.NewRegisterHandler(userService))
			r.Post("/login", handlers.NewLoginHandler(userService))

			r.Group(func(r chi.Router) {
				r.Use(authMiddleware)
				r.Get("/me", handlers.NewMeHandler(userService))
				r.Put("/me", handlers.NewUpdateMeHandler(userService))
			})
		})

		r.Post("/s3/presignedpost", handlers.NewPresignHandler(uploadService))
	})

	r.Get("/dbhealth", handlers.NewDBHealthHandler(db))
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	cors := gorillahandlers.CORS(
		gorillahandlers.AllowedOrigins(cfg.App.CORSOrigins),
		gorillahandlers.AllowedMethods([]string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}),
		gorillahandlers.AllowedHeaders([]string{"Authorization", "Content-Type", middlewares.RequestIDHeader}),
		gorillahandlers.AllowCredentials(),
	)

	srv := &http.Server{
		Addr:    cfg.App.Addr(),
		Handler: cors(r),
	}

	// Graceful shutdown
	errChan := make(chan error, 1)
	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	go func() {
		logger.Log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		logger.Log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Errorw("HTTP server shutdown error", "error", err)
	}

	logger.Log.Info("HTTP server stopped gracefully")
	return nil
}
