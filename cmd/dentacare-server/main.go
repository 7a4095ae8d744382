package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/dentacare/dentacare/internal/config"
	"github.com/dentacare/dentacare/internal/domain/consultation"
	"github.com/dentacare/dentacare/internal/domain/dentalimage"
	"github.com/dentacare/dentacare/internal/domain/family"
	"github.com/dentacare/dentacare/internal/domain/history"
	"github.com/dentacare/dentacare/internal/domain/medreport"
	"github.com/dentacare/dentacare/internal/domain/ownership"
	"github.com/dentacare/dentacare/internal/domain/patient"
	"github.com/dentacare/dentacare/internal/domain/query"
	"github.com/dentacare/dentacare/internal/domain/report"
	"github.com/dentacare/dentacare/internal/domain/user"
	"github.com/dentacare/dentacare/internal/platform/appwrite"
	"github.com/dentacare/dentacare/internal/platform/auth"
	"github.com/dentacare/dentacare/internal/platform/db"
	"github.com/dentacare/dentacare/internal/platform/middleware"
	"github.com/dentacare/dentacare/internal/platform/monitor"
	"github.com/dentacare/dentacare/pkg/respond"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "dentacare-server",
		Short: "Dental tele-health API server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			count, err := db.NewMigrator(pool, dir).Up(ctx)
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}

			fmt.Printf("Applied %d migration(s) successfully.\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if dir == "" {
				dir = cfg.MigrationsDir
			}

			ctx := context.Background()
			pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
			if err != nil {
				return err
			}
			defer pool.Close()

			statuses, err := db.NewMigrator(pool, dir).Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to get migration status: %w", err)
			}

			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func runServer() error {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.IsDev() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout}).With().Timestamp().Logger()
	}
	if err := cfg.Validate(); err != nil {
		logger.Fatal().Err(err).Msg("invalid configuration")
	}

	ctx := context.Background()
	pool, err := db.NewPool(ctx, cfg.DatabaseURL, cfg.DBMaxConns, cfg.DBMinConns)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()
	logger.Info().Msg("connected to database")

	e := newServer(cfg, pool, logger)

	// Serve until a shutdown signal arrives, then drain in-flight requests.
	errCh := make(chan error, 1)
	go func() {
		errCh <- e.Start(":" + cfg.Port)
	}()
	logger.Info().Str("port", cfg.Port).Msg("server started")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
	case sig := <-quit:
		logger.Info().Str("signal", sig.String()).Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			return err
		}
	}
	return nil
}

// newServer builds the echo instance with all routes wired. Split from
// runServer so the route table is testable without a listener.
func newServer(cfg *config.Config, pool *pgxpool.Pool, logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.HTTPErrorHandler = respond.ErrorHandler(logger)

	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	}))

	e.GET("/health", monitor.New(pool).HealthHandler())

	uploader := appwrite.NewClient(cfg.AppwriteEndpoint, cfg.AppwriteProjectID,
		cfg.AppwriteAPIKey, cfg.AppwriteBucketID, logger)
	inTx := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return db.RunInTx(ctx, pool, fn)
	}

	users := user.NewRepoPG(pool)
	patients := patient.NewRepoPG(pool)
	owners := ownership.NewResolverPG(pool)

	api := e.Group("", auth.Middleware([]byte(cfg.JWTSecret)))

	patient.NewHandler(patient.NewService(patients, users, uploader, inTx)).RegisterRoutes(api)
	family.NewHandler(family.NewService(family.NewRepoPG(pool), owners)).RegisterRoutes(api)
	history.NewHandler(history.NewService(history.NewRepoPG(pool), owners, inTx)).RegisterRoutes(api)
	consultation.NewHandler(consultation.NewService(consultation.NewRepoPG(pool), owners)).RegisterRoutes(api)
	medreport.NewHandler(medreport.NewService(medreport.NewRepoPG(pool), owners, uploader)).RegisterRoutes(api)
	dentalimage.NewHandler(dentalimage.NewService(dentalimage.NewRepoPG(pool), owners, uploader)).RegisterRoutes(api)
	report.NewHandler(report.NewService(report.NewRepoPG(pool), owners)).RegisterRoutes(api)
	query.NewHandler(query.NewService(query.NewRepoPG(pool))).RegisterRoutes(api)

	return e
}
