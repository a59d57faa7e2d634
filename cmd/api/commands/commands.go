package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/sarav18302/CS203-Lab-01/internal/adapters/repository"
	"github.com/sarav18302/CS203-Lab-01/internal/application/services"
	"github.com/sarav18302/CS203-Lab-01/internal/domain/entities"
	"github.com/sarav18302/CS203-Lab-01/internal/infrastructure/config"
	"github.com/sarav18302/CS203-Lab-01/internal/infrastructure/database"
	"github.com/sarav18302/CS203-Lab-01/internal/infrastructure/logger"
	"github.com/sarav18302/CS203-Lab-01/internal/infrastructure/server"
	"github.com/sarav18302/CS203-Lab-01/internal/infrastructure/telemetry"
	"github.com/sarav18302/CS203-Lab-01/internal/ports"
)

// NewServeCommand creates the serve command
func NewServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the course portal server",
		Long:  "Start the course portal server with all configured routes and middleware",
		Run: func(cmd *cobra.Command, args []string) {
			runServer()
		},
	}
}

// NewMigrateCommand creates the migrate command with subcommands.
// Migrations apply to the postgres backend only; the jsonfile backend
// has no schema.
func NewMigrateCommand() *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database migration commands",
		Long:  "Manage database migrations for the postgres backend (up, down, version)",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Run all up migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("up")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Run all down migrations",
		Run: func(cmd *cobra.Command, args []string) {
			runMigration("down")
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print current migration version",
		Run: func(cmd *cobra.Command, args []string) {
			showMigrationVersion()
		},
	})

	return migrateCmd
}

// NewSeedCommand creates the seed command
func NewSeedCommand() *cobra.Command {
	seedCmd := &cobra.Command{
		Use:   "seed",
		Short: "Import a course catalog JSON file into the configured backend",
		Run: func(cmd *cobra.Command, args []string) {
			file, _ := cmd.Flags().GetString("file")
			if file == "" {
				log.Fatal("A source file is required")
			}
			runSeed(file)
		},
	}

	seedCmd.Flags().String("file", "", "Path to a JSON file containing a course array (required)")

	return seedCmd
}

// NewVersionCommand creates the version command
func NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print Course Portal version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("Course Portal v1.0.0")
		},
	}
}

// buildRepository selects the catalog backend from configuration.
// The returned cleanup closes the database connection for the postgres
// driver and is a no-op otherwise.
func buildRepository(cfg *config.Config) (ports.CourseRepository, func(), error) {
	switch cfg.Storage.Driver {
	case "jsonfile":
		return repository.NewJSONFileRepository(cfg.Catalog.File), func() {}, nil
	case "postgres":
		db, err := database.New(cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return repository.NewPostgresRepository(db.DB), func() { db.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("%w: %s", entities.ErrInvalidBackend, cfg.Storage.Driver)
	}
}

func runServer() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	ctx := context.Background()

	tel, err := telemetry.New(ctx, cfg.Telemetry, cfg.App, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize telemetry", "error", err)
	}

	repo, cleanup, err := buildRepository(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize storage", "error", err)
	}
	defer cleanup()

	srv, err := server.New(cfg, repo, tel, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize server", "error", err)
	}

	appLogger.Info("Starting course portal server",
		"port", cfg.Server.Port,
		"environment", cfg.App.Environment,
		"storage_driver", cfg.Storage.Driver,
	)

	go func() {
		if err := srv.Start(fmt.Sprintf(":%d", cfg.Server.Port)); err != nil {
			appLogger.Info("Server stopped", "reason", err)
		}
	}()

	// Wait for interrupt, then drain the server and flush telemetry.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server shutdown failed", "error", err)
	}
	if err := tel.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Telemetry shutdown failed", "error", err)
	}
}

func runMigration(direction string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Storage.Driver != "postgres" {
		log.Fatalf("Migrations apply to the postgres driver only (current: %s)", cfg.Storage.Driver)
	}

	m := newMigrator(cfg)

	switch direction {
	case "up":
		err = m.Up()
	case "down":
		err = m.Down()
	}

	if err != nil && err != migrate.ErrNoChange {
		log.Fatalf("Migration failed: %v", err)
	}

	if err == migrate.ErrNoChange {
		fmt.Println("No migrations to run")
	} else {
		fmt.Printf("Migration %s completed successfully\n", direction)
	}
}

func showMigrationVersion() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Storage.Driver != "postgres" {
		log.Fatalf("Migrations apply to the postgres driver only (current: %s)", cfg.Storage.Driver)
	}

	version, dirty, err := newMigrator(cfg).Version()
	if err != nil {
		log.Fatalf("Failed to get migration version: %v", err)
	}

	fmt.Printf("Current migration version: %d\n", version)
	fmt.Printf("Dirty: %t\n", dirty)
}

func newMigrator(cfg *config.Config) *migrate.Migrate {
	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	driver, err := postgres.WithInstance(db.DB.DB, &postgres.Config{})
	if err != nil {
		log.Fatalf("Failed to create migration driver: %v", err)
	}

	m, err := migrate.NewWithDatabaseInstance(
		"file://migrations",
		"postgres",
		driver,
	)
	if err != nil {
		log.Fatalf("Failed to create migration instance: %v", err)
	}

	return m
}

func runSeed(file string) {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger, err := logger.New(cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer appLogger.Sync()

	repo, cleanup, err := buildRepository(cfg)
	if err != nil {
		appLogger.Fatal("Failed to initialize storage", "error", err)
	}
	defer cleanup()

	data, err := os.ReadFile(file)
	if err != nil {
		appLogger.Fatal("Failed to read seed file", "error", err, "file", file)
	}

	var courses []entities.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		appLogger.Fatal("Seed file is not a valid course array", "error", err, "file", file)
	}

	catalog := services.NewCatalogService(repo, appLogger, cfg.Catalog.DefaultPrerequisites)
	batchID := uuid.New().String()
	ctx := context.Background()

	imported, skipped := 0, 0
	for _, course := range courses {
		_, err := catalog.AddCourse(ctx, ports.AddCourseRequest{
			Code:          course.Code,
			Name:          course.Name,
			Instructor:    course.Instructor,
			Semester:      course.Semester,
			Schedule:      course.Schedule,
			Classroom:     course.Classroom,
			Prerequisites: course.Prerequisites,
			Grading:       course.Grading,
			Description:   course.Description,
		})
		if err != nil {
			appLogger.Warn("Skipping invalid course", "error", err, "code", course.Code, "batch_id", batchID)
			skipped++
			continue
		}
		imported++
	}

	appLogger.Info("Seed completed",
		"batch_id", batchID,
		"imported", imported,
		"skipped", skipped,
		"storage_driver", cfg.Storage.Driver,
	)
}
