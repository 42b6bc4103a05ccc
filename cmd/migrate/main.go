package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"extraction-platform/internal/catalog"
	"extraction-platform/internal/config"
	"extraction-platform/internal/repository"
	"extraction-platform/pkg/database"
	"extraction-platform/pkg/logging"
	"extraction-platform/pkg/metrics"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	seed := flag.Bool("seed", true, "Seed the crop catalog after an up migration")
	flag.Parse()

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewStructuredLogger("extraction-migrate", "1.0.0", logging.ParseLevel(cfg.Logging.Level))
	metricsCollector := metrics.NewCollector("extraction_migrate")

	dbConfig := &database.Config{
		Host:            cfg.Database.Host,
		Port:            cfg.Database.Port,
		User:            cfg.Database.User,
		Password:        cfg.Database.Password,
		Database:        cfg.Database.Database,
		SSLMode:         cfg.Database.SSLMode,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime,
	}

	db, err := database.NewPostgresDB(dbConfig, logger, metricsCollector)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	fmt.Println("Connected to database successfully")

	// Read migration file
	var migrationFile string
	if *direction == "up" {
		migrationFile = "migrations/001_create_schema.up.sql"
	} else {
		migrationFile = "migrations/001_create_schema.down.sql"
	}

	migrationPath := filepath.Join(".", migrationFile)
	content, err := os.ReadFile(migrationPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read migration file: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Running migration: %s\n", migrationFile)

	ctx := context.Background()

	// Execute migration
	if _, err := db.ExecContext(ctx, "migration", string(content)); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to execute migration: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Migration completed successfully")

	// Seed the built-in crop catalog so the API serves the same
	// reference data the calculator uses
	if *direction == "up" && *seed {
		repo := repository.NewExtractionRepository(db, logger, metricsCollector)

		for _, crop := range catalog.Profiles() {
			if err := repo.UpsertCrop(ctx, &crop); err != nil {
				fmt.Fprintf(os.Stderr, "Failed to seed crop %s: %v\n", crop.ID, err)
				os.Exit(1)
			}
			fmt.Printf("Seeded crop profile: %s\n", crop.ID)
		}

		fmt.Println("Catalog seeding completed successfully")
	}
}
