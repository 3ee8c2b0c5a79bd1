// Runs the GORM AutoMigrate for every model and exits.
// Usage: go run ./cmd/migrate
package main

import (
	"context"

	"github.com/sahilchouksey/unifriend-api/config"
	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/utils/logger"
)

func main() {
	log := logger.New("info", false)
	log.Info("=== GORM Migration ===")

	// Load environment variables
	if err := config.LoadENV(); err != nil {
		log.WithError(err).Fatal("Failed to load environment variables")
	}
	env, err := config.Get()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}
	if env.DB_DRIVER != "postgres" {
		log.Fatalf("DB_DRIVER=%s has no schema to migrate", env.DB_DRIVER)
	}

	// Initialize GORM connection
	store, err := database.StartGORM(env, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer store.Close()

	// Run migrations
	if err := store.Init(); err != nil {
		log.WithError(err).Fatal("Migration failed")
	}

	// Verify the connection is still healthy after DDL
	if err := store.HealthCheck(context.Background()); err != nil {
		log.WithError(err).Fatal("Database unhealthy after migration")
	}

	log.Info("=== Migration completed successfully ===")
}
