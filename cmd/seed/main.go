package main

import (
	"context"
	"flag"
	"time"

	"github.com/sahilchouksey/unifriend-api/config"
	"github.com/sahilchouksey/unifriend-api/database"
	"github.com/sahilchouksey/unifriend-api/utils/logger"
)

func main() {
	adminUID := flag.String("admin", "", "identity uid to grant global admin (defaults to BOOTSTRAP_ADMIN_UID)")
	flag.Parse()

	log := logger.New("info", false)

	// Load environment variables
	if err := config.LoadENV(); err != nil {
		log.WithError(err).Fatal("Failed to load .env")
	}
	env, err := config.Get()
	if err != nil {
		log.WithError(err).Fatal("Invalid configuration")
	}

	uid := *adminUID
	if uid == "" {
		uid = env.BOOTSTRAP_ADMIN_UID
	}

	store, err := database.Open(env, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer store.Close()

	if err := store.Init(); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	log.Info("UniFriend - Database Seeding")
	if err := database.RunSeeds(ctx, store, uid, log); err != nil {
		log.WithError(err).Fatal("Seeding failed")
	}
	if uid == "" {
		log.Info("No admin uid given (-admin or BOOTSTRAP_ADMIN_UID); admin grant skipped")
	}
	log.Info("Seeding completed successfully")
}
