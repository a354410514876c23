package main

import (
	"context"
	"flag"
	"os"

	"go-campus-events/internal/config"
	"go-campus-events/internal/model"
	"go-campus-events/internal/repository"
	"go-campus-events/internal/service"
	"go-campus-events/pkg/database"
)

func main() {
	reset := flag.Bool("reset", false, "overwrite the bitmasks of the default roles with their shipped values")
	flag.Parse()

	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
	log := cfg.NewLogger()

	// 2. Setup Database
	db, err := database.Connect(cfg.DSN(), log, database.DefaultOptions)
	if err != nil {
		log.Error("failed to connect database", "error", err)
		os.Exit(1)
	}
	defer database.Close(db)
	if err := database.Migrate(db, model.AllModels()...); err != nil {
		log.Error("failed to migrate", "error", err)
		os.Exit(1)
	}

	// 3. Seed roles and the boss account
	seeder := service.NewSeeder(
		repository.NewUserRepo(db),
		repository.NewUserRoleRepo(db),
		repository.NewEventRoleRepo(db),
		repository.NewUserRoleAssignmentRepo(db),
		log,
	)
	ctx := context.Background()
	if err := seeder.Seed(ctx); err != nil {
		log.Error("seed failed", "error", err)
		os.Exit(1)
	}

	// 4. Optionally restore the shipped bitmasks
	if *reset {
		if err := seeder.ResetDefaults(ctx); err != nil {
			log.Error("reset failed", "error", err)
			os.Exit(1)
		}
	}
	log.Info("seeding finished", "boss", service.BossKmail, "reset", *reset)
}
