package main

import (
	"context"
	"flag"
	"log"

	"gearguard/migrations"
	"gearguard/pkg/config"
	"gearguard/pkg/database/postgresql"
	applogger "gearguard/pkg/logger"
	"gearguard/seeders"
)

func main() {
	runAdmin := flag.Bool("admin", false, "create the administrator account")
	runDemo := flag.Bool("demo", false, "create demo teams, users and equipment")
	runAll := flag.Bool("all", false, "run every seeder (same as -admin -demo)")
	flag.Parse()

	if !*runAdmin && !*runDemo && !*runAll {
		log.Println("❌ No seeder selected.")
		flag.PrintDefaults()
		log.Println("Example: go run ./seeders/cmd/seed -all")
		return
	}

	cfg := config.New()
	logger := applogger.NewLogger(cfg.Log.Level, cfg.Log.File)
	ctx := context.Background()

	dbPool, err := postgresql.ConnectDB(ctx, cfg.Postgres.DSN, logger)
	if err != nil {
		log.Fatalf("❌ connect: %v", err)
	}
	defer dbPool.Close()

	if err := postgresql.Migrate(ctx, dbPool, migrations.FS); err != nil {
		log.Fatalf("❌ migrate: %v", err)
	}

	if *runAll || *runAdmin {
		seeders.SeedAdmin(dbPool, cfg)
	}
	if *runAll || *runDemo {
		seeders.SeedDemo(dbPool)
	}
	log.Println("✅ Seeding finished")
}
