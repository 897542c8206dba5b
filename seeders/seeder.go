package seeders

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"gearguard/internal/repositories"
	"gearguard/pkg/config"
)

// dbtx is satisfied by both *pgxpool.Pool and pgx.Tx.
type dbtx interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// SeedAdmin creates the first administrator account.
func SeedAdmin(db *pgxpool.Pool, cfg *config.Config) {
	ctx := context.Background()
	log.Println("▶️  Seeding administrator...")

	if err := seedAdminUser(ctx, db, cfg.Seed.AdminEmail, cfg.Seed.AdminPassword); err != nil {
		log.Fatalf("❌ administrator: %v", err)
	}
	log.Println("✅ Administrator ready")
}

// SeedDemo fills the database with a small plant: teams, technicians, catalog and equipment.
// Everything is written in one transaction, so a failed run leaves nothing behind.
func SeedDemo(db *pgxpool.Pool) {
	ctx := context.Background()
	log.Println("▶️  Seeding demo data...")

	err := repositories.NewTxManager(db).RunInTransaction(ctx, func(tx pgx.Tx) error {
		users, err := seedUsers(ctx, tx)
		if err != nil {
			return fmt.Errorf("users: %w", err)
		}
		teams, err := seedTeams(ctx, tx, users)
		if err != nil {
			return fmt.Errorf("teams: %w", err)
		}
		categories, err := seedCatalog(ctx, tx)
		if err != nil {
			return fmt.Errorf("catalog: %w", err)
		}
		if err := seedEquipment(ctx, tx, teams, categories); err != nil {
			return fmt.Errorf("equipment: %w", err)
		}
		return nil
	})
	if err != nil {
		log.Fatalf("❌ demo data: %v", err)
	}
	log.Println("✅ Demo data ready")
}
