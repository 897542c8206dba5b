package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"gearguard/pkg/utils"
)

func seedAdminUser(ctx context.Context, db dbtx, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if _, err := findUserID(ctx, db, email); err == nil {
		log.Println("  - administrator already exists, skipping")
		return nil
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	_, err = db.Exec(ctx,
		"INSERT INTO users (id, email, name, role, password_hash) VALUES ($1, $2, $3, 'admin', $4)",
		uuid.NewString(), email, "Administrator", hash)
	if err != nil {
		return fmt.Errorf("insert administrator: %w", err)
	}
	log.Printf("  - administrator %s created", email)
	return nil
}

func findUserID(ctx context.Context, db dbtx, email string) (string, error) {
	var id string
	err := db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&id)
	return id, err
}

// seedUsers returns the ids of the demo users keyed by email.
func seedUsers(ctx context.Context, db dbtx) (map[string]string, error) {
	hash, err := utils.HashPassword(demoPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	ids := make(map[string]string, len(demoUsers))
	for _, u := range demoUsers {
		id, err := findUserID(ctx, db, u.Email)
		if err == nil {
			ids[u.Email] = id
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		id = uuid.NewString()
		if _, err := db.Exec(ctx,
			"INSERT INTO users (id, email, name, role, password_hash) VALUES ($1, $2, $3, $4, $5)",
			id, u.Email, u.Name, u.Role, hash); err != nil {
			return nil, fmt.Errorf("insert user %s: %w", u.Email, err)
		}
		ids[u.Email] = id
		log.Printf("  - user %s (%s)", u.Email, u.Role)
	}
	return ids, nil
}
