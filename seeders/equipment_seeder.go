package seeders

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// seedTeams returns team ids keyed by name. The first listed member of a team is its lead.
func seedTeams(ctx context.Context, db dbtx, users map[string]string) (map[string]string, error) {
	ids := make(map[string]string, len(demoTeams))
	for _, t := range demoTeams {
		var id string
		err := db.QueryRow(ctx, "SELECT id FROM teams WHERE name = $1", t.Name).Scan(&id)
		if err == nil {
			ids[t.Name] = id
			continue
		}
		if !errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}

		members := []string{}
		for _, u := range demoUsers {
			if u.Team == t.Name {
				members = append(members, users[u.Email])
			}
		}
		id = uuid.NewString()
		if _, err := db.Exec(ctx,
			"INSERT INTO teams (id, name, description, member_ids) VALUES ($1, $2, $3, $4)",
			id, t.Name, t.Description, members); err != nil {
			return nil, fmt.Errorf("insert team %s: %w", t.Name, err)
		}
		ids[t.Name] = id
		log.Printf("  - team %s (%d members)", t.Name, len(members))
	}
	return ids, nil
}

// seedCatalog returns category ids keyed by name.
func seedCatalog(ctx context.Context, db dbtx) (map[string]string, error) {
	categories := make(map[string]string, len(demoCategories))
	for _, name := range demoCategories {
		id, err := ensureNamed(ctx, db, "equipment_categories", name)
		if err != nil {
			return nil, fmt.Errorf("category %s: %w", name, err)
		}
		categories[name] = id
	}
	for _, name := range demoWorkCenters {
		if _, err := ensureNamed(ctx, db, "work_centers", name); err != nil {
			return nil, fmt.Errorf("work center %s: %w", name, err)
		}
	}
	return categories, nil
}

// ensureNamed returns the id of the row called name in table, inserting it when missing.
func ensureNamed(ctx context.Context, db dbtx, table, name string) (string, error) {
	var id string
	err := db.QueryRow(ctx, "SELECT id FROM "+table+" WHERE name = $1", name).Scan(&id)
	if err == nil {
		return id, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return "", err
	}
	id = uuid.NewString()
	if _, err := db.Exec(ctx, "INSERT INTO "+table+" (id, name) VALUES ($1, $2)", id, name); err != nil {
		return "", err
	}
	return id, nil
}

func seedEquipment(ctx context.Context, db dbtx, teams, categories map[string]string) error {
	for _, e := range demoEquipment {
		tag, err := db.Exec(ctx,
			`INSERT INTO equipment (id, name, serial_number, category, location, maintenance_team_id, status)
			 SELECT $1, $2, $3, $4, $5, $6, 'Active'
			 WHERE NOT EXISTS (SELECT 1 FROM equipment WHERE serial_number = $3)`,
			uuid.NewString(), e.Name, e.Serial, categories[e.Category], e.Location, teams[e.Team])
		if err != nil {
			return fmt.Errorf("insert equipment %s: %w", e.Serial, err)
		}
		if tag.RowsAffected() > 0 {
			log.Printf("  - equipment %s", e.Name)
		}
	}
	return nil
}
