package repositories

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gearguard/internal/entities"
	"gearguard/migrations"
	"gearguard/pkg/database/postgresql"
	apperrors "gearguard/pkg/errors"
	"gearguard/pkg/types"
)

var testPool *pgxpool.Pool

// TestMain connects to TEST_DATABASE_URL and applies the migrations. Without it the integration tests skip.
func TestMain(m *testing.M) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn != "" {
		ctx := context.Background()
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			log.Fatalf("connect test database: %v", err)
		}
		if err := postgresql.Migrate(ctx, pool, migrations.FS); err != nil {
			log.Fatalf("migrate test database: %v", err)
		}
		testPool = pool
	}

	code := m.Run()
	if testPool != nil {
		testPool.Close()
	}
	os.Exit(code)
}

func requireDB(t *testing.T) {
	t.Helper()
	if testPool == nil {
		t.Skip("TEST_DATABASE_URL not set")
	}
	cleanupTables(t, testPool)
}

func cleanupTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	_, err := pool.Exec(context.Background(), `TRUNCATE TABLE notifications, requirements, tracking_logs, maintenance_requests, equipment, work_centers, equipment_categories, teams, users`)
	require.NoError(t, err)
}

func newRequest(id, teamID string, created time.Time) *entities.MaintenanceRequest {
	return &entities.MaintenanceRequest{
		ID:                id,
		Subject:           "Spindle noise " + id,
		Type:              entities.RequestCorrective,
		EquipmentID:       "eq-1",
		RequestedByUserID: "user-1",
		TeamID:            teamID,
		Stage:             entities.StageNew,
		Priority:          entities.PriorityMedium,
		Category:          "cat-1",
		CreatedAt:         created,
		UpdatedAt:         created,
	}
}

func TestMaintenanceRequestRepository_Integration_CRUD(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewMaintenanceRequestRepository(testPool, zap.NewNop())
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	req := newRequest("req-1", "team-1", now)
	req.AssignedToUserID = null.StringFrom("tech-1")
	require.NoError(t, repo.Create(ctx, req))

	got, err := repo.FindByID(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, "Spindle noise req-1", got.Subject)
	assert.Equal(t, "tech-1", got.AssignedToUserID.String)
	assert.False(t, got.ScheduledDate.Valid)

	got.Stage = entities.StageInProgress
	got.DurationHours = null.Float64From(2.5)
	got.UpdatedAt = now.Add(time.Hour)
	require.NoError(t, repo.Update(ctx, got))

	again, err := repo.FindByID(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, entities.StageInProgress, again.Stage)
	assert.InDelta(t, 2.5, again.DurationHours.Float64, 0.001)

	require.NoError(t, repo.Delete(ctx, "req-1"))
	_, err = repo.FindByID(ctx, "req-1")
	assert.True(t, apperrors.IsNotFound(err))
	assert.True(t, apperrors.IsNotFound(repo.Delete(ctx, "req-1")))
	assert.True(t, apperrors.IsNotFound(repo.Update(ctx, got)))
}

func TestMaintenanceRequestRepository_Integration_ListAndSchedule(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewMaintenanceRequestRepository(testPool, zap.NewNop())
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	for i, id := range []string{"r-a", "r-b", "r-c"} {
		r := newRequest(id, "team-1", now.Add(time.Duration(i)*time.Minute))
		if id == "r-c" {
			r.TeamID = "team-2"
		}
		if id != "r-a" {
			r.ScheduledDate = null.TimeFrom(now.AddDate(0, 0, i))
		}
		require.NoError(t, repo.Create(ctx, r))
	}

	list, total, err := repo.List(ctx, types.Filter{Filter: map[string]interface{}{"teamId": "team-1"}})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, list, 2)
	assert.Equal(t, "r-b", list[0].ID)

	paged, total, err := repo.List(ctx, types.Filter{WithPagination: true, Limit: 1, Offset: 1})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, paged, 1)
	assert.Equal(t, "r-b", paged[0].ID)

	scheduled, err := repo.ListScheduled(ctx, types.Filter{}, now, now.AddDate(0, 0, 2))
	require.NoError(t, err)
	require.Len(t, scheduled, 1)
	assert.Equal(t, "r-b", scheduled[0].ID)

	n, err := repo.ClearTeam(ctx, "team-1")
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)
	cleared, err := repo.FindByID(ctx, "r-a")
	require.NoError(t, err)
	assert.Empty(t, cleared.TeamID)

	byEquipment, err := repo.ListByEquipment(ctx, "eq-1")
	require.NoError(t, err)
	assert.Len(t, byEquipment, 3)
}

func TestTeamRepository_Integration_RemoveMember(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewTeamRepository(testPool, zap.NewNop())
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &entities.Team{ID: "team-1", Name: "Mechanics", MemberIDs: []string{"tech-1", "tech-2", "tech-3"}, CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &entities.Team{ID: "team-2", Name: "Electricians", MemberIDs: []string{"tech-4"}, CreatedAt: now}))

	n, err := repo.RemoveMember(ctx, "tech-2")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	team, err := repo.FindByID(ctx, "team-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"tech-1", "tech-3"}, team.MemberIDs)
	assert.Equal(t, "tech-1", team.Lead())

	require.NoError(t, repo.Delete(ctx, "team-2"))
	_, err = repo.FindByID(ctx, "team-2")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestEquipmentRepository_Integration_ClearTeam(t *testing.T) {
	requireDB(t)
	ctx := context.Background()
	repo := NewEquipmentRepository(testPool, zap.NewNop())
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &entities.Equipment{
		ID:                "eq-1",
		Name:              "CNC Mill",
		SerialNumber:      "CNC-001",
		Category:          "cat-1",
		MaintenanceTeamID: "team-1",
		Status:            entities.EquipmentActive,
		CreatedAt:         now,
		UpdatedAt:         now,
	}))

	n, err := repo.ClearTeam(ctx, "team-1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)

	eq, err := repo.FindByID(ctx, "eq-1")
	require.NoError(t, err)
	assert.Empty(t, eq.MaintenanceTeamID)
	assert.Equal(t, entities.EquipmentActive, eq.Status)
}
