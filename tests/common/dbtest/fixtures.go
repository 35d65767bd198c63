//go:build unit || e2e

package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

const defaultCommunityName = "Default Community"

func CreateTestUser(t *testing.T, db DBLike, email string) uuid.UUID {
	t.Helper()

	userID := uuid.New()
	ctx := context.Background()

	tag, err := db.Exec(ctx,
		"INSERT INTO users (id, email) VALUES ($1, $2) ON CONFLICT (email) DO NOTHING",
		userID, email)
	require.NoError(t, err)

	if tag.RowsAffected() == 0 {
		_ = db.QueryRow(ctx, "SELECT id FROM users WHERE email = $1", email).Scan(&userID)
	}

	return userID
}

// CreateTestMember creates a user and enrolls them in the default community.
func CreateTestMember(t *testing.T, db DBLike, email string) uuid.UUID {
	t.Helper()

	userID := CreateTestUser(t, db, email)
	communityID := DefaultCommunityID(t, db)

	_, err := db.Exec(context.Background(),
		"INSERT INTO community_members (community_id, user_id) VALUES ($1, $2) ON CONFLICT DO NOTHING",
		communityID, userID)
	require.NoError(t, err)

	return userID
}

func DefaultCommunityID(t *testing.T, db DBLike) uuid.UUID {
	t.Helper()

	var communityID uuid.UUID
	err := db.QueryRow(context.Background(),
		"SELECT id FROM communities WHERE name = $1 LIMIT 1", defaultCommunityName).Scan(&communityID)
	require.NoError(t, err)
	return communityID
}

func CreateTestResource(t *testing.T, db DBLike, ownerID uuid.UUID, kind string, requiresApproval bool) uuid.UUID {
	t.Helper()

	resourceID := uuid.New()
	communityID := DefaultCommunityID(t, db)

	_, err := db.Exec(context.Background(),
		`INSERT INTO resources (id, community_id, owner_id, kind, requires_approval, lifecycle_status)
		 VALUES ($1, $2, $3, $4, $5, 'open')`,
		resourceID, communityID, ownerID, kind, requiresApproval)
	require.NoError(t, err)

	return resourceID
}

func CloseTestResource(t *testing.T, db DBLike, resourceID uuid.UUID, lifecycleStatus string) {
	t.Helper()

	_, err := db.Exec(context.Background(),
		"UPDATE resources SET lifecycle_status = $2 WHERE id = $1", resourceID, lifecycleStatus)
	require.NoError(t, err)
}

func CreateTestTimeslot(t *testing.T, db DBLike, resourceID uuid.UUID, capacity int32) uuid.UUID {
	t.Helper()

	timeslotID := uuid.New()
	start := time.Now().Add(24 * time.Hour)
	end := start.Add(2 * time.Hour)

	_, err := db.Exec(context.Background(),
		`INSERT INTO timeslots (id, resource_id, start_time, end_time, capacity)
		 VALUES ($1, $2, $3, $4, $5)`,
		timeslotID, resourceID, start, end, capacity)
	require.NoError(t, err)

	return timeslotID
}

func CountClaimEvents(t *testing.T, db DBLike, claimID uuid.UUID) int {
	t.Helper()

	var count int
	err := db.QueryRow(context.Background(),
		"SELECT count(*) FROM claim_events WHERE claim_id = $1", claimID).Scan(&count)
	require.NoError(t, err)
	return count
}

// inserts basic reference data needed by tests
func SeedReferenceData(pool *pgxpool.Pool) error {
	ctx := context.Background()

	_, err := pool.Exec(ctx, `
		INSERT INTO communities (id, name)
		SELECT gen_random_uuid(), 'Default Community'
		WHERE NOT EXISTS (SELECT 1 FROM communities WHERE name = 'Default Community');
	`)
	return err
}

var (
	buildTruncateOnce sync.Once
	truncateSQL       atomic.Value // string
)

// truncates all tables and reseeds reference data
func ResetDB(pool *pgxpool.Pool) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	buildTruncateOnce.Do(func() {
		rows, err := pool.Query(ctx, `
		  SELECT 'public.' || quote_ident(tablename)
		  FROM pg_tables
		  WHERE schemaname = 'public'
		    AND tablename NOT IN ('schema_migrations')`)
		if err != nil {
			truncateSQL.Store("")
			return
		}
		defer rows.Close()
		var tables []string
		for rows.Next() {
			var t string
			if err := rows.Scan(&t); err != nil {
				truncateSQL.Store("")
				return
			}
			tables = append(tables, t)
		}
		if rows.Err() != nil {
			truncateSQL.Store("")
			return
		}
		if len(tables) == 0 {
			truncateSQL.Store("SELECT 1")
			return
		}
		truncateSQL.Store("TRUNCATE " + strings.Join(tables, ", ") + " RESTART IDENTITY CASCADE;")
	})
	sqlAny := truncateSQL.Load()
	if sqlAny == nil || sqlAny.(string) == "" {
		return fmt.Errorf("failed to build TRUNCATE SQL")
	}
	if _, err := pool.Exec(ctx, sqlAny.(string)); err != nil {
		return err
	}

	return SeedReferenceData(pool)
}
