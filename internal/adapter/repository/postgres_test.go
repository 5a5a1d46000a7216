package repository

import (
	"context"
	"database/sql"
	"os"
	"testing"

	appdb "auth-gate/internal/db"
	dbmigrate "auth-gate/internal/db/migrate"
	"auth-gate/internal/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPostgresProfileRepo_ImplementsInterface(t *testing.T) {
	var _ domain.ProfileRepository = (*PostgresProfileRepo)(nil)
}

func TestPostgresAssessmentRepo_ImplementsInterface(t *testing.T) {
	var _ domain.AssessmentCounter = (*PostgresAssessmentRepo)(nil)
}

func TestNewPostgresProfileRepo(t *testing.T) {
	assert.NotNil(t, NewPostgresProfileRepo(nil))
}

func TestNewPostgresAssessmentRepo(t *testing.T) {
	assert.NotNil(t, NewPostgresAssessmentRepo(nil))
}

// openTestDB connects to the database named by DATABASE_URL and applies
// migrations. Tests are skipped when no database is available.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		t.Skip("DATABASE_URL not set, skipping integration test")
	}
	if err := dbmigrate.Up(dsn); err != nil {
		t.Skipf("Database connection failed (expected in test environment): %v", err)
	}
	conn, err := appdb.Open(dsn)
	if err != nil {
		t.Skipf("Database connection failed (expected in test environment): %v", err)
	}
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func deleteProfile(t *testing.T, conn *sql.DB, id string) {
	t.Helper()
	t.Cleanup(func() {
		_, _ = conn.Exec(`DELETE FROM profiles WHERE id = $1`, id)
	})
}

func TestPostgresProfileRepo_UpsertIdempotent(t *testing.T) {
	conn := openTestDB(t)
	repo := NewPostgresProfileRepo(conn)
	ctx := context.Background()

	id := uuid.NewString()
	deleteProfile(t, conn, id)

	if err := repo.Upsert(ctx, id, "coach@example.com"); err != nil {
		t.Fatalf("first Upsert failed: %v", err)
	}
	if err := repo.Upsert(ctx, id, "coach@example.com"); err != nil {
		t.Fatalf("second Upsert failed: %v", err)
	}

	var count int
	err := conn.QueryRow(`SELECT count(*) FROM profiles WHERE id = $1`, id).Scan(&count)
	if err != nil {
		t.Fatalf("counting rows failed: %v", err)
	}
	if count != 1 {
		t.Errorf("row count after two Upserts = %d, want 1", count)
	}

	profile, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if profile == nil {
		t.Fatal("GetByID returned nil for an upserted profile")
	}
	if profile.Email != "coach@example.com" {
		t.Errorf("Email = %q, want %q", profile.Email, "coach@example.com")
	}
}

func TestPostgresProfileRepo_UpsertPreservesFirstName(t *testing.T) {
	conn := openTestDB(t)
	repo := NewPostgresProfileRepo(conn)
	ctx := context.Background()

	id := uuid.NewString()
	deleteProfile(t, conn, id)

	if err := repo.Upsert(ctx, id, "coach@example.com"); err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	// Onboarding writes first_name out of band; a later sign-in must
	// not erase it.
	_, err := conn.Exec(`UPDATE profiles SET first_name = 'Mika' WHERE id = $1`, id)
	if err != nil {
		t.Fatalf("setting first_name failed: %v", err)
	}

	if err := repo.Upsert(ctx, id, "new-address@example.com"); err != nil {
		t.Fatalf("re-Upsert failed: %v", err)
	}

	profile, err := repo.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("GetByID failed: %v", err)
	}
	if profile == nil {
		t.Fatal("GetByID returned nil for an upserted profile")
	}
	if profile.FirstName != "Mika" {
		t.Errorf("FirstName after re-Upsert = %q, want %q", profile.FirstName, "Mika")
	}
	if profile.Email != "new-address@example.com" {
		t.Errorf("Email after re-Upsert = %q, want %q", profile.Email, "new-address@example.com")
	}
}

func TestPostgresProfileRepo_GetByID_NoRows(t *testing.T) {
	conn := openTestDB(t)
	repo := NewPostgresProfileRepo(conn)

	profile, err := repo.GetByID(context.Background(), uuid.NewString())
	if err != nil {
		t.Fatalf("GetByID for a missing row should not error, got: %v", err)
	}
	if profile != nil {
		t.Errorf("GetByID for a missing row = %+v, want nil", profile)
	}
}

func TestPostgresAssessmentRepo_CountByUser(t *testing.T) {
	conn := openTestDB(t)
	repo := NewPostgresAssessmentRepo(conn)
	ctx := context.Background()

	userID := uuid.NewString()
	t.Cleanup(func() {
		_, _ = conn.Exec(`DELETE FROM assessment_results WHERE user_id = $1`, userID)
	})

	count, err := repo.CountByUser(ctx, userID)
	if err != nil {
		t.Fatalf("CountByUser failed: %v", err)
	}
	if count != 0 {
		t.Errorf("count for unknown user = %d, want 0", count)
	}

	for i := 0; i < 2; i++ {
		_, err := conn.Exec(`INSERT INTO assessment_results (user_id) VALUES ($1)`, userID)
		if err != nil {
			t.Fatalf("inserting assessment row failed: %v", err)
		}
	}

	count, err = repo.CountByUser(ctx, userID)
	if err != nil {
		t.Fatalf("CountByUser failed: %v", err)
	}
	if count != 2 {
		t.Errorf("count after two inserts = %d, want 2", count)
	}
}
