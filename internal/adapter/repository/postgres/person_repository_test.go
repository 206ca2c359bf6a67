package postgres

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"os"
	"strings"
	"testing"

	_ "github.com/lib/pq"
)

// These tests need a PostgreSQL database with the AdventureWorks person.person
// table. Set POSTGRES_TEST_URL to run them.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	dsn := os.Getenv("POSTGRES_TEST_URL")
	if dsn == "" {
		t.Skip("POSTGRES_TEST_URL not set")
	}
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to postgres: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping postgres: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestPersonRepository_GetAll(t *testing.T) {
	db := openTestDB(t)
	repo := NewPersonRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil)))

	people, err := repo.GetAll(context.Background())
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(people) == 0 {
		t.Fatal("expected some people")
	}
	if len(people) > pageSize {
		t.Errorf("expected at most %d people, got %d", pageSize, len(people))
	}
}

func TestPersonRepository_SearchByFirstName(t *testing.T) {
	db := openTestDB(t)
	repo := NewPersonRepository(db, slog.New(slog.NewTextHandler(io.Discard, nil)))

	people, err := repo.SearchByFirstName(context.Background(), "AN")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, p := range people {
		if !strings.Contains(strings.ToLower(p.FirstName), "an") {
			t.Errorf("unexpected match %q", p.FirstName)
		}
	}

	none, err := repo.SearchByFirstName(context.Background(), "%")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	for _, p := range none {
		if !strings.Contains(p.FirstName, "%") {
			t.Errorf("wildcard should be literal, matched %q", p.FirstName)
		}
	}
}
