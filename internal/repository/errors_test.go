package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassify(t *testing.T) {
	other := errors.New("connection reset")

	tests := []struct {
		name string
		in   error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", pgx.ErrNoRows, ErrNotFound},
		{"wrapped no rows", fmt.Errorf("scan: %w", pgx.ErrNoRows), ErrNotFound},
		{"unique", &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}, ErrConflict},
		{"foreign key", &pgconn.PgError{Code: "23503"}, ErrConstraint},
		{"check", &pgconn.PgError{Code: "23514"}, ErrConstraint},
		{"other pg error", &pgconn.PgError{Code: "42P01"}, nil},
		{"passthrough", other, other},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.in)
			switch {
			case tt.in == nil:
				if got != nil {
					t.Fatalf("classify(nil) = %v", got)
				}
			case tt.want == nil:
				if errors.Is(got, ErrNotFound) || errors.Is(got, ErrConflict) || errors.Is(got, ErrConstraint) {
					t.Fatalf("classify(%v) = %v, want unmapped", tt.in, got)
				}
			default:
				if !errors.Is(got, tt.want) {
					t.Fatalf("classify(%v) = %v, want %v", tt.in, got, tt.want)
				}
			}
		})
	}
}

func TestMigrationsEmbedded(t *testing.T) {
	content, err := migrationFiles.ReadFile("migrations/001_init.sql")
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	if len(content) == 0 {
		t.Fatal("migration is empty")
	}
}
