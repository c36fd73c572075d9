package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"AIRESCAPE_BACK-END/internal/models"
)

const userColumns = `id, title, first_name, last_name, email, password_hash, role, phone, created_at, updated_at`

func scanUser(row pgx.Row) (models.User, error) {
	var u models.User
	err := row.Scan(
		&u.ID,
		&u.Title,
		&u.FirstName,
		&u.LastName,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.Phone,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

// CreateUser inserts a user. Emails are stored lower-cased.
func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.pool.QueryRow(ctx, `
		INSERT INTO users (title, first_name, last_name, email, password_hash, role, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING `+userColumns,
		u.Title, u.FirstName, u.LastName, strings.ToLower(u.Email), u.PasswordHash, u.Role, u.Phone,
	)
	created, err := scanUser(row)
	return created, classify(err)
}

// GetUser returns the user with the given id
func (s *Store) GetUser(ctx context.Context, id int64) (models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u, err := scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	return u, classify(err)
}

// GetUserByEmail looks a user up case-insensitively
func (s *Store) GetUserByEmail(ctx context.Context, email string) (models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	u, err := scanUser(s.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(strings.TrimSpace(email))))
	return u, classify(err)
}

// ListUsers returns every user ordered by id
func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY id`)
	if err != nil {
		return nil, classify(err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// UpdateUser writes every mutable column of u
func (s *Store) UpdateUser(ctx context.Context, u models.User) (models.User, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	row := s.pool.QueryRow(ctx, `
		UPDATE users
		SET title = $2, first_name = $3, last_name = $4, email = $5,
		    password_hash = $6, role = $7, phone = $8, updated_at = NOW()
		WHERE id = $1
		RETURNING `+userColumns,
		u.ID, u.Title, u.FirstName, u.LastName, strings.ToLower(u.Email), u.PasswordHash, u.Role, u.Phone,
	)
	updated, err := scanUser(row)
	return updated, classify(err)
}

// DeleteUser removes a user together with their bookings and saved items. Seats held by
// the user's live flight bookings go back to the flights before the cascade.
func (s *Store) DeleteUser(ctx context.Context, id int64) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `
		UPDATE flights f
		SET seats_available = f.seats_available + held.seats
		FROM (
			SELECT flight_id, SUM(seats)::int AS seats
			FROM bookings
			WHERE user_id = $1 AND flight_id IS NOT NULL AND booking_status <> $2
			GROUP BY flight_id
		) held
		WHERE f.id = held.flight_id`,
		id, models.BookingStatusCancelled,
	); err != nil {
		return classify(err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit user delete: %w", err)
	}
	return nil
}
