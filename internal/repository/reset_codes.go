package repository

import (
	"context"
	"fmt"

	"AIRESCAPE_BACK-END/internal/models"
)

// CreateResetCode stores a freshly issued password reset code
func (s *Store) CreateResetCode(ctx context.Context, rc models.PasswordResetCode) (models.PasswordResetCode, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	err := s.pool.QueryRow(ctx, `
		INSERT INTO password_reset_codes (user_id, email, code, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, used, created_at`,
		rc.UserID, rc.Email, rc.Code, rc.ExpiresAt,
	).Scan(&rc.ID, &rc.Used, &rc.CreatedAt)
	return rc, classify(err)
}

// LatestResetCode returns the most recent code issued to a user
func (s *Store) LatestResetCode(ctx context.Context, userID int64) (models.PasswordResetCode, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	var rc models.PasswordResetCode
	err := s.pool.QueryRow(ctx, `
		SELECT id, user_id, email, code, expires_at, used, created_at
		FROM password_reset_codes
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1`, userID,
	).Scan(&rc.ID, &rc.UserID, &rc.Email, &rc.Code, &rc.ExpiresAt, &rc.Used, &rc.CreatedAt)
	return rc, classify(err)
}

// ResetPassword stores the new hash and burns every outstanding code for the user
func (s *Store) ResetPassword(ctx context.Context, userID int64, passwordHash string) error {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to start transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	tag, err := tx.Exec(ctx, `UPDATE users SET password_hash = $1, updated_at = NOW() WHERE id = $2`, passwordHash, userID)
	if err != nil {
		return classify(err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	if _, err := tx.Exec(ctx, `UPDATE password_reset_codes SET used = TRUE WHERE user_id = $1 AND used = FALSE`, userID); err != nil {
		return classify(err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit password reset: %w", err)
	}
	return nil
}
