package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vocabquiz/internal/domain"
	"vocabquiz/internal/repository"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// CreateUser inserts a new account
func (r *UserRepo) CreateUser(ctx context.Context, email, passwordHash string) (*domain.User, error) {
	u := domain.User{Email: email, PasswordHash: passwordHash}
	query := `
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, email, passwordHash).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return nil, repository.ErrDuplicateEmail
		}
		return nil, err
	}

	return &u, nil
}

// GetUserByEmail returns the account with the given email, or nil if none
func (r *UserRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getUser(ctx, "email", email)
}

// GetUserByID returns the account with the given id, or nil if none
func (r *UserRepo) GetUserByID(ctx context.Context, userID int64) (*domain.User, error) {
	return r.getUser(ctx, "id", userID)
}

// GetUserByTelegramID returns the account linked to a Telegram user, or nil if none
func (r *UserRepo) GetUserByTelegramID(ctx context.Context, telegramID int64) (*domain.User, error) {
	return r.getUser(ctx, "telegram_id", telegramID)
}

// LinkTelegram attaches a Telegram user to an account.
// The Telegram user is detached from any account it was linked to before.
func (r *UserRepo) LinkTelegram(ctx context.Context, userID, telegramID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET telegram_id = NULL WHERE telegram_id = $1 AND id <> $2`,
		telegramID, userID,
	); err != nil {
		return fmt.Errorf("failed to unlink previous account: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET telegram_id = $1 WHERE id = $2`,
		telegramID, userID,
	); err != nil {
		return fmt.Errorf("failed to link account: %w", err)
	}

	return tx.Commit()
}

// getUser looks a user up by one column; column is never user input
func (r *UserRepo) getUser(ctx context.Context, column string, value any) (*domain.User, error) {
	var u domain.User
	var telegramID sql.NullInt64
	query := `SELECT id, email, password_hash, telegram_id, created_at FROM users WHERE ` + column + ` = $1`

	err := r.db.QueryRowContext(ctx, query, value).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &telegramID, &u.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if telegramID.Valid {
		u.TelegramID = &telegramID.Int64
	}

	return &u, nil
}
