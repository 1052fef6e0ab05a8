package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"vocabquiz/internal/domain"
)

const wordColumns = `id, user_id, name, meaning, pronunciation, created_at`

// WordRepo implements repository.WordRepository
type WordRepo struct {
	db *sql.DB
}

// NewWordRepo creates a new word repository
func NewWordRepo(db *sql.DB) *WordRepo {
	return &WordRepo{db: db}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWord(s rowScanner) (*domain.Word, error) {
	var w domain.Word
	if err := s.Scan(&w.ID, &w.OwnerID, &w.Name, &w.Meaning, &w.Pronunciation, &w.CreatedAt); err != nil {
		return nil, err
	}
	return &w, nil
}

// searchPattern turns free text into an ILIKE pattern; empty text matches everything
func searchPattern(search string) string {
	search = strings.TrimSpace(search)
	replacer := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + replacer.Replace(search) + "%"
}

// SaveWord saves a single word
func (r *WordRepo) SaveWord(ctx context.Context, ownerID int64, input domain.WordInput) (*domain.Word, error) {
	w := domain.Word{
		OwnerID:       ownerID,
		Name:          input.Name,
		Meaning:       input.Meaning,
		Pronunciation: input.Pronunciation,
	}
	query := `
		INSERT INTO words (user_id, name, meaning, pronunciation)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	err := r.db.QueryRowContext(ctx, query, ownerID, input.Name, input.Meaning, input.Pronunciation).
		Scan(&w.ID, &w.CreatedAt)
	if err != nil {
		return nil, err
	}

	return &w, nil
}

// SaveWords saves a batch of words in one transaction and returns how many were inserted
func (r *WordRepo) SaveWords(ctx context.Context, ownerID int64, inputs []domain.WordInput) (int, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO words (user_id, name, meaning, pronunciation)
		VALUES ($1, $2, $3, $4)
	`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for i, in := range inputs {
		if _, err := stmt.ExecContext(ctx, ownerID, in.Name, in.Meaning, in.Pronunciation); err != nil {
			return 0, fmt.Errorf("failed to insert row %d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	return len(inputs), nil
}

// GetWord returns one word of the owner, or nil if it does not exist
func (r *WordRepo) GetWord(ctx context.Context, ownerID, wordID int64) (*domain.Word, error) {
	query := `SELECT ` + wordColumns + ` FROM words WHERE id = $1 AND user_id = $2`

	w, err := scanWord(r.db.QueryRowContext(ctx, query, wordID, ownerID))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return w, err
}

// ListWords returns a page of the owner's words, newest first
func (r *WordRepo) ListWords(ctx context.Context, ownerID int64, search string, limit, offset int) ([]domain.Word, error) {
	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE user_id = $1
			AND (name ILIKE $2 OR meaning ILIKE $2 OR pronunciation ILIKE $2)
		ORDER BY created_at DESC, id DESC
		LIMIT $3 OFFSET $4
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID, searchPattern(search), limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWords(rows)
}

// CountWords returns how many of the owner's words match search
func (r *WordRepo) CountWords(ctx context.Context, ownerID int64, search string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM words
		WHERE user_id = $1
			AND (name ILIKE $2 OR meaning ILIKE $2 OR pronunciation ILIKE $2)
	`

	var count int
	err := r.db.QueryRowContext(ctx, query, ownerID, searchPattern(search)).Scan(&count)
	return count, err
}

// UpdateWord edits a word of the owner and returns it, or nil if it does not exist
func (r *WordRepo) UpdateWord(ctx context.Context, ownerID, wordID int64, input domain.WordInput) (*domain.Word, error) {
	query := `
		UPDATE words
		SET name = $1, meaning = $2, pronunciation = $3
		WHERE id = $4 AND user_id = $5
		RETURNING ` + wordColumns

	w, err := scanWord(r.db.QueryRowContext(ctx, query,
		input.Name, input.Meaning, input.Pronunciation, wordID, ownerID,
	))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return w, err
}

// DeleteWord removes a word of the owner and reports whether it existed
func (r *WordRepo) DeleteWord(ctx context.Context, ownerID, wordID int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM words WHERE id = $1 AND user_id = $2`, wordID, ownerID)
	if err != nil {
		return false, err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	return affected > 0, nil
}

// GetQuizWords returns every word of the owner that has a meaning
func (r *WordRepo) GetQuizWords(ctx context.Context, ownerID int64) ([]domain.Word, error) {
	query := `
		SELECT ` + wordColumns + `
		FROM words
		WHERE user_id = $1 AND meaning <> ''
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectWords(rows)
}

func collectWords(rows *sql.Rows) ([]domain.Word, error) {
	var words []domain.Word
	for rows.Next() {
		w, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, *w)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return words, nil
}
