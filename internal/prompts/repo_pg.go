package prompts

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"promptstudio/internal/frameworks"
)

// PGRepo stores prompts in Postgres with the form values as JSONB.
type PGRepo struct {
	DB *sql.DB
}

const promptColumns = `id, user_id, framework_id, title, fields, content, created_at`

func (r *PGRepo) Create(ctx context.Context, p Prompt) error {
	fields, err := json.Marshal(p.Fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}
	const query = `
INSERT INTO prompts (` + promptColumns + `)
VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err = r.DB.ExecContext(ctx, query, p.ID, p.UserID, p.FrameworkID, p.Title, fields, p.Content, p.CreatedAt)
	return err
}

func (r *PGRepo) List(ctx context.Context, userID string, page Page) ([]Prompt, error) {
	page = page.normalized()
	const query = `
SELECT ` + promptColumns + `
FROM prompts
WHERE user_id = $1
ORDER BY created_at DESC, id DESC
LIMIT $2 OFFSET $3`
	rows, err := r.DB.QueryContext(ctx, query, userID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Prompt{}
	for rows.Next() {
		p, err := scanPrompt(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *PGRepo) Get(ctx context.Context, userID, id string) (Prompt, error) {
	const query = `
SELECT ` + promptColumns + `
FROM prompts
WHERE id = $1 AND user_id = $2`
	p, err := scanPrompt(r.DB.QueryRowContext(ctx, query, id, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return Prompt{}, ErrNotFound
	}
	return p, err
}

func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM prompts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) CountForUser(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.DB.QueryRowContext(ctx, `SELECT count(*) FROM prompts WHERE user_id = $1`, userID).Scan(&n)
	return n, err
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPrompt(row rowScanner) (Prompt, error) {
	var (
		p      Prompt
		fields []byte
	)
	if err := row.Scan(&p.ID, &p.UserID, &p.FrameworkID, &p.Title, &fields, &p.Content, &p.CreatedAt); err != nil {
		return Prompt{}, err
	}
	p.Fields = frameworks.FieldValues{}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &p.Fields); err != nil {
			return Prompt{}, fmt.Errorf("decode fields for prompt %s: %w", p.ID, err)
		}
	}
	return p, nil
}
