package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"techreads/pkg/models"
)

// Stored is one browser session row: the cookie id on our side, the
// bearer token and profile from the identity endpoint.
type Stored struct {
	ID   string
	Sess models.Session
}

// Repo is the webapp's durable session store, one row per browser.
type Repo struct {
	DB *sql.DB
}

func NewRepo(db *sql.DB) *Repo {
	return &Repo{DB: db}
}

func (r *Repo) Put(ctx context.Context, id string, sess models.Session) error {
	userJSON, err := json.Marshal(sess.User)
	if err != nil {
		return fmt.Errorf("marshal user: %w", err)
	}
	_, err = r.DB.ExecContext(ctx, `
		INSERT INTO sessions (id, token, user_json)
		VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			token = excluded.token,
			user_json = excluded.user_json
	`, id, sess.Token, string(userJSON))
	if err != nil {
		return fmt.Errorf("put session: %w", err)
	}
	return nil
}

func (r *Repo) Get(ctx context.Context, id string) (*Stored, error) {
	row := r.DB.QueryRowContext(ctx, `
		SELECT id, token, user_json FROM sessions WHERE id = ?
	`, id)

	var (
		st       Stored
		userJSON string
	)
	if err := row.Scan(&st.ID, &st.Sess.Token, &userJSON); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	_ = json.Unmarshal([]byte(userJSON), &st.Sess.User)
	return &st, nil
}

func (r *Repo) Delete(ctx context.Context, id string) error {
	if _, err := r.DB.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
