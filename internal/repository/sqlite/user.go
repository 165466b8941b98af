package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tysencreager/MicroMentor/pkg/models"
)

func (r *SQLiteRepo) UpsertUser(ctx context.Context, u *models.User) (*models.User, error) {
	if u == nil {
		return nil, fmt.Errorf("user is nil")
	}

	id := newID(u.ID)
	ts := now()
	_, err := r.conn.Exec(ctx, `
		INSERT INTO users (id, email, first_name, last_name, profile_image_url, role, password_hash, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			email = excluded.email,
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			profile_image_url = excluded.profile_image_url,
			role = excluded.role,
			updated = excluded.updated`,
		id, u.Email, u.FirstName, u.LastName, u.ProfileImageURL, u.Role, u.PasswordHash, ts, ts)
	if err != nil {
		return nil, err
	}

	return r.GetUser(ctx, id)
}

func (r *SQLiteRepo) GetUser(ctx context.Context, id string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, first_name, last_name, profile_image_url, role, password_hash, created, updated FROM users WHERE id = ?`, id)
	return scanUser(row)
}

func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, email, first_name, last_name, profile_image_url, role, password_hash, created, updated FROM users WHERE email = ?`, email)
	return scanUser(row)
}

func (r *SQLiteRepo) UpdateUserRole(ctx context.Context, id, role string) error {
	_, err := r.conn.Exec(ctx, `UPDATE users SET role = ?, updated = ? WHERE id = ?`, role, now(), id)
	return err
}

func scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var email sql.NullString
	if err := row.Scan(&u.ID, &email, &u.FirstName, &u.LastName, &u.ProfileImageURL, &u.Role, &u.PasswordHash, &u.Created, &u.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if email.Valid {
		u.Email = email.String
	}
	return &u, nil
}
