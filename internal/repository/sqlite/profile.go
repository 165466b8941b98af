package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/tysencreager/MicroMentor/pkg/models"
)

func (r *SQLiteRepo) CreateMentorProfile(ctx context.Context, p *models.MentorProfile) (*models.MentorProfile, error) {
	if p == nil {
		return nil, fmt.Errorf("profile is nil")
	}

	id := newID(p.ID)
	ts := now()
	if p.WeeklyCapacity <= 0 {
		p.WeeklyCapacity = 5
	}
	_, err := r.conn.Exec(ctx, `
		INSERT INTO mentor_profiles (id, user_id, title, company, bio, expertise, weekly_capacity, is_active, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, p.UserID, p.Title, p.Company, p.Bio, marshalList(p.Expertise), p.WeeklyCapacity, p.IsActive, ts, ts)
	if err != nil {
		return nil, err
	}

	return r.getProfileByID(ctx, id)
}

func (r *SQLiteRepo) GetMentorProfile(ctx context.Context, userID string) (*models.MentorProfile, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, title, company, bio, expertise, weekly_capacity, is_active, created, updated FROM mentor_profiles WHERE user_id = ?`, userID)
	return scanProfile(row.Scan)
}

func (r *SQLiteRepo) getProfileByID(ctx context.Context, id string) (*models.MentorProfile, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, user_id, title, company, bio, expertise, weekly_capacity, is_active, created, updated FROM mentor_profiles WHERE id = ?`, id)
	return scanProfile(row.Scan)
}

func (r *SQLiteRepo) UpdateMentorProfile(ctx context.Context, p *models.MentorProfile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	_, err := r.conn.Exec(ctx, `
		UPDATE mentor_profiles SET title = ?, company = ?, bio = ?, expertise = ?, weekly_capacity = ?, is_active = ?, updated = ?
		WHERE user_id = ?`,
		p.Title, p.Company, p.Bio, marshalList(p.Expertise), p.WeeklyCapacity, p.IsActive, now(), p.UserID)
	return err
}

func (r *SQLiteRepo) ListActiveMentors(ctx context.Context) ([]models.MentorWithProfile, error) {
	rows, err := r.conn.QueryRows(ctx, `
		SELECT u.id, u.email, u.first_name, u.last_name, u.profile_image_url, u.role, u.created, u.updated,
		       p.id, p.user_id, p.title, p.company, p.bio, p.expertise, p.weekly_capacity, p.is_active, p.created, p.updated
		FROM users u
		JOIN mentor_profiles p ON p.user_id = u.id
		WHERE p.is_active = 1
		ORDER BY p.created ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.MentorWithProfile{}
	for rows.Next() {
		var m models.MentorWithProfile
		var p models.MentorProfile
		var email sql.NullString
		var expertise string
		if err := rows.Scan(&m.ID, &email, &m.FirstName, &m.LastName, &m.ProfileImageURL, &m.Role, &m.Created, &m.Updated,
			&p.ID, &p.UserID, &p.Title, &p.Company, &p.Bio, &expertise, &p.WeeklyCapacity, &p.IsActive, &p.Created, &p.Updated); err != nil {
			return nil, err
		}
		if email.Valid {
			m.Email = email.String
		}
		p.Expertise = unmarshalList(expertise)
		m.MentorProfile = &p
		out = append(out, m)
	}

	return out, rows.Err()
}

func scanProfile(scan func(dest ...any) error) (*models.MentorProfile, error) {
	var p models.MentorProfile
	var expertise string
	if err := scan(&p.ID, &p.UserID, &p.Title, &p.Company, &p.Bio, &expertise, &p.WeeklyCapacity, &p.IsActive, &p.Created, &p.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	p.Expertise = unmarshalList(expertise)
	return &p, nil
}
