package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/tysencreager/MicroMentor/pkg/models"
	"github.com/tysencreager/MicroMentor/pkg/repository"
)

const applicationColumns = `id, user_id, status, current_title, current_company, work_email, linkedin_profile,
	years_experience, expertise, industries, education, work_history, certifications,
	bio, mentoring_experience, mentoring_motivation, availability_hours, preferred_categories, "references",
	work_email_verified, linkedin_verified, background_check_status, references_contacted,
	admin_notes, rejection_reason, reviewed_by, reviewed_at, created, updated`

func (r *SQLiteRepo) CreateApplication(ctx context.Context, a *models.MentorApplication) (*models.MentorApplication, error) {
	if a == nil {
		return nil, fmt.Errorf("application is nil")
	}

	id := newID(a.ID)
	ts := now()
	status := a.Status
	if status == "" {
		status = models.ApplicationPending
	}
	refs, err := json.Marshal(a.References)
	if err != nil {
		return nil, fmt.Errorf("marshal references: %w", err)
	}
	education := blobOrDefault(a.Education, `{}`)
	workHistory := blobOrDefault(a.WorkHistory, `[]`)
	var certifications any
	if len(a.Certifications) > 0 {
		certifications = string(a.Certifications)
	}

	_, err = r.conn.Exec(ctx, `
		INSERT INTO mentor_applications (id, user_id, status, current_title, current_company, work_email, linkedin_profile,
			years_experience, expertise, industries, education, work_history, certifications,
			bio, mentoring_experience, mentoring_motivation, availability_hours, preferred_categories, "references",
			background_check_status, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, a.UserID, status, a.CurrentTitle, a.CurrentCompany, a.WorkEmail, a.LinkedinProfile,
		a.YearsExperience, marshalList(a.Expertise), marshalList(a.Industries), education, workHistory, certifications,
		a.Bio, a.MentoringExperience, a.MentoringMotivation, a.AvailabilityHours, marshalList(a.PreferredCategories), string(refs),
		models.BackgroundPending, ts, ts)
	if err != nil {
		return nil, err
	}

	return r.GetApplication(ctx, id)
}

func (r *SQLiteRepo) GetApplication(ctx context.Context, id string) (*models.MentorApplication, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+applicationColumns+` FROM mentor_applications WHERE id = ?`, id)
	return scanApplication(row.Scan)
}

func (r *SQLiteRepo) GetApplicationByUser(ctx context.Context, userID string) (*models.MentorApplication, error) {
	row := r.conn.QueryRow(ctx, `SELECT `+applicationColumns+` FROM mentor_applications WHERE user_id = ?`, userID)
	return scanApplication(row.Scan)
}

func (r *SQLiteRepo) ListApplications(ctx context.Context) ([]models.MentorApplication, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT `+applicationColumns+` FROM mentor_applications ORDER BY created DESC, rowid DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.MentorApplication{}
	for rows.Next() {
		a, err := scanApplication(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}

	return out, rows.Err()
}

// UpdateApplicationStatus persists the review decision. A review timestamp is
// stamped when the new status is terminal (approved or rejected). Notes,
// rejection reason, and reviewer are stored only when provided.
func (r *SQLiteRepo) UpdateApplicationStatus(ctx context.Context, id string, upd repository.ApplicationStatusUpdate) (*models.MentorApplication, error) {
	ts := now()
	query := `UPDATE mentor_applications SET status = ?, updated = ?`
	args := []any{upd.Status, ts}
	if upd.AdminNotes != "" {
		query += `, admin_notes = ?`
		args = append(args, upd.AdminNotes)
	}
	if upd.RejectionReason != "" {
		query += `, rejection_reason = ?`
		args = append(args, upd.RejectionReason)
	}
	if upd.ReviewedBy != "" {
		query += `, reviewed_by = ?`
		args = append(args, upd.ReviewedBy)
	}
	if upd.Status == models.ApplicationApproved || upd.Status == models.ApplicationRejected {
		query += `, reviewed_at = ?`
		args = append(args, ts)
	}
	query += ` WHERE id = ?`
	args = append(args, id)

	res, err := r.conn.Exec(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return nil, err
	}
	if n == 0 {
		return nil, fmt.Errorf("application %s not found", id)
	}

	return r.GetApplication(ctx, id)
}

func blobOrDefault(b json.RawMessage, def string) string {
	if len(b) > 0 {
		return string(b)
	}
	return def
}

func scanApplication(scan func(dest ...any) error) (*models.MentorApplication, error) {
	var a models.MentorApplication
	var expertise, industries, preferred, refs string
	var education, workHistory string
	var certifications sql.NullString
	var reviewedAt sql.NullInt64
	if err := scan(&a.ID, &a.UserID, &a.Status, &a.CurrentTitle, &a.CurrentCompany, &a.WorkEmail, &a.LinkedinProfile,
		&a.YearsExperience, &expertise, &industries, &education, &workHistory, &certifications,
		&a.Bio, &a.MentoringExperience, &a.MentoringMotivation, &a.AvailabilityHours, &preferred, &refs,
		&a.WorkEmailVerified, &a.LinkedinVerified, &a.BackgroundCheckStatus, &a.ReferencesContacted,
		&a.AdminNotes, &a.RejectionReason, &a.ReviewedBy, &reviewedAt, &a.Created, &a.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	a.Expertise = unmarshalList(expertise)
	a.Industries = unmarshalList(industries)
	a.PreferredCategories = unmarshalList(preferred)
	a.Education = json.RawMessage(education)
	a.WorkHistory = json.RawMessage(workHistory)
	if certifications.Valid && certifications.String != "" {
		a.Certifications = json.RawMessage(certifications.String)
	}
	if err := json.Unmarshal([]byte(refs), &a.References); err != nil {
		a.References = []models.Reference{}
	}
	if reviewedAt.Valid {
		v := reviewedAt.Int64
		a.ReviewedAt = &v
	}
	return &a, nil
}
