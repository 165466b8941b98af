package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/tysencreager/MicroMentor/pkg/models"
)

func (r *SQLiteRepo) CreateQuestion(ctx context.Context, q *models.Question) (*models.Question, error) {
	if q == nil {
		return nil, fmt.Errorf("question is nil")
	}

	id := newID(q.ID)
	ts := now()
	status := q.Status
	if status == "" {
		status = models.QuestionPending
	}
	_, err := r.conn.Exec(ctx, `
		INSERT INTO questions (id, mentee_id, text, category, is_public, status, created, updated)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		id, q.MenteeID, q.Text, q.Category, q.IsPublic, status, ts, ts)
	if err != nil {
		return nil, err
	}

	return r.GetQuestion(ctx, id)
}

func (r *SQLiteRepo) GetQuestion(ctx context.Context, id string) (*models.Question, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, mentee_id, text, category, is_public, status, created, updated FROM questions WHERE id = ?`, id)
	var q models.Question
	if err := row.Scan(&q.ID, &q.MenteeID, &q.Text, &q.Category, &q.IsPublic, &q.Status, &q.Created, &q.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &q, nil
}

func (r *SQLiteRepo) ListQuestionsByMentee(ctx context.Context, menteeID string) ([]models.QuestionWithAnswers, error) {
	return r.listQuestions(ctx, `WHERE mentee_id = ?`, menteeID)
}

func (r *SQLiteRepo) ListPendingQuestions(ctx context.Context) ([]models.QuestionWithAnswers, error) {
	return r.listQuestions(ctx, `WHERE status = ?`, models.QuestionPending)
}

func (r *SQLiteRepo) listQuestions(ctx context.Context, where string, args ...any) ([]models.QuestionWithAnswers, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, mentee_id, text, category, is_public, status, created, updated FROM questions `+where+` ORDER BY created DESC, rowid DESC`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.QuestionWithAnswers{}
	for rows.Next() {
		var q models.QuestionWithAnswers
		if err := rows.Scan(&q.ID, &q.MenteeID, &q.Text, &q.Category, &q.IsPublic, &q.Status, &q.Created, &q.Updated); err != nil {
			return nil, err
		}
		out = append(out, q)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		answers, err := r.listAnswersForQuestion(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Answers = answers
	}

	return out, nil
}

func (r *SQLiteRepo) listAnswersForQuestion(ctx context.Context, questionID string) ([]models.AnswerWithMentor, error) {
	rows, err := r.conn.QueryRows(ctx, `
		SELECT a.id, a.question_id, a.mentor_id, a.text, a.ai_insights, a.is_helpful, a.created, a.updated,
		       u.id, u.email, u.first_name, u.last_name, u.profile_image_url, u.role, u.created, u.updated,
		       p.id, p.user_id, p.title, p.company, p.bio, p.expertise, p.weekly_capacity, p.is_active, p.created, p.updated
		FROM answers a
		JOIN users u ON u.id = a.mentor_id
		LEFT JOIN mentor_profiles p ON p.user_id = u.id
		WHERE a.question_id = ?
		ORDER BY a.created ASC`, questionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.AnswerWithMentor{}
	for rows.Next() {
		var aw models.AnswerWithMentor
		var u models.User
		var email sql.NullString
		var insights sql.NullString
		var helpful sql.NullBool
		var pID, pUserID, pTitle, pCompany, pBio, pExpertise sql.NullString
		var pCapacity sql.NullInt64
		var pActive sql.NullBool
		var pCreated, pUpdated sql.NullInt64
		if err := rows.Scan(&aw.Answer.ID, &aw.QuestionID, &aw.MentorID, &aw.Answer.Text, &insights, &helpful, &aw.Answer.Created, &aw.Answer.Updated,
			&u.ID, &email, &u.FirstName, &u.LastName, &u.ProfileImageURL, &u.Role, &u.Created, &u.Updated,
			&pID, &pUserID, &pTitle, &pCompany, &pBio, &pExpertise, &pCapacity, &pActive, &pCreated, &pUpdated); err != nil {
			return nil, err
		}
		if email.Valid {
			u.Email = email.String
		}
		if insights.Valid && insights.String != "" {
			var ins models.Insights
			if err := json.Unmarshal([]byte(insights.String), &ins); err == nil {
				aw.AIInsights = &ins
			}
		}
		if helpful.Valid {
			v := helpful.Bool
			aw.IsHelpful = &v
		}
		aw.Mentor = &u
		if pID.Valid {
			aw.MentorProfile = &models.MentorProfile{
				ID:             pID.String,
				UserID:         pUserID.String,
				Title:          pTitle.String,
				Company:        pCompany.String,
				Bio:            pBio.String,
				Expertise:      unmarshalList(pExpertise.String),
				WeeklyCapacity: int(pCapacity.Int64),
				IsActive:       pActive.Bool,
				Created:        pCreated.Int64,
				Updated:        pUpdated.Int64,
			}
		}
		out = append(out, aw)
	}

	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateQuestionStatus(ctx context.Context, id, status string) error {
	res, err := r.conn.Exec(ctx, `UPDATE questions SET status = ?, updated = ? WHERE id = ?`, status, now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("question %s not found", id)
	}
	return nil
}
