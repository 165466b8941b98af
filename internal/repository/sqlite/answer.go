package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/tysencreager/MicroMentor/pkg/models"
)

// CreateAnswer inserts the answer and flips the parent question to the
// answered status inside one transaction, so a failure leaves neither half
// applied.
func (r *SQLiteRepo) CreateAnswer(ctx context.Context, a *models.Answer) (*models.Answer, error) {
	if a == nil {
		return nil, fmt.Errorf("answer is nil")
	}

	id := newID(a.ID)
	ts := now()
	err := r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO answers (id, question_id, mentor_id, text, created, updated)
			VALUES (?, ?, ?, ?, ?, ?)`,
			id, a.QuestionID, a.MentorID, a.Text, ts, ts); err != nil {
			return fmt.Errorf("insert answer: %w", err)
		}
		res, err := tx.ExecContext(ctx, `UPDATE questions SET status = ?, updated = ? WHERE id = ?`, models.QuestionAnswered, ts, a.QuestionID)
		if err != nil {
			return fmt.Errorf("update question status: %w", err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if n == 0 {
			return fmt.Errorf("question %s not found", a.QuestionID)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return r.getAnswer(ctx, id)
}

func (r *SQLiteRepo) getAnswer(ctx context.Context, id string) (*models.Answer, error) {
	row := r.conn.QueryRow(ctx, `SELECT id, question_id, mentor_id, text, ai_insights, is_helpful, created, updated FROM answers WHERE id = ?`, id)
	return scanAnswer(row.Scan)
}

func (r *SQLiteRepo) UpdateAnswerInsights(ctx context.Context, id string, insights *models.Insights) error {
	if insights == nil {
		return fmt.Errorf("insights is nil")
	}

	b, err := json.Marshal(insights)
	if err != nil {
		return fmt.Errorf("marshal insights: %w", err)
	}
	_, err = r.conn.Exec(ctx, `UPDATE answers SET ai_insights = ?, updated = ? WHERE id = ?`, string(b), now(), id)
	return err
}

func (r *SQLiteRepo) SetAnswerHelpful(ctx context.Context, id string, helpful bool) error {
	res, err := r.conn.Exec(ctx, `UPDATE answers SET is_helpful = ?, updated = ? WHERE id = ?`, helpful, now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("answer %s not found", id)
	}
	return nil
}

func (r *SQLiteRepo) ListAnswersByMentor(ctx context.Context, mentorID string) ([]models.Answer, error) {
	rows, err := r.conn.QueryRows(ctx, `SELECT id, question_id, mentor_id, text, ai_insights, is_helpful, created, updated FROM answers WHERE mentor_id = ? ORDER BY created DESC, rowid DESC`, mentorID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Answer{}
	for rows.Next() {
		a, err := scanAnswer(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}

	return out, rows.Err()
}

func scanAnswer(scan func(dest ...any) error) (*models.Answer, error) {
	var a models.Answer
	var insights sql.NullString
	var helpful sql.NullBool
	if err := scan(&a.ID, &a.QuestionID, &a.MentorID, &a.Text, &insights, &helpful, &a.Created, &a.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if insights.Valid && insights.String != "" {
		var ins models.Insights
		if err := json.Unmarshal([]byte(insights.String), &ins); err == nil {
			a.AIInsights = &ins
		}
	}
	if helpful.Valid {
		v := helpful.Bool
		a.IsHelpful = &v
	}
	return &a, nil
}
