package store

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rokuro32/staticamaster/internal/question"
	"github.com/rokuro32/staticamaster/internal/validation"
)

// RecordAttempt stores a and returns its id. A zero CreatedAt is stamped
// with the store clock.
func (s *Store) RecordAttempt(ctx context.Context, a Attempt) (string, error) {
	return s.insertAttempt(ctx, s.db, a)
}

func (s *Store) insertAttempt(ctx context.Context, db execer, a Attempt) (string, error) {
	if a.UserID == "" || a.QuestionID == "" {
		return "", fmt.Errorf("record attempt: user and question ids are required")
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = s.now()
	}
	if len(a.Answer) == 0 {
		a.Answer = json.RawMessage("{}")
	}
	if len(a.Result) == 0 {
		a.Result = json.RawMessage("{}")
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO attempts (id, user_id, question_id, module_id, question_type, seed,
			answer_json, result_json, score, is_correct, time_spent_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.UserID, a.QuestionID, a.ModuleID, a.QuestionType, a.Seed,
		string(a.Answer), string(a.Result), a.Score, a.IsCorrect,
		a.TimeSpent.Milliseconds(), a.CreatedAt.UnixMilli(),
	)
	if err != nil {
		return "", fmt.Errorf("record attempt: %w", err)
	}
	return a.ID, nil
}

// Attempts returns a user's attempts, newest first.
func (s *Store) Attempts(ctx context.Context, userID string, opts QueryOpts) ([]Attempt, error) {
	var (
		where = []string{"user_id = ?"}
		args  = []any{userID}
	)
	if opts.ModuleID != "" {
		where = append(where, "module_id = ?")
		args = append(args, opts.ModuleID)
	}
	if !opts.From.IsZero() {
		where = append(where, "created_at >= ?")
		args = append(args, opts.From.UnixMilli())
	}
	if !opts.To.IsZero() {
		where = append(where, "created_at <= ?")
		args = append(args, opts.To.UnixMilli())
	}
	query := `SELECT id, user_id, question_id, module_id, question_type, seed,
			answer_json, result_json, score, is_correct, time_spent_ms, created_at
		FROM attempts WHERE ` + strings.Join(where, " AND ") + ` ORDER BY created_at DESC, id`
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	defer rows.Close()

	var out []Attempt
	for rows.Next() {
		var (
			a                  Attempt
			answer, result     string
			spentMs, createdMs int64
		)
		if err := rows.Scan(&a.ID, &a.UserID, &a.QuestionID, &a.ModuleID, &a.QuestionType, &a.Seed,
			&answer, &result, &a.Score, &a.IsCorrect, &spentMs, &createdMs); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		a.Answer = json.RawMessage(answer)
		a.Result = json.RawMessage(result)
		a.TimeSpent = time.Duration(spentMs) * time.Millisecond
		a.CreatedAt = time.UnixMilli(createdMs).UTC()
		out = append(out, a)
	}
	return out, rows.Err()
}

// RecordValidation stores the attempt behind r and updates the progress of
// every competency r assessed. It returns the attempt id.
func (s *Store) RecordValidation(ctx context.Context, userID string, q *question.Instance, a *validation.UserAnswer, r *validation.Result) (string, error) {
	answer, err := json.Marshal(a)
	if err != nil {
		return "", fmt.Errorf("marshal answer: %w", err)
	}
	result, err := json.Marshal(r)
	if err != nil {
		return "", fmt.Errorf("marshal result: %w", err)
	}

	att := Attempt{
		UserID:       userID,
		QuestionID:   q.ID,
		ModuleID:     q.ModuleID,
		QuestionType: string(q.Type),
		Seed:         q.Seed,
		Answer:       answer,
		Result:       result,
		Score:        r.Score,
		IsCorrect:    r.IsCorrect,
	}
	if a != nil {
		att.TimeSpent = a.TimeSpent()
		if !a.Timestamp.IsZero() {
			att.CreatedAt = a.Timestamp
		}
	}

	// The attempt and its progress updates land together or not at all.
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	id, err := s.insertAttempt(ctx, tx, att)
	if err != nil {
		return "", err
	}
	for _, c := range r.CompetenciesAssessed {
		if err := s.upsertProgress(ctx, tx, userID, c, r.Score, r.IsCorrect); err != nil {
			return "", err
		}
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit attempt: %w", err)
	}
	return id, nil
}
