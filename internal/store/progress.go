package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"time"
)

// UpdateCompetencyProgress folds one scored attempt into the learner's
// progress on competency.
func (s *Store) UpdateCompetencyProgress(ctx context.Context, userID, competency string, score float64, correct bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if err := s.upsertProgress(ctx, tx, userID, competency, score, correct); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) upsertProgress(ctx context.Context, tx *sql.Tx, userID, competency string, score float64, correct bool) error {
	p := CompetencyProgress{UserID: userID, Competency: competency}
	err := tx.QueryRowContext(ctx, `
		SELECT attempts, correct, total_score, best_score
		FROM competency_progress WHERE user_id = ? AND competency = ?`,
		userID, competency,
	).Scan(&p.Attempts, &p.Correct, &p.TotalScore, &p.BestScore)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("load progress %q: %w", competency, err)
	}

	p.Attempts++
	if correct {
		p.Correct++
	}
	p.TotalScore += score
	p.BestScore = math.Max(p.BestScore, score)
	p.Level = masteryLevel(p.Attempts, p.AverageScore())
	lastMs := s.now().UnixMilli()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO competency_progress
			(user_id, competency, attempts, correct, total_score, best_score, mastery_level, last_attempt_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, competency) DO UPDATE SET
			attempts = excluded.attempts,
			correct = excluded.correct,
			total_score = excluded.total_score,
			best_score = excluded.best_score,
			mastery_level = excluded.mastery_level,
			last_attempt_at = excluded.last_attempt_at`,
		userID, competency, p.Attempts, p.Correct, p.TotalScore, p.BestScore, string(p.Level), lastMs,
	)
	if err != nil {
		return fmt.Errorf("save progress %q: %w", competency, err)
	}
	return nil
}

// Progress lists a learner's competency progress sorted by competency.
func (s *Store) Progress(ctx context.Context, userID string) ([]CompetencyProgress, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, competency, attempts, correct, total_score, best_score, mastery_level, last_attempt_at
		FROM competency_progress WHERE user_id = ? ORDER BY competency`, userID)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var out []CompetencyProgress
	for rows.Next() {
		var (
			p      CompetencyProgress
			level  string
			lastMs int64
		)
		if err := rows.Scan(&p.UserID, &p.Competency, &p.Attempts, &p.Correct,
			&p.TotalScore, &p.BestScore, &level, &lastMs); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		p.Level = MasteryLevel(level)
		p.LastAttemptAt = time.UnixMilli(lastMs).UTC()
		out = append(out, p)
	}
	return out, rows.Err()
}
