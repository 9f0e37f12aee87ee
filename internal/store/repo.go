package store

import (
	"encoding/json"
	"time"
)

// QueryOpts configures attempt queries with filtering and pagination.
type QueryOpts struct {
	Limit    int       // max results (0 = unlimited)
	ModuleID string    // exact module match, when set
	From     time.Time // created_at >= From
	To       time.Time // created_at <= To
}

// Attempt is one validated submission.
type Attempt struct {
	ID           string
	UserID       string
	QuestionID   string
	ModuleID     string
	QuestionType string
	Seed         int64
	Answer       json.RawMessage
	Result       json.RawMessage
	Score        float64
	IsCorrect    bool
	TimeSpent    time.Duration
	CreatedAt    time.Time
}

// MasteryLevel summarizes how well a learner holds a competency.
type MasteryLevel string

const (
	LevelNew        MasteryLevel = "new"
	LevelLearning   MasteryLevel = "learning"
	LevelProficient MasteryLevel = "proficient"
	LevelMastered   MasteryLevel = "mastered"
)

// CompetencyProgress aggregates a learner's attempts on one competency.
type CompetencyProgress struct {
	UserID        string       `json:"userId"`
	Competency    string       `json:"competency"`
	Attempts      int          `json:"attempts"`
	Correct       int          `json:"correct"`
	TotalScore    float64      `json:"totalScore"`
	BestScore     float64      `json:"bestScore"`
	Level         MasteryLevel `json:"masteryLevel"`
	LastAttemptAt time.Time    `json:"lastAttemptAt"`
}

// AverageScore is the mean score over all attempts.
func (p CompetencyProgress) AverageScore() float64 {
	if p.Attempts == 0 {
		return 0
	}
	return p.TotalScore / float64(p.Attempts)
}

// Accuracy is the share of correct attempts in [0, 1].
func (p CompetencyProgress) Accuracy() float64 {
	if p.Attempts == 0 {
		return 0
	}
	return float64(p.Correct) / float64(p.Attempts)
}

// masteryLevel derives the level from the attempt count and average score.
// A competency needs at least three attempts to leave "learning" and five
// to be mastered.
func masteryLevel(attempts int, avg float64) MasteryLevel {
	switch {
	case attempts == 0:
		return LevelNew
	case attempts < 3:
		return LevelLearning
	case attempts >= 5 && avg >= 90:
		return LevelMastered
	case avg >= 70:
		return LevelProficient
	default:
		return LevelLearning
	}
}
