package model

import "time"

// SessionSize is the number of questions in one quiz session.
const SessionSize = 10

// MinQuestionsForQuiz gates availability: a category opens for attempts only
// once it holds more than this many questions. Product rule, not incidental.
const MinQuestionsForQuiz = 9

type AttemptRank string

const (
	RankPoor      AttemptRank = "Poor"
	RankBetter    AttemptRank = "Better"
	RankGood      AttemptRank = "Good"
	RankExcellent AttemptRank = "Excellent"
)

// Attempt is the live state of one user's progress through one category's
// quiz. At most one row per (user, category). Once IsFinished is set no field
// changes again; the row is only ever removed by an explicit delete.
type Attempt struct {
	BaseModel
	UserID             uint        `gorm:"not null;uniqueIndex:idx_attempt_user_category" json:"userId"`
	CategoryID         uint        `gorm:"not null;uniqueIndex:idx_attempt_user_category" json:"categoryId"`
	ObtainedMarks      int         `gorm:"not null;default:0" json:"obtainedMarks"`
	RemainingQuestions int         `gorm:"not null;default:10" json:"remainingQuestions"`
	Percentage         int         `gorm:"not null;default:0" json:"percentage"`
	Rank               AttemptRank `gorm:"size:16" json:"rank,omitempty"`
	IsFinished         bool        `gorm:"not null;default:false" json:"isFinished"`
	FinishedAt         *time.Time  `json:"finishedAt,omitempty"`
}

func (Attempt) TableName() string {
	return "attempts"
}

// NewAttempt returns a freshly opened attempt for the pair.
func NewAttempt(userID, categoryID uint) *Attempt {
	return &Attempt{
		UserID:             userID,
		CategoryID:         categoryID,
		RemainingQuestions: SessionSize,
	}
}
