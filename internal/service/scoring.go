package service

import "quiz_sphere_backend/internal/model"

// Pure attempt-state arithmetic. Kept free of storage so the transition rules
// can be tested in isolation.

// applySubmission folds one answered question into an open attempt:
// marks accumulate, the countdown decreases but never below zero, and the
// percentage is recomputed against the category scale.
func applySubmission(a *model.Attempt, scaleMarks, pointsEarned int) {
	a.ObtainedMarks += pointsEarned
	if a.RemainingQuestions > 0 {
		a.RemainingQuestions--
	}
	a.Percentage = percentageOf(a.ObtainedMarks, scaleMarks)
}

// percentageOf floors, matching integer division in the source of record.
func percentageOf(obtained, scale int) int {
	if scale <= 0 {
		return 0
	}
	return obtained * 100 / scale
}

// rankFor maps final marks onto the fixed rank ladder.
func rankFor(obtainedMarks int) model.AttemptRank {
	switch {
	case obtainedMarks < 20:
		return model.RankPoor
	case obtainedMarks < 30:
		return model.RankBetter
	case obtainedMarks < 40:
		return model.RankGood
	default:
		return model.RankExcellent
	}
}
