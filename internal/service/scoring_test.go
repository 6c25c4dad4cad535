package service

import (
	"testing"

	"quiz_sphere_backend/internal/model"
)

func TestRankFor(t *testing.T) {
	tests := []struct {
		marks int
		want  model.AttemptRank
	}{
		{0, model.RankPoor},
		{19, model.RankPoor},
		{20, model.RankBetter},
		{29, model.RankBetter},
		{30, model.RankGood},
		{39, model.RankGood},
		{40, model.RankExcellent},
		{100, model.RankExcellent},
	}

	for _, tt := range tests {
		if got := rankFor(tt.marks); got != tt.want {
			t.Errorf("rankFor(%d) = %s, want %s", tt.marks, got, tt.want)
		}
	}
}

func TestPercentageOf(t *testing.T) {
	tests := []struct {
		obtained, scale, want int
	}{
		{40, 50, 80},
		{7, 50, 14},
		{49, 50, 98},
		{1, 3, 33},
		{2, 3, 66},
		{0, 50, 0},
		{10, 0, 0},
		{10, -5, 0},
	}

	for _, tt := range tests {
		if got := percentageOf(tt.obtained, tt.scale); got != tt.want {
			t.Errorf("percentageOf(%d, %d) = %d, want %d", tt.obtained, tt.scale, got, tt.want)
		}
	}
}

func TestApplySubmission(t *testing.T) {
	a := model.NewAttempt(1, 1)

	applySubmission(a, 50, 4)
	if a.ObtainedMarks != 4 || a.RemainingQuestions != 9 || a.Percentage != 8 {
		t.Fatalf("after first submission: marks=%d remaining=%d pct=%d", a.ObtainedMarks, a.RemainingQuestions, a.Percentage)
	}

	applySubmission(a, 50, 0)
	if a.ObtainedMarks != 4 || a.RemainingQuestions != 8 {
		t.Fatalf("zero-point submission: marks=%d remaining=%d", a.ObtainedMarks, a.RemainingQuestions)
	}
}

func TestApplySubmissionClampsRemaining(t *testing.T) {
	a := model.NewAttempt(1, 1)
	a.RemainingQuestions = 0

	applySubmission(a, 50, 5)
	if a.RemainingQuestions != 0 {
		t.Fatalf("remaining went negative: %d", a.RemainingQuestions)
	}
	if a.ObtainedMarks != 5 {
		t.Fatalf("marks = %d, want 5", a.ObtainedMarks)
	}
}
