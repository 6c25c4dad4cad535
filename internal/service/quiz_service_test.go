package service

import (
	"math/rand"
	"testing"

	"quiz_sphere_backend/internal/model"
	"quiz_sphere_backend/internal/util"
)

func newQuizFixture(seed int64) (*QuizService, *AttemptService, *fakeCategoryStore, *fakeQuestionStore) {
	cats := newFakeCategoryStore()
	qs := newFakeQuestionStore()
	attempts := newFakeAttemptStore()
	catalog := NewCategoryService(cats, qs, nil)
	attemptSvc := NewAttemptService(attempts, catalog)
	svc := NewQuizService(attempts, catalog, qs, rand.NewSource(seed))
	return svc, attemptSvc, cats, qs
}

func TestPickRequiresAnAttempt(t *testing.T) {
	svc, _, cats, qs := newQuizFixture(1)
	seedCategory(cats, qs, "Math", 50, 12)

	if _, err := svc.Pick(1, "Math"); !util.IsNotFound(err) {
		t.Fatalf("want not found without an open attempt, got %v", err)
	}
}

func TestPickUnknownCategory(t *testing.T) {
	svc, _, _, _ := newQuizFixture(1)

	if _, err := svc.Pick(1, "Ghost"); !util.IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestPickDrawsRemainingCount(t *testing.T) {
	svc, attemptSvc, cats, qs := newQuizFixture(1)
	seedCategory(cats, qs, "Math", 50, 12)

	if _, err := attemptSvc.Details(1, "Math"); err != nil {
		t.Fatal(err)
	}

	bundle, err := svc.Pick(1, "Math")
	if err != nil {
		t.Fatal(err)
	}
	if bundle.RemainingQuestions != model.SessionSize {
		t.Fatalf("remaining = %d, want %d", bundle.RemainingQuestions, model.SessionSize)
	}
	if len(bundle.Questions) != model.SessionSize {
		t.Fatalf("drew %d questions, want %d", len(bundle.Questions), model.SessionSize)
	}
	if len(bundle.Choices) != len(bundle.Questions) {
		t.Fatalf("choices rows = %d, want %d", len(bundle.Choices), len(bundle.Questions))
	}
}

func TestPickShrinksToRemaining(t *testing.T) {
	svc, attemptSvc, cats, qs := newQuizFixture(1)
	cat := seedCategory(cats, qs, "Math", 50, 12)

	for i := 0; i < 7; i++ {
		if _, err := attemptSvc.Submit(1, cat.ID, 4, false); err != nil {
			t.Fatal(err)
		}
	}

	bundle, err := svc.Pick(1, "Math")
	if err != nil {
		t.Fatal(err)
	}
	if len(bundle.Questions) != 3 {
		t.Fatalf("drew %d questions, want remaining 3", len(bundle.Questions))
	}
}

func TestPickCapsAtPoolSize(t *testing.T) {
	svc, attemptSvc, cats, qs := newQuizFixture(1)
	cat := seedCategory(cats, qs, "Math", 50, 10)

	if _, err := attemptSvc.Details(1, "Math"); err != nil {
		t.Fatal(err)
	}

	// Shrink the visible pool below the remaining count.
	qs.mu.Lock()
	qs.questions[cat.ID] = qs.questions[cat.ID][:4]
	qs.mu.Unlock()

	bundle, err := svc.Pick(1, "Math")
	if err != nil {
		t.Fatal(err)
	}
	if len(bundle.Questions) != 4 {
		t.Fatalf("drew %d questions, want pool size 4", len(bundle.Questions))
	}
}

func TestPickNeverRepeatsWithinOneDraw(t *testing.T) {
	svc, attemptSvc, cats, qs := newQuizFixture(7)
	seedCategory(cats, qs, "Math", 50, 15)

	if _, err := attemptSvc.Details(1, "Math"); err != nil {
		t.Fatal(err)
	}

	for round := 0; round < 20; round++ {
		bundle, err := svc.Pick(1, "Math")
		if err != nil {
			t.Fatal(err)
		}
		seen := make(map[uint]bool)
		for _, q := range bundle.Questions {
			if seen[q.ID] {
				t.Fatalf("question %d repeated within one draw", q.ID)
			}
			seen[q.ID] = true
		}
	}
}

func TestPickIsDeterministicForSeed(t *testing.T) {
	first, attemptSvc, cats, qs := newQuizFixture(99)
	seedCategory(cats, qs, "Math", 50, 12)
	if _, err := attemptSvc.Details(1, "Math"); err != nil {
		t.Fatal(err)
	}

	catalog := NewCategoryService(cats, qs, nil)
	second := NewQuizService(first.Attempts, catalog, qs, rand.NewSource(99))

	a, err := first.Pick(1, "Math")
	if err != nil {
		t.Fatal(err)
	}
	b, err := second.Pick(1, "Math")
	if err != nil {
		t.Fatal(err)
	}

	for i := range a.Questions {
		if a.Questions[i].ID != b.Questions[i].ID {
			t.Fatalf("draw diverged at %d: %d vs %d", i, a.Questions[i].ID, b.Questions[i].ID)
		}
	}
}
