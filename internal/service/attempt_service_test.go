package service

import (
	"strings"
	"sync"
	"testing"

	"quiz_sphere_backend/internal/model"
	"quiz_sphere_backend/internal/util"
)

func newAttemptFixture() (*AttemptService, *fakeAttemptStore, *fakeCategoryStore, *fakeQuestionStore) {
	cats := newFakeCategoryStore()
	qs := newFakeQuestionStore()
	attempts := newFakeAttemptStore()
	catalog := NewCategoryService(cats, qs, nil)
	svc := NewAttemptService(attempts, catalog)
	return svc, attempts, cats, qs
}

func TestDetailsUnavailableCategoryCreatesNoRecord(t *testing.T) {
	svc, attempts, cats, qs := newAttemptFixture()
	seedCategory(cats, qs, "History", 50, 9)

	details, err := svc.Details(1, "History")
	if err != nil {
		t.Fatal(err)
	}
	if details.Available {
		t.Fatal("category with 9 questions should not be available")
	}
	if !strings.Contains(details.Reason, "not available") {
		t.Fatalf("reason = %q", details.Reason)
	}
	if a, _ := attempts.Find(1, 1); a != nil {
		t.Fatal("no attempt record should exist for an unavailable category")
	}
}

func TestDetailsOpensFreshAttempt(t *testing.T) {
	svc, attempts, cats, qs := newAttemptFixture()
	cat := seedCategory(cats, qs, "Math", 50, 10)

	details, err := svc.Details(1, "Math")
	if err != nil {
		t.Fatal(err)
	}
	if !details.Available || details.IsAttempt {
		t.Fatalf("fresh attempt: available=%v isAttempt=%v", details.Available, details.IsAttempt)
	}

	a, _ := attempts.Find(1, cat.ID)
	if a == nil {
		t.Fatal("details should lazily create the attempt record")
	}
	if a.RemainingQuestions != model.SessionSize {
		t.Fatalf("remaining = %d, want %d", a.RemainingQuestions, model.SessionSize)
	}

	// Nothing answered yet, so a second lookup still reports a fresh attempt.
	details, err = svc.Details(1, "Math")
	if err != nil {
		t.Fatal(err)
	}
	if details.IsAttempt {
		t.Fatal("untouched attempt should not count as in progress")
	}
}

func TestDetailsReportsInProgressAttempt(t *testing.T) {
	svc, _, cats, qs := newAttemptFixture()
	cat := seedCategory(cats, qs, "Math", 50, 10)

	if _, err := svc.Submit(1, cat.ID, 4, false); err != nil {
		t.Fatal(err)
	}

	details, err := svc.Details(1, "Math")
	if err != nil {
		t.Fatal(err)
	}
	if !details.IsAttempt {
		t.Fatal("attempt with one answer should be in progress")
	}
	if details.Attempt == nil || details.Attempt.ObtainedMarks != 4 {
		t.Fatalf("attempt payload = %+v", details.Attempt)
	}
	if details.ScaleMarks != 50 {
		t.Fatalf("scale marks = %d, want 50", details.ScaleMarks)
	}
}

func TestDetailsUnknownCategory(t *testing.T) {
	svc, _, _, _ := newAttemptFixture()

	_, err := svc.Details(1, "Ghost")
	if !util.IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
}

func TestSubmitRejectsNegativePoints(t *testing.T) {
	svc, _, cats, qs := newAttemptFixture()
	cat := seedCategory(cats, qs, "Math", 50, 10)

	_, err := svc.Submit(1, cat.ID, -1, false)
	if !util.IsInvalidInput(err) {
		t.Fatalf("want invalid input, got %v", err)
	}
}

func TestSubmitSeedsMissingAttempt(t *testing.T) {
	svc, attempts, cats, qs := newAttemptFixture()
	cat := seedCategory(cats, qs, "Math", 50, 10)

	msg, err := svc.Submit(1, cat.ID, 4, false)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "added") {
		t.Fatalf("msg = %q", msg)
	}

	a, _ := attempts.Find(1, cat.ID)
	if a == nil {
		t.Fatal("submit should seed the attempt record")
	}
	if a.ObtainedMarks != 4 || a.RemainingQuestions != 9 {
		t.Fatalf("marks=%d remaining=%d", a.ObtainedMarks, a.RemainingQuestions)
	}
}

func TestFullQuizRun(t *testing.T) {
	svc, attempts, cats, qs := newAttemptFixture()
	cat := seedCategory(cats, qs, "Math", 50, 10)

	for i := 0; i < 10; i++ {
		last := i == 9
		if _, err := svc.Submit(7, cat.ID, 4, last); err != nil {
			t.Fatal(err)
		}
	}

	a, _ := attempts.Find(7, cat.ID)
	if a == nil {
		t.Fatal("attempt missing after run")
	}
	if a.ObtainedMarks != 40 {
		t.Fatalf("marks = %d, want 40", a.ObtainedMarks)
	}
	if a.Percentage != 80 {
		t.Fatalf("percentage = %d, want 80", a.Percentage)
	}
	if a.RemainingQuestions != 0 {
		t.Fatalf("remaining = %d, want 0", a.RemainingQuestions)
	}
	if a.Rank != model.RankExcellent {
		t.Fatalf("rank = %s, want Excellent", a.Rank)
	}
	if !a.IsFinished || a.FinishedAt == nil {
		t.Fatal("attempt should be finished with a timestamp")
	}
	if got := attempts.userPoints(7); got != 40 {
		t.Fatalf("credited points = %d, want 40", got)
	}
}

func TestSubmitAfterFinishIsSoftRejected(t *testing.T) {
	svc, attempts, cats, qs := newAttemptFixture()
	cat := seedCategory(cats, qs, "Math", 50, 10)

	if _, err := svc.Submit(1, cat.ID, 25, true); err != nil {
		t.Fatal(err)
	}

	msg, err := svc.Submit(1, cat.ID, 5, true)
	if err != nil {
		t.Fatalf("finished attempt should soft-fail, got error %v", err)
	}
	if !strings.Contains(msg, "already attempted") {
		t.Fatalf("msg = %q", msg)
	}

	a, _ := attempts.Find(1, cat.ID)
	if a.ObtainedMarks != 25 {
		t.Fatalf("marks changed after finish: %d", a.ObtainedMarks)
	}
	if got := attempts.userPoints(1); got != 25 {
		t.Fatalf("credited points = %d, want exactly one credit of 25", got)
	}
}

func TestConcurrentLastSubmissionsFinalizeOnce(t *testing.T) {
	svc, attempts, cats, qs := newAttemptFixture()
	cat := seedCategory(cats, qs, "Math", 50, 10)

	for i := 0; i < 9; i++ {
		if _, err := svc.Submit(1, cat.ID, 4, false); err != nil {
			t.Fatal(err)
		}
	}

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := svc.Submit(1, cat.ID, 4, true); err != nil {
				t.Error(err)
			}
		}()
	}
	wg.Wait()

	if got := attempts.userPoints(1); got != 40 {
		t.Fatalf("credited points = %d, want exactly 40", got)
	}
	a, _ := attempts.Find(1, cat.ID)
	if a.ObtainedMarks != 40 {
		t.Fatalf("marks = %d, want 40", a.ObtainedMarks)
	}
}

func TestSubmitRetriesTransientFailures(t *testing.T) {
	svc, attempts, cats, qs := newAttemptFixture()
	cat := seedCategory(cats, qs, "Math", 50, 10)

	if _, err := svc.Submit(1, cat.ID, 4, false); err != nil {
		t.Fatal(err)
	}

	attempts.mu.Lock()
	attempts.failures = 2
	attempts.mu.Unlock()

	if _, err := svc.Submit(1, cat.ID, 4, false); err != nil {
		t.Fatalf("two transient failures should be retried away, got %v", err)
	}

	a, _ := attempts.Find(1, cat.ID)
	if a.ObtainedMarks != 8 {
		t.Fatalf("marks = %d, want 8", a.ObtainedMarks)
	}
}

func TestDeleteRefundsFinishedAttempt(t *testing.T) {
	svc, attempts, cats, qs := newAttemptFixture()
	cat := seedCategory(cats, qs, "Math", 50, 10)

	if _, err := svc.Submit(1, cat.ID, 35, true); err != nil {
		t.Fatal(err)
	}
	if got := attempts.userPoints(1); got != 35 {
		t.Fatalf("credited points = %d", got)
	}

	msg, err := svc.Delete(1, cat.ID)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(msg, "deleted") {
		t.Fatalf("msg = %q", msg)
	}
	if got := attempts.userPoints(1); got != 0 {
		t.Fatalf("points after refund = %d, want 0", got)
	}
	if a, _ := attempts.Find(1, cat.ID); a != nil {
		t.Fatal("record should be gone")
	}
}

func TestDeleteUnfinishedAttemptRefundsNothing(t *testing.T) {
	svc, attempts, cats, qs := newAttemptFixture()
	cat := seedCategory(cats, qs, "Math", 50, 10)

	if _, err := svc.Submit(1, cat.ID, 4, false); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Delete(1, cat.ID); err != nil {
		t.Fatal(err)
	}
	if got := attempts.userPoints(1); got != 0 {
		t.Fatalf("unfinished attempt was never credited, points = %d", got)
	}
}

func TestDeleteMissingAttempt(t *testing.T) {
	svc, _, cats, qs := newAttemptFixture()
	cat := seedCategory(cats, qs, "Math", 50, 10)

	_, err := svc.Delete(1, cat.ID)
	if !util.IsNotFound(err) {
		t.Fatalf("want not found, got %v", err)
	}
}
