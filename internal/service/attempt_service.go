package service

import (
	"fmt"
	"quiz_sphere_backend/internal/model"
	"quiz_sphere_backend/internal/util"
	"quiz_sphere_backend/pkg/monitoring"
	"sync"
	"time"
)

// AttemptStore is the durable substrate of the attempt state machine.
// Find returns (nil, nil) for an absent record. FinalizeWithCredit and
// DeleteWithRefund must apply their two writes atomically.
type AttemptStore interface {
	Find(userID, categoryID uint) (*model.Attempt, error)
	Create(a *model.Attempt) error
	Save(a *model.Attempt) error
	FinalizeWithCredit(a *model.Attempt) error
	DeleteWithRefund(a *model.Attempt) error
}

const (
	storeRetries = 3
	retryBackoff = 25 * time.Millisecond
)

// withRetry retries transient store failures a bounded number of times before
// surfacing the last error.
func withRetry(op func() error) error {
	var err error
	for i := 0; i < storeRetries; i++ {
		if err = op(); err == nil {
			return nil
		}
		time.Sleep(time.Duration(i+1) * retryBackoff)
	}
	return err
}

// keyedMutex hands out one mutex per key. Entries are never evicted; the key
// space is bounded by users x categories.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (m *keyedMutex) lock(key string) *sync.Mutex {
	m.mu.Lock()
	if m.locks == nil {
		m.locks = make(map[string]*sync.Mutex)
	}
	l, ok := m.locks[key]
	if !ok {
		l = &sync.Mutex{}
		m.locks[key] = l
	}
	m.mu.Unlock()
	l.Lock()
	return l
}

func attemptKey(userID, categoryID uint) string {
	return fmt.Sprintf("%d:%d", userID, categoryID)
}

// AttemptService is the quiz attempt state machine: NotStarted -> InProgress
// -> Finished, with no transition out of Finished. Every read-modify-write on
// an attempt runs under a per-(user, category) critical section so two
// concurrent last-answer submissions cannot both finalize.
type AttemptService struct {
	Attempts AttemptStore
	Catalog  *CategoryService
	locks    keyedMutex
}

func NewAttemptService(attempts AttemptStore, catalog *CategoryService) *AttemptService {
	return &AttemptService{Attempts: attempts, Catalog: catalog}
}

// QuizDetails is the tagged result of a details lookup: either the quiz is
// not available for the category, or it is, with an in-progress/fresh marker.
type QuizDetails struct {
	Available  bool           `json:"available"`
	Reason     string         `json:"reason,omitempty"`
	IsAttempt  bool           `json:"isAttempt"`
	Message    string         `json:"message,omitempty"`
	Attempt    *model.Attempt `json:"quizDetails,omitempty"`
	ScaleMarks int            `json:"categoryMarks,omitempty"`
}

// Details resolves the attempt for (user, category name), lazily opening a
// fresh record the first time a user asks about an available category.
// Unavailable categories never get a record.
func (s *AttemptService) Details(userID uint, categoryName string) (*QuizDetails, error) {
	cat, err := s.Catalog.GetByName(categoryName)
	if err != nil {
		return nil, err
	}

	available, err := s.Catalog.Available(cat.ID)
	if err != nil {
		return nil, err
	}
	if !available {
		return &QuizDetails{
			Available: false,
			Reason:    fmt.Sprintf("Quiz is not available for %s", cat.Name),
		}, nil
	}

	l := s.locks.lock(attemptKey(userID, cat.ID))
	defer l.Unlock()

	attempt, err := s.Attempts.Find(userID, cat.ID)
	if err != nil {
		return nil, err
	}

	if attempt == nil {
		attempt = model.NewAttempt(userID, cat.ID)
		if err := withRetry(func() error { return s.Attempts.Create(attempt) }); err != nil {
			return nil, err
		}
		return &QuizDetails{
			Available: true,
			IsAttempt: false,
			Message:   fmt.Sprintf("You have never attempted %s questions", cat.Name),
		}, nil
	}

	// A full countdown means the record exists but nothing was answered yet.
	if attempt.RemainingQuestions >= model.SessionSize {
		return &QuizDetails{
			Available: true,
			IsAttempt: false,
			Message:   fmt.Sprintf("You have never attempted %s questions", cat.Name),
		}, nil
	}

	scale, err := s.Catalog.Scale(cat.ID)
	if err != nil {
		return nil, err
	}

	return &QuizDetails{
		Available:  true,
		IsAttempt:  true,
		Attempt:    attempt,
		ScaleMarks: scale.TotalMarks,
	}, nil
}

// Submit folds one answered question into the attempt. A finished attempt
// rejects the submission with a status message instead of an error, so a
// stale client retry cannot double-count. When isLast is set the attempt is
// finalized and the marks are credited to the user's standing atomically.
func (s *AttemptService) Submit(userID, categoryID uint, pointsEarned int, isLast bool) (string, error) {
	if pointsEarned < 0 {
		return "", util.InvalidInput("pointsEarned", "must not be negative")
	}

	cat, err := s.Catalog.Get(categoryID)
	if err != nil {
		return "", err
	}
	scale, err := s.Catalog.Scale(cat.ID)
	if err != nil {
		return "", err
	}

	l := s.locks.lock(attemptKey(userID, categoryID))
	defer l.Unlock()

	attempt, err := s.Attempts.Find(userID, categoryID)
	if err != nil {
		return "", err
	}

	created := false
	if attempt == nil {
		// Client submitted before asking for details; seed a fresh record and
		// run it through the same transition as any other submission.
		attempt = model.NewAttempt(userID, categoryID)
		created = true
	}

	if attempt.IsFinished {
		return fmt.Sprintf("You can't attempt the %s quiz, because you have already attempted it", cat.Name), nil
	}

	applySubmission(attempt, scale.TotalMarks, pointsEarned)

	if isLast {
		attempt.Rank = rankFor(attempt.ObtainedMarks)
		attempt.IsFinished = true
		now := time.Now()
		attempt.FinishedAt = &now

		if created {
			if err := withRetry(func() error { return s.Attempts.Create(attempt) }); err != nil {
				return "", err
			}
		}
		if err := withRetry(func() error { return s.Attempts.FinalizeWithCredit(attempt) }); err != nil {
			return "", err
		}
		monitoring.AttemptFinalizations.WithLabelValues(string(attempt.Rank)).Inc()
		return fmt.Sprintf("You have attempted the %s quiz", cat.Name), nil
	}

	if created {
		if err := withRetry(func() error { return s.Attempts.Create(attempt) }); err != nil {
			return "", err
		}
		return fmt.Sprintf("Your quiz details for %s have been added", cat.Name), nil
	}

	if err := withRetry(func() error { return s.Attempts.Save(attempt) }); err != nil {
		return "", err
	}
	return fmt.Sprintf("Your quiz details for %s have been updated", cat.Name), nil
}

// Delete removes the attempt and reverses whatever credit it contributed.
func (s *AttemptService) Delete(userID, categoryID uint) (string, error) {
	l := s.locks.lock(attemptKey(userID, categoryID))
	defer l.Unlock()

	attempt, err := s.Attempts.Find(userID, categoryID)
	if err != nil {
		return "", err
	}
	if attempt == nil {
		return "", util.NotFound("attempt", attemptKey(userID, categoryID))
	}

	if err := withRetry(func() error { return s.Attempts.DeleteWithRefund(attempt) }); err != nil {
		return "", err
	}
	return "Quiz has been deleted.", nil
}

// Find exposes the raw record to collaborators (picker, standings).
func (s *AttemptService) Find(userID, categoryID uint) (*model.Attempt, error) {
	return s.Attempts.Find(userID, categoryID)
}
