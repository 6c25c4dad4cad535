package service

import (
	"math/rand"
	"quiz_sphere_backend/internal/model"
	"quiz_sphere_backend/internal/util"
	"sync"
)

// QuestionStore is the read-only question repository surface the picker uses.
type QuestionStore interface {
	ListByCategory(categoryID uint) ([]model.Question, error)
	CountByCategory(categoryID uint) (int64, error)
}

// QuizService draws the question set for an in-progress attempt. The source
// of randomness is injected so tests can seed it deterministically.
type QuizService struct {
	Attempts  AttemptFinder
	Catalog   *CategoryService
	Questions QuestionStore

	mu  sync.Mutex
	rnd *rand.Rand
}

func NewQuizService(attempts AttemptFinder, catalog *CategoryService, questions QuestionStore, src rand.Source) *QuizService {
	return &QuizService{
		Attempts:  attempts,
		Catalog:   catalog,
		Questions: questions,
		rnd:       rand.New(src),
	}
}

type QuizBundle struct {
	RemainingQuestions int              `json:"remainingQuestions"`
	Questions          []model.Question `json:"questions"`
	Choices            [][]model.Choice `json:"choices"`
}

// Pick draws a uniform random subset of the category's questions sized to the
// attempt's remaining count. No question repeats within one draw, but the
// engine tracks only a count, not a seen-set, so repeated calls during the
// same attempt may overlap.
func (s *QuizService) Pick(userID uint, categoryName string) (*QuizBundle, error) {
	cat, err := s.Catalog.GetByName(categoryName)
	if err != nil {
		return nil, err
	}

	attempt, err := s.Attempts.Find(userID, cat.ID)
	if err != nil {
		return nil, err
	}
	if attempt == nil {
		return nil, util.NotFound("attempt", categoryName)
	}

	questions, err := s.Questions.ListByCategory(cat.ID)
	if err != nil {
		return nil, err
	}

	n := attempt.RemainingQuestions
	if n > len(questions) {
		n = len(questions)
	}

	drawn := make([]model.Question, len(questions))
	copy(drawn, questions)
	s.mu.Lock()
	s.rnd.Shuffle(len(drawn), func(i, j int) {
		drawn[i], drawn[j] = drawn[j], drawn[i]
	})
	s.mu.Unlock()
	drawn = drawn[:n]

	choices := make([][]model.Choice, len(drawn))
	for i, q := range drawn {
		choices[i] = q.Choices
	}

	return &QuizBundle{
		RemainingQuestions: attempt.RemainingQuestions,
		Questions:          drawn,
		Choices:            choices,
	}, nil
}
