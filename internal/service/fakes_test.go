package service

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"quiz_sphere_backend/internal/model"
	"quiz_sphere_backend/internal/util"
)

// In-memory stand-ins for the gorm repositories, safe for concurrent use.

type fakeCategoryStore struct {
	mu         sync.Mutex
	nextID     uint
	categories []model.Category
	scales     map[uint]*model.CategoryScale
}

func newFakeCategoryStore() *fakeCategoryStore {
	return &fakeCategoryStore{scales: make(map[uint]*model.CategoryScale)}
}

func (s *fakeCategoryStore) FindByID(id uint) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if s.categories[i].ID == id {
			c := s.categories[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeCategoryStore) FindByName(name string) (*model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if strings.EqualFold(s.categories[i].Name, name) {
			c := s.categories[i]
			return &c, nil
		}
	}
	return nil, nil
}

func (s *fakeCategoryStore) List() ([]model.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Category, len(s.categories))
	copy(out, s.categories)
	return out, nil
}

func (s *fakeCategoryStore) CreateWithScale(c *model.Category, scale *model.CategoryScale) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.categories {
		if strings.EqualFold(s.categories[i].Name, c.Name) {
			return util.Conflict("category", c.Name)
		}
	}
	s.nextID++
	c.ID = s.nextID
	scale.CategoryID = c.ID
	c.Scale = scale
	s.categories = append(s.categories, *c)
	s.scales[c.ID] = scale
	return nil
}

func (s *fakeCategoryStore) ScaleByCategory(categoryID uint) (*model.CategoryScale, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	scale, ok := s.scales[categoryID]
	if !ok {
		return nil, nil
	}
	cp := *scale
	return &cp, nil
}

func (s *fakeCategoryStore) UpdateScale(categoryID uint, marks int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	scale, ok := s.scales[categoryID]
	if !ok {
		return util.NotFound("category scale", fmt.Sprint(categoryID))
	}
	scale.TotalMarks = marks
	return nil
}

type fakeQuestionStore struct {
	mu        sync.Mutex
	nextID    uint
	questions map[uint][]model.Question
}

func newFakeQuestionStore() *fakeQuestionStore {
	return &fakeQuestionStore{questions: make(map[uint][]model.Question)}
}

func (s *fakeQuestionStore) CreateWithChoices(q *model.Question) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	q.ID = s.nextID
	s.questions[q.CategoryID] = append(s.questions[q.CategoryID], *q)
	return nil
}

func (s *fakeQuestionStore) ListByCategory(categoryID uint) ([]model.Question, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Question, len(s.questions[categoryID]))
	copy(out, s.questions[categoryID])
	return out, nil
}

func (s *fakeQuestionStore) CountByCategory(categoryID uint) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return int64(len(s.questions[categoryID])), nil
}

type fakeAttemptStore struct {
	mu       sync.Mutex
	attempts map[string]*model.Attempt
	points   map[uint]int

	// failures, when positive, makes the next writes fail once each.
	failures int
}

func newFakeAttemptStore() *fakeAttemptStore {
	return &fakeAttemptStore{
		attempts: make(map[string]*model.Attempt),
		points:   make(map[uint]int),
	}
}

func (s *fakeAttemptStore) key(userID, categoryID uint) string {
	return fmt.Sprintf("%d:%d", userID, categoryID)
}

func (s *fakeAttemptStore) failNext() error {
	if s.failures > 0 {
		s.failures--
		return errors.New("transient store failure")
	}
	return nil
}

func (s *fakeAttemptStore) Find(userID, categoryID uint) (*model.Attempt, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.attempts[s.key(userID, categoryID)]
	if !ok {
		return nil, nil
	}
	cp := *a
	return &cp, nil
}

func (s *fakeAttemptStore) Create(a *model.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failNext(); err != nil {
		return err
	}
	cp := *a
	s.attempts[s.key(a.UserID, a.CategoryID)] = &cp
	return nil
}

func (s *fakeAttemptStore) Save(a *model.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failNext(); err != nil {
		return err
	}
	cp := *a
	s.attempts[s.key(a.UserID, a.CategoryID)] = &cp
	return nil
}

func (s *fakeAttemptStore) FinalizeWithCredit(a *model.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failNext(); err != nil {
		return err
	}
	cp := *a
	s.attempts[s.key(a.UserID, a.CategoryID)] = &cp
	s.points[a.UserID] += a.ObtainedMarks
	return nil
}

func (s *fakeAttemptStore) DeleteWithRefund(a *model.Attempt) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.failNext(); err != nil {
		return err
	}
	delete(s.attempts, s.key(a.UserID, a.CategoryID))
	if a.IsFinished {
		s.points[a.UserID] -= a.ObtainedMarks
	}
	return nil
}

func (s *fakeAttemptStore) userPoints(userID uint) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.points[userID]
}

// seedCategory registers a category with the given scale and question count.
func seedCategory(cats *fakeCategoryStore, qs *fakeQuestionStore, name string, scaleMarks, questionCount int) *model.Category {
	c := &model.Category{Name: name}
	scale := &model.CategoryScale{TotalMarks: scaleMarks}
	if err := cats.CreateWithScale(c, scale); err != nil {
		panic(err)
	}
	for i := 0; i < questionCount; i++ {
		q := &model.Question{
			CategoryID: c.ID,
			Text:       fmt.Sprintf("%s question %d", name, i+1),
			Choices: []model.Choice{
				{Text: "a", Correct: true},
				{Text: "b"}, {Text: "c"}, {Text: "d"},
			},
		}
		if err := qs.CreateWithChoices(q); err != nil {
			panic(err)
		}
	}
	return c
}
