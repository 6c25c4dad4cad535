package service

import (
	"quiz_sphere_backend/internal/model"
	"quiz_sphere_backend/internal/util"
)

// QuestionStoreWriter is the authoring side of the question repository.
type QuestionStoreWriter interface {
	CreateWithChoices(q *model.Question) error
}

// QuestionService handles question authoring. Reads for quiz draws live in
// QuizService.
type QuestionService struct {
	Questions  QuestionStoreWriter
	Categories CategoryStore
}

func NewQuestionService(questions QuestionStoreWriter, categories CategoryStore) *QuestionService {
	return &QuestionService{Questions: questions, Categories: categories}
}

type ChoiceInput struct {
	Text    string `json:"text" binding:"required"`
	Correct bool   `json:"choiceStatus"`
}

type AddQuestionRequest struct {
	CategoryID uint          `json:"categoryId" binding:"required"`
	Text       string        `json:"text" binding:"required"`
	Choices    []ChoiceInput `json:"choices" binding:"required,len=4"`
}

// Add creates a question under an existing category. Exactly four choices are
// required and exactly one of them must be marked correct.
func (s *QuestionService) Add(req AddQuestionRequest) (*model.Question, error) {
	if len(req.Choices) != 4 {
		return nil, util.InvalidInput("choices", "exactly four choices are required")
	}

	correct := 0
	for _, ch := range req.Choices {
		if ch.Correct {
			correct++
		}
	}
	if correct != 1 {
		return nil, util.InvalidInput("choices", "exactly one choice must be correct")
	}

	category, err := s.Categories.FindByID(req.CategoryID)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, &util.NotFoundError{Entity: "category"}
	}

	question := &model.Question{CategoryID: req.CategoryID, Text: req.Text}
	for _, ch := range req.Choices {
		question.Choices = append(question.Choices, model.Choice{Text: ch.Text, Correct: ch.Correct})
	}

	if err := s.Questions.CreateWithChoices(question); err != nil {
		return nil, err
	}
	return question, nil
}
