package repository

import (
	"quiz_sphere_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

// CreateWithChoices persists a question and its choices as one unit.
func (r *QuestionRepository) CreateWithChoices(q *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(q).Error
	})
}

func (r *QuestionRepository) ListByCategory(categoryID uint) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Preload("Choices").Where("category_id = ?", categoryID).Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) CountByCategory(categoryID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.Question{}).Where("category_id = ?", categoryID).Count(&count).Error
	return count, err
}
