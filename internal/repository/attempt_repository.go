package repository

import (
	"errors"
	"quiz_sphere_backend/internal/model"

	"gorm.io/gorm"
)

type AttemptRepository struct {
	DB *gorm.DB
}

func NewAttemptRepository(db *gorm.DB) *AttemptRepository {
	return &AttemptRepository{DB: db}
}

// Find returns (nil, nil) when no record exists for the pair.
func (r *AttemptRepository) Find(userID, categoryID uint) (*model.Attempt, error) {
	var a model.Attempt
	err := r.DB.Where("user_id = ? AND category_id = ?", userID, categoryID).First(&a).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (r *AttemptRepository) Create(a *model.Attempt) error {
	return r.DB.Create(a).Error
}

func (r *AttemptRepository) Save(a *model.Attempt) error {
	return r.DB.Save(a).Error
}

// FinalizeWithCredit writes the terminal attempt state and credits the user's
// standing in one transaction. Either both land or neither does; the credit
// can never run outside this transaction.
func (r *AttemptRepository) FinalizeWithCredit(a *model.Attempt) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		return tx.Model(&model.User{}).
			Where("id = ?", a.UserID).
			Update("total_points", gorm.Expr("total_points + ?", a.ObtainedMarks)).
			Error
	})
}

// DeleteWithRefund removes the attempt and reverses the credited marks as one
// atomic unit. An unfinished attempt never credited, so there is nothing to
// reverse for it.
func (r *AttemptRepository) DeleteWithRefund(a *model.Attempt) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Delete(&model.Attempt{}, a.ID).Error; err != nil {
			return err
		}
		if !a.IsFinished {
			return nil
		}
		return tx.Model(&model.User{}).
			Where("id = ?", a.UserID).
			Update("total_points", gorm.Expr("total_points - ?", a.ObtainedMarks)).
			Error
	})
}
