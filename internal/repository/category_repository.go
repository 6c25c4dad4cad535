package repository

import (
	"errors"
	"quiz_sphere_backend/internal/model"
	"quiz_sphere_backend/internal/util"
	"strings"

	"gorm.io/gorm"
)

type CategoryRepository struct {
	DB *gorm.DB
}

func NewCategoryRepository(db *gorm.DB) *CategoryRepository {
	return &CategoryRepository{DB: db}
}

func (r *CategoryRepository) FindByID(id uint) (*model.Category, error) {
	var c model.Category
	if err := r.DB.Preload("Scale").First(&c, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) FindByName(name string) (*model.Category, error) {
	var c model.Category
	if err := r.DB.Preload("Scale").Where("LOWER(name) = LOWER(?)", name).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *CategoryRepository) List() ([]model.Category, error) {
	var cs []model.Category
	err := r.DB.Preload("Scale").Find(&cs).Error
	return cs, err
}

// CreateWithScale inserts the category and its single scale row in one
// transaction. A lost race against a concurrent create surfaces the unique
// index violation as a ConflictError.
func (r *CategoryRepository) CreateWithScale(c *model.Category, scale *model.CategoryScale) error {
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(c).Error; err != nil {
			return err
		}
		scale.CategoryID = c.ID
		return tx.Create(scale).Error
	})
	if err != nil && strings.Contains(err.Error(), "Duplicate entry") {
		return util.Conflict("category", c.Name)
	}
	return err
}

func (r *CategoryRepository) ScaleByCategory(categoryID uint) (*model.CategoryScale, error) {
	var s model.CategoryScale
	if err := r.DB.Where("category_id = ?", categoryID).First(&s).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &s, nil
}

func (r *CategoryRepository) UpdateScale(categoryID uint, marks int) error {
	res := r.DB.Model(&model.CategoryScale{}).
		Where("category_id = ?", categoryID).
		Update("total_marks", marks)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return util.NotFound("category scale", "")
	}
	return nil
}
