package service

import (
	"context"
	"encoding/json"
	"quiz_sphere_backend/internal/model"
	"quiz_sphere_backend/internal/util"
	"quiz_sphere_backend/pkg/logger"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// CategoryStore is the persistence surface of the catalog. Lookups return
// (nil, nil) for absent records; CreateWithScale must insert the category and
// its scale row atomically and report duplicates as a ConflictError.
type CategoryStore interface {
	FindByID(id uint) (*model.Category, error)
	FindByName(name string) (*model.Category, error)
	List() ([]model.Category, error)
	CreateWithScale(c *model.Category, scale *model.CategoryScale) error
	ScaleByCategory(categoryID uint) (*model.CategoryScale, error)
	UpdateScale(categoryID uint, marks int) error
}

// QuestionCounter is the read-only view of the question repository the
// catalog needs for the availability rule.
type QuestionCounter interface {
	CountByCategory(categoryID uint) (int64, error)
}

const (
	categoryListCacheKey = "categories:all"
	categoryListCacheTTL = 5 * time.Minute
)

// CategoryService owns category identity and the per-category marks scale.
type CategoryService struct {
	Categories CategoryStore
	Questions  QuestionCounter
	Redis      *redis.Client
}

func NewCategoryService(categories CategoryStore, questions QuestionCounter, rdb *redis.Client) *CategoryService {
	return &CategoryService{Categories: categories, Questions: questions, Redis: rdb}
}

type CreateCategoryRequest struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	ScaleMarks  *int   `json:"scaleMarks"`
}

// Create adds a category together with its one scale row and returns the full
// refreshed list so clients can replace their cached copy wholesale.
func (s *CategoryService) Create(req CreateCategoryRequest) ([]model.Category, error) {
	if req.ScaleMarks != nil && *req.ScaleMarks <= 0 {
		return nil, util.InvalidInput("scaleMarks", "must be positive")
	}

	existing, err := s.Categories.FindByName(req.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, util.Conflict("category", req.Name)
	}

	marks := model.DefaultScaleMarks
	if req.ScaleMarks != nil {
		marks = *req.ScaleMarks
	}

	category := &model.Category{Name: req.Name, Description: req.Description}
	scale := &model.CategoryScale{TotalMarks: marks}
	if err := s.Categories.CreateWithScale(category, scale); err != nil {
		return nil, err
	}

	s.invalidateListCache()
	return s.Categories.List()
}

func (s *CategoryService) Get(id uint) (*model.Category, error) {
	c, err := s.Categories.FindByID(id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, &util.NotFoundError{Entity: "category"}
	}
	return c, nil
}

func (s *CategoryService) GetByName(name string) (*model.Category, error) {
	c, err := s.Categories.FindByName(name)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, util.NotFound("category", name)
	}
	return c, nil
}

// List returns all categories. Order is not guaranteed; callers must not
// rely on it. The result is cached briefly in redis when available.
func (s *CategoryService) List() ([]model.Category, error) {
	if s.Redis != nil {
		if cached, err := s.Redis.Get(context.Background(), categoryListCacheKey).Bytes(); err == nil {
			var cs []model.Category
			if json.Unmarshal(cached, &cs) == nil {
				return cs, nil
			}
		}
	}

	cs, err := s.Categories.List()
	if err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if payload, err := json.Marshal(cs); err == nil {
			if err := s.Redis.Set(context.Background(), categoryListCacheKey, payload, categoryListCacheTTL).Err(); err != nil {
				logger.Log.Warn("category list cache write failed", zap.Error(err))
			}
		}
	}
	return cs, nil
}

// Scale returns the authoritative scale for a category.
func (s *CategoryService) Scale(categoryID uint) (*model.CategoryScale, error) {
	scale, err := s.Categories.ScaleByCategory(categoryID)
	if err != nil {
		return nil, err
	}
	if scale == nil {
		return nil, &util.NotFoundError{Entity: "category scale"}
	}
	return scale, nil
}

// UpdateScale changes the total marks of the single scale row.
func (s *CategoryService) UpdateScale(categoryID uint, marks int) error {
	if marks <= 0 {
		return util.InvalidInput("marks", "must be positive")
	}
	if err := s.Categories.UpdateScale(categoryID, marks); err != nil {
		return err
	}
	s.invalidateListCache()
	return nil
}

func (s *CategoryService) QuestionCount(categoryID uint) (int64, error) {
	return s.Questions.CountByCategory(categoryID)
}

// Available applies the product rule: a category opens for attempts only once
// it holds more than MinQuestionsForQuiz questions.
func (s *CategoryService) Available(categoryID uint) (bool, error) {
	count, err := s.Questions.CountByCategory(categoryID)
	if err != nil {
		return false, err
	}
	return count > model.MinQuestionsForQuiz, nil
}

func (s *CategoryService) invalidateListCache() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Del(context.Background(), categoryListCacheKey).Err(); err != nil {
		logger.Log.Warn("category list cache invalidation failed", zap.Error(err))
	}
}
