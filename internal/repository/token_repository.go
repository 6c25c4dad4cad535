package repository

import (
	"errors"
	"quiz_sphere_backend/internal/model"

	"gorm.io/gorm"
)

type TokenRepository struct {
	DB *gorm.DB
}

func NewTokenRepository(db *gorm.DB) *TokenRepository {
	return &TokenRepository{DB: db}
}

// Upsert stores the user's refresh token, replacing any previous one.
func (r *TokenRepository) Upsert(userID uint, token string) error {
	var existing model.RefreshToken
	err := r.DB.Where("user_id = ?", userID).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return r.DB.Create(&model.RefreshToken{UserID: userID, Token: token}).Error
	}
	if err != nil {
		return err
	}
	existing.Token = token
	return r.DB.Save(&existing).Error
}

func (r *TokenRepository) FindByToken(token string) (*model.RefreshToken, error) {
	var rt model.RefreshToken
	if err := r.DB.Where("token = ?", token).First(&rt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &rt, nil
}

func (r *TokenRepository) DeleteByUser(userID uint) (int64, error) {
	res := r.DB.Where("user_id = ?", userID).Delete(&model.RefreshToken{})
	return res.RowsAffected, res.Error
}
