package service

import (
	"quiz_sphere_backend/internal/model"
	"quiz_sphere_backend/internal/repository"
	"quiz_sphere_backend/internal/util"
)

type UserService struct {
	Users *repository.UserRepository
}

func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{Users: users}
}

type UpdateProfileRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

func (s *UserService) UpdateProfile(userID uint, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &util.NotFoundError{Entity: "user"}
	}

	if req.Email != user.Email {
		existing, err := s.Users.FindByEmail(req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, util.Conflict("email", req.Email)
		}
	}

	user.Name = req.Name
	user.Email = req.Email
	if err := s.Users.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) SetAvatar(userID uint, url string) error {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return &util.NotFoundError{Entity: "user"}
	}
	user.Avatar = url
	return s.Users.Update(user)
}

func (s *UserService) Delete(userID uint) error {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return &util.NotFoundError{Entity: "user"}
	}
	return s.Users.Delete(userID)
}

func (s *UserService) Leaderboard(limit int) ([]model.User, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.Users.FindTopByPoints(limit)
}
