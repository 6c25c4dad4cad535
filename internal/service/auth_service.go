package service

import (
	"quiz_sphere_backend/internal/config"
	"quiz_sphere_backend/internal/model"
	"quiz_sphere_backend/internal/repository"
	"quiz_sphere_backend/internal/util"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type AuthService struct {
	Users  *repository.UserRepository
	Tokens *repository.TokenRepository
	Cfg    *config.Config
}

func NewAuthService(users *repository.UserRepository, tokens *repository.TokenRepository, cfg *config.Config) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, Cfg: cfg}
}

func (s *AuthService) Register(user *model.User) error {
	existing, err := s.Users.FindByEmail(user.Email)
	if err != nil {
		return err
	}
	if existing != nil {
		return util.Conflict("email", user.Email)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hashedPassword)
	if user.Role == "" {
		user.Role = model.RoleUser
	}
	return s.Users.Create(user)
}

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (s *AuthService) Login(email, password string) (*TokenPair, error) {
	user, err := s.Users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, util.InvalidInput("email", "invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, util.InvalidInput("password", "invalid credentials")
	}

	access, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
	if err != nil {
		return nil, err
	}
	refresh, err := util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.RefreshExpireTime)
	if err != nil {
		return nil, err
	}

	if err := s.Tokens.Upsert(user.ID, refresh); err != nil {
		return nil, err
	}

	user.LastLogin = time.Now()
	if err := s.Users.Update(user); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// Refresh exchanges a stored refresh token for a new access token. Tokens
// that parse but are no longer on record are rejected (logout revokes them).
func (s *AuthService) Refresh(refreshToken string) (string, error) {
	stored, err := s.Tokens.FindByToken(refreshToken)
	if err != nil {
		return "", err
	}
	if stored == nil {
		return "", util.NotFound("token", "")
	}

	if _, err := util.ParseJWT(refreshToken, s.Cfg.JWT.Secret); err != nil {
		return "", util.InvalidInput("token", "expired or malformed refresh token")
	}

	user, err := s.Users.FindByID(stored.UserID)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", &util.NotFoundError{Entity: "user"}
	}

	return util.GenerateJWT(user, s.Cfg.JWT.Secret, s.Cfg.JWT.ExpireTime)
}

func (s *AuthService) Logout(userID uint) error {
	deleted, err := s.Tokens.DeleteByUser(userID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return &util.NotFoundError{Entity: "token"}
	}
	return nil
}

func (s *AuthService) Profile(userID uint) (*model.User, error) {
	user, err := s.Users.FindByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &util.NotFoundError{Entity: "user"}
	}
	return user, nil
}
