package services

import (
	"errors"
	"time"

	"github.com/trackline/tracker/dto"
	"github.com/trackline/tracker/middleware"
	"github.com/trackline/tracker/models"
	"github.com/trackline/tracker/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrPasswordHashFailure = errors.New("failed to hash password")
)

type UserService struct {
	repos *repositories.Repos
}

func NewUserService(repos *repositories.Repos) *UserService {
	return &UserService{repos: repos}
}

func (s *UserService) Register(input dto.RegisterForm) error {
	_, err := s.repos.User.GetUserByUsername(input.Username)
	if err == nil {
		return ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return ErrPasswordHashFailure
	}

	user := models.User{
		Username: input.Username,
		Password: string(hashed),
		Email:    input.Email,
		FullName: input.FullName,
	}

	return s.repos.User.CreateUser(&user)
}

func (s *UserService) Login(username, password string) (models.User, string, error) {
	user, err := s.repos.User.GetUserByUsername(username)
	if err != nil {
		return user, "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return user, "", ErrInvalidCredentials
	}

	token, err := middleware.GenerateToken(user.ID, user.Username, 24*time.Hour)
	if err != nil {
		return user, "", err
	}

	return user, token, nil
}

func (s *UserService) ListUsers() ([]models.User, error) {
	return s.repos.User.ListUsers()
}
