package repositories

import (
	"github.com/trackline/tracker/db"
	"github.com/trackline/tracker/models"
)

type UserRepo interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint) (models.User, error)
	GetUserByUsername(username string) (models.User, error)
	ListUsers() ([]models.User, error)
}

type DBUserRepo struct{}

func (r *DBUserRepo) CreateUser(user *models.User) error {
	return db.DB.Create(user).Error
}

func (r *DBUserRepo) GetUserByID(id uint) (models.User, error) {
	var user models.User
	err := db.DB.First(&user, id).Error
	return user, err
}

func (r *DBUserRepo) GetUserByUsername(username string) (models.User, error) {
	var user models.User
	err := db.DB.Where("username = ?", username).First(&user).Error
	return user, err
}

func (r *DBUserRepo) ListUsers() ([]models.User, error) {
	var users []models.User
	err := db.DB.Order("username asc").Find(&users).Error
	return users, err
}
