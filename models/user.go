package models

import "gorm.io/gorm"

type User struct {
	gorm.Model
	Username string `gorm:"size:50;not null;unique" json:"username"`
	Password string `gorm:"size:255;not null" json:"-"`
	Email    string `gorm:"size:100" json:"email"`
	FullName string `gorm:"size:100" json:"full_name"`
}
