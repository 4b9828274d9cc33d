package repository

import (
	"context"
	"errors"

	"github.com/hadiajavedd/SaySoPrototype/internal/database"
	"github.com/hadiajavedd/SaySoPrototype/internal/models"

	"gorm.io/gorm"
)

// CreateUser registers a new account. The password is stored as a bcrypt
// hash, never as given.
func CreateUser(ctx context.Context, username, password string) (*models.User, error) {
	var existing models.User
	err := database.DB.WithContext(ctx).First(&existing, "username = ?", username).Error
	if err == nil {
		return nil, ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	user := &models.User{Username: username}
	if err := user.SetPassword(password); err != nil {
		return nil, err
	}
	if err := database.DB.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// AuthenticateUser checks a username/password pair. An unknown username and a
// wrong password produce the same error, so login failures leak nothing.
func AuthenticateUser(ctx context.Context, username, password string) (*models.User, error) {
	var user models.User
	err := database.DB.WithContext(ctx).First(&user, "username = ?", username).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	if !user.CheckPassword(password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	result := database.DB.WithContext(ctx).First(&user, id)
	return &user, result.Error
}

// DeleteUser removes the account. Foreign keys cascade the delete to the
// user's questionnaires, their questions, and their responses.
func DeleteUser(ctx context.Context, userID uint) error {
	return database.DB.WithContext(ctx).Delete(&models.User{}, userID).Error
}
