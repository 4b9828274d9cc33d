package models

import (
	"golang.org/x/crypto/bcrypt"
)

// User owns questionnaires. Deleting a user cascades to everything the user
// created.
type User struct {
	ID           uint   `gorm:"primaryKey"`
	Username     string `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:200;not null"`

	Questionnaires []Questionnaire `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}

// SetPassword hashes the given password and stores it on the user.
func (u *User) SetPassword(password string) error {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hashed)
	return nil
}

// CheckPassword reports whether the given password matches the stored hash.
func (u *User) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password))
	return err == nil
}
