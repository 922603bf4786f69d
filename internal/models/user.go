package models

// User is an account holder, addressed everywhere by email.
type User struct {
	Email        string `gorm:"primaryKey;size:255" json:"email"`
	Username     string `gorm:"size:50;not null" json:"username"`
	PasswordHash string `gorm:"not null" json:"-"`
}

func (User) TableName() string { return "users" }
