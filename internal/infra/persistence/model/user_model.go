package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// UserModel mirrors the 'users' table. The credential record is stored inline:
// secret, history, password_changed_at and locked.
type UserModel struct {
	ID         uuid.UUID                   `gorm:"type:uuid;primaryKey"`
	Name       string                      `gorm:"type:varchar(100);not null"`
	Username   string                      `gorm:"type:varchar(100);uniqueIndex;not null"`
	Privileges datatypes.JSONSlice[string] `gorm:"type:jsonb;not null"`

	Secret            string                      `gorm:"type:text;not null"`
	History           datatypes.JSONSlice[string] `gorm:"type:jsonb;not null"`
	PasswordChangedAt time.Time                   `gorm:"not null"`
	Locked            bool                        `gorm:"not null;default:false"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
