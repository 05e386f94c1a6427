package model

import (
	"time"

	"credguard/internal/domain/policy"

	"gorm.io/datatypes"
)

// ActivePolicyID is the primary key of the single stored policy row.
const ActivePolicyID = 1

// PolicyModel mirrors the 'password_policies' table. Only one row is kept.
type PolicyModel struct {
	ID        uint                             `gorm:"primaryKey;autoIncrement:false"`
	Rules     datatypes.JSONType[policy.Rules] `gorm:"type:jsonb;not null"`
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PolicyModel) TableName() string {
	return "password_policies"
}
