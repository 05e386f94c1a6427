package postgres

import (
	"context"

	domainerrors "credguard/internal/domain/errors"
	"credguard/internal/domain/policy"
	"credguard/internal/domain/repository"
	"credguard/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// policyRepository stores the active rule set as a single JSON row.
type policyRepository struct {
	db *gorm.DB
}

// NewPolicyRepository is the constructor for policyRepository.
func NewPolicyRepository(db *gorm.DB) repository.PolicyRepository {
	return &policyRepository{db: db}
}

// Load returns the stored rules, or repository.ErrPolicyNotFound.
func (repo *policyRepository) Load(ctx context.Context) (policy.Rules, error) {
	var policyM model.PolicyModel
	if err := repo.db.WithContext(ctx).Where("id = ?", model.ActivePolicyID).First(&policyM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return policy.Rules{}, repository.ErrPolicyNotFound
		}

		return policy.Rules{}, errors.Wrap(err, "failed to load policy")
	}

	return policyM.Rules.Data(), nil
}

// Save upserts the single policy row.
func (repo *policyRepository) Save(ctx context.Context, rules policy.Rules) error {
	policyM := &model.PolicyModel{
		ID:    model.ActivePolicyID,
		Rules: datatypes.NewJSONType(rules),
	}

	err := repo.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"rules", "updated_at"}),
	}).Create(policyM).Error
	if err != nil {
		return domainerrors.NewDatabaseExecuteError(err, "failed to save policy")
	}

	return nil
}
