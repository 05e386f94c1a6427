package postgres

import (
	"context"

	domainerrors "credguard/internal/domain/errors"
	"credguard/internal/domain/policy"
	"credguard/internal/domain/repository"

	"gorm.io/gorm"
)

type transactionManager struct {
	db     *gorm.DB
	policy *policy.Policy
}

// NewTransactionManager returns a TransactionManager backed by GORM transactions.
func NewTransactionManager(db *gorm.DB, p *policy.Policy) repository.TransactionManager {
	return &transactionManager{db: db, policy: p}
}

// Execute runs fn inside one transaction. GORM rolls back when fn fails or
// panics. Begin and commit failures surface as DatabaseExecuteError.
func (m *transactionManager) Execute(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
	var fnErr error
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(txRepositories{tx: tx, policy: m.policy})

		return fnErr
	})
	if err != nil && fnErr == nil {
		return domainerrors.NewDatabaseExecuteError(err, "transaction")
	}

	return err
}

// txRepositories hands out repositories bound to one transaction.
type txRepositories struct {
	tx     *gorm.DB
	policy *policy.Policy
}

func (r txRepositories) NewUserRepository() repository.UserRepository {
	return NewUserRepository(r.tx, r.policy)
}

func (r txRepositories) NewPolicyRepository() repository.PolicyRepository {
	return NewPolicyRepository(r.tx)
}
