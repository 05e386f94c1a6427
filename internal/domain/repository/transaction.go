package repository

import "context"

// TransactionManager runs a unit of work atomically. fn's error rolls the
// work back and is returned unchanged.
type TransactionManager interface {
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to the running transaction.
type RepositoryFactory interface {
	NewUserRepository() UserRepository
	NewPolicyRepository() PolicyRepository
}
