package impl

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"credguard/internal/domain/credential"
	"credguard/internal/domain/entity"
	"credguard/internal/domain/policy"
	"credguard/internal/domain/repository"
	mockRepo "credguard/internal/mocks/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testPassword = "one2Three!"

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) AdvanceDays(days int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.AddDate(0, 0, days)
}

func newTestUser(t *testing.T, p *policy.Policy, username string) *entity.User {
	t.Helper()

	cred, err := credential.New(p, []rune(testPassword))
	require.NoError(t, err)

	user := entity.NewUser("Test "+username, username, cred)
	user.ID = uuid.New()

	return user
}

// expectTx makes the transaction manager run the callback against a factory
// that hands out userRepo.
func expectTx(t *testing.T, txManager *mockRepo.MockTransactionManager, userRepo repository.UserRepository) {
	t.Helper()

	txManager.EXPECT().
		Execute(mock.Anything, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			factory := mockRepo.NewMockRepositoryFactory(t)
			factory.EXPECT().NewUserRepository().Return(userRepo)

			return fn(factory)
		})
}
