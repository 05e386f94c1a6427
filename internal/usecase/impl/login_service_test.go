package impl

import (
	"context"
	"testing"
	"time"

	domainerrors "credguard/internal/domain/errors"
	"credguard/internal/domain/policy"
	"credguard/internal/domain/repository"
	"credguard/internal/domain/service"
	mockRepo "credguard/internal/mocks/repository"
	mockService "credguard/internal/mocks/service"
	"credguard/internal/usecase"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type loginFixture struct {
	userRepo  *mockRepo.MockUserRepository
	tokens    *mockService.MockTokenService
	publisher *mockService.MockEventPublisher
	service   usecase.LoginUsecase
}

func newLoginFixture(t *testing.T) *loginFixture {
	f := &loginFixture{
		userRepo:  mockRepo.NewMockUserRepository(t),
		tokens:    mockService.NewMockTokenService(t),
		publisher: mockService.NewMockEventPublisher(t),
	}
	f.service = NewLoginService(LoginServiceParams{
		UserRepo:     f.userRepo,
		TokenService: f.tokens,
		Sessions:     NewSessionRegistry(),
		Publisher:    f.publisher,
		Logger:       newDiscardLogger(),
	})

	return f
}

func isEvent(typ service.SecurityEventType) interface{} {
	return mock.MatchedBy(func(e *service.SecurityEvent) bool { return e.Type == typ })
}

func TestLoginService_Login_Success(t *testing.T) {
	f := newLoginFixture(t)
	ctx := context.Background()
	user := newTestUser(t, policy.NewStrict(), "alice")

	f.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
	f.tokens.EXPECT().GenerateAccessToken(user.ID, "alice", []string{"STANDARD"}).Return("signed", nil)
	f.tokens.EXPECT().GetAccessTokenDuration().Return(15 * time.Minute)

	out, err := f.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: testPassword})

	require.NoError(t, err)
	assert.True(t, out.Validated)
	assert.False(t, out.Locked)
	assert.Equal(t, "signed", out.AccessToken)
	assert.Equal(t, int64(900), out.ExpiresIn)
	assert.Same(t, user, out.User)
}

func TestLoginService_Login_UnknownUser(t *testing.T) {
	f := newLoginFixture(t)
	ctx := context.Background()

	f.userRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	out, err := f.service.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "whatever"})

	assert.Nil(t, out)
	assert.Equal(t, domainerrors.ErrInvalidCredentials, err)
}

func TestLoginService_Login_RepositoryError(t *testing.T) {
	f := newLoginFixture(t)
	ctx := context.Background()
	boom := errors.New("connection refused")

	f.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, boom)

	_, err := f.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: testPassword})

	assert.ErrorIs(t, err, boom)
}

func TestLoginService_Login_LocksAfterThreeFailures(t *testing.T) {
	f := newLoginFixture(t)
	ctx := context.Background()
	user := newTestUser(t, policy.NewStrict(), "alice")

	// the failed attempt counter lives in the session, so the user is loaded once
	f.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil).Once()
	f.userRepo.EXPECT().Update(ctx, user).Return(nil).Once()
	f.publisher.EXPECT().PublishSecurityEvent(ctx, isEvent(service.EventCredentialLocked)).Return(nil).Once()

	for attempt := 1; attempt <= 2; attempt++ {
		out, err := f.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "wrong"})
		require.NoError(t, err)
		assert.False(t, out.Validated)
		assert.False(t, out.Locked)
		assert.Equal(t, attempt, out.User.Credential.FailedAttempts())
	}

	out, err := f.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "wrong"})
	require.NoError(t, err)
	assert.False(t, out.Validated)
	assert.True(t, out.Locked)
	assert.True(t, out.User.Credential.Locked(), "the user is returned on failure")
}

func TestLoginService_Login_LockedCredential(t *testing.T) {
	f := newLoginFixture(t)
	ctx := context.Background()
	user := newTestUser(t, policy.NewStrict(), "alice")
	for range 3 {
		user.Credential.Verify([]rune("wrong"))
	}
	require.True(t, user.Credential.Locked())

	f.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)

	out, err := f.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: testPassword})

	require.NoError(t, err)
	assert.False(t, out.Validated)
	assert.True(t, out.Locked)
	assert.Empty(t, out.AccessToken)
}

func TestLoginService_Login_ExpiredRequiresChange(t *testing.T) {
	f := newLoginFixture(t)
	ctx := context.Background()
	clock := newTestClock()
	user := newTestUser(t, policy.NewStrict(policy.WithClock(clock.Now)), "alice")
	clock.AdvanceDays(91)

	f.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)

	out, err := f.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: testPassword})

	require.NoError(t, err)
	assert.True(t, out.Validated)
	assert.True(t, out.Expired)
	assert.True(t, out.MustChange)
	assert.Empty(t, out.AccessToken)
}

func TestLoginService_Login_PublishFailureIsNotFatal(t *testing.T) {
	f := newLoginFixture(t)
	ctx := context.Background()
	user := newTestUser(t, policy.NewStrict(), "alice")
	for range 2 {
		user.Credential.Verify([]rune("wrong"))
	}

	f.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil)
	f.userRepo.EXPECT().Update(ctx, user).Return(nil)
	f.publisher.EXPECT().PublishSecurityEvent(ctx, mock.Anything).Return(errors.New("broker down"))

	out, err := f.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "wrong"})

	require.NoError(t, err)
	assert.True(t, out.Locked)
}

func TestLoginService_Login_PersistLockFailure(t *testing.T) {
	f := newLoginFixture(t)
	ctx := context.Background()
	user := newTestUser(t, policy.NewStrict(), "alice")
	for range 2 {
		user.Credential.Verify([]rune("wrong"))
	}
	boom := errors.New("write failed")

	// loaded once: the unsaved lock keeps the session in the registry
	f.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(user, nil).Once()
	f.userRepo.EXPECT().Update(ctx, user).Return(boom).Twice()
	f.userRepo.EXPECT().Update(ctx, user).Return(nil).Once()

	_, err := f.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "wrong"})
	assert.ErrorIs(t, err, boom)

	// the lock still holds in memory and the write is retried
	out, err := f.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: testPassword})
	require.NoError(t, err)
	assert.True(t, out.Locked)
	assert.False(t, out.Validated)
	assert.Empty(t, out.AccessToken)

	out, err = f.service.Login(ctx, &usecase.LoginInput{Username: "alice", Password: testPassword})
	require.NoError(t, err)
	assert.True(t, out.Locked)
	assert.False(t, out.Validated)
}
