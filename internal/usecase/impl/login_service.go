package impl

import (
	"context"
	"log/slog"
	"strconv"

	deliverycontext "credguard/internal/delivery/context"
	"credguard/internal/domain/credential"
	domainerrors "credguard/internal/domain/errors"
	"credguard/internal/domain/repository"
	"credguard/internal/domain/service"
	"credguard/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// loginService implements the LoginUsecase interface.
type loginService struct {
	userRepo     repository.UserRepository
	tokenService service.TokenService
	sessions     *SessionRegistry
	events       *eventEmitter
	logger       *slog.Logger
}

// LoginServiceParams holds dependencies for LoginService, injected by Fx.
type LoginServiceParams struct {
	fx.In

	UserRepo     repository.UserRepository
	TokenService service.TokenService
	Sessions     *SessionRegistry
	Publisher    service.EventPublisher
	Logger       *slog.Logger
}

// NewLoginService is the constructor for loginService.
func NewLoginService(params LoginServiceParams) usecase.LoginUsecase {
	return &loginService{
		userRepo:     params.UserRepo,
		tokenService: params.TokenService,
		sessions:     params.Sessions,
		events:       newEventEmitter(params.Publisher, params.Logger),
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *loginService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

// Login runs one verification attempt against the user's credential.
func (srv *loginService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.LoginOutput, error) {
	session := srv.sessions.acquire(input.Username)
	defer srv.sessions.release(session)

	user, err := session.load(ctx, srv.userRepo)
	if errors.Is(err, repository.ErrUserNotFound) {
		srv.log(ctx).Info("Login attempt for unknown user", slog.String("username", input.Username))

		return nil, domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user")
	}

	cred := user.Credential
	if cred.Locked() {
		srv.log(ctx).Warn("Login attempt on locked credential", slog.String("username", user.Username))
		if session.unsaved {
			srv.persistLock(ctx, session)
		}

		return &usecase.LoginOutput{Locked: true, User: user}, nil
	}

	if !cred.Verify([]rune(input.Password)) {
		srv.log(ctx).Info("Password verification failed",
			slog.String("username", user.Username),
			slog.Int("failedAttempts", cred.FailedAttempts()),
		)

		if cred.Locked() {
			if err := session.persist(ctx, srv.userRepo); err != nil {
				srv.log(ctx).Error("Failed to persist credential lock", slog.String("username", user.Username), slog.Any("error", err))

				return nil, errors.Wrap(err, "failed to persist credential lock")
			}
			srv.log(ctx).Warn("Credential locked", slog.String("username", user.Username))
			srv.events.emit(ctx, service.EventCredentialLocked, user.Username, "", map[string]string{
				"failedAttempts": strconv.Itoa(credential.MaxFailedAttempts),
			})
		}

		return &usecase.LoginOutput{Locked: cred.Locked(), User: user}, nil
	}

	if cred.CheckExpiration() {
		srv.log(ctx).Info("Password expired, change required", slog.String("username", user.Username))

		return &usecase.LoginOutput{Validated: true, Expired: true, MustChange: true, User: user}, nil
	}

	token, err := srv.tokenService.GenerateAccessToken(user.ID, user.Username, user.Privileges.ToStrings())
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}

	srv.log(ctx).Debug("Login succeeded", slog.String("username", user.Username))

	return &usecase.LoginOutput{
		Validated:   true,
		User:        user,
		AccessToken: token,
		ExpiresIn:   int64(srv.tokenService.GetAccessTokenDuration().Seconds()),
	}, nil
}

// persistLock retries storing a lock whose first write failed. The session
// keeps the lock in memory either way.
func (srv *loginService) persistLock(ctx context.Context, session *credentialSession) {
	if err := session.persist(ctx, srv.userRepo); err != nil {
		srv.log(ctx).Error("Failed to persist credential lock", slog.String("username", session.username), slog.Any("error", err))
	}
}
