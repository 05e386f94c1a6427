// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"

	deliverycontext "credguard/internal/delivery/context"
	"credguard/internal/domain/credential"
	"credguard/internal/domain/entity"
	domainerrors "credguard/internal/domain/errors"
	"credguard/internal/domain/policy"
	"credguard/internal/domain/repository"
	"credguard/internal/domain/service"
	"credguard/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// credentialService implements the CredentialUsecase interface.
type credentialService struct {
	txManager repository.TransactionManager
	userRepo  repository.UserRepository
	policy    *policy.Policy
	sessions  *SessionRegistry
	events    *eventEmitter
	logger    *slog.Logger
}

// CredentialServiceParams holds dependencies for CredentialService, injected by Fx.
type CredentialServiceParams struct {
	fx.In

	TxManager repository.TransactionManager
	UserRepo  repository.UserRepository
	Policy    *policy.Policy
	Sessions  *SessionRegistry
	Publisher service.EventPublisher
	Logger    *slog.Logger
}

// NewCredentialService is the constructor for credentialService.
func NewCredentialService(params CredentialServiceParams) usecase.CredentialUsecase {
	return &credentialService{
		txManager: params.TxManager,
		userRepo:  params.UserRepo,
		policy:    params.Policy,
		sessions:  params.Sessions,
		events:    newEventEmitter(params.Publisher, params.Logger),
		logger:    params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *credentialService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

// Register creates a user whose password satisfies the active policy.
func (srv *credentialService) Register(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	srv.log(ctx).Info("Starting registration", slog.String("username", input.Username))

	var registered *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		_, err := userRepo.FindByUsername(ctx, input.Username)
		if err == nil {
			return domainerrors.ErrUserAlreadyExists
		}
		if !errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(err, "failed to check existing user")
		}

		user, err := srv.newUser(input)
		if err != nil {
			return err
		}

		if err := userRepo.Create(ctx, user); err != nil {
			return errors.Wrap(err, "failed to create user")
		}
		registered = user

		return nil
	})
	if err != nil {
		srv.log(ctx).Info("Registration rejected", slog.String("username", input.Username), slog.Any("error", err))

		return nil, err
	}

	srv.log(ctx).Debug("Registration completed", slog.String("username", registered.Username), slog.Any("userID", registered.ID))

	return registered, nil
}

func (srv *credentialService) newUser(input *usecase.RegisterInput) (*entity.User, error) {
	cred, err := credential.New(srv.policy, []rune(input.Password))
	if err != nil {
		return nil, domainerrors.Translate(err)
	}

	return entity.NewUser(input.Name, input.Username, cred), nil
}

// EnsureAdmin makes sure the bootstrap administrator exists and holds the
// user administration privilege. An existing password is left untouched.
func (srv *credentialService) EnsureAdmin(ctx context.Context, input *usecase.RegisterInput) (*entity.User, error) {
	var admin *entity.User
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		userRepo := repoFactory.NewUserRepository()

		user, err := userRepo.FindByUsername(ctx, input.Username)
		switch {
		case err == nil:
			admin = user
			if user.HasPrivilege(entity.PrivilegeUserAdmin) {
				return nil
			}
			user.AddPrivilege(entity.PrivilegeUserAdmin)

			return errors.Wrap(userRepo.Update(ctx, user), "failed to grant admin privilege")
		case errors.Is(err, repository.ErrUserNotFound):
			user, err := srv.newUser(input)
			if err != nil {
				return err
			}
			user.AddPrivilege(entity.PrivilegeUserAdmin)
			if err := userRepo.Create(ctx, user); err != nil {
				return errors.Wrap(err, "failed to create admin")
			}
			admin = user

			return nil
		default:
			return errors.Wrap(err, "failed to find admin")
		}
	})
	if err != nil {
		return nil, err
	}

	srv.log(ctx).Info("Administrator account ready", slog.String("username", admin.Username))

	return admin, nil
}

// ChangePassword verifies the current password and installs a new one. A wrong
// current password counts toward the lockout like a failed login.
func (srv *credentialService) ChangePassword(ctx context.Context, input *usecase.ChangePasswordInput) error {
	session := srv.sessions.acquire(input.Username)
	defer srv.sessions.release(session)

	user, err := session.load(ctx, srv.userRepo)
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrInvalidCredentials
	}
	if err != nil {
		return errors.Wrap(err, "failed to load user")
	}

	cred := user.Credential
	if cred.Locked() {
		if session.unsaved {
			if err := session.persist(ctx, srv.userRepo); err != nil {
				srv.log(ctx).Error("Failed to persist credential lock", slog.String("username", user.Username), slog.Any("error", err))
			}
		}

		return domainerrors.ErrCredentialLocked
	}

	if !cred.Verify([]rune(input.CurrentPassword)) {
		if cred.Locked() {
			if err := session.persist(ctx, srv.userRepo); err != nil {
				return errors.Wrap(err, "failed to persist credential lock")
			}
			srv.log(ctx).Warn("Credential locked", slog.String("username", user.Username))
			srv.events.emit(ctx, service.EventCredentialLocked, user.Username, "", nil)
		}

		return domainerrors.ErrInvalidCredentials
	}

	if err := cred.Change([]rune(input.NewPassword)); err != nil {
		srv.log(ctx).Info("Password change rejected", slog.String("username", user.Username), slog.Any("error", err))

		return domainerrors.Translate(err)
	}

	if err := srv.userRepo.Update(ctx, user); err != nil {
		srv.log(ctx).Error("Failed to persist password change", slog.String("username", user.Username), slog.Any("error", err))
		session.discard()

		return errors.Wrap(err, "failed to persist password change")
	}

	srv.log(ctx).Info("Password changed", slog.String("username", user.Username))
	srv.events.emit(ctx, service.EventCredentialChanged, user.Username, user.Username, nil)

	return nil
}

// Unlock clears the lock of a credential on behalf of an administrator.
func (srv *credentialService) Unlock(ctx context.Context, input *usecase.UnlockInput) error {
	session := srv.sessions.acquire(input.Username)
	defer srv.sessions.release(session)

	user, err := session.load(ctx, srv.userRepo)
	if errors.Is(err, repository.ErrUserNotFound) {
		return domainerrors.ErrUserNotFound
	}
	if err != nil {
		return errors.Wrap(err, "failed to load user")
	}

	user.Credential.Unlock()
	if err := session.persist(ctx, srv.userRepo); err != nil {
		// the stored lock still applies
		session.discard()

		return errors.Wrap(err, "failed to persist unlock")
	}

	srv.log(ctx).Info("Credential unlocked", slog.String("username", user.Username), slog.String("actor", input.Actor))
	srv.events.emit(ctx, service.EventCredentialUnlocked, user.Username, input.Actor, nil)

	return nil
}

// Status reports the state of a credential, re-evaluating its expiration first.
func (srv *credentialService) Status(ctx context.Context, username string) (*usecase.CredentialStatus, error) {
	session := srv.sessions.acquire(username)
	defer srv.sessions.release(session)

	user, err := session.load(ctx, srv.userRepo)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, domainerrors.ErrUserNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to load user")
	}

	cred := user.Credential
	cred.CheckExpiration()

	depth := 0
	for _, secret := range cred.History() {
		if secret != "" {
			depth++
		}
	}

	return &usecase.CredentialStatus{
		Username:       user.Username,
		Name:           user.Name,
		Privileges:     user.Privileges.ToStrings(),
		Locked:         cred.Locked(),
		Expired:        cred.Expired(),
		FailedAttempts: cred.FailedAttempts(),
		ChangedAt:      cred.CreatedAt(),
		HistoryDepth:   depth,
	}, nil
}
