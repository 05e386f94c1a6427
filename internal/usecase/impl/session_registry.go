package impl

import (
	"context"
	"sync"

	"credguard/internal/domain/entity"
	"credguard/internal/domain/repository"
)

// SessionRegistry owns the live credentials of users with pending failed
// attempts. The failed attempt counter is not persisted, so the credential
// that carries it must outlive a single request. Each username is served by
// one session at a time.
type SessionRegistry struct {
	mu       sync.Mutex
	sessions map[string]*credentialSession
}

type credentialSession struct {
	mu       sync.Mutex
	username string
	user     *entity.User
	refs     int

	// unsaved is set while the in-memory credential holds state, such as a
	// lock, that the last write failed to store.
	unsaved bool
}

// NewSessionRegistry is the constructor for SessionRegistry.
func NewSessionRegistry() *SessionRegistry {
	return &SessionRegistry{sessions: make(map[string]*credentialSession)}
}

// acquire returns the exclusive session for username. It must be released.
func (r *SessionRegistry) acquire(username string) *credentialSession {
	r.mu.Lock()
	s, ok := r.sessions[username]
	if !ok {
		s = &credentialSession{username: username}
		r.sessions[username] = s
	}
	s.refs++
	r.mu.Unlock()

	s.mu.Lock()

	return s
}

// release hands the session back. A credential is retained while it has
// failed attempts that have not yet locked it, or while its state is unsaved;
// everything else is reloaded on the next request.
func (r *SessionRegistry) release(s *credentialSession) {
	if !s.retain() {
		s.user = nil
	}
	evict := s.user == nil

	r.mu.Lock()
	s.refs--
	if s.refs == 0 && evict {
		delete(r.sessions, s.username)
	}
	r.mu.Unlock()

	s.mu.Unlock()
}

// Len returns the number of tracked sessions.
func (r *SessionRegistry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.sessions)
}

func (s *credentialSession) retain() bool {
	if s.user == nil || s.user.Credential == nil {
		return false
	}
	if s.unsaved {
		return true
	}
	cred := s.user.Credential

	return cred.FailedAttempts() > 0 && !cred.Locked()
}

// load returns the session's user, reading it from the repository on first use.
func (s *credentialSession) load(ctx context.Context, repo repository.UserRepository) (*entity.User, error) {
	if s.user != nil {
		return s.user, nil
	}

	user, err := repo.FindByUsername(ctx, s.username)
	if err != nil {
		return nil, err
	}
	s.user = user

	return user, nil
}

// persist stores the session's user. A failed write marks the session unsaved,
// which keeps the in-memory credential authoritative until a later write succeeds.
func (s *credentialSession) persist(ctx context.Context, repo repository.UserRepository) error {
	if err := repo.Update(ctx, s.user); err != nil {
		s.unsaved = true

		return err
	}
	s.unsaved = false

	return nil
}

// discard drops the in-memory user so the next request reloads it.
func (s *credentialSession) discard() {
	s.user = nil
	s.unsaved = false
}
