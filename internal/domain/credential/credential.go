// Package credential implements the stored password entity: its secret,
// reuse history, age and lockout state, and the transitions between them.
package credential

import (
	"crypto/subtle"
	"time"

	"credguard/internal/domain/policy"
	"credguard/internal/domain/sensitive"
	"credguard/internal/errors"
)

// MaxFailedAttempts is the number of consecutive failed verifications that locks a credential.
const MaxFailedAttempts = 3

// ErrReuse is returned when a new password matches one still remembered by the history.
var ErrReuse = errors.New("password exists in history")

// Record is the persisted form of a Credential. Expiration is derived and not stored.
type Record struct {
	Secret    string    `json:"secret"`
	History   []string  `json:"history"`
	CreatedAt time.Time `json:"createdAt"`
	Locked    bool      `json:"locked"`
}

// Credential is a password governed by a Policy.
//
// A Credential is not safe for concurrent use; callers own it for the length of a session.
type Credential struct {
	policy         *policy.Policy
	secret         string
	history        []string
	createdAt      time.Time
	expired        bool
	failedAttempts int
	locked         bool
}

// New creates a credential from plaintext. The plaintext is validated against
// the policy, hashed, and wiped before New returns, whatever the outcome.
func New(p *policy.Policy, plaintext []rune) (*Credential, error) {
	c := &Credential{policy: p}
	if err := c.Change(plaintext); err != nil {
		return nil, err
	}

	return c, nil
}

// Restore rebuilds a credential from its persisted record. Validation is skipped
// since the secret passed the policy when it was set, but expiration is re-evaluated.
func Restore(p *policy.Policy, rec Record) *Credential {
	c := &Credential{
		policy:    p,
		secret:    rec.Secret,
		history:   append([]string(nil), rec.History...),
		createdAt: rec.CreatedAt,
		locked:    rec.Locked,
	}
	c.checkExpiration()

	return c
}

// Change replaces the password. On success the previous secret moves to the
// front of the history, the creation time is reset, and the lock is released.
func (c *Credential) Change(plaintext []rune) error {
	return sensitive.Use(plaintext, func(buf *sensitive.Buffer) error {
		return c.change(buf)
	})
}

func (c *Credential) change(buf *sensitive.Buffer) error {
	rules := c.policy.Rules()
	c.resizeHistory(rules.HistoryCapacity())

	if err := rules.Validate(buf); err != nil {
		return errors.WithStack(err)
	}

	secret, err := rules.Hash(buf)
	if err != nil {
		return err
	}

	if c.remembers(rules, secret) {
		return errors.WithStack(ErrReuse)
	}

	c.rotate(c.secret)
	c.secret = secret
	c.createdAt = c.policy.Now()
	c.expired = false
	c.failedAttempts = 0
	c.locked = false

	return nil
}

// Verify compares plaintext against the stored secret and returns true on a match.
// A locked credential never verifies. Each mismatch counts toward the lockout
// threshold; a match resets the count.
func (c *Credential) Verify(plaintext []rune) bool {
	buf := sensitive.New(plaintext)
	defer buf.Clear()

	if c.locked {
		return false
	}

	// The candidate is only digested for comparison: it is neither validated
	// nor recorded, so a tightened policy does not block login with the old password.
	candidate, err := c.policy.Hash(buf)
	if err == nil && c.Matches(candidate) {
		c.failedAttempts = 0

		return true
	}

	c.failedAttempts++
	if c.failedAttempts >= MaxFailedAttempts {
		c.locked = true
	}

	return false
}

// Matches reports whether secret equals the stored secret, in constant time.
func (c *Credential) Matches(secret string) bool {
	return subtle.ConstantTimeCompare([]byte(c.secret), []byte(secret)) == 1
}

// Unlock clears the lock and the failed attempt count. It is an administrative action.
func (c *Credential) Unlock() {
	c.locked = false
	c.failedAttempts = 0
}

// CheckExpiration re-evaluates the expired flag against the current policy.
func (c *Credential) CheckExpiration() bool {
	c.checkExpiration()

	return c.expired
}

// checkExpiration only ever sets the flag; it is cleared by a successful change.
func (c *Credential) checkExpiration() {
	if c.policy.Expired(c.createdAt) {
		c.expired = true
	}
}

func (c *Credential) Secret() string       { return c.secret }
func (c *Credential) CreatedAt() time.Time { return c.createdAt }
func (c *Credential) Expired() bool        { return c.expired }
func (c *Credential) Locked() bool         { return c.locked }
func (c *Credential) FailedAttempts() int  { return c.failedAttempts }

// History returns a copy of the previous secrets, most recent first. Unused
// slots are empty strings.
func (c *Credential) History() []string {
	out := make([]string, len(c.history))
	copy(out, c.history)

	return out
}

// Record returns the persisted form of the credential.
func (c *Credential) Record() Record {
	return Record{
		Secret:    c.secret,
		History:   c.History(),
		CreatedAt: c.createdAt,
		Locked:    c.locked,
	}
}
