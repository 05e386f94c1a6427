// Package policy defines the rule set that governs credential creation:
// character-class and length rules, reuse history depth, time-to-live and the
// digest algorithm used to derive stored secrets.
//
// A Policy is a shared handle. Every credential keeps a reference to the same
// handle, so a rule change is observed by all of them on their next validation
// or expiration check.
package policy

import (
	"sync"
	"sync/atomic"
	"time"

	"credguard/internal/errors"
)

const (
	StrictMinLength      = 8
	StrictHistoryCount   = 3
	StrictTimeToLiveDays = 90
	StrictAlgorithm      = AlgorithmSHA256
)

// Rules is an immutable snapshot of the policy configuration.
type Rules struct {
	// Algorithm names the digest used for secrets. Empty means secrets are stored as plaintext.
	Algorithm string `json:"algorithm"`

	MinLength        int  `json:"minLength"`
	RequireLetter    bool `json:"requireLetter"`
	RequireDigit     bool `json:"requireDigit"`
	RequireLower     bool `json:"requireLower"`
	RequireUpper     bool `json:"requireUpper"`
	RequireSpecial   bool `json:"requireSpecial"`
	ForbidWhitespace bool `json:"forbidWhitespace"`

	// HistoryCount is the number of secrets, current one included, that cannot be reused. 0 disables.
	HistoryCount int `json:"historyCount"`

	// TimeToLiveDays is the credential lifetime. 0 means credentials never expire.
	TimeToLiveDays int `json:"timeToLiveDays"`

	ModifiedAt time.Time `json:"modifiedAt"`
}

// Strict returns the secure preset.
func Strict() Rules {
	return Rules{
		Algorithm:        StrictAlgorithm,
		MinLength:        StrictMinLength,
		RequireLetter:    true,
		RequireDigit:     true,
		RequireLower:     true,
		RequireUpper:     true,
		RequireSpecial:   true,
		ForbidWhitespace: true,
		HistoryCount:     StrictHistoryCount,
		TimeToLiveDays:   StrictTimeToLiveDays,
	}
}

// Permissive returns the preset with every rule disabled and hashing turned off.
func Permissive() Rules {
	return Rules{}
}

// HashingEnabled reports whether secrets are digests rather than plaintext.
func (r Rules) HashingEnabled() bool {
	return r.Algorithm != ""
}

// HistoryCapacity is the number of previous secrets a credential retains.
func (r Rules) HistoryCapacity() int {
	if r.HistoryCount <= 1 {
		return 0
	}

	return r.HistoryCount - 1
}

func (r Rules) validate() error {
	if r.MinLength < 0 {
		return errors.Wrapf(ErrInvalidRule, "minLength must not be negative, got %d", r.MinLength)
	}
	if r.HistoryCount < 0 {
		return errors.Wrapf(ErrInvalidRule, "historyCount must not be negative, got %d", r.HistoryCount)
	}
	if r.TimeToLiveDays < 0 {
		return errors.Wrapf(ErrInvalidRule, "timeToLiveDays must not be negative, got %d", r.TimeToLiveDays)
	}
	if r.Algorithm != "" {
		if _, err := lookupAlgorithm(r.Algorithm); err != nil {
			return err
		}
	}

	return nil
}

// Option configures a Policy at construction time.
type Option func(*Policy)

// WithClock replaces the time source, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(p *Policy) {
		p.now = now
	}
}

// Policy is the shared, concurrency-safe handle over the active Rules.
// Reads load the current snapshot; writes install a new one.
type Policy struct {
	mu    sync.Mutex // serialises writers
	rules atomic.Pointer[Rules]
	now   func() time.Time
}

// New creates a Policy holding the given rules.
func New(rules Rules, opts ...Option) (*Policy, error) {
	p := &Policy{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.Apply(rules); err != nil {
		return nil, err
	}

	return p, nil
}

// Restore creates a Policy from persisted rules, keeping their modification
// time so that a restart does not expire every credential.
func Restore(rules Rules, opts ...Option) (*Policy, error) {
	p := &Policy{now: time.Now}
	for _, opt := range opts {
		opt(p)
	}

	if err := p.Load(rules); err != nil {
		return nil, err
	}

	return p, nil
}

// NewStrict creates a Policy with the strict preset installed.
func NewStrict(opts ...Option) *Policy {
	p, err := New(Strict(), opts...)
	if err != nil {
		// the strict preset only references built-in algorithms
		panic(err)
	}

	return p
}

// Now returns the policy clock.
func (p *Policy) Now() time.Time {
	return p.now()
}

// Rules returns the current snapshot.
func (p *Policy) Rules() Rules {
	return *p.rules.Load()
}

// Apply installs a complete rule set and stamps its modification time.
func (p *Policy) Apply(rules Rules) error {
	rules.Algorithm = canonicalAlgorithm(rules.Algorithm)
	if err := rules.validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	rules.ModifiedAt = p.now()
	p.rules.Store(&rules)

	return nil
}

// Load installs persisted rules as they are. Unlike Apply it keeps ModifiedAt,
// stamping it only when zero.
func (p *Policy) Load(rules Rules) error {
	rules.Algorithm = canonicalAlgorithm(rules.Algorithm)
	if err := rules.validate(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if rules.ModifiedAt.IsZero() {
		rules.ModifiedAt = p.now()
	}
	p.rules.Store(&rules)

	return nil
}

// Update applies fn to a copy of the current rules and installs the result.
func (p *Policy) Update(fn func(*Rules)) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	next := *p.rules.Load()
	fn(&next)
	next.Algorithm = canonicalAlgorithm(next.Algorithm)
	if err := next.validate(); err != nil {
		return err
	}

	next.ModifiedAt = p.now()
	p.rules.Store(&next)

	return nil
}

// SetStrict installs the strict preset when strict is true and the permissive one otherwise.
func (p *Policy) SetStrict(strict bool) {
	rules := Permissive()
	if strict {
		rules = Strict()
	}

	// both presets are valid by construction
	_ = p.Apply(rules)
}

// SetAlgorithm selects the digest algorithm. An empty name disables hashing.
func (p *Policy) SetAlgorithm(name string) error {
	return p.Update(func(r *Rules) { r.Algorithm = name })
}

func (p *Policy) SetMinLength(n int) error {
	return p.Update(func(r *Rules) { r.MinLength = n })
}

func (p *Policy) SetHistoryCount(n int) error {
	return p.Update(func(r *Rules) { r.HistoryCount = n })
}

func (p *Policy) SetTimeToLiveDays(days int) error {
	return p.Update(func(r *Rules) { r.TimeToLiveDays = days })
}

// updateFlag applies a change to boolean rules only. validate never looks at
// them and the stored rules already passed it, so Update cannot fail here.
func (p *Policy) updateFlag(fn func(*Rules)) {
	_ = p.Update(fn)
}

func (p *Policy) SetRequireLetter(b bool) {
	p.updateFlag(func(r *Rules) { r.RequireLetter = b })
}

func (p *Policy) SetRequireDigit(b bool) {
	p.updateFlag(func(r *Rules) { r.RequireDigit = b })
}

func (p *Policy) SetRequireLower(b bool) {
	p.updateFlag(func(r *Rules) { r.RequireLower = b })
}

func (p *Policy) SetRequireUpper(b bool) {
	p.updateFlag(func(r *Rules) { r.RequireUpper = b })
}

func (p *Policy) SetRequireSpecial(b bool) {
	p.updateFlag(func(r *Rules) { r.RequireSpecial = b })
}

func (p *Policy) SetForbidWhitespace(b bool) {
	p.updateFlag(func(r *Rules) { r.ForbidWhitespace = b })
}

// Expired reports whether a credential created at createdAt is stale: older than
// the time-to-live, or older than the last rule change. A zero TTL never expires.
func (p *Policy) Expired(createdAt time.Time) bool {
	rules := p.Rules()
	if rules.TimeToLiveDays == 0 {
		return false
	}

	deadline := p.now().AddDate(0, 0, -rules.TimeToLiveDays)

	return createdAt.Before(deadline) || createdAt.Before(rules.ModifiedAt)
}
