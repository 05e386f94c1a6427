package policy

import (
	"sync"
	"testing"
	"time"

	"credguard/internal/domain/sensitive"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *fakeClock {
	return &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

func TestStrictPreset(t *testing.T) {
	rules := Strict()

	assert.Equal(t, AlgorithmSHA256, rules.Algorithm)
	assert.Equal(t, 8, rules.MinLength)
	assert.Equal(t, 3, rules.HistoryCount)
	assert.Equal(t, 90, rules.TimeToLiveDays)
	assert.True(t, rules.RequireLetter)
	assert.True(t, rules.RequireDigit)
	assert.True(t, rules.RequireLower)
	assert.True(t, rules.RequireUpper)
	assert.True(t, rules.RequireSpecial)
	assert.True(t, rules.ForbidWhitespace)
	assert.Equal(t, 2, rules.HistoryCapacity())
}

func TestPermissivePreset(t *testing.T) {
	rules := Permissive()

	assert.False(t, rules.HashingEnabled())
	assert.Zero(t, rules.MinLength)
	assert.Zero(t, rules.HistoryCount)
	assert.Zero(t, rules.TimeToLiveDays)
	assert.Zero(t, rules.HistoryCapacity())
}

func TestNew_RejectsInvalidRules(t *testing.T) {
	testCases := []struct {
		name   string
		rules  Rules
		target error
	}{
		{"negative length", Rules{MinLength: -1}, ErrInvalidRule},
		{"negative history", Rules{HistoryCount: -2}, ErrInvalidRule},
		{"negative ttl", Rules{TimeToLiveDays: -1}, ErrInvalidRule},
		{"unknown algorithm", Rules{Algorithm: "ROT13"}, ErrUnknownAlgorithm},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := New(tc.rules)
			assert.Nil(t, p)
			assert.True(t, errors.Is(err, tc.target), "got %v", err)
		})
	}
}

func TestSetAlgorithm(t *testing.T) {
	p := NewStrict()

	require.NoError(t, p.SetAlgorithm("sha3-256"))
	assert.Equal(t, AlgorithmSHA3_256, p.Rules().Algorithm)

	require.NoError(t, p.SetAlgorithm("none"))
	assert.False(t, p.Rules().HashingEnabled())

	require.NoError(t, p.SetAlgorithm(""))
	assert.False(t, p.Rules().HashingEnabled())

	err := p.SetAlgorithm("WHIRLPOOL")
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
	// a rejected change leaves the previous rules in place
	assert.False(t, p.Rules().HashingEnabled())
}

func TestSetters_TouchModifiedAt(t *testing.T) {
	clock := newClock()
	p := NewStrict(WithClock(clock.Now))
	created := p.Rules().ModifiedAt

	setters := []func(){
		func() { require.NoError(t, p.SetMinLength(10)) },
		func() { require.NoError(t, p.SetHistoryCount(5)) },
		func() { require.NoError(t, p.SetTimeToLiveDays(30)) },
		func() { p.SetRequireLetter(false) },
		func() { p.SetRequireDigit(false) },
		func() { p.SetRequireLower(false) },
		func() { p.SetRequireUpper(false) },
		func() { p.SetRequireSpecial(false) },
		func() { p.SetForbidWhitespace(false) },
		func() { p.SetStrict(false) },
	}

	last := created
	for i, set := range setters {
		clock.Advance(time.Minute)
		set()
		modified := p.Rules().ModifiedAt
		assert.True(t, modified.After(last), "setter %d did not update ModifiedAt", i)
		last = modified
	}
}

func TestFlagSetters_Apply(t *testing.T) {
	p, err := New(Permissive())
	require.NoError(t, err)

	p.SetRequireLetter(true)
	p.SetRequireDigit(true)
	p.SetRequireLower(true)
	p.SetRequireUpper(true)
	p.SetRequireSpecial(true)
	p.SetForbidWhitespace(true)

	rules := p.Rules()
	assert.True(t, rules.RequireLetter)
	assert.True(t, rules.RequireDigit)
	assert.True(t, rules.RequireLower)
	assert.True(t, rules.RequireUpper)
	assert.True(t, rules.RequireSpecial)
	assert.True(t, rules.ForbidWhitespace)
}

func TestSetStrict(t *testing.T) {
	p := NewStrict()

	p.SetStrict(false)
	rules := p.Rules()
	assert.False(t, rules.HashingEnabled())
	assert.Zero(t, rules.HistoryCount)
	assert.Zero(t, rules.TimeToLiveDays)
	assert.False(t, rules.RequireDigit)

	p.SetStrict(true)
	rules = p.Rules()
	assert.Equal(t, AlgorithmSHA256, rules.Algorithm)
	assert.Equal(t, 8, rules.MinLength)
}

func TestExpired(t *testing.T) {
	clock := newClock()
	p := NewStrict(WithClock(clock.Now))
	clock.Advance(time.Hour)

	assert.False(t, p.Expired(clock.Now()), "fresh credential")
	assert.True(t, p.Expired(clock.Now().AddDate(0, 0, -91)), "older than ttl")

	// a rule change retroactively expires anything created before it
	createdAt := clock.Now()
	clock.Advance(time.Hour)
	require.NoError(t, p.SetMinLength(12))
	assert.True(t, p.Expired(createdAt))
}

func TestExpired_ZeroTTLNeverExpires(t *testing.T) {
	clock := newClock()
	p := NewStrict(WithClock(clock.Now))
	require.NoError(t, p.SetTimeToLiveDays(0))

	assert.False(t, p.Expired(clock.Now().AddDate(-5, 0, 0)))
}

func TestRestore_KeepsModifiedAt(t *testing.T) {
	clock := newClock()
	stored := Strict()
	stored.ModifiedAt = clock.Now().AddDate(0, 0, -10)
	stored.Algorithm = "sha-512"

	p, err := Restore(stored, WithClock(clock.Now))
	require.NoError(t, err)
	assert.Equal(t, stored.ModifiedAt, p.Rules().ModifiedAt)
	assert.Equal(t, AlgorithmSHA512, p.Rules().Algorithm)
	assert.False(t, p.Expired(clock.Now().AddDate(0, 0, -5)))

	p, err = Restore(Strict(), WithClock(clock.Now))
	require.NoError(t, err)
	assert.Equal(t, clock.Now(), p.Rules().ModifiedAt)

	_, err = Restore(Rules{Algorithm: "nope"})
	assert.True(t, errors.Is(err, ErrUnknownAlgorithm))
}

func TestPolicy_ConcurrentReadsAndWrites(t *testing.T) {
	p := NewStrict()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = p.SetMinLength(8 + n%3)
		}(i)
		go func() {
			defer wg.Done()
			_ = p.Validate(sensitive.FromString("one2Three!"))
		}()
	}
	wg.Wait()

	assert.GreaterOrEqual(t, p.Rules().MinLength, 8)
}
