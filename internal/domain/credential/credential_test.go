package credential

import (
	"testing"
	"time"

	"credguard/internal/domain/policy"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func clockAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func strictPolicy() *policy.Policy {
	return policy.NewStrict(policy.WithClock(clockAt(fixedNow)))
}

func TestNew_Strict(t *testing.T) {
	p := strictPolicy()
	plaintext := []rune("one2Three!")

	c, err := New(p, plaintext)
	require.NoError(t, err)

	assert.Len(t, c.Secret(), 64)
	assert.NotEqual(t, "one2Three!", c.Secret())
	assert.Equal(t, fixedNow, c.CreatedAt())
	assert.False(t, c.Expired())
	assert.False(t, c.Locked())
	assert.Equal(t, []string{"", ""}, c.History())
	assert.Equal(t, make([]rune, len(plaintext)), plaintext, "plaintext must be wiped")
}

func TestNew_RejectsWeakPasswords(t *testing.T) {
	p := strictPolicy()

	testCases := []struct {
		candidate string
		reason    policy.Reason
	}{
		{"x", policy.ReasonTooShort},
		{"xxxxxxxx", policy.ReasonNoDigit},
		{"xxxxxxxx2", policy.ReasonNoSpecial},
		{"xxxxxxxx2!", policy.ReasonNoUpper},
		{"XXXXXXXX2!", policy.ReasonNoLower},
	}

	for _, tc := range testCases {
		t.Run(tc.candidate, func(t *testing.T) {
			plaintext := []rune(tc.candidate)
			c, err := New(p, plaintext)
			assert.Nil(t, c)

			v, ok := policy.IsViolation(err)
			require.True(t, ok, "got %v", err)
			assert.Equal(t, tc.reason, v.Reason)
			assert.Equal(t, make([]rune, len(plaintext)), plaintext)
		})
	}
}

func TestNew_PlaintextMode(t *testing.T) {
	p, err := policy.New(policy.Permissive())
	require.NoError(t, err)

	c, err := New(p, []rune("p"))
	require.NoError(t, err)
	assert.Equal(t, "p", c.Secret())
}

func TestNew_RejectsEmptyPassword(t *testing.T) {
	for _, rules := range []policy.Rules{policy.Permissive(), {ForbidWhitespace: true}} {
		p, err := policy.New(rules)
		require.NoError(t, err)

		c, err := New(p, []rune{})
		assert.Nil(t, c)
		v, ok := policy.IsViolation(err)
		require.True(t, ok, "got %v", err)
		assert.Equal(t, policy.ReasonTooShort, v.Reason)
	}
}

func TestChange_RejectsEmptyPassword(t *testing.T) {
	p, err := policy.New(policy.Permissive())
	require.NoError(t, err)
	c, err := New(p, []rune("p"))
	require.NoError(t, err)

	_, ok := policy.IsViolation(c.Change([]rune{}))
	assert.True(t, ok)
	assert.Equal(t, "p", c.Secret())
	assert.False(t, c.Verify([]rune{}))
}

func TestChange_History(t *testing.T) {
	p, err := policy.New(policy.Rules{HistoryCount: 2})
	require.NoError(t, err)

	c, err := New(p, []rune("one2Three!"))
	require.NoError(t, err)

	require.NoError(t, c.Change([]rune("two3Four!")))
	assert.Equal(t, []string{"one2Three!"}, c.History())

	err = c.Change([]rune("one2Three!"))
	assert.True(t, errors.Is(err, ErrReuse), "got %v", err)
	assert.Equal(t, "two3Four!", c.Secret(), "failed change must not modify state")

	require.NoError(t, c.Change([]rune("three4Five!")))
	assert.Equal(t, "three4Five!", c.Secret())
	assert.Equal(t, []string{"two3Four!"}, c.History())

	// the oldest secret fell out of the window
	require.NoError(t, c.Change([]rune("one2Three!")))
}

func TestChange_CurrentSecretIsRemembered(t *testing.T) {
	c, err := New(strictPolicy(), []rune("one2Three!"))
	require.NoError(t, err)

	err = c.Change([]rune("one2Three!"))
	assert.True(t, errors.Is(err, ErrReuse))
}

func TestChange_ZeroHistoryAllowsReuse(t *testing.T) {
	p, err := policy.New(policy.Permissive())
	require.NoError(t, err)

	c, err := New(p, []rune("same"))
	require.NoError(t, err)

	assert.NoError(t, c.Change([]rune("same")))
	assert.Empty(t, c.History())
}

func TestChange_StrictWindow(t *testing.T) {
	c, err := New(strictPolicy(), []rune("Alpha1!aa"))
	require.NoError(t, err)
	require.NoError(t, c.Change([]rune("Bravo2!bb")))
	require.NoError(t, c.Change([]rune("Charlie3!c")))

	// current plus two previous are remembered
	for _, old := range []string{"Alpha1!aa", "Bravo2!bb", "Charlie3!c"} {
		assert.True(t, errors.Is(c.Change([]rune(old)), ErrReuse), old)
	}

	require.NoError(t, c.Change([]rune("Delta4!ddd")))
	assert.NoError(t, c.Change([]rune("Alpha1!aa")))
}

func TestChange_ResizesHistoryWithPolicy(t *testing.T) {
	p := strictPolicy()
	c, err := New(p, []rune("Alpha1!aa"))
	require.NoError(t, err)
	require.NoError(t, c.Change([]rune("Bravo2!bb")))
	require.NoError(t, c.Change([]rune("Charlie3!c")))
	require.Len(t, c.History(), 2)

	require.NoError(t, p.SetHistoryCount(2))
	require.NoError(t, c.Change([]rune("Delta4!ddd")))
	assert.Len(t, c.History(), 1)

	require.NoError(t, p.SetHistoryCount(5))
	require.NoError(t, c.Change([]rune("Echo5!eeee")))
	history := c.History()
	assert.Len(t, history, 4)
	assert.Equal(t, []string{"", ""}, history[2:])
}

func TestChange_ClearsLockAndExpiry(t *testing.T) {
	c, err := New(strictPolicy(), []rune("one2Three!"))
	require.NoError(t, err)

	for i := 0; i < MaxFailedAttempts; i++ {
		c.Verify([]rune("wrong"))
	}
	require.True(t, c.Locked())

	require.NoError(t, c.Change([]rune("two3Four!X")))
	assert.False(t, c.Locked())
	assert.Zero(t, c.FailedAttempts())
	assert.True(t, c.Verify([]rune("two3Four!X")))
}

func TestVerify(t *testing.T) {
	c, err := New(strictPolicy(), []rune("one2Three!"))
	require.NoError(t, err)

	plaintext := []rune("one2Three!")
	assert.True(t, c.Verify(plaintext))
	assert.Equal(t, make([]rune, len(plaintext)), plaintext)

	assert.False(t, c.Verify([]rune("nope")))
	assert.Equal(t, 1, c.FailedAttempts())

	assert.True(t, c.Verify([]rune("one2Three!")))
	assert.Zero(t, c.FailedAttempts(), "a match resets the counter")
}

func TestVerify_Lockout(t *testing.T) {
	c, err := New(strictPolicy(), []rune("one2Three!"))
	require.NoError(t, err)

	assert.False(t, c.Verify([]rune("wrong1")))
	assert.False(t, c.Verify([]rune("wrong2")))
	assert.False(t, c.Locked())
	assert.False(t, c.Verify([]rune("wrong3")))
	assert.True(t, c.Locked())

	plaintext := []rune("one2Three!")
	assert.False(t, c.Verify(plaintext), "locked credential never verifies")
	assert.Equal(t, make([]rune, len(plaintext)), plaintext)

	c.Unlock()
	assert.False(t, c.Locked())
	assert.Zero(t, c.FailedAttempts())
	assert.True(t, c.Verify([]rune("one2Three!")))
}

func TestVerify_IgnoresTightenedPolicy(t *testing.T) {
	p := strictPolicy()
	c, err := New(p, []rune("one2Three!"))
	require.NoError(t, err)

	require.NoError(t, p.SetMinLength(20))
	assert.True(t, c.Verify([]rune("one2Three!")))
}

func TestRestore_Expiration(t *testing.T) {
	p := strictPolicy()

	old := Restore(p, Record{
		Secret:    "ABC",
		History:   []string{"", ""},
		CreatedAt: fixedNow.AddDate(0, 0, -91),
	})
	assert.True(t, old.Expired())

	fresh := Restore(p, Record{
		Secret:    "ABC",
		History:   []string{"", ""},
		CreatedAt: fixedNow,
	})
	assert.False(t, fresh.Expired())
}

func TestRestore_KeepsLockAndHistory(t *testing.T) {
	rec := Record{
		Secret:    "DEF",
		History:   []string{"ABC", ""},
		CreatedAt: fixedNow,
		Locked:    true,
	}

	c := Restore(strictPolicy(), rec)
	assert.True(t, c.Locked())
	assert.Equal(t, rec, c.Record())

	rec.History[0] = "mutated"
	assert.Equal(t, "ABC", c.History()[0], "restore copies the history")
}

func TestCheckExpiration_OnlySetsFlag(t *testing.T) {
	now := fixedNow
	p := policy.NewStrict(policy.WithClock(func() time.Time { return now }))

	c, err := New(p, []rune("one2Three!"))
	require.NoError(t, err)
	assert.False(t, c.CheckExpiration())

	now = now.AddDate(0, 0, 91)
	assert.True(t, c.CheckExpiration())

	require.NoError(t, p.SetTimeToLiveDays(0))
	assert.True(t, c.CheckExpiration(), "expiry is cleared only by a change")

	require.NoError(t, c.Change([]rune("two3Four!X")))
	assert.False(t, c.Expired())
}

func TestRecord(t *testing.T) {
	c, err := New(strictPolicy(), []rune("one2Three!"))
	require.NoError(t, err)
	first := c.Secret()
	require.NoError(t, c.Change([]rune("two3Four!X")))

	rec := c.Record()
	assert.Equal(t, c.Secret(), rec.Secret)
	assert.Equal(t, []string{first, ""}, rec.History)
	assert.Equal(t, fixedNow, rec.CreatedAt)
	assert.False(t, rec.Locked)
}
