package credential

import (
	"crypto/subtle"

	"credguard/internal/domain/policy"
)

// resizeHistory truncates the oldest entries or pads with empty slots so that
// the history holds exactly capacity entries, most recent first.
func (c *Credential) resizeHistory(capacity int) {
	switch {
	case len(c.history) == capacity:
		return
	case len(c.history) > capacity:
		c.history = c.history[:capacity:capacity]
	default:
		grown := make([]string, capacity)
		copy(grown, c.history)
		c.history = grown
	}
}

// rotate shifts the history down one slot and stores previous at the front.
// The oldest entry falls off when the history is full.
func (c *Credential) rotate(previous string) {
	if len(c.history) == 0 {
		return
	}

	copy(c.history[1:], c.history[:len(c.history)-1])
	c.history[0] = previous
}

// remembers reports whether secret is still inside the reuse window: the
// current secret plus the retained history. A zero history count disables reuse checking.
func (c *Credential) remembers(rules policy.Rules, secret string) bool {
	if rules.HistoryCount == 0 {
		return false
	}

	if c.secret != "" && c.Matches(secret) {
		return true
	}

	for _, old := range c.history {
		if old == "" {
			continue
		}
		if subtle.ConstantTimeCompare([]byte(old), []byte(secret)) == 1 {
			return true
		}
	}

	return false
}
