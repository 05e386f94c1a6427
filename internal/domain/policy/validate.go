package policy

import (
	"credguard/internal/domain/sensitive"
)

// Validate checks buf against the current rules and returns the first violation.
// Rules are evaluated in a fixed order: length, letter, digit, lower case,
// whitespace, special character, upper case.
func (p *Policy) Validate(buf *sensitive.Buffer) error {
	return p.Rules().Validate(buf)
}

// Validate checks buf against r. See Policy.Validate. An empty candidate is
// always too short, whatever MinLength says.
func (r Rules) Validate(buf *sensitive.Buffer) error {
	if buf.Len() == 0 || buf.Len() < r.MinLength {
		return &Violation{Reason: ReasonTooShort}
	}

	if r.RequireLetter && !buf.Any(isLetter) {
		return &Violation{Reason: ReasonNoLetter}
	}

	if r.RequireDigit && !buf.Any(isDigit) {
		return &Violation{Reason: ReasonNoDigit}
	}

	if r.RequireLower && !buf.Any(isLower) {
		return &Violation{Reason: ReasonNoLower}
	}

	if r.ForbidWhitespace && buf.Any(isWhitespace) {
		return &Violation{Reason: ReasonWhitespace}
	}

	if r.RequireSpecial && !buf.Any(isSpecial) {
		return &Violation{Reason: ReasonNoSpecial}
	}

	if r.RequireUpper && !buf.Any(isUpper) {
		return &Violation{Reason: ReasonNoUpper}
	}

	return nil
}

// Character classes are ASCII, matching the rule definitions the stored
// credentials were originally validated with.

func isLower(r rune) bool {
	return r >= 'a' && r <= 'z'
}

func isUpper(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

func isLetter(r rune) bool {
	return isLower(r) || isUpper(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

// isSpecial is anything that is not an ASCII letter or digit.
func isSpecial(r rune) bool {
	return !isLetter(r) && !isDigit(r)
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}

	return false
}
