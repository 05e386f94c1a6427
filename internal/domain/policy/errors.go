package policy

import (
	"credguard/internal/errors"
)

var (
	// ErrUnknownAlgorithm is returned when the policy is configured with an unsupported digest.
	ErrUnknownAlgorithm = errors.New("unknown hash algorithm")

	// ErrInvalidRule is returned when a numeric rule is out of range.
	ErrInvalidRule = errors.New("invalid policy rule")
)

// Reason identifies which rule a candidate failed.
type Reason int

const (
	ReasonTooShort Reason = iota + 1
	ReasonNoLetter
	ReasonNoDigit
	ReasonNoLower
	ReasonWhitespace
	ReasonNoSpecial
	ReasonNoUpper
)

var reasonMessages = map[Reason]string{
	ReasonTooShort:   "not long enough",
	ReasonNoLetter:   "no letter used",
	ReasonNoDigit:    "no digit used",
	ReasonNoLower:    "no lower case used",
	ReasonWhitespace: "whitespace character used",
	ReasonNoSpecial:  "no special character used",
	ReasonNoUpper:    "no upper case used",
}

var reasonCodes = map[Reason]string{
	ReasonTooShort:   "TOO_SHORT",
	ReasonNoLetter:   "NO_LETTER",
	ReasonNoDigit:    "NO_DIGIT",
	ReasonNoLower:    "NO_LOWER",
	ReasonWhitespace: "WHITESPACE",
	ReasonNoSpecial:  "NO_SPECIAL",
	ReasonNoUpper:    "NO_UPPER",
}

// String returns a human readable description of the failed rule.
func (r Reason) String() string {
	if msg, ok := reasonMessages[r]; ok {
		return msg
	}

	return "unknown rule"
}

// Code returns a stable identifier for the failed rule.
func (r Reason) Code() string {
	if code, ok := reasonCodes[r]; ok {
		return code
	}

	return "UNKNOWN"
}

// Violation is returned when a candidate fails a policy rule.
type Violation struct {
	Reason Reason
}

// Error implements the error interface.
func (v *Violation) Error() string {
	return "password does not meet security requirements: " + v.Reason.String()
}

// IsViolation reports whether err is a policy violation and returns it.
func IsViolation(err error) (*Violation, bool) {
	var v *Violation
	if errors.As(err, &v) {
		return v, true
	}

	return nil, false
}
