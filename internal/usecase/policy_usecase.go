package usecase

import (
	"context"

	"credguard/internal/domain/policy"
)

// PolicyInput carries partial rule overrides. Nil fields keep their current value.
type PolicyInput struct {
	Algorithm        *string `json:"algorithm"`
	MinLength        *int    `json:"minLength" validate:"omitempty,min=0,max=1024"`
	RequireLetter    *bool   `json:"requireLetter"`
	RequireDigit     *bool   `json:"requireDigit"`
	RequireLower     *bool   `json:"requireLower"`
	RequireUpper     *bool   `json:"requireUpper"`
	RequireSpecial   *bool   `json:"requireSpecial"`
	ForbidWhitespace *bool   `json:"forbidWhitespace"`
	HistoryCount     *int    `json:"historyCount" validate:"omitempty,min=0,max=100"`
	TimeToLiveDays   *int    `json:"timeToLiveDays" validate:"omitempty,min=0"`

	Actor string `json:"-"`
}

// Overrides returns the rule changes carried by the input.
func (in *PolicyInput) Overrides() policy.Overrides {
	return policy.Overrides{
		Algorithm:        in.Algorithm,
		MinLength:        in.MinLength,
		RequireLetter:    in.RequireLetter,
		RequireDigit:     in.RequireDigit,
		RequireLower:     in.RequireLower,
		RequireUpper:     in.RequireUpper,
		RequireSpecial:   in.RequireSpecial,
		ForbidWhitespace: in.ForbidWhitespace,
		HistoryCount:     in.HistoryCount,
		TimeToLiveDays:   in.TimeToLiveDays,
	}
}

// PresetInput switches between the strict and permissive presets.
type PresetInput struct {
	Strict bool   `json:"strict"`
	Actor  string `json:"-"`
}

// PolicyOutput is the active rule set together with the supported algorithms.
type PolicyOutput struct {
	Rules      policy.Rules `json:"rules"`
	Algorithms []string     `json:"algorithms"`
}

// PolicyUsecase reads and changes the shared password policy.
type PolicyUsecase interface {
	// Get returns the active rules.
	Get(ctx context.Context) *PolicyOutput

	// Update applies the non-nil overrides and persists the result.
	Update(ctx context.Context, input *PolicyInput) (*PolicyOutput, error)

	// ApplyPreset installs the strict or permissive preset and persists it.
	ApplyPreset(ctx context.Context, input *PresetInput) (*PolicyOutput, error)
}
