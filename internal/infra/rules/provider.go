// Package rules installs the shared password policy handle. Configuration
// seeds the rules on first start; afterwards the stored rule set wins so that
// administrative changes and their modification time survive restarts.
package rules

import (
	"context"
	"log/slog"
	"strings"

	"credguard/config"
	"credguard/internal/domain/lifecycle"
	"credguard/internal/domain/policy"
	"credguard/internal/domain/repository"
	"credguard/internal/errors"

	"go.uber.org/fx"
)

const (
	PresetStrict     = "strict"
	PresetPermissive = "permissive"
)

// Params defines the dependencies of the policy provider.
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
	Repo   repository.PolicyRepository
}

// New builds the policy from configuration and reconciles it with the stored
// rule set when the application starts.
func New(params Params) (*policy.Policy, error) {
	seed, err := FromConfig(params.Config.Policy)
	if err != nil {
		return nil, err
	}

	p, err := policy.New(seed)
	if err != nil {
		return nil, errors.Wrap(err, "invalid policy configuration")
	}

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			return Sync(ctx, p, params.Repo, params.Logger)
		},
	})

	return p, nil
}

// Sync loads the stored rules into p, or stores p's rules when none exist yet.
func Sync(ctx context.Context, p *policy.Policy, repo repository.PolicyRepository, logger *slog.Logger) error {
	stored, err := repo.Load(ctx)
	switch {
	case errors.Is(err, repository.ErrPolicyNotFound):
		if err := repo.Save(ctx, p.Rules()); err != nil {
			return errors.Wrap(err, "failed to store initial policy")
		}
		logger.InfoContext(ctx, "Password policy seeded from configuration")
	case err != nil:
		return errors.Wrap(err, "failed to load stored policy")
	default:
		if err := p.Load(stored); err != nil {
			return errors.Wrap(err, "stored policy is invalid")
		}
	}

	LogInstalled(ctx, logger, p.Rules())

	return nil
}

// LogInstalled reports the active rules. Plaintext storage is logged as a warning.
func LogInstalled(ctx context.Context, logger *slog.Logger, rules policy.Rules) {
	if !rules.HashingEnabled() {
		logger.WarnContext(ctx, "Password policy stores secrets as plaintext; this mode is not secure")
	}

	logger.InfoContext(ctx, "Password policy installed",
		slog.String("algorithm", rules.Algorithm),
		slog.Int("minLength", rules.MinLength),
		slog.Int("historyCount", rules.HistoryCount),
		slog.Int("timeToLiveDays", rules.TimeToLiveDays),
		slog.Time("modifiedAt", rules.ModifiedAt),
	)
}

// FromConfig resolves the preset and applies every non-nil override.
func FromConfig(cfg *config.PolicyConfig) (policy.Rules, error) {
	if cfg == nil {
		return policy.Strict(), nil
	}

	var rules policy.Rules
	switch strings.ToLower(strings.TrimSpace(cfg.Preset)) {
	case "", PresetStrict:
		rules = policy.Strict()
	case PresetPermissive:
		rules = policy.Permissive()
	default:
		return policy.Rules{}, errors.Errorf("unknown policy preset %q", cfg.Preset)
	}

	rules.Override(policy.Overrides{
		Algorithm:        cfg.Algorithm,
		MinLength:        cfg.MinLength,
		RequireLetter:    cfg.RequireLetter,
		RequireDigit:     cfg.RequireDigit,
		RequireLower:     cfg.RequireLower,
		RequireUpper:     cfg.RequireUpper,
		RequireSpecial:   cfg.RequireSpecial,
		ForbidWhitespace: cfg.ForbidWhitespace,
		HistoryCount:     cfg.HistoryCount,
		TimeToLiveDays:   cfg.TimeToLiveDays,
	})

	return rules, nil
}
