package impl

import (
	"context"
	"log/slog"
	"strconv"

	deliverycontext "credguard/internal/delivery/context"
	domainerrors "credguard/internal/domain/errors"
	"credguard/internal/domain/policy"
	"credguard/internal/domain/repository"
	"credguard/internal/domain/service"
	"credguard/internal/usecase"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// policyService implements the PolicyUsecase interface.
type policyService struct {
	policy     *policy.Policy
	policyRepo repository.PolicyRepository
	events     *eventEmitter
	logger     *slog.Logger
}

// PolicyServiceParams holds dependencies for PolicyService, injected by Fx.
type PolicyServiceParams struct {
	fx.In

	Policy     *policy.Policy
	PolicyRepo repository.PolicyRepository
	Publisher  service.EventPublisher
	Logger     *slog.Logger
}

// NewPolicyService is the constructor for policyService.
func NewPolicyService(params PolicyServiceParams) usecase.PolicyUsecase {
	return &policyService{
		policy:     params.Policy,
		policyRepo: params.PolicyRepo,
		events:     newEventEmitter(params.Publisher, params.Logger),
		logger:     params.Logger,
	}
}

func (srv *policyService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.Logger(ctx, srv.logger)
}

func (srv *policyService) Get(_ context.Context) *usecase.PolicyOutput {
	return srv.output()
}

// Update applies the given overrides as a single rule change.
func (srv *policyService) Update(ctx context.Context, input *usecase.PolicyInput) (*usecase.PolicyOutput, error) {
	return srv.change(ctx, input.Actor, "update", func() error {
		return srv.policy.Update(func(r *policy.Rules) { r.Override(input.Overrides()) })
	})
}

// ApplyPreset installs the strict or the permissive preset.
func (srv *policyService) ApplyPreset(ctx context.Context, input *usecase.PresetInput) (*usecase.PolicyOutput, error) {
	return srv.change(ctx, input.Actor, "preset:"+strconv.FormatBool(input.Strict), func() error {
		srv.policy.SetStrict(input.Strict)

		return nil
	})
}

// change runs mutate and persists the result, restoring the previous rules if
// either step fails.
func (srv *policyService) change(ctx context.Context, actor, kind string, mutate func() error) (*usecase.PolicyOutput, error) {
	previous := srv.policy.Rules()

	if err := mutate(); err != nil {
		srv.log(ctx).Info("Policy change rejected", slog.String("kind", kind), slog.Any("error", err))

		return nil, domainerrors.Translate(err)
	}

	current := srv.policy.Rules()
	if err := srv.policyRepo.Save(ctx, current); err != nil {
		if restoreErr := srv.policy.Load(previous); restoreErr != nil {
			srv.log(ctx).Error("Failed to restore previous policy", slog.Any("error", restoreErr))
		}
		srv.log(ctx).Error("Failed to persist policy", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to persist policy")
	}

	logPolicy(srv.log(ctx), current, kind, actor)
	srv.events.emit(ctx, service.EventPolicyUpdated, "", actor, map[string]string{
		"kind":           kind,
		"algorithm":      current.Algorithm,
		"minLength":      strconv.Itoa(current.MinLength),
		"historyCount":   strconv.Itoa(current.HistoryCount),
		"timeToLiveDays": strconv.Itoa(current.TimeToLiveDays),
	})

	return srv.output(), nil
}

func (srv *policyService) output() *usecase.PolicyOutput {
	return &usecase.PolicyOutput{
		Rules:      srv.policy.Rules(),
		Algorithms: policy.Algorithms(),
	}
}

func logPolicy(logger *slog.Logger, rules policy.Rules, kind, actor string) {
	if !rules.HashingEnabled() {
		logger.Warn("Policy stores passwords as plaintext", slog.String("kind", kind), slog.String("actor", actor))

		return
	}
	logger.Info("Policy updated",
		slog.String("kind", kind),
		slog.String("actor", actor),
		slog.String("algorithm", rules.Algorithm),
	)
}
