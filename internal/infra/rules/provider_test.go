package rules

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"credguard/config"
	"credguard/internal/domain/policy"
	"credguard/internal/domain/repository"
	mockRepo "credguard/internal/mocks/repository"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func ptr[T any](v T) *T { return &v }

func TestFromConfig(t *testing.T) {
	testCases := []struct {
		name   string
		cfg    *config.PolicyConfig
		assert func(t *testing.T, rules policy.Rules)
	}{
		{
			name: "nil config is strict",
			cfg:  nil,
			assert: func(t *testing.T, rules policy.Rules) {
				assert.Equal(t, policy.Strict(), rules)
			},
		},
		{
			name: "permissive preset",
			cfg:  &config.PolicyConfig{Preset: " Permissive "},
			assert: func(t *testing.T, rules policy.Rules) {
				assert.Equal(t, policy.Permissive(), rules)
			},
		},
		{
			name: "overrides on top of strict",
			cfg: &config.PolicyConfig{
				Preset:         "strict",
				Algorithm:      ptr("SHA-512"),
				MinLength:      ptr(14),
				RequireSpecial: ptr(false),
				HistoryCount:   ptr(5),
			},
			assert: func(t *testing.T, rules policy.Rules) {
				assert.Equal(t, "SHA-512", rules.Algorithm)
				assert.Equal(t, 14, rules.MinLength)
				assert.False(t, rules.RequireSpecial)
				assert.True(t, rules.RequireUpper)
				assert.Equal(t, 5, rules.HistoryCount)
				assert.Equal(t, policy.StrictTimeToLiveDays, rules.TimeToLiveDays)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rules, err := FromConfig(tc.cfg)
			require.NoError(t, err)
			tc.assert(t, rules)
		})
	}
}

func TestFromConfig_UnknownPreset(t *testing.T) {
	_, err := FromConfig(&config.PolicyConfig{Preset: "paranoid"})
	assert.Error(t, err)
}

func TestSync_SeedsWhenMissing(t *testing.T) {
	repo := mockRepo.NewMockPolicyRepository(t)
	ctx := context.Background()
	p := policy.NewStrict()

	repo.EXPECT().Load(ctx).Return(policy.Rules{}, repository.ErrPolicyNotFound)
	repo.EXPECT().Save(ctx, p.Rules()).Return(nil)

	require.NoError(t, Sync(ctx, p, repo, discardLogger()))
}

func TestSync_StoredRulesWin(t *testing.T) {
	repo := mockRepo.NewMockPolicyRepository(t)
	ctx := context.Background()
	p := policy.NewStrict()

	stored := policy.Permissive()
	stored.MinLength = 4
	stored.ModifiedAt = time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	repo.EXPECT().Load(ctx).Return(stored, nil)

	require.NoError(t, Sync(ctx, p, repo, discardLogger()))
	assert.Equal(t, stored, p.Rules())
}

func TestSync_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("load failure", func(t *testing.T) {
		repo := mockRepo.NewMockPolicyRepository(t)
		boom := errors.New("db down")
		repo.EXPECT().Load(ctx).Return(policy.Rules{}, boom)

		assert.ErrorIs(t, Sync(ctx, policy.NewStrict(), repo, discardLogger()), boom)
	})

	t.Run("invalid stored rules", func(t *testing.T) {
		repo := mockRepo.NewMockPolicyRepository(t)
		repo.EXPECT().Load(ctx).Return(policy.Rules{Algorithm: "ROT13"}, nil)

		err := Sync(ctx, policy.NewStrict(), repo, discardLogger())
		assert.ErrorIs(t, err, policy.ErrUnknownAlgorithm)
	})

	t.Run("seed failure", func(t *testing.T) {
		repo := mockRepo.NewMockPolicyRepository(t)
		p := policy.NewStrict()
		boom := errors.New("read only")
		repo.EXPECT().Load(ctx).Return(policy.Rules{}, repository.ErrPolicyNotFound)
		repo.EXPECT().Save(ctx, p.Rules()).Return(boom)

		assert.ErrorIs(t, Sync(ctx, p, repo, discardLogger()), boom)
	})
}
