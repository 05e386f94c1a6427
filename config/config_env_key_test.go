package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"policy": map[string]any{
			"minLength":      8,
			"timeToLiveDays": 90,
		},
		"auth": map[string]any{
			"bootstrapAdmin": map[string]any{
				"password": "",
			},
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "POLICY_MINLENGTH", want: "policy.minLength"},
		{envKey: "POLICY_TIMETOLIVEDAYS", want: "policy.timeToLiveDays"},
		{envKey: "AUTH_BOOTSTRAPADMIN_PASSWORD", want: "auth.bootstrapAdmin.password"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			assert.Equal(t, tt.want, canonicalizeEnvKey(tt.envKey, existing))
		})
	}
}

const testYAML = `
env:
  env: test
  serviceName: credguard
  log:
    level: debug
http:
  port: 8080
secretKey:
  access: test-secret
auth:
  accessTokenTTL: 5m
policy:
  preset: strict
  minLength: 10
  algorithm: SHA-512
`

func TestLoadWithEnv_YAMLAndOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "test.yaml"), []byte(testYAML), 0o600))
	t.Chdir(dir)
	t.Setenv("POLICY_MINLENGTH", "12")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := LoadWithEnv[Config]("test")
	require.NoError(t, err)
	applyDefaults(cfg)

	assert.Equal(t, "credguard", cfg.Env.ServiceName)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "test-secret", cfg.SecretKey.Access)
	assert.Equal(t, 5*time.Minute, cfg.Auth.AccessTokenTTL)
	require.NotNil(t, cfg.Policy)
	assert.Equal(t, "strict", cfg.Policy.Preset)
	require.NotNil(t, cfg.Policy.MinLength)
	assert.Equal(t, 12, *cfg.Policy.MinLength)
	require.NotNil(t, cfg.Policy.Algorithm)
	assert.Equal(t, "SHA-512", *cfg.Policy.Algorithm)
	assert.Nil(t, cfg.Policy.HistoryCount)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.NotNil(t, cfg.PubSub)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("absent")
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultAccessTokenTTL, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, defaultPolicyPreset, cfg.Policy.Preset)
	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
}

func TestReplicasFromEnv(t *testing.T) {
	vars := map[string]string{
		"POSTGRES_REPLICAS_0_HOST":     "replica-a",
		"POSTGRES_REPLICAS_0_PORT":     "5432",
		"POSTGRES_REPLICAS_0_USERNAME": "reader",
		"POSTGRES_REPLICAS_1_HOST":     "replica-b",
		"POSTGRES_REPLICAS_1_PORT":     "5433",
		"POSTGRES_REPLICAS_3_HOST":     "unreachable",
		"POSTGRES_REPLICAS_3_PORT":     "5434",
	}
	lookup := func(key string) (string, bool) {
		v, ok := vars[key]

		return v, ok
	}

	replicas := replicasFromEnv(lookup)
	require.Len(t, replicas, 2)
	assert.Equal(t, "replica-a", replicas[0].Host)
	assert.Equal(t, "reader", replicas[0].UserName)
	assert.Equal(t, "5433", replicas[1].Port)
	assert.Empty(t, replicasFromEnv(func(string) (string, bool) { return "", false }))
}
