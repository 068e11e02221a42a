package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("ENDPOINT", "https://node.example/")
	t.Setenv("GOOGLE_CLIENT_ID", "client")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("KEYFILE", `{"kty":"RSA"}`)
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "https://node.example", cfg.Server.Endpoint)
	assert.Equal(t, "https://node.example/verify/callback", cfg.CallbackURL())
	assert.Equal(t, "ArVerify", cfg.Verification.AppName)
	assert.Equal(t, "1000000000", cfg.FeeWinston().String())
	assert.True(t, cfg.MinStakeWinston().IsZero())
	assert.Equal(t, 15*time.Second, cfg.ExternalTimeout())
	assert.Equal(t, time.Hour, cfg.CacheTTL())
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("ENDPOINT", "")
	t.Setenv("GOOGLE_CLIENT_ID", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadFee(t *testing.T) {
	setRequired(t)
	t.Setenv("VERIFICATION_FEE", "zero")

	_, err := Load()
	assert.ErrorContains(t, err, "VERIFICATION_FEE")
}

func TestTrustedNodesTrimmed(t *testing.T) {
	setRequired(t)
	t.Setenv("TRUSTED_NODES", " a , ,b")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, cfg.Arweave.TrustedNodes)
}

func TestARToWinston(t *testing.T) {
	cases := map[string]string{
		"0.001":          "1000000000",
		"1":              "1000000000000",
		"0.000000000001": "1",
		"0":              "0",
	}
	for in, want := range cases {
		got, err := ARToWinston(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got.String(), in)
	}

	_, err := ARToWinston("0.0000000000001")
	assert.Error(t, err)
	_, err = ARToWinston("-1")
	assert.Error(t, err)
}

func TestKeyfileJSON(t *testing.T) {
	cfg := &Config{}
	cfg.Arweave.Keyfile = `{"kty":"RSA"}`
	data, err := cfg.KeyfileJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"kty":"RSA"}`, string(data))

	path := filepath.Join(t.TempDir(), "wallet.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"kty":"RSA","n":"x"}`), 0o600))
	cfg.Arweave.Keyfile = path
	data, err = cfg.KeyfileJSON()
	require.NoError(t, err)
	assert.Contains(t, string(data), `"n":"x"`)
}
