package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

// WinstonPerAR is the number of winston in one AR.
const WinstonPerAR = 1_000_000_000_000

type Config struct {
	Debug     bool   `env:"DEBUG" envDefault:"false"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	Server struct {
		Port   int    `env:"PORT" envDefault:"3000"`
		Origin string `env:"ORIGIN" envDefault:"*"`
		// Public base URL of this node; the OAuth redirect is <Endpoint>/verify/callback.
		Endpoint string `env:"ENDPOINT,required"`
	}

	Google struct {
		ClientID     string `env:"GOOGLE_CLIENT_ID,required"`
		ClientSecret string `env:"GOOGLE_CLIENT_SECRET,required"`
		TokenInfoURL string `env:"GOOGLE_TOKENINFO_URL" envDefault:"https://oauth2.googleapis.com/tokeninfo"`
	}

	Arweave struct {
		Gateway string `env:"ARWEAVE_GATEWAY" envDefault:"https://arweave.net"`
		// Inline JWK JSON or a path to the keyfile.
		Keyfile      string   `env:"KEYFILE,required"`
		TrustedNodes []string `env:"TRUSTED_NODES" envSeparator:","`
	}

	Verification struct {
		AppName            string `env:"APP_NAME" envDefault:"ArVerify"`
		Fee                string `env:"VERIFICATION_FEE" envDefault:"0.001"`
		MinStake           string `env:"MIN_STAKE" envDefault:"0"`
		ExternalTimeoutSec int    `env:"EXTERNAL_TIMEOUT_SEC" envDefault:"15"`
		LockTTLSec         int    `env:"LOCK_TTL_SEC" envDefault:"120"`
		CacheTTLSec        int    `env:"VERIFIED_CACHE_TTL_SEC" envDefault:"3600"`
	}

	// Redis is optional; when Addr is empty the per-address lock is disabled.
	Redis struct {
		Addr     string `env:"REDIS_ADDR" envDefault:""`
		Password string `env:"REDIS_PASSWORD" envDefault:""`
		DB       int    `env:"REDIS_DB" envDefault:"0"`
	}

	feeWinston   sdkmath.Int
	stakeWinston sdkmath.Int
}

// Load reads .env (if present) and the process environment.
func Load() (*Config, error) {
	// .env is optional; production sets variables directly
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate normalizes fields and converts decimal AR amounts to winston.
func (c *Config) Validate() error {
	if c.Server.Endpoint == "" {
		return fmt.Errorf("ENDPOINT is required")
	}
	c.Server.Endpoint = strings.TrimRight(c.Server.Endpoint, "/")
	c.Arweave.Gateway = strings.TrimRight(c.Arweave.Gateway, "/")

	fee, err := ARToWinston(c.Verification.Fee)
	if err != nil {
		return fmt.Errorf("invalid VERIFICATION_FEE: %w", err)
	}
	if !fee.IsPositive() {
		return fmt.Errorf("invalid VERIFICATION_FEE: must be positive")
	}
	stake, err := ARToWinston(c.Verification.MinStake)
	if err != nil {
		return fmt.Errorf("invalid MIN_STAKE: %w", err)
	}
	if c.Verification.ExternalTimeoutSec <= 0 {
		c.Verification.ExternalTimeoutSec = 15
	}
	if c.Verification.LockTTLSec <= 0 {
		c.Verification.LockTTLSec = 120
	}
	if c.Verification.CacheTTLSec < 0 {
		c.Verification.CacheTTLSec = 0
	}

	trusted := c.Arweave.TrustedNodes[:0]
	for _, n := range c.Arweave.TrustedNodes {
		if n = strings.TrimSpace(n); n != "" {
			trusted = append(trusted, n)
		}
	}
	c.Arweave.TrustedNodes = trusted

	c.feeWinston = fee
	c.stakeWinston = stake
	return nil
}

// FeeWinston is the exact tip amount a caller must send.
func (c *Config) FeeWinston() sdkmath.Int { return c.feeWinston }

// MinStakeWinston is the minimum node balance required at startup.
func (c *Config) MinStakeWinston() sdkmath.Int { return c.stakeWinston }

func (c *Config) CallbackURL() string { return c.Server.Endpoint + "/verify/callback" }

func (c *Config) ExternalTimeout() time.Duration {
	return time.Duration(c.Verification.ExternalTimeoutSec) * time.Second
}

func (c *Config) LockTTL() time.Duration {
	return time.Duration(c.Verification.LockTTLSec) * time.Second
}

// CacheTTL is zero when the verified cache is disabled.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Verification.CacheTTLSec) * time.Second
}

// KeyfileJSON returns the JWK either inline or read from the configured path.
func (c *Config) KeyfileJSON() ([]byte, error) {
	raw := strings.TrimSpace(c.Arweave.Keyfile)
	if strings.HasPrefix(raw, "{") {
		return []byte(raw), nil
	}
	data, err := os.ReadFile(raw)
	if err != nil {
		return nil, fmt.Errorf("read keyfile: %w", err)
	}
	return data, nil
}

// ARToWinston converts a decimal AR amount into integer winston.
// Amounts finer than one winston are rejected rather than rounded.
func ARToWinston(ar string) (sdkmath.Int, error) {
	dec, err := sdkmath.LegacyNewDecFromStr(strings.TrimSpace(ar))
	if err != nil {
		return sdkmath.Int{}, err
	}
	if dec.IsNegative() {
		return sdkmath.Int{}, fmt.Errorf("negative amount %s", ar)
	}
	w := dec.MulInt64(WinstonPerAR)
	if !w.IsInteger() {
		return sdkmath.Int{}, fmt.Errorf("amount %s is finer than one winston", ar)
	}
	return w.TruncateInt(), nil
}
