package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/viper"
)

const (
	defaultBaseURL       = "http://localhost:5000/api"
	defaultStateDir      = "~/.config/camp"
	defaultGuardInterval = time.Minute
	defaultTimeout       = 30 * time.Second
	configFileName       = "config.toml"
	cacheFileName        = "cache.toml"
	vaultDirName         = "vault"
)

// Config is the resolved client configuration. Values come from the config file
// first, then from CAMP_* environment variables.
type Config struct {
	APIBaseURL        string        `env:"CAMP_API_BASE_URL"`
	StateDir          string        `env:"CAMP_STATE_DIR"`
	RollbackOnFailure bool          `env:"CAMP_ROLLBACK_ON_FAILURE"`
	CompensateMoves   bool          `env:"CAMP_COMPENSATE_MOVES"`
	GuardInterval     time.Duration `env:"CAMP_GUARD_INTERVAL"`
	RequestTimeout    time.Duration `env:"CAMP_REQUEST_TIMEOUT"`
}

func (c Config) CachePath() string {
	return filepath.Join(c.StateDir, cacheFileName)
}

func (c Config) VaultDir() string {
	return filepath.Join(c.StateDir, vaultDirName)
}

// DefaultPath is ~/.config/camp/config.toml unless CAMP_CONFIG points elsewhere.
func DefaultPath() (string, error) {
	if path := strings.TrimSpace(os.Getenv("CAMP_CONFIG")); path != "" {
		return path, nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "camp", configFileName), nil
}

// Load reads path into v (a missing file is fine), overlays the environment and
// publishes the derived cache path on v under "cache.path".
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	v.SetDefault("api.base_url", defaultBaseURL)
	v.SetDefault("api.timeout", defaultTimeout)
	v.SetDefault("state.dir", defaultStateDir)
	v.SetDefault("store.rollback_on_failure", false)
	v.SetDefault("store.compensate_moves", false)
	v.SetDefault("session.guard_interval", defaultGuardInterval)

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil && !isNotFound(err) {
			return Config{}, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	cfg := Config{
		APIBaseURL:        v.GetString("api.base_url"),
		StateDir:          v.GetString("state.dir"),
		RollbackOnFailure: v.GetBool("store.rollback_on_failure"),
		CompensateMoves:   v.GetBool("store.compensate_moves"),
		GuardInterval:     v.GetDuration("session.guard_interval"),
		RequestTimeout:    v.GetDuration("api.timeout"),
	}
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	stateDir, err := expandHome(cfg.StateDir)
	if err != nil {
		return Config{}, err
	}
	cfg.StateDir = stateDir

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	v.Set("cache.path", cfg.CachePath())
	return cfg, nil
}

func (c Config) validate() error {
	var errs []error

	parsed, err := url.Parse(strings.TrimSpace(c.APIBaseURL))
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		errs = append(errs, fmt.Errorf("api base url %q must be an absolute http(s) url", c.APIBaseURL))
	}
	if strings.TrimSpace(c.StateDir) == "" {
		errs = append(errs, errors.New("state dir is required"))
	}
	if c.GuardInterval <= 0 {
		errs = append(errs, errors.New("session guard interval must be positive"))
	}
	if c.RequestTimeout < 0 {
		errs = append(errs, errors.New("api timeout must not be negative"))
	}

	return errors.Join(errs...)
}

func isNotFound(err error) bool {
	var notFound viper.ConfigFileNotFoundError
	return errors.As(err, &notFound) || errors.Is(err, fs.ErrNotExist)
}

func expandHome(path string) (string, error) {
	path = strings.TrimSpace(path)
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~")), nil
}
