package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"attio-sync/attio"

	"gopkg.in/yaml.v3"
)

type Config struct {
	AttioToken      string        `yaml:"attio_token"`
	AttioBaseURL    string        `yaml:"attio_base_url"`
	AttioTimeout    time.Duration `yaml:"attio_timeout"`
	CompanyObjectID string        `yaml:"company_object_id"`
	FastTrackListID string        `yaml:"fast_track_list_id"`
	WebhookSecret   string        `yaml:"webhook_secret"`
	DatabaseURL     string        `yaml:"database_url"`
	Port            int           `yaml:"port"`
}

func Default() Config {
	return Config{
		AttioBaseURL:    attio.DefaultBaseURL,
		AttioTimeout:    attio.DefaultTimeout,
		CompanyObjectID: "74c77546-6a6f-4aab-9a19-536d8cfed976",
		FastTrackListID: "c1b474e0-90cc-48c3-a98d-135da4a71db0",
		DatabaseURL:     "attio-sync.db",
		Port:            8000,
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.AttioToken = envString("ATTIO_TOKEN", c.AttioToken)
	c.AttioBaseURL = envString("ATTIO_BASE_URL", c.AttioBaseURL)
	c.CompanyObjectID = envString("ATTIO_COMPANY_OBJECT_ID", c.CompanyObjectID)
	c.FastTrackListID = envString("ATTIO_FAST_TRACK_LIST_ID", c.FastTrackListID)
	c.WebhookSecret = envString("ATTIO_WEBHOOK_SECRET", c.WebhookSecret)
	c.DatabaseURL = envString("DATABASE_URL", c.DatabaseURL)

	var err error
	if c.Port, err = envInt("PORT", c.Port); err != nil {
		return err
	}
	if c.AttioTimeout, err = envDuration("ATTIO_TIMEOUT", c.AttioTimeout); err != nil {
		return err
	}
	return nil
}

// Validate checks the settings the webhook server cannot run without.
func (c Config) Validate() error {
	var errs []error
	if c.AttioToken == "" {
		errs = append(errs, errors.New("attio token is required (ATTIO_TOKEN)"))
	}
	if c.CompanyObjectID == "" {
		errs = append(errs, errors.New("company object id is required (ATTIO_COMPANY_OBJECT_ID)"))
	}
	if c.FastTrackListID == "" {
		errs = append(errs, errors.New("fast track list id is required (ATTIO_FAST_TRACK_LIST_ID)"))
	}
	if c.DatabaseURL == "" {
		errs = append(errs, errors.New("database url is required (DATABASE_URL)"))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid port %d", c.Port))
	}
	if c.AttioTimeout <= 0 {
		errs = append(errs, fmt.Errorf("attio timeout must be positive, got %s", c.AttioTimeout))
	}
	return errors.Join(errs...)
}

func (c Config) Addr() string {
	return ":" + strconv.Itoa(c.Port)
}

func envString(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}

func envInt(key string, def int) (int, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return n, nil
}

// envDuration accepts Go durations ("10s") or a plain number of seconds.
func envDuration(key string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def, nil
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return d, nil
}
