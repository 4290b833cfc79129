package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// EnvPrefix starts every environment variable the client reads.
const EnvPrefix = "TRAFFICHUB_"

// dotEnvFile is loaded before the environment is read. A missing file is fine.
var dotEnvFile = ".env"

// parseEnv overlays cfg with TRAFFICHUB_* variables. godotenv.Load never
// overrides variables that are already set, so the real environment wins.
func parseEnv(cfg *Config) error {
	if err := godotenv.Load(dotEnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load %s: %w", dotEnvFile, err)
	}

	strs := map[string]*string{
		"SERVER_URL":          &cfg.ServerBaseURL,
		"DB_PATH":             &cfg.DatabasePath,
		"LOG_LEVEL":           &cfg.LogLevel,
		"LOG_FORMAT":          &cfg.LogFormat,
		"LOG_FILE":            &cfg.LogFile,
		"EVIDENCE_DIR":        &cfg.EvidenceDir,
		"EVIDENCE_BUCKET":     &cfg.EvidenceBucket,
		"EVIDENCE_REGION":     &cfg.EvidenceRegion,
		"EVIDENCE_ENDPOINT":   &cfg.EvidenceEndpoint,
		"EVIDENCE_ACCESS_KEY": &cfg.EvidenceAccessKey,
		"EVIDENCE_SECRET_KEY": &cfg.EvidenceSecretKey,
	}
	for name, dst := range strs {
		if v, ok := os.LookupEnv(EnvPrefix + name); ok && v != "" {
			*dst = v
		}
	}

	durations := map[string]*time.Duration{
		"REQUEST_TIMEOUT": &cfg.RequestTimeout,
		"LOOKUP_DEBOUNCE": &cfg.LookupDebounce,
		"REDIRECT_DELAY":  &cfg.RedirectDelay,
	}
	for name, dst := range durations {
		v, ok := os.LookupEnv(EnvPrefix + name)
		if !ok || v == "" {
			continue
		}
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s%s: %w", EnvPrefix, name, err)
		}
		*dst = d
	}
	return nil
}
