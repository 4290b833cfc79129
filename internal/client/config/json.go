package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/traffichub/internal/flagx"
	"github.com/dmitrijs2005/traffichub/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Durations use
// timex.Duration and are copied into the runtime Config afterwards.
type JsonConfig struct {
	ServerBaseURL    string         `json:"server_base_url"`
	RequestTimeout   timex.Duration `json:"request_timeout"`
	DatabasePath     string         `json:"database_path"`
	LookupDebounce   timex.Duration `json:"lookup_debounce"`
	RedirectDelay    timex.Duration `json:"redirect_delay"`
	LogLevel         string         `json:"log_level"`
	LogFormat        string         `json:"log_format"`
	LogFile          string         `json:"log_file"`
	EvidenceDir      string         `json:"evidence_dir"`
	EvidenceBucket   string         `json:"evidence_bucket"`
	EvidenceRegion   string         `json:"evidence_region"`
	EvidenceEndpoint string         `json:"evidence_endpoint"`
}

// parseJson overlays cfg with the JSON file named by -c or -config. Without
// either flag nothing is loaded.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.ServerBaseURL, jc.ServerBaseURL)
	setString(&cfg.DatabasePath, jc.DatabasePath)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.LogFile, jc.LogFile)
	setString(&cfg.EvidenceDir, jc.EvidenceDir)
	setString(&cfg.EvidenceBucket, jc.EvidenceBucket)
	setString(&cfg.EvidenceRegion, jc.EvidenceRegion)
	setString(&cfg.EvidenceEndpoint, jc.EvidenceEndpoint)

	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.LookupDebounce.Duration != 0 {
		cfg.LookupDebounce = jc.LookupDebounce.Duration
	}
	if jc.RedirectDelay.Duration != 0 {
		cfg.RedirectDelay = jc.RedirectDelay.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
