package config

import (
	"fmt"
	"net/url"
	"os"
	"time"
)

// Config holds runtime settings for the Traffic Hub CLI.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	DatabasePath   string

	LookupDebounce time.Duration
	RedirectDelay  time.Duration

	LogLevel  string
	LogFormat string
	LogFile   string

	// Evidence export goes to EvidenceDir unless EvidenceBucket is set.
	EvidenceDir       string
	EvidenceBucket    string
	EvidenceRegion    string
	EvidenceEndpoint  string
	EvidenceAccessKey string
	EvidenceSecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:5000"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "traffichub.db"
	c.LookupDebounce = 500 * time.Millisecond
	c.RedirectDelay = 2 * time.Second
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.LogFile = ""
	c.EvidenceDir = "evidence"
	c.EvidenceRegion = "us-east-1"
}

// Validate reports settings the client cannot start with.
func (c *Config) Validate() error {
	u, err := url.Parse(c.ServerBaseURL)
	if err != nil {
		return fmt.Errorf("server base url: %w", err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("server base url %q: want http(s)://host[:port]", c.ServerBaseURL)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %s", c.RequestTimeout)
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is empty")
	}
	return nil
}

// LoadConfig constructs a Config from defaults, the environment, an optional
// JSON file and the command line, in that order. args excludes the program
// name.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// MustLoad is LoadConfig over os.Args that panics on error.
func MustLoad() *Config {
	cfg, err := LoadConfig(os.Args[1:])
	if err != nil {
		panic(err)
	}
	return cfg
}
