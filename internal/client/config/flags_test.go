package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected  *Config
		name      string
		args      []string
		expectErr bool
	}{
		{name: "all flags", args: []string{"-a", "http://127.0.0.1:9090", "-t", "30", "-d", "s.db", "-l", "debug"},
			expected: &Config{ServerBaseURL: "http://127.0.0.1:9090", RequestTimeout: 30 * time.Second, DatabasePath: "s.db", LogLevel: "debug"}},
		{name: "foreign flags ignored", args: []string{"-c", "cfg.json", "-x", "-a=http://h:1"},
			expected: &Config{ServerBaseURL: "http://h:1", RequestTimeout: 5 * time.Second}},
		{name: "incorrect timeout", args: []string{"-t", "abc"}, expectErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{RequestTimeout: 5 * time.Second}

			err := parseFlags(cfg, tt.args)
			if tt.expectErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
