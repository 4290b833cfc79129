// Package config loads runtime configuration for the Traffic Hub CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory and TRAFFICHUB_* environment
//     variables (see parseEnv). Real environment variables win over .env.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the Traffic Hub API
//	-t int      request timeout (seconds)
//	-d string   path of the local session database
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be either strings like "3s" or
// integer nanoseconds:
//
//	{
//	  "server_base_url": "http://127.0.0.1:5000",
//	  "request_timeout": "10s",
//	  "database_path": "traffichub.db",
//	  "lookup_debounce": "500ms",
//	  "redirect_delay": "2s",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "log_file": "",
//	  "evidence_dir": "evidence",
//	  "evidence_bucket": "",
//	  "evidence_region": "us-east-1",
//	  "evidence_endpoint": ""
//	}
//
// Empty JSON values leave the earlier value in place.
package config
