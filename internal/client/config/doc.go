// Package config loads runtime configuration for the catalog CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via -c / -config or the
//     GOPHCATALOG_CONFIG environment variable.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the remote catalog API
//	-d string   path of the local SQLite storage file
//	-t int      request timeout (seconds, 0 = transport default)
//	-r float    outbound request rate limit (per second, 0 = unlimited)
//	-l string   log level (debug, info, warn, error)
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "10s" or
// integer nanoseconds. Absent keys keep their previous value:
//
//	{
//	  "server_base_url": "https://dummyjson.com",
//	  "database_path": "catalog.db",
//	  "request_timeout": "10s",
//	  "rate_limit": 5,
//	  "log_level": "debug",
//	  "log_format": "json"
//	}
package config
