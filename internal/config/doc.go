// Package config loads, normalizes, and validates srtstitch configuration.
//
// Settings come from a TOML file (by default ~/.config/srtstitch/config.toml,
// which may be absent) layered over repository defaults. Command-line flags
// override individual values after Load returns.
package config
