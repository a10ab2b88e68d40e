// Package config loads, normalizes, and validates gifcodec configuration.
//
// Settings live in a TOML file (by default ~/.config/gogif/config.toml) with
// [logging], [encode] and [decode] sections. Missing files are not an error:
// Load falls back to Default so the CLI works without any setup. Command-line
// flags override whatever the file provides.
package config
