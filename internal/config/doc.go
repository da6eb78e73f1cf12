// Package config loads backdrop's TOML configuration.
//
// Load reads ~/.config/backdrop/config.toml unless a path is given. A
// missing file is not an error: every field has a default, and blank values
// in an existing file also fall back to their defaults.
//
//	[slot]
//	backend = "file"                # file, sqlite or redis
//	key = "backdrop.background"
//	dir = "~/.config/backdrop"      # file and sqlite backends
//	redis_addr = "127.0.0.1:6379"
//	redis_db = 0
//	debounce = "100ms"              # file watcher coalescing
//
//	[server]
//	listen = "127.0.0.1:7488"
//
//	[sync]
//	resync_interval = "30s"         # "0s" disables periodic re-reads
//
//	[style]
//	strict_patterns = false         # reject unknown pattern types on save
//
// Paths are tilde-expanded and made absolute. Durations use Go syntax.
// Unknown backends, invalid keys and malformed TOML or durations are
// reported as errors.
package config
