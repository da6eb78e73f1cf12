// Package app is the composition root of backdrop.
//
// Open loads the configuration, opens the configured slot backend (file,
// sqlite or redis) and opens a store on it. The resulting Env is what the
// CLI commands operate on:
//
//	config.Load()        read ~/.config/backdrop/config.toml
//	OpenSlot()           file, sqlite or redis backend
//	store.Open()         load state, optionally watch the slot
//	Env.Serve()          HTTP server + resync loop
//	Env.Pick()           Bubble Tea picker + resync loop
//
// Long-running commands also start StartResync, which re-reads the slot at
// the configured interval so a lost notification cannot leave a process
// stale for long. Failed re-reads back off exponentially, capped at 30s.
package app
