package module

import "shipmate/internal/platform/config"

// Options holds configuration settings for the fleet module
type Options struct {
	ChunkSize int
	DryRun    bool
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	ff := cfg.Prefix("FLEET_")
	return Options{
		ChunkSize: ff.MayInt("CHUNK_SIZE", 20),
		DryRun:    ff.MayBool("DRY_RUN", false),
	}
}
