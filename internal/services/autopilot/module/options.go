package module

import "shipmate/internal/platform/config"

// Options holds configuration settings for the autopilot module
type Options struct {
	FastSeconds     int
	SlowSeconds     int
	IndexTTLSeconds int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	af := cfg.Prefix("AUTOPILOT_")
	return Options{
		FastSeconds:     af.MayInt("FAST_SECONDS", 60),
		SlowSeconds:     af.MayInt("SLOW_SECONDS", 300),
		IndexTTLSeconds: af.MayInt("INDEX_TTL_SECONDS", 20),
	}
}
