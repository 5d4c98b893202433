package module

import "shipmate/internal/platform/config"

// Options holds configuration settings for the courier module
type Options struct {
	IntervalSeconds int
	MaxRetries      int
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	cf := cfg.Prefix("COURIER_")
	return Options{
		IntervalSeconds: cf.MayInt("INTERVAL_SECONDS", 45),
		MaxRetries:      cf.MayInt("MAX_RETRIES", 2),
	}
}
