package module

import "shipmate/internal/platform/config"

// Options holds configuration settings for the settings module
type Options struct {
	ProfilePath string
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	sf := cfg.Prefix("SETTINGS_")
	return Options{
		ProfilePath: sf.MayString("PROFILE_PATH", ""),
	}
}
