package module

import (
	"time"

	"iconseek/internal/core/favicon"
	"iconseek/internal/platform/config"
)

// Options holds configuration settings for the resolve module
type Options struct {
	ProbeTimeout   time.Duration
	FetchTimeout   time.Duration
	UserAgent      string
	IconSize       int
	DefaultIconURL string
}

// FromConfig reads configuration settings from the config.Conf
func FromConfig(cfg config.Conf) Options {
	rf := cfg.Prefix("RESOLVER_")
	return Options{
		ProbeTimeout:   rf.MayDuration("PROBE_TIMEOUT", favicon.DefaultProbeTimeout),
		FetchTimeout:   rf.MayDuration("FETCH_TIMEOUT", favicon.DefaultFetchTimeout),
		UserAgent:      rf.MayString("USER_AGENT", favicon.DefaultUserAgent),
		IconSize:       rf.MayInt("ICON_SIZE", favicon.DefaultIconSize),
		DefaultIconURL: rf.MayString("DEFAULT_ICON_URL", favicon.DefaultIconURL),
	}
}

// ResolverConfig maps module options onto the core resolver config
func (o Options) ResolverConfig() favicon.Config {
	return favicon.Config{
		ProbeTimeout:   o.ProbeTimeout,
		FetchTimeout:   o.FetchTimeout,
		UserAgent:      o.UserAgent,
		IconSize:       o.IconSize,
		DefaultIconURL: o.DefaultIconURL,
	}
}
