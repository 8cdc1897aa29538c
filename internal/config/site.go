package config

// SiteConfig holds per-host configuration overrides.
// This allows customizing crawl behavior for individual sites without
// repeating flags on every invocation.
type SiteConfig struct {
	// PageLimit overrides the global page limit for this host.
	// Nil means use the global value; an explicit 0 means unlimited.
	PageLimit *int `yaml:"pageLimit,omitempty"`

	// IncludePrefixes overrides the global allow-list for this host.
	IncludePrefixes []string `yaml:"includePrefixes,omitempty"`

	// ExcludePrefixes overrides the global deny-list for this host.
	ExcludePrefixes []string `yaml:"excludePrefixes,omitempty"`
}

// File represents the structure of the .sitecrawl configuration file.
type File struct {
	// Sites maps hostnames to their overrides. Keys are bare hostnames
	// without scheme (e.g., "example.com").
	Sites map[string]SiteConfig `yaml:"sites,omitempty"`

	// Defaults contains overrides applied to every host unless the host
	// has its own entry for the same field.
	Defaults SiteConfig `yaml:"defaults,omitempty"`
}

// SiteConfig returns the effective configuration for a hostname.
// It merges the host-specific entry over the file-level defaults.
func (cf *File) SiteConfig(host string) SiteConfig {
	result := cf.Defaults

	if site, ok := cf.Sites[host]; ok {
		if site.PageLimit != nil {
			result.PageLimit = site.PageLimit
		}
		if len(site.IncludePrefixes) > 0 {
			result.IncludePrefixes = site.IncludePrefixes
		}
		if len(site.ExcludePrefixes) > 0 {
			result.ExcludePrefixes = site.ExcludePrefixes
		}
	}

	return result
}
