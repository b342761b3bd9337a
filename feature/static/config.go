package static

import (
	"fmt"
	"strings"
)

// Source kinds accepted in Config.Source.
const (
	SourceLocal  = "local"
	SourceBucket = "bucket"
)

// Config describes the served site.
type Config struct {
	// Root is the directory served for the local source. Relative paths are
	// resolved against the working directory at startup.
	Root string `mapstructure:"root" default:"."`
	// Index is the file served for a directory request.
	Index string `mapstructure:"index" default:"index.html"`
	// Listing renders an HTML directory listing when a directory has no index.
	Listing bool `mapstructure:"listing" default:"true"`
	// Source selects where files come from: local or bucket.
	Source string `mapstructure:"source" default:"local"`
	// Prefix is the key prefix inside the bucket for the bucket source.
	Prefix string `mapstructure:"prefix" default:""`
}

// Validate checks the site settings.
func (c Config) Validate() error {
	switch c.Source {
	case SourceLocal:
		if strings.TrimSpace(c.Root) == "" {
			return fmt.Errorf("site.root must not be empty")
		}
	case SourceBucket:
	default:
		return fmt.Errorf("site.source %q is not one of %s, %s", c.Source, SourceLocal, SourceBucket)
	}

	if c.Index == "" || c.Index == "." || c.Index == ".." || strings.ContainsAny(c.Index, `/\`) {
		return fmt.Errorf("site.index %q must be a plain file name", c.Index)
	}
	return nil
}
