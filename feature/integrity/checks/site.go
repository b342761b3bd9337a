package checks

import (
	"context"
	"errors"
	"fmt"

	"devserve/feature/static"
)

// SiteReport is the outcome of a site check.
type SiteReport struct {
	// Root is the directory or bucket location that was checked.
	Root string `json:"root"`
	// Reachable is true when the root exists and is a directory.
	Reachable bool `json:"reachable"`
	// Entries counts the items directly under the root.
	Entries int `json:"entries"`
	// Missing lists required files that were not found.
	Missing []string `json:"missing"`
}

// Healthy reports whether the site can be served as configured.
func (r SiteReport) Healthy() bool {
	return r.Reachable && len(r.Missing) == 0
}

// CheckSite verifies the root of source and the presence of each required file.
// A missing root is reported, not returned as an error.
func CheckSite(ctx context.Context, source static.Source, root string, required []string) (SiteReport, error) {
	report := SiteReport{Root: root, Missing: []string{}}

	entry, err := source.Stat(ctx, "")
	switch {
	case errors.Is(err, static.ErrNotFound):
		report.Missing = append(report.Missing, required...)
		return report, nil
	case err != nil:
		return report, fmt.Errorf("failed to check root: %w", err)
	case !entry.IsDir:
		return report, fmt.Errorf("root %s is not a directory", root)
	}
	report.Reachable = true

	entries, err := source.List(ctx, "")
	if err != nil {
		return report, fmt.Errorf("failed to list root: %w", err)
	}
	report.Entries = len(entries)

	for _, name := range required {
		e, err := source.Stat(ctx, name)
		switch {
		case errors.Is(err, static.ErrNotFound), err == nil && e.IsDir:
			report.Missing = append(report.Missing, name)
		case err != nil:
			return report, fmt.Errorf("failed to check %s: %w", name, err)
		}
	}

	return report, nil
}
