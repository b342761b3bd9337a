package cmd

import (
	"fmt"
	"strings"

	"devserve/core/config"
	"devserve/core/storage"
	"devserve/feature/static"
)

// newSource builds the configured content source and a printable location for it.
func newSource(cfg *config.Config) (static.Source, string, error) {
	switch cfg.Site.Source {
	case static.SourceBucket:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, "", fmt.Errorf("failed to create storage client: %w", err)
		}
		location := "s3://" + cfg.Storage.Bucket + "/"
		if prefix := strings.Trim(cfg.Site.Prefix, "/"); prefix != "" {
			location += prefix + "/"
		}
		return static.NewBucket(client, cfg.Storage.Bucket, cfg.Site.Prefix), location, nil
	default:
		local, err := static.NewLocal(cfg.Site.Root)
		if err != nil {
			return nil, "", fmt.Errorf("failed to open site root: %w", err)
		}
		return local, local.Root(), nil
	}
}
