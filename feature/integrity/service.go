package integrity

import (
	"context"

	"devserve/feature/integrity/checks"
	"devserve/feature/static"

	"go.uber.org/zap"
)

// Service handles integrity checks of the served site.
type Service struct {
	source static.Source
	root   string
	index  string
	logger *zap.Logger
}

// NewService creates a new integrity service. root is only used for reporting.
func NewService(source static.Source, root, index string, logger *zap.Logger) *Service {
	return &Service{
		source: source,
		root:   root,
		index:  index,
		logger: logger,
	}
}

// CheckSite verifies the root is reachable and holds the index file.
func (s *Service) CheckSite(ctx context.Context) (checks.SiteReport, error) {
	report, err := checks.CheckSite(ctx, s.source, s.root, []string{s.index})
	if err != nil {
		s.logger.Error("Site check failed", zap.String("root", s.root), zap.Error(err))
		return report, err
	}

	if !report.Reachable {
		s.logger.Warn("Site root not found", zap.String("root", s.root))
	} else if len(report.Missing) > 0 {
		s.logger.Warn("Missing files detected", zap.String("root", s.root), zap.Strings("missing", report.Missing))
	} else {
		s.logger.Info("Site looks healthy", zap.String("root", s.root), zap.Int("entries", report.Entries))
	}
	return report, nil
}
