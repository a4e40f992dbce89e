// internal/core/services/scan.go
package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/tagit-app/tagit-be/internal/core/domain"
	"github.com/tagit-app/tagit-be/internal/core/ports"
)

// ScanService resolves decoded scan payloads against the depositor and
// article collections. Any string is accepted; absence is a normal result and
// an unreadable collection reads as empty, so resolution never fails.
type ScanService struct {
	depositors ports.DepositorRepository
	articles   ports.ArticleRepository
	logger     *slog.Logger
}

// Statically assert that *ScanService implements the port.
var _ ports.ScanService = (*ScanService)(nil)

// NewScanService creates a new scan resolver.
func NewScanService(depositors ports.DepositorRepository, articles ports.ArticleRepository, logger *slog.Logger) *ScanService {
	return &ScanService{
		depositors: depositors,
		articles:   articles,
		logger:     logger.With(slog.String("service", "scan")),
	}
}

// Resolve classifies the payload by separator presence and looks it up in the
// matching collection.
func (s *ScanService) Resolve(ctx context.Context, scanned string) (*ports.ScanResult, error) {
	result := &ports.ScanResult{
		Kind: domain.ClassifyCode(scanned),
		Code: scanned,
	}

	switch result.Kind {
	case domain.KindArticle:
		article, err := s.articles.FindByCode(ctx, scanned)
		if err != nil {
			s.logAbsent(ctx, scanned, err)
			return result, nil
		}
		result.Found = true
		result.Article = article
	case domain.KindDepositor:
		depositor, err := s.depositors.FindByCode(ctx, scanned)
		if err != nil {
			s.logAbsent(ctx, scanned, err)
			return result, nil
		}
		result.Found = true
		result.Depositor = depositor
	}

	return result, nil
}

func (s *ScanService) logAbsent(ctx context.Context, scanned string, err error) {
	if errors.Is(err, domain.ErrNotFound) {
		s.logger.DebugContext(ctx, "scan matched nothing", slog.String("code", scanned))
		return
	}
	// Corrupt or unreachable storage reads as an empty collection.
	s.logger.WarnContext(ctx, "collection unreadable during scan, treating as empty",
		slog.String("code", scanned),
		slog.String("error", err.Error()))
}
