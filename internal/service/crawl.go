package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"exhibition_crawler/internal/domain"
)

// CrawlService runs every configured source through the same pipeline:
// fetch, export, admission-filter, insert as one transactional batch,
// publish. A failure in one source never aborts the others; one broken
// gallery site must not cost the evening's crawl of the rest.
type CrawlService struct {
	sources   []Source
	store     ExhibitionStore
	txManager TransactionManager
	publisher Publisher // optional
	exporter  Exporter  // optional
	logger    *slog.Logger
}

func NewCrawlService(
	sources []Source,
	store ExhibitionStore,
	txManager TransactionManager,
	publisher Publisher,
	exporter Exporter,
	logger *slog.Logger,
) *CrawlService {
	return &CrawlService{
		sources:   sources,
		store:     store,
		txManager: txManager,
		publisher: publisher,
		exporter:  exporter,
		logger:    logger,
	}
}

// Run crawls every source once and returns the summed stats.
func (s *CrawlService) Run(ctx context.Context) (*domain.CrawlStats, error) {
	startTime := time.Now()
	total := &domain.CrawlStats{}

	for _, src := range s.sources {
		if ctx.Err() != nil {
			return total, ctx.Err()
		}
		total.Add(s.crawlSource(ctx, src))
	}

	total.Duration = time.Since(startTime)
	s.logger.Info("crawl run completed",
		"sources", len(s.sources),
		"fetched", total.Fetched,
		"inserted", total.Inserted,
		"skipped_description", total.SkippedDescription,
		"skipped_end_date", total.SkippedEndDate,
		"errors", total.Errors,
		"published", total.Published,
		"duration", total.Duration,
	)
	return total, nil
}

func (s *CrawlService) crawlSource(ctx context.Context, src Source) *domain.CrawlStats {
	startTime := time.Now()
	logger := s.logger.With("source", src.ID())
	stats := &domain.CrawlStats{SourceID: src.ID()}

	logger.Info("starting crawl", "source_name", src.Name())

	exhibitions, err := src.FetchExhibitions(ctx)
	if err != nil {
		logger.Error("crawl failed", "error", err)
		stats.Errors++
		return stats
	}
	stats.Fetched = len(exhibitions)

	if s.exporter != nil {
		if err := s.exporter.Export(src.ID(), exhibitions); err != nil {
			logger.Warn("export failed", "error", err)
		}
	}

	admitted := s.filterAdmissible(logger, src.Policy(), exhibitions, stats)
	if len(admitted) == 0 {
		logger.Info("nothing to insert", "fetched", stats.Fetched)
		stats.Duration = time.Since(startTime)
		return stats
	}

	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for i := range admitted {
			if err := s.store.Insert(txCtx, &admitted[i]); err != nil {
				return fmt.Errorf("insert %q: %w", admitted[i].Title, err)
			}
		}
		return nil
	})
	if err != nil {
		// All-or-nothing: the whole batch rolled back.
		logger.Error("batch insert failed, rolled back", "error", err, "batch", len(admitted))
		stats.Errors++
		stats.Duration = time.Since(startTime)
		return stats
	}
	stats.Inserted = len(admitted)

	if s.publisher != nil {
		for i := range admitted {
			if err := s.publisher.Publish(ctx, &admitted[i]); err != nil {
				logger.Warn("publish failed", "title", admitted[i].Title, "error", err)
				stats.Errors++
			} else {
				stats.Published++
			}
		}
	}

	stats.Duration = time.Since(startTime)
	logger.Info("crawl finished",
		"fetched", stats.Fetched,
		"inserted", stats.Inserted,
		"skipped_description", stats.SkippedDescription,
		"skipped_end_date", stats.SkippedEndDate,
		"duration", stats.Duration,
	)
	return stats
}

func (s *CrawlService) filterAdmissible(
	logger *slog.Logger,
	policy domain.AdmissionPolicy,
	exhibitions []domain.Exhibition,
	stats *domain.CrawlStats,
) []domain.Exhibition {
	admitted := make([]domain.Exhibition, 0, len(exhibitions))
	for _, ex := range exhibitions {
		ok, reason := policy.Admit(&ex)
		if ok {
			admitted = append(admitted, ex)
			continue
		}
		switch reason {
		case "empty_description":
			stats.SkippedDescription++
		case "missing_end_date":
			stats.SkippedEndDate++
		}
		logger.Debug("record skipped", "reason", reason, "title", ex.Title, "raw_period", ex.RawPeriod)
	}
	return admitted
}
