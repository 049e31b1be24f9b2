package scheduler

import (
	"context"
	"log/slog"
	"time"

	"exhibition_crawler/internal/domain"
)

// Crawler defines the interface for crawl operations.
type Crawler interface {
	Run(ctx context.Context) (*domain.CrawlStats, error)
}

type Scheduler struct {
	crawler  Crawler
	interval time.Duration
	timeout  time.Duration
	logger   *slog.Logger
}

func NewScheduler(crawler Crawler, interval time.Duration, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		crawler:  crawler,
		interval: interval,
		timeout:  30 * time.Minute,
		logger:   logger,
	}
}

// Start runs a crawl immediately and then on every tick. A zero
// interval means a single pass: crawl once and return.
func (s *Scheduler) Start(ctx context.Context) error {
	if s.interval <= 0 {
		s.logger.Info("scheduler running single pass")
		s.runCrawl(ctx)
		return nil
	}

	s.logger.Info("scheduler started", "interval", s.interval)

	s.runCrawl(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("scheduler stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runCrawl(ctx)
		}
	}
}

func (s *Scheduler) runCrawl(ctx context.Context) {
	crawlCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	if _, err := s.crawler.Run(crawlCtx); err != nil {
		s.logger.Error("crawl failed", "error", err)
	}
}
