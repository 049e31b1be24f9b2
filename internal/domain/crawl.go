package domain

import "time"

// CrawlStats holds statistics about one crawl pass over a single source.
type CrawlStats struct {
	SourceID           string
	Fetched            int
	Inserted           int
	SkippedDescription int
	SkippedEndDate     int
	Errors             int
	Published          int
	Duration           time.Duration
}

// Add merges per-source stats into a run total.
func (s *CrawlStats) Add(other *CrawlStats) {
	s.Fetched += other.Fetched
	s.Inserted += other.Inserted
	s.SkippedDescription += other.SkippedDescription
	s.SkippedEndDate += other.SkippedEndDate
	s.Errors += other.Errors
	s.Published += other.Published
}
