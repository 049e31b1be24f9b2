// Package gallery implements one profile-driven scraper that replaces the
// dozen near-identical per-site crawlers the project started with. A
// Profile supplies the selectors and parsing options; the crawl shape is
// the same everywhere: listing page, then each detail page in turn, with
// a fixed settle delay for dynamic content.
package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"
	"strings"
	"time"

	"exhibition_crawler/internal/browse"
	"exhibition_crawler/internal/domain"
	"exhibition_crawler/internal/normalize"
)

// Options are crawl-wide knobs shared by every source.
type Options struct {
	NavigationTimeout time.Duration
	SettleDelay       time.Duration
}

// Source crawls one gallery site according to its profile.
type Source struct {
	profile Profile
	browser browse.Browser
	opts    Options
	logger  *slog.Logger
}

func New(profile Profile, browser browse.Browser, opts Options, logger *slog.Logger) *Source {
	if opts.NavigationTimeout == 0 {
		opts.NavigationTimeout = 60 * time.Second
	}
	return &Source{
		profile: profile,
		browser: browser,
		opts:    opts,
		logger:  logger.With("source", profile.ID),
	}
}

func (s *Source) ID() string { return s.profile.ID }

func (s *Source) Name() string { return s.profile.Name }

func (s *Source) Policy() domain.AdmissionPolicy { return s.profile.Admission.Policy() }

// FetchExhibitions crawls the listing and enriches each record from its
// detail page. A navigation failure on a detail page is caught locally;
// the record keeps whatever was captured at listing time.
func (s *Source) FetchExhibitions(ctx context.Context) ([]domain.Exhibition, error) {
	page, err := s.browser.NewPage()
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}
	defer page.Close()

	if err := s.navigate(ctx, page, s.profile.ListURL); err != nil {
		return nil, fmt.Errorf("list page: %w", err)
	}

	if s.profile.Selectors.Item == "" {
		ex := s.buildRecord(page, s.profile.ListURL)
		s.enrich(page, &ex)
		if ex.Title == "" {
			return nil, nil
		}
		return []domain.Exhibition{ex}, nil
	}

	items := page.Elements(s.profile.Selectors.Item)
	s.logger.Info("listing crawled", "items", len(items))

	type pending struct {
		ex  domain.Exhibition
		url string
	}

	seen := make(map[string]bool)
	var found []pending
	for _, item := range items {
		href := item.Attr(s.profile.Selectors.Link, "href")
		if href == "" {
			continue
		}
		detailURL := resolveURL(s.profile.ListURL, href)
		if seen[detailURL] {
			continue
		}
		seen[detailURL] = true

		ex := s.buildRecord(item, detailURL)
		if ex.Title == "" {
			continue
		}
		found = append(found, pending{ex: ex, url: detailURL})
	}

	exhibitions := make([]domain.Exhibition, 0, len(found))
	for _, p := range found {
		s.enrichFromDetail(ctx, page, &p.ex, p.url)
		exhibitions = append(exhibitions, p.ex)
	}

	s.logger.Info("crawl finished", "exhibitions", len(exhibitions))
	return exhibitions, nil
}

func (s *Source) buildRecord(item browse.Element, detailURL string) domain.Exhibition {
	sel := s.profile.Selectors

	periodText := textOf(item, sel.Period)
	dates := normalize.ParseDateRange(periodText, s.profile.Grammar)

	hoursText := textOf(item, sel.Hours)
	if hoursText == "" {
		hoursText = s.profile.DefaultHours
	}
	hours := normalize.ParseOperatingHours(hoursText)

	ex := domain.Exhibition{
		SourceID:    s.profile.ID,
		Title:       textOf(item, sel.Title),
		Description: textOf(item, sel.Summary),
		Address:     s.profile.Address,
		Author:      textOf(item, sel.Author),
		StartDate:   dates.Start,
		EndDate:     dates.End,
		OpenTime:    hours.Open,
		CloseTime:   hours.Close,
		GalleryName: s.profile.GalleryName,
		RawPeriod:   periodText,
		RawHours:    hoursText,
	}

	if sel.Thumbnail != "" {
		src := item.Attr(sel.Thumbnail, "data-src")
		if src == "" {
			src = item.Attr(sel.Thumbnail, "src")
		}
		if src != "" {
			ex.ImageURLs = []string{resolveURL(detailURL, src)}
		}
	}

	return ex
}

// enrichFromDetail navigates to the record's detail page and merges in
// the longer description and image set found there.
func (s *Source) enrichFromDetail(ctx context.Context, page browse.Page, ex *domain.Exhibition, detailURL string) {
	if s.profile.Selectors.DetailBody == "" && s.profile.Selectors.DetailImage == "" {
		return
	}

	if err := s.navigate(ctx, page, detailURL); err != nil {
		s.logger.Warn("detail page unreachable, keeping listing data",
			"title", ex.Title,
			"url", detailURL,
			"error", err,
		)
		return
	}

	s.enrich(page, ex)
}

func (s *Source) enrich(page browse.Page, ex *domain.Exhibition) {
	sel := s.profile.Selectors

	if sel.DetailBody != "" {
		desc := koreanDescription(page.Texts(sel.DetailBody))
		if len(desc) > len(ex.Description) {
			ex.Description = desc
		}
	}

	if sel.DetailImage != "" {
		base := s.profile.ListURL
		var urls []string
		for _, src := range page.Attrs(sel.DetailImage, "src") {
			if src != "" {
				urls = append(urls, resolveURL(base, src))
			}
		}
		ex.ImageURLs = uniqKeepOrder(append(ex.ImageURLs, urls...))
	}
}

func (s *Source) navigate(ctx context.Context, page browse.Page, target string) error {
	navCtx, cancel := context.WithTimeout(ctx, s.opts.NavigationTimeout)
	defer cancel()

	if err := page.Navigate(navCtx, target); err != nil {
		return err
	}
	page.Settle(s.opts.SettleDelay)
	return nil
}

func textOf(el browse.Element, selector string) string {
	if selector == "" {
		return ""
	}
	return el.Text(selector)
}

var hangulRe = regexp.MustCompile(`[가-힣]`)

// koreanDescription joins the paragraphs that contain Korean text. Detail
// pages mix navigation chrome and English captions with the actual
// exhibition prose; the Korean paragraphs are the prose.
func koreanDescription(paragraphs []string) string {
	var kept []string
	for _, p := range paragraphs {
		p = strings.TrimSpace(p)
		if p != "" && hangulRe.MatchString(p) {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, "\n\n")
}

func resolveURL(base, href string) string {
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	if ref.IsAbs() {
		return ref.String()
	}
	b, err := url.Parse(base)
	if err != nil {
		return href
	}
	return b.ResolveReference(ref).String()
}

func uniqKeepOrder(items []string) []string {
	seen := make(map[string]bool, len(items))
	var out []string
	for _, it := range items {
		if it == "" || seen[it] {
			continue
		}
		seen[it] = true
		out = append(out, it)
	}
	return out
}
