package browse

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// StaticBrowser fetches pages over plain HTTP and parses them with
// goquery. It is the cheap engine for galleries that serve their
// listings as server-rendered HTML.
type StaticBrowser struct {
	client *http.Client
	logger *slog.Logger
}

// StaticConfig configures the static engine.
type StaticConfig struct {
	Timeout time.Duration
}

func NewStaticBrowser(cfg StaticConfig, logger *slog.Logger) *StaticBrowser {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 60 * time.Second
	}
	return &StaticBrowser{
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}
}

func (b *StaticBrowser) NewPage() (Page, error) {
	return &staticPage{client: b.client}, nil
}

func (b *StaticBrowser) Close() error {
	b.client.CloseIdleConnections()
	return nil
}

// NewPageFromHTML builds a Page over markup obtained out of band. Such a
// page cannot Navigate; it is already loaded.
func NewPageFromHTML(html string) (Page, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return &staticPage{doc: doc}, nil
}

type staticPage struct {
	client *http.Client
	doc    *goquery.Document
}

func (p *staticPage) Navigate(ctx context.Context, url string) error {
	if p.client == nil {
		return fmt.Errorf("page is not navigable")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", "ExhibitionCrawler/1.0")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("fetch %s: unexpected status %d", url, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return fmt.Errorf("parse %s: %w", url, err)
	}
	p.doc = doc
	return nil
}

func (p *staticPage) Text(selector string) string {
	if p.doc == nil {
		return ""
	}
	return strings.TrimSpace(p.doc.Find(selector).First().Text())
}

func (p *staticPage) Texts(selector string) []string {
	if p.doc == nil {
		return nil
	}
	var out []string
	p.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

func (p *staticPage) Attr(selector, name string) string {
	if p.doc == nil {
		return ""
	}
	val, _ := p.doc.Find(selector).First().Attr(name)
	return strings.TrimSpace(val)
}

func (p *staticPage) Attrs(selector, name string) []string {
	if p.doc == nil {
		return nil
	}
	var out []string
	p.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		val, _ := s.Attr(name)
		out = append(out, strings.TrimSpace(val))
	})
	return out
}

func (p *staticPage) Elements(selector string) []Element {
	if p.doc == nil {
		return nil
	}
	var out []Element
	p.doc.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, &staticElement{sel: s})
	})
	return out
}

// Settle is a no-op; static documents are complete on fetch.
func (p *staticPage) Settle(time.Duration) {}

func (p *staticPage) Close() error { return nil }

type staticElement struct {
	sel *goquery.Selection
}

func (e *staticElement) Text(selector string) string {
	return strings.TrimSpace(e.sel.Find(selector).First().Text())
}

func (e *staticElement) Texts(selector string) []string {
	var out []string
	e.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		out = append(out, strings.TrimSpace(s.Text()))
	})
	return out
}

func (e *staticElement) Attr(selector, name string) string {
	val, _ := e.sel.Find(selector).First().Attr(name)
	return strings.TrimSpace(val)
}

func (e *staticElement) Attrs(selector, name string) []string {
	var out []string
	e.sel.Find(selector).Each(func(_ int, s *goquery.Selection) {
		val, _ := s.Attr(name)
		out = append(out, strings.TrimSpace(val))
	})
	return out
}
