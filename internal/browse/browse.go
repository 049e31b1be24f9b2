// Package browse is the page-automation surface the gallery sources crawl
// through. Sources only ever see these interfaces; whether a page is
// rendered by a headless browser or fetched as static HTML is an engine
// choice made per site in configuration.
package browse

import (
	"context"
	"time"
)

// Element answers selector queries scoped to one node. A selector that
// matches nothing yields an empty string, never an error; exhibition
// markup changes often and a missing field must not abort a crawl.
type Element interface {
	// Text returns the trimmed text of the first match.
	Text(selector string) string
	// Texts returns the trimmed text of every match.
	Texts(selector string) []string
	// Attr returns the named attribute of the first match.
	Attr(selector, name string) string
	// Attrs returns the named attribute of every match, empty entries
	// included so positions line up with Texts.
	Attrs(selector, name string) []string
}

// Page is a navigable document. It embeds Element so a single-page source
// can treat the whole document as its one list item.
type Page interface {
	Element
	// Navigate loads the URL, honoring the context deadline.
	Navigate(ctx context.Context, url string) error
	// Elements returns every match of the selector as scoped Elements.
	Elements(selector string) []Element
	// Settle waits a fixed duration for dynamic content to finish
	// rendering. Engines without dynamic content ignore it.
	Settle(d time.Duration)
	Close() error
}

// Browser produces pages. Each crawler run owns its own browser session.
type Browser interface {
	NewPage() (Page, error)
	Close() error
}

// Engine names a browse implementation in source configuration.
type Engine string

const (
	EngineBrowser Engine = "browser" // headless Chromium via rod
	EngineStatic  Engine = "static"  // plain HTTP fetch + goquery
)
