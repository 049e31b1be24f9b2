package browse

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/go-rod/stealth"
)

// RodBrowser drives a headless Chromium instance for sites that render
// their listings with JavaScript.
type RodBrowser struct {
	browser *rod.Browser
	stealth bool
	logger  *slog.Logger
}

// RodConfig configures the browser engine.
type RodConfig struct {
	// Stealth creates pages with bot-detection evasion applied. Some
	// gallery hosts sit behind CDNs that block plain headless sessions.
	Stealth bool
}

// NewRodBrowser connects to a freshly launched browser.
func NewRodBrowser(cfg RodConfig, logger *slog.Logger) (*RodBrowser, error) {
	b := rod.New()
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	return &RodBrowser{browser: b, stealth: cfg.Stealth, logger: logger}, nil
}

func (b *RodBrowser) NewPage() (Page, error) {
	var page *rod.Page
	var err error
	if b.stealth {
		page, err = stealth.Page(b.browser)
	} else {
		page, err = b.browser.Page(proto.TargetCreateTarget{URL: ""})
	}
	if err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}
	return &rodPage{page: page, logger: b.logger}, nil
}

func (b *RodBrowser) Close() error {
	return b.browser.Close()
}

type rodPage struct {
	page   *rod.Page
	logger *slog.Logger
}

func (p *rodPage) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("navigate %s: %w", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		p.logger.Warn("wait load timed out", "url", url, "error", err)
	}
	return nil
}

func (p *rodPage) Text(selector string) string {
	has, el, err := p.page.Has(selector)
	if err != nil || !has {
		return ""
	}
	return elementText(el)
}

func (p *rodPage) Texts(selector string) []string {
	els, err := p.page.Elements(selector)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(els))
	for _, el := range els {
		out = append(out, elementText(el))
	}
	return out
}

func (p *rodPage) Attr(selector, name string) string {
	has, el, err := p.page.Has(selector)
	if err != nil || !has {
		return ""
	}
	return elementAttr(el, name)
}

func (p *rodPage) Attrs(selector, name string) []string {
	els, err := p.page.Elements(selector)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(els))
	for _, el := range els {
		out = append(out, elementAttr(el, name))
	}
	return out
}

func (p *rodPage) Elements(selector string) []Element {
	els, err := p.page.Elements(selector)
	if err != nil {
		return nil
	}
	out := make([]Element, 0, len(els))
	for _, el := range els {
		out = append(out, &rodElement{el: el})
	}
	return out
}

func (p *rodPage) Settle(d time.Duration) {
	if d > 0 {
		time.Sleep(d)
	}
}

func (p *rodPage) Close() error {
	return p.page.Close()
}

type rodElement struct {
	el *rod.Element
}

func (e *rodElement) Text(selector string) string {
	has, el, err := e.el.Has(selector)
	if err != nil || !has {
		return ""
	}
	return elementText(el)
}

func (e *rodElement) Texts(selector string) []string {
	els, err := e.el.Elements(selector)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(els))
	for _, el := range els {
		out = append(out, elementText(el))
	}
	return out
}

func (e *rodElement) Attr(selector, name string) string {
	has, el, err := e.el.Has(selector)
	if err != nil || !has {
		return ""
	}
	return elementAttr(el, name)
}

func (e *rodElement) Attrs(selector, name string) []string {
	els, err := e.el.Elements(selector)
	if err != nil {
		return nil
	}
	out := make([]string, 0, len(els))
	for _, el := range els {
		out = append(out, elementAttr(el, name))
	}
	return out
}

func elementText(el *rod.Element) string {
	text, err := el.Text()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}

func elementAttr(el *rod.Element, name string) string {
	val, err := el.Attribute(name)
	if err != nil || val == nil {
		return ""
	}
	return strings.TrimSpace(*val)
}
