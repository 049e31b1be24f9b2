package gallery

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exhibition_crawler/internal/browse"
	"exhibition_crawler/internal/normalize"
)

// fakeBrowser serves canned HTML per URL through the real goquery-backed
// page, so the selector walk under test is the one production uses.
type fakeBrowser struct {
	routes map[string]string
}

func (b *fakeBrowser) NewPage() (browse.Page, error) {
	return &fakePage{routes: b.routes}, nil
}

func (b *fakeBrowser) Close() error { return nil }

type fakePage struct {
	routes map[string]string
	loaded browse.Page
}

func (p *fakePage) Navigate(_ context.Context, url string) error {
	html, ok := p.routes[url]
	if !ok {
		return fmt.Errorf("no route for %s", url)
	}
	loaded, err := browse.NewPageFromHTML(html)
	if err != nil {
		return err
	}
	p.loaded = loaded
	return nil
}

func (p *fakePage) Text(sel string) string            { return p.loaded.Text(sel) }
func (p *fakePage) Texts(sel string) []string         { return p.loaded.Texts(sel) }
func (p *fakePage) Attr(sel, name string) string      { return p.loaded.Attr(sel, name) }
func (p *fakePage) Attrs(sel, name string) []string   { return p.loaded.Attrs(sel, name) }
func (p *fakePage) Elements(sel string) []browse.Element { return p.loaded.Elements(sel) }
func (p *fakePage) Settle(time.Duration)              {}
func (p *fakePage) Close() error                      { return nil }

const listHTML = `
<html><body>
<ul class="exhibitions">
  <li>
    <a href="/ex/1">보기</a>
    <h2>겨울 풍경전</h2>
    <span class="artist">김화가</span>
    <span class="date">2025.12.3 - 12.8</span>
    <span class="summary">짧은 소개</span>
    <img class="thumb" data-src="/img/thumb1.jpg">
  </li>
  <li>
    <a href="/ex/2">보기</a>
    <h2>신년 기획전</h2>
    <span class="artist">이화가</span>
    <span class="date">2026-01-05 ~ 2026-02-01</span>
    <img class="thumb" src="http://cdn.example.com/thumb2.jpg">
  </li>
  <li>
    <a href="/ex/1">중복 링크</a>
    <h2>겨울 풍경전</h2>
  </li>
  <li>
    <a href="/ex/3">제목 없음</a>
  </li>
</ul>
</body></html>`

const detailHTML = `
<html><body>
<div class="detail">
  <p>Winter landscape exhibition.</p>
  <p>겨울 풍경을 담은 회화 연작을 선보입니다.</p>
  <p>전시는 무료로 관람할 수 있습니다.</p>
  <img src="/img/full1.jpg">
  <img src="/img/thumb1.jpg">
</div>
</body></html>`

func testProfile() Profile {
	return Profile{
		ID:           "test-gallery",
		Name:         "테스트화랑",
		ListURL:      "http://gallery.test/current",
		GalleryName:  "테스트화랑",
		Address:      "서울 종로구 인사동길 1",
		DefaultHours: "10:00 ~ 18:00",
		Selectors: Selectors{
			Item:        "ul.exhibitions > li",
			Link:        "a",
			Title:       "h2",
			Author:      "span.artist",
			Period:      "span.date",
			Summary:     "span.summary",
			Thumbnail:   "img.thumb",
			DetailBody:  "div.detail p",
			DetailImage: "div.detail img",
		},
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestFetchExhibitions(t *testing.T) {
	browser := &fakeBrowser{routes: map[string]string{
		"http://gallery.test/current": listHTML,
		"http://gallery.test/ex/1":    detailHTML,
		"http://gallery.test/ex/2":    `<html><body><div class="detail"><p>아직 준비중</p></div></body></html>`,
	}}

	src := New(testProfile(), browser, Options{}, testLogger())

	exhibitions, err := src.FetchExhibitions(context.Background())
	require.NoError(t, err)
	// Duplicate link collapsed, titleless item dropped.
	require.Len(t, exhibitions, 2)

	first := exhibitions[0]
	assert.Equal(t, "겨울 풍경전", first.Title)
	assert.Equal(t, "김화가", first.Author)
	assert.Equal(t, "2025-12-03", first.StartDate)
	assert.Equal(t, "2025-12-08", first.EndDate)
	assert.Equal(t, "10:00", first.OpenTime)
	assert.Equal(t, "18:00", first.CloseTime)
	assert.Equal(t, "테스트화랑", first.GalleryName)
	assert.Equal(t, "2025.12.3 - 12.8", first.RawPeriod)

	// Detail enrichment: Korean paragraphs only, joined.
	assert.Equal(t, "겨울 풍경을 담은 회화 연작을 선보입니다.\n\n전시는 무료로 관람할 수 있습니다.", first.Description)

	// Thumbnail resolved against the detail URL, detail images merged
	// and de-duplicated in order.
	assert.Equal(t, []string{
		"http://gallery.test/img/thumb1.jpg",
		"http://gallery.test/img/full1.jpg",
	}, first.ImageURLs)

	second := exhibitions[1]
	assert.Equal(t, "2026-01-05", second.StartDate)
	assert.Equal(t, "2026-02-01", second.EndDate)
	assert.Equal(t, []string{"http://cdn.example.com/thumb2.jpg"}, second.ImageURLs)
	assert.Equal(t, "아직 준비중", second.Description)
}

func TestFetchExhibitions_DetailFailureKeepsListingData(t *testing.T) {
	browser := &fakeBrowser{routes: map[string]string{
		"http://gallery.test/current": listHTML,
		// /ex/1 and /ex/2 unreachable
	}}

	src := New(testProfile(), browser, Options{}, testLogger())

	exhibitions, err := src.FetchExhibitions(context.Background())
	require.NoError(t, err)
	require.Len(t, exhibitions, 2)
	assert.Equal(t, "짧은 소개", exhibitions[0].Description)
	assert.Equal(t, []string{"http://gallery.test/img/thumb1.jpg"}, exhibitions[0].ImageURLs)
}

func TestFetchExhibitions_ListFailure(t *testing.T) {
	src := New(testProfile(), &fakeBrowser{routes: map[string]string{}}, Options{}, testLogger())

	_, err := src.FetchExhibitions(context.Background())
	assert.Error(t, err)
}

func TestFetchExhibitions_SinglePageSource(t *testing.T) {
	profile := testProfile()
	profile.Selectors = Selectors{
		Title:       "p.title",
		Period:      "li.period",
		DetailBody:  "div.summary p",
		DetailImage: "img.poster",
	}
	profile.Grammar = normalize.Grammar{KoreanDates: true}

	browser := &fakeBrowser{routes: map[string]string{
		"http://gallery.test/current": `
<html><body>
<p class="title">어르신 미술전</p>
<li class="period">2025년 12월 3일 ~ 12월 8일</li>
<div class="summary"><p>복지센터 회원들의 작품전입니다.</p></div>
<img class="poster" src="/upload/poster.jpg">
</body></html>`,
	}}

	src := New(profile, browser, Options{}, testLogger())

	exhibitions, err := src.FetchExhibitions(context.Background())
	require.NoError(t, err)
	require.Len(t, exhibitions, 1)
	assert.Equal(t, "어르신 미술전", exhibitions[0].Title)
	assert.Equal(t, "2025-12-03", exhibitions[0].StartDate)
	assert.Equal(t, "2025-12-08", exhibitions[0].EndDate)
	assert.Equal(t, []string{"http://gallery.test/upload/poster.jpg"}, exhibitions[0].ImageURLs)
}
