package postgres

import (
	"context"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"exhibition_crawler/internal/domain"
)

// ExhibitionStore writes crawled exhibitions into the exhibition table.
// Records are insert-only; nothing in the crawler ever updates or
// re-reads a row.
type ExhibitionStore struct {
	db *sqlx.DB
}

func NewExhibitionStore(db *sqlx.DB) *ExhibitionStore {
	return &ExhibitionStore{db: db}
}

func (s *ExhibitionStore) Insert(ctx context.Context, ex *domain.Exhibition) error {
	query := `
		INSERT INTO exhibition (
			title, description, address,
			author, start_date, end_date,
			open_time, close_time,
			views, img_url,
			gallery_name, phone_num,
			created_at, modified_at
		) VALUES (
			$1, $2, $3,
			$4, $5, $6,
			$7, $8,
			$9, $10,
			$11, $12,
			$13, $14
		)`

	images := ex.ImageURLs
	if images == nil {
		images = []string{}
	}

	_, err := executor(ctx, s.db).ExecContext(ctx, query,
		ex.Title,
		ex.Description,
		textOrNil(ex.Address),
		ex.Author,
		dateOrNil(ex.StartDate),
		dateOrNil(ex.EndDate),
		timeOrNil(ex.OpenTime),
		timeOrNil(ex.CloseTime),
		0,
		pq.Array(images),
		textOrNil(ex.GalleryName),
		textOrNil(ex.PhoneNum),
		time.Now(),
		nil,
	)
	return err
}

// dateOrNil turns an ISO date string into a value for a nullable date
// column. Anything that is not a clean "YYYY-MM-DD" becomes NULL; the
// normalizer may have passed raw text through.
func dateOrNil(s string) any {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return t
}

// timeOrNil does the same for "HH:MM" operating times.
func timeOrNil(s string) any {
	s = strings.TrimSpace(s)
	if _, err := time.Parse("15:04", s); err != nil {
		return nil
	}
	return s
}

func textOrNil(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}
