//go:build integration

package postgres

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"exhibition_crawler/internal/domain"
)

type PostgresIntegrationSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	db        *sqlx.DB
}

func (s *PostgresIntegrationSuite) SetupSuite() {
	s.ctx = context.Background()

	migrationsPath, err := filepath.Abs("../../../migrations")
	s.Require().NoError(err)

	container, err := postgres.Run(s.ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		postgres.WithInitScripts(
			filepath.Join(migrationsPath, "001_create_exhibition.up.sql"),
		),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	connStr, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	db, err := sqlx.Connect("postgres", connStr)
	s.Require().NoError(err)
	s.db = db
}

func (s *PostgresIntegrationSuite) TearDownSuite() {
	if s.db != nil {
		s.db.Close()
	}
	if s.container != nil {
		_ = s.container.Terminate(s.ctx)
	}
}

func (s *PostgresIntegrationSuite) SetupTest() {
	_, _ = s.db.ExecContext(s.ctx, "DELETE FROM exhibition")
}

func TestPostgresIntegrationSuite(t *testing.T) {
	suite.Run(t, new(PostgresIntegrationSuite))
}

func (s *PostgresIntegrationSuite) TestInsert() {
	store := NewExhibitionStore(s.db)

	ex := &domain.Exhibition{
		SourceID:    "sungallery",
		Title:       "겨울 풍경전",
		Description: "겨울 풍경을 담은 회화 연작",
		Address:     "서울 종로구 인사동5길 8",
		Author:      "김화가",
		StartDate:   "2025-12-03",
		EndDate:     "2025-12-08",
		OpenTime:    "10:00",
		CloseTime:   "18:00",
		ImageURLs:   []string{"http://example.com/a.jpg", "http://example.com/b.jpg"},
		GalleryName: "선화랑",
	}

	s.Require().NoError(store.Insert(s.ctx, ex))

	var row struct {
		Title     string    `db:"title"`
		StartDate time.Time `db:"start_date"`
		EndDate   time.Time `db:"end_date"`
		Views     int       `db:"views"`
		ImgCount  int       `db:"img_count"`
	}
	err := s.db.GetContext(s.ctx, &row, `
		SELECT title, start_date, end_date, views,
		       cardinality(img_url) AS img_count
		FROM exhibition`)
	s.Require().NoError(err)

	s.Equal("겨울 풍경전", row.Title)
	s.Equal("2025-12-03", row.StartDate.Format("2006-01-02"))
	s.Equal("2025-12-08", row.EndDate.Format("2006-01-02"))
	s.Equal(0, row.Views)
	s.Equal(2, row.ImgCount)
}

func (s *PostgresIntegrationSuite) TestInsert_UnparseableDatesBecomeNull() {
	store := NewExhibitionStore(s.db)

	ex := &domain.Exhibition{
		Title:       "상설전",
		Description: "상설 전시",
		EndDate:     "2026-01-31",
		StartDate:   "상설 전시", // raw fallback text, not a date
		ImageURLs:   []string{},
	}

	s.Require().NoError(store.Insert(s.ctx, ex))

	var startIsNull bool
	err := s.db.GetContext(s.ctx, &startIsNull,
		"SELECT start_date IS NULL FROM exhibition")
	s.Require().NoError(err)
	s.True(startIsNull)
}

func (s *PostgresIntegrationSuite) TestBatchRollback() {
	store := NewExhibitionStore(s.db)
	tm := NewTransactionManager(s.db)

	good := &domain.Exhibition{Title: "ok", Description: "d", EndDate: "2026-01-31"}
	bad := &domain.Exhibition{Title: "bad", Description: "d"} // end_date NULL violates NOT NULL

	err := tm.WithTransaction(s.ctx, func(txCtx context.Context) error {
		if err := store.Insert(txCtx, good); err != nil {
			return err
		}
		return store.Insert(txCtx, bad)
	})
	s.Error(err)

	var count int
	s.Require().NoError(s.db.GetContext(s.ctx, &count, "SELECT COUNT(*) FROM exhibition"))
	s.Equal(0, count, "batch must be all-or-nothing")
}
