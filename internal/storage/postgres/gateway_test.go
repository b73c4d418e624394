package postgres

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/suite"

	"review_collector/internal/domain"
)

var shoeCols = []string{
	"id", "brand", "modelName", "category", "releaseYear", "officialPrice",
	"description", "keywords", "imageUrls", "createdAt", "updatedAt",
}

var sourceCols = []string{
	"id", "shoeId", "type", "platform", "title", "excerpt", "url", "author",
	"language", "country", "thumbnailUrl", "reliability", "metadata", "status",
	"tags", "createdAt", "updatedAt",
}

const (
	findShoeQuery   = `FROM shoes\s+WHERE LOWER\(brand\) = LOWER\(\$1\)`
	insertShoeQuery = `INSERT INTO shoes`
	existsQuery     = `SELECT EXISTS`
	insertSrcQuery  = `INSERT INTO "curatedSources"`
)

type GatewayTestSuite struct {
	suite.Suite
	ctx     context.Context
	db      *sql.DB
	mock    sqlmock.Sqlmock
	gateway *Gateway
	now     time.Time
}

func (s *GatewayTestSuite) SetupTest() {
	db, mock, err := sqlmock.New()
	s.Require().NoError(err)

	s.ctx = context.Background()
	s.db = db
	s.mock = mock
	s.gateway = NewGateway(sqlx.NewDb(db, "postgres"), slog.New(slog.NewTextHandler(io.Discard, nil)))
	s.now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
}

func (s *GatewayTestSuite) TearDownTest() {
	s.NoError(s.mock.ExpectationsWereMet())
	s.db.Close()
}

func TestGatewayTestSuite(t *testing.T) {
	suite.Run(t, new(GatewayTestSuite))
}

func (s *GatewayTestSuite) shoeRows(id, brand, model string) *sqlmock.Rows {
	return sqlmock.NewRows(shoeCols).
		AddRow(id, brand, model, "ランニング", 2024, nil, nil, "{daily,trainer}", "{}", s.now, s.now)
}

func (s *GatewayTestSuite) TestEnsureShoe_Existing() {
	s.mock.ExpectQuery(findShoeQuery).
		WithArgs("nike", "pegasus 41").
		WillReturnRows(s.shoeRows("shoe-1", "Nike", "Pegasus 41"))

	id, created, err := s.gateway.EnsureShoe(s.ctx, domain.ShoeRef{Brand: "nike", ModelName: "pegasus 41"})

	s.Require().NoError(err)
	s.Equal("shoe-1", id)
	s.False(created)
}

func (s *GatewayTestSuite) TestEnsureShoe_CreatesMissing() {
	s.mock.ExpectQuery(findShoeQuery).
		WithArgs("Nike", "Pegasus 41").
		WillReturnRows(sqlmock.NewRows(shoeCols))
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(insertShoeQuery).
		WithArgs("Nike", "Pegasus 41", "ランニング", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "{}", "{}").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("shoe-new"))
	s.mock.ExpectCommit()

	id, created, err := s.gateway.EnsureShoe(s.ctx, domain.ShoeRef{Brand: "Nike", ModelName: "Pegasus 41"})

	s.Require().NoError(err)
	s.Equal("shoe-new", id)
	s.True(created)
}

func (s *GatewayTestSuite) TestEnsureShoe_LostRaceRereads() {
	s.mock.ExpectQuery(findShoeQuery).WillReturnRows(sqlmock.NewRows(shoeCols))
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(insertShoeQuery).WillReturnError(&pq.Error{Code: "23505"})
	s.mock.ExpectRollback()
	s.mock.ExpectQuery(findShoeQuery).WillReturnRows(s.shoeRows("shoe-other", "Nike", "Pegasus 41"))

	id, created, err := s.gateway.EnsureShoe(s.ctx, domain.ShoeRef{Brand: "Nike", ModelName: "Pegasus 41"})

	s.Require().NoError(err)
	s.Equal("shoe-other", id)
	s.False(created)
}

func (s *GatewayTestSuite) TestEnsureShoe_StoreUnavailable() {
	s.mock.ExpectQuery(findShoeQuery).WillReturnError(sql.ErrConnDone)

	_, _, err := s.gateway.EnsureShoe(s.ctx, domain.ShoeRef{Brand: "Nike", ModelName: "Pegasus 41"})

	s.ErrorIs(err, sql.ErrConnDone)
}

func (s *GatewayTestSuite) TestCreateShoe_Duplicate() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(insertShoeQuery).WillReturnError(&pq.Error{Code: "23505"})
	s.mock.ExpectRollback()

	_, err := s.gateway.CreateShoe(s.ctx, &domain.Shoe{Brand: "Hoka", ModelName: "Clifton 9"})

	s.ErrorIs(err, domain.ErrDuplicate)
}

func (s *GatewayTestSuite) source() *domain.CuratedSource {
	return &domain.CuratedSource{
		ShoeID:      "shoe-1",
		Type:        domain.SourceVideo,
		Platform:    "youtube.com",
		Title:       "review",
		URL:         "https://www.youtube.com/watch?v=abcdef1",
		Language:    "ja",
		Country:     "JP",
		Reliability: 0.8,
		Metadata:    map[string]any{"video_id": "abcdef1"},
	}
}

func (s *GatewayTestSuite) TestRecordSource_Inserts() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(existsQuery).
		WithArgs("shoe-1", "https://www.youtube.com/watch?v=abcdef1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	s.mock.ExpectQuery(insertSrcQuery).
		WithArgs("shoe-1", "VIDEO", "youtube.com", "review", sqlmock.AnyArg(), "https://www.youtube.com/watch?v=abcdef1",
			sqlmock.AnyArg(), "ja", "JP", sqlmock.AnyArg(), 0.8, `{"video_id":"abcdef1"}`, "PUBLISHED", "{}").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow("src-1"))
	s.mock.ExpectCommit()

	id, inserted, err := s.gateway.RecordSource(s.ctx, s.source())

	s.Require().NoError(err)
	s.True(inserted)
	s.Equal("src-1", id)
}

func (s *GatewayTestSuite) TestRecordSource_ExistingIsNoop() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(existsQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	s.mock.ExpectRollback()

	id, inserted, err := s.gateway.RecordSource(s.ctx, s.source())

	s.Require().NoError(err)
	s.False(inserted)
	s.Empty(id)
}

func (s *GatewayTestSuite) TestRecordSource_UniqueViolationIsNoop() {
	s.mock.ExpectBegin()
	s.mock.ExpectQuery(existsQuery).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	s.mock.ExpectQuery(insertSrcQuery).WillReturnError(&pq.Error{Code: "23505"})
	s.mock.ExpectRollback()

	_, inserted, err := s.gateway.RecordSource(s.ctx, s.source())

	s.Require().NoError(err)
	s.False(inserted)
}

func (s *GatewayTestSuite) TestRecordSource_BeginFails() {
	s.mock.ExpectBegin().WillReturnError(sql.ErrConnDone)

	_, inserted, err := s.gateway.RecordSource(s.ctx, s.source())

	s.ErrorIs(err, sql.ErrConnDone)
	s.False(inserted)
}

func (s *GatewayTestSuite) TestListSources() {
	rows := sqlmock.NewRows(sourceCols).
		AddRow("src-1", "shoe-1", "VIDEO", "youtube.com", "video", "excerpt", "https://y/1", "RunLab",
			"ja", "JP", "https://i/1.jpg", 0.8, []byte(`{"view_count":1200}`), "PUBLISHED", "{}", s.now, s.now).
		AddRow("src-2", "shoe-1", "COMMUNITY", "reddit.com", "thread", nil, "https://r/2", nil,
			"ja", "JP", nil, 0.6, nil, "PUBLISHED", "{}", s.now, s.now)
	s.mock.ExpectQuery(`WHERE "shoeId" = \$1 AND status = \$2\s+ORDER BY reliability DESC, "createdAt" DESC`).
		WithArgs("shoe-1", "PUBLISHED").
		WillReturnRows(rows)

	sources, err := s.gateway.ListSources(s.ctx, "shoe-1")

	s.Require().NoError(err)
	s.Require().Len(sources, 2)
	s.Equal(domain.SourceVideo, sources[0].Type)
	s.Equal("RunLab", *sources[0].Author)
	s.Equal(float64(1200), sources[0].Metadata["view_count"])
	s.Nil(sources[1].Author)
	s.Nil(sources[1].Metadata)
}

func (s *GatewayTestSuite) TestListShoes() {
	s.mock.ExpectQuery(`FROM shoes ORDER BY "createdAt" DESC`).
		WillReturnRows(s.shoeRows("shoe-1", "Nike", "Pegasus 41"))

	shoes, err := s.gateway.ListShoes(s.ctx)

	s.Require().NoError(err)
	s.Require().Len(shoes, 1)
	s.Equal([]string{"daily", "trainer"}, shoes[0].Keywords)
	s.Equal(2024, *shoes[0].ReleaseYear)
	s.Nil(shoes[0].OfficialPrice)
}

func (s *GatewayTestSuite) TestGetShoe_NotFound() {
	s.mock.ExpectQuery(`FROM shoes WHERE id = \$1`).
		WithArgs("missing").
		WillReturnRows(sqlmock.NewRows(shoeCols))

	_, err := s.gateway.GetShoe(s.ctx, "missing")

	s.ErrorIs(err, domain.ErrNotFound)
}

func (s *GatewayTestSuite) TestStats() {
	s.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM shoes`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	s.mock.ExpectQuery(`SELECT COUNT\(\*\) FROM "curatedSources"`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	stats, err := s.gateway.Stats(s.ctx)

	s.Require().NoError(err)
	s.Equal(domain.Stats{Shoes: 3, CuratedSources: 12}, stats)
}
