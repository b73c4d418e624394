package collector

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"review_collector/internal/collector/mocks"
	"review_collector/internal/domain"
	"review_collector/internal/query"
)

type captureHandler struct {
	mu      sync.Mutex
	records []slog.Record
}

func (h *captureHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *captureHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.records = append(h.records, r.Clone())
	return nil
}

func (h *captureHandler) WithAttrs([]slog.Attr) slog.Handler { return h }
func (h *captureHandler) WithGroup(string) slog.Handler      { return h }

func (h *captureHandler) messages(level slog.Level) []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	var out []string
	for _, r := range h.records {
		if r.Level == level {
			out = append(out, r.Message)
		}
	}
	return out
}

type AggregatorTestSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	adapter *mocks.MockAdapter
	logs    *captureHandler
	agg     *Aggregator
	shoe    domain.Shoe
}

func (s *AggregatorTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.adapter = mocks.NewMockAdapter(s.ctrl)
	s.logs = &captureHandler{}
	s.agg = NewAggregator(slog.New(s.logs))
	s.shoe = domain.Shoe{ID: "shoe-1", Brand: "Nike", ModelName: "Pegasus 41"}

	s.adapter.EXPECT().Name().Return("youtube").AnyTimes()
	s.adapter.EXPECT().Profile().Return(query.Video).AnyTimes()
}

func (s *AggregatorTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestAggregatorTestSuite(t *testing.T) {
	suite.Run(t, new(AggregatorTestSuite))
}

func video(key string, views int64, title string) domain.Record {
	return domain.Record{Key: key, Title: title, Popularity: views}
}

func (s *AggregatorTestSuite) TestCollect_MergesVariantsAndSortsByViews() {
	ctx := context.Background()
	opts := domain.SearchOptions{}

	gomock.InOrder(
		s.adapter.EXPECT().Search(ctx, "Nike Pegasus 41 レビュー", 5, opts).Return([]domain.Record{
			video("a", 100, "first a"),
			video("b", 5000, "b"),
		}, nil),
		s.adapter.EXPECT().Search(ctx, "Nike Pegasus 41 review", 5, opts).Return([]domain.Record{
			video("c", 300, "c"),
			video("a", 999999, "noisy a"),
		}, nil),
		s.adapter.EXPECT().Search(ctx, "Nike Pegasus 41 履いてみた", 5, opts).Return([]domain.Record{
			video("b", 1, "noisy b"),
			video("d", 42, "d"),
		}, nil),
	)

	result := s.agg.Collect(ctx, s.shoe, s.adapter, 10, opts)

	s.Equal(3, result.Queries)
	s.Equal(0, result.Failures)
	s.Require().Len(result.Records, 4)
	s.Equal([]string{"b", "c", "a", "d"}, keys(result.Records))
	s.Equal("first a", result.Records[2].Title)
	s.Equal(int64(5000), result.Records[0].Popularity)
}

func (s *AggregatorTestSuite) TestCollect_FailedVariantIsWarnedAndSkipped() {
	ctx := context.Background()
	opts := domain.SearchOptions{}

	s.adapter.EXPECT().Search(ctx, "Nike Pegasus 41 レビュー", 2, opts).Return(nil, errors.New("quota exceeded"))
	s.adapter.EXPECT().Search(ctx, "Nike Pegasus 41 review", 2, opts).Return([]domain.Record{video("x", 1, "x")}, nil)
	s.adapter.EXPECT().Search(ctx, "Nike Pegasus 41 履いてみた", 2, opts).Return(nil, nil)

	result := s.agg.Collect(ctx, s.shoe, s.adapter, 4, opts)

	s.Equal(1, result.Failures)
	s.Equal([]string{"x"}, keys(result.Records))
	s.Contains(s.logs.messages(slog.LevelWarn), "provider query failed")
}

func (s *AggregatorTestSuite) TestCollect_NotConfiguredStopsEarly() {
	ctx := context.Background()
	opts := domain.SearchOptions{}

	s.adapter.EXPECT().Search(ctx, gomock.Any(), gomock.Any(), opts).Return(nil, domain.ErrNotConfigured).Times(1)

	result := s.agg.Collect(ctx, s.shoe, s.adapter, 10, opts)

	s.True(result.NotConfigured)
	s.Empty(result.Records)
	s.Equal(0, result.Failures)
	s.Contains(s.logs.messages(slog.LevelWarn), "provider not configured, skipping")
}

func (s *AggregatorTestSuite) TestCollect_StopsOnCanceledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result := s.agg.Collect(ctx, s.shoe, s.adapter, 10, domain.SearchOptions{})

	s.Equal(0, result.Queries)
	s.Empty(result.Records)
}

func (s *AggregatorTestSuite) TestCollect_Truncates() {
	ctx := context.Background()
	opts := domain.SearchOptions{}

	s.adapter.EXPECT().Search(ctx, gomock.Any(), 1, opts).Return([]domain.Record{video("p", 1, "p"), video("q", 9, "q")}, nil).Times(3)

	result := s.agg.Collect(ctx, s.shoe, s.adapter, 1, opts)

	s.Equal([]string{"q"}, keys(result.Records))
}

func TestMerge_SetMembershipIndependentOfOrder(t *testing.T) {
	first := []domain.Record{video("a", 3, ""), video("b", 2, "")}
	second := []domain.Record{video("b", 7, ""), video("c", 1, "")}

	forward := Merge([][]domain.Record{first, second}, 10)
	backward := Merge([][]domain.Record{second, first}, 10)

	if len(forward) != 3 || len(backward) != 3 {
		t.Fatalf("expected 3 records each, got %d and %d", len(forward), len(backward))
	}

	set := map[string]bool{}
	for _, r := range forward {
		set[r.Key] = true
	}
	for _, r := range backward {
		if !set[r.Key] {
			t.Errorf("key %q missing from forward merge", r.Key)
		}
	}
}

func TestMerge_StableOnTies(t *testing.T) {
	batch := []domain.Record{video("a", 0, ""), video("b", 0, ""), video("c", 0, ""), video("", 100, "keyless")}

	for i := 0; i < 5; i++ {
		got := keys(Merge([][]domain.Record{batch}, 2))
		if len(got) != 2 || got[0] != "a" || got[1] != "b" {
			t.Fatalf("expected [a b], got %v", got)
		}
	}
}

func keys(records []domain.Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Key)
	}
	return out
}
