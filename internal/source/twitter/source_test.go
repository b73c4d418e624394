package twitter

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_collector/internal/domain"
)

func newTestSource(t *testing.T, handler http.HandlerFunc) *Source {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return New(Config{
		BearerToken: "bearer",
		BaseURL:     server.URL,
		Language:    "ja",
		Timeout:     5 * time.Second,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSearch_RanksByLikes(t *testing.T) {
	long := strings.Repeat("あ", 150)
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/2/tweets/search/recent", r.URL.Path)
		assert.Equal(t, "Bearer bearer", r.Header.Get("Authorization"))
		q := r.URL.Query()
		assert.Equal(t, "Nike Pegasus 41 レビュー lang:ja -is:retweet", q.Get("query"))
		assert.Equal(t, "10", q.Get("max_results"))
		assert.Equal(t, "author_id", q.Get("expansions"))

		_, _ = io.WriteString(w, `{
			"data":[
				{"id":"100","text":"short","author_id":"u1","created_at":"2024-06-01T00:00:00Z","public_metrics":{"like_count":3}},
				{"id":"200","text":"`+long+`","author_id":"u2","public_metrics":{"like_count":50,"retweet_count":7}},
				{"id":"300","text":"orphan","author_id":"gone","public_metrics":{"like_count":1}}
			],
			"includes":{"users":[{"id":"u1","username":"runner_a","name":"A"},{"id":"u2","username":"runner_b","name":"B"}]}
		}`)
	})

	records, err := src.Search(context.Background(), "Nike Pegasus 41 レビュー", 2, domain.SearchOptions{})

	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "200", records[0].Key)
	assert.Equal(t, "@runner_b", records[0].Author)
	assert.Equal(t, "https://twitter.com/runner_b/status/200", records[0].URL)
	assert.Equal(t, 103, len([]rune(records[0].Snippet)))
	assert.Equal(t, int64(7), records[0].Extra["retweet_count"])

	assert.Equal(t, "100", records[1].Key)
	require.NotNil(t, records[1].PublishedAt)
}

func TestSearch_ClampsPageSize(t *testing.T) {
	src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "100", r.URL.Query().Get("max_results"))
		_, _ = io.WriteString(w, `{}`)
	})

	records, err := src.Search(context.Background(), "q", 500, domain.SearchOptions{})
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSearch_DistinctErrors(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusTooManyRequests, ErrRateLimited},
		{http.StatusForbidden, ErrForbidden},
	}

	for _, tt := range tests {
		src := newTestSource(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
		})
		_, err := src.Search(context.Background(), "q", 10, domain.SearchOptions{})
		assert.ErrorIs(t, err, tt.want)
	}
}

func TestSearch_NotConfigured(t *testing.T) {
	src := New(Config{}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	_, err := src.Search(context.Background(), "q", 10, domain.SearchOptions{})
	assert.ErrorIs(t, err, domain.ErrNotConfigured)
}

func TestStatusURL(t *testing.T) {
	assert.Equal(t, "https://twitter.com/i/web/status/1", StatusURL("", "1"))
	assert.Equal(t, "https://twitter.com/a/status/1", StatusURL("a", "1"))
}
