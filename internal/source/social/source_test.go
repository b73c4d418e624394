package social

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_collector/internal/domain"
	"review_collector/internal/websearch"
)

type fakeSearcher struct {
	hits     []websearch.Hit
	err      error
	gotQuery string
	gotNum   int
}

func (f *fakeSearcher) Search(_ context.Context, q string, num int) ([]websearch.Hit, error) {
	f.gotQuery = q
	f.gotNum = num
	return f.hits, f.err
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestTwitter_KeepsOnlyStatusPages(t *testing.T) {
	searcher := &fakeSearcher{hits: []websearch.Hit{
		{Title: "t1", Link: "https://twitter.com/runner_a/status/1790000000000000001", Snippet: "s1"},
		{Title: "home", Link: "https://x.com/"},
		{Title: "t2", Link: "https://x.com/runner_b/status/1790000000000000002"},
		{Title: "tag", Link: "https://twitter.com/hashtag/ペガサス"},
		{Title: "t3", Link: "https://mobile.twitter.com/runner_c/status/1790000000000000003"},
	}}

	src := NewTwitter(searcher, discard())
	records, err := src.Search(context.Background(), "Nike Pegasus 41 レビュー", 10, domain.SearchOptions{})

	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Nike Pegasus 41 レビュー (site:twitter.com OR site:x.com)", searcher.gotQuery)
	assert.Equal(t, 20, searcher.gotNum)

	for _, r := range records {
		assert.Equal(t, "twitter", r.Platform)
		assert.Equal(t, "tweet", r.Kind)
	}
	assert.Equal(t, "@runner_a", records[0].Author)
	assert.Equal(t, "1790000000000000001", records[0].Key)
	assert.Equal(t, "s1", records[0].Snippet)
}

func TestTwitter_DedupesAndTruncates(t *testing.T) {
	searcher := &fakeSearcher{hits: []websearch.Hit{
		{Link: "https://twitter.com/a/status/1"},
		{Link: "https://x.com/a/status/1"},
		{Link: "https://x.com/b/status/2"},
		{Link: "https://x.com/c/status/3"},
	}}

	records, err := NewTwitter(searcher, discard()).Search(context.Background(), "q", 2, domain.SearchOptions{})

	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "1", records[0].Key)
	assert.Equal(t, "2", records[1].Key)
}

func TestReddit_ScopesToSubreddits(t *testing.T) {
	searcher := &fakeSearcher{hits: []websearch.Hit{
		{Title: "Pegasus 41 thoughts", Link: "https://www.reddit.com/r/RunningShoeGeeks/comments/1abc2d/pegasus_41_thoughts/"},
		{Title: "sub", Link: "https://www.reddit.com/r/running/"},
		{Title: "tweet", Link: "https://x.com/a/status/9"},
	}}

	src := NewReddit(searcher, []string{"running", "RunningShoeGeeks"}, discard())
	records, err := src.Search(context.Background(), "Nike Pegasus 41 review", 5, domain.SearchOptions{})

	require.NoError(t, err)
	assert.Equal(t, "Nike Pegasus 41 review (site:reddit.com/r/running OR site:reddit.com/r/RunningShoeGeeks)", searcher.gotQuery)
	require.Len(t, records, 1)
	assert.Equal(t, "reddit", records[0].Platform)
	assert.Equal(t, "reddit_post", records[0].Kind)
	assert.Equal(t, "r/RunningShoeGeeks", records[0].Author)
	assert.Equal(t, "RunningShoeGeeks", records[0].Extra["subreddit"])
}

func TestReddit_NoSubreddits(t *testing.T) {
	searcher := &fakeSearcher{}
	_, err := NewReddit(searcher, nil, discard()).Search(context.Background(), "q", 1, domain.SearchOptions{})

	require.NoError(t, err)
	assert.Equal(t, "q site:reddit.com", searcher.gotQuery)
}

func TestSearch_PropagatesSearcherError(t *testing.T) {
	searcher := &fakeSearcher{err: domain.ErrNotConfigured}
	_, err := NewTwitter(searcher, discard()).Search(context.Background(), "q", 5, domain.SearchOptions{})

	assert.True(t, errors.Is(err, domain.ErrNotConfigured))
}

func TestTwitter_TruncatesSnippet(t *testing.T) {
	snippet := strings.Repeat("軽い", 150)
	searcher := &fakeSearcher{hits: []websearch.Hit{
		{Title: "t", Link: "https://x.com/a/status/1", Snippet: snippet},
	}}

	records, err := NewTwitter(searcher, discard()).Search(context.Background(), "q", 5, domain.SearchOptions{})

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, domain.Preview(snippet, domain.ExcerptLimit), records[0].Snippet)
	assert.LessOrEqual(t, len([]rune(records[0].Snippet)), domain.ExcerptLimit+3)
}
