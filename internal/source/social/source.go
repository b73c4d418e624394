// Package social finds posts on social platforms through a generic web
// search restricted to the platform's domains. No platform API is called.
package social

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"review_collector/internal/domain"
	"review_collector/internal/query"
	"review_collector/internal/urlkey"
	"review_collector/internal/websearch"
)

const (
	TwitterSourceID = "twitter"
	RedditSourceID  = "reddit"

	twitterScope = "(site:twitter.com OR site:x.com)"

	// overfetch compensates for hits that are not content pages.
	overfetch = 2
)

// Source implements collector.Adapter on top of a websearch.Searcher.
type Source struct {
	searcher websearch.Searcher
	id       string
	platform string
	scope    string
	logger   *slog.Logger
}

// NewTwitter searches tweets on twitter.com and x.com.
func NewTwitter(searcher websearch.Searcher, logger *slog.Logger) *Source {
	return &Source{
		searcher: searcher,
		id:       TwitterSourceID,
		platform: urlkey.PlatformTwitter,
		scope:    twitterScope,
		logger:   logger.With("source", TwitterSourceID, "via", "web_search"),
	}
}

// NewReddit searches posts in the given subreddits, or all of reddit.com
// when the list is empty.
func NewReddit(searcher websearch.Searcher, subreddits []string, logger *slog.Logger) *Source {
	return &Source{
		searcher: searcher,
		id:       RedditSourceID,
		platform: urlkey.PlatformReddit,
		scope:    redditScope(subreddits),
		logger:   logger.With("source", RedditSourceID, "via", "web_search"),
	}
}

func redditScope(subreddits []string) string {
	if len(subreddits) == 0 {
		return "site:reddit.com"
	}
	sites := make([]string, 0, len(subreddits))
	for _, sub := range subreddits {
		sites = append(sites, "site:reddit.com/r/"+sub)
	}
	return "(" + strings.Join(sites, " OR ") + ")"
}

func (s *Source) Name() string {
	return s.id
}

func (s *Source) Profile() query.Profile {
	return query.Social
}

// Search keeps only hits whose URL is a post permalink on the platform.
// Web results carry no engagement data, so popularity stays zero and the
// search engine's ranking is preserved.
func (s *Source) Search(ctx context.Context, q string, maxResults int, _ domain.SearchOptions) ([]domain.Record, error) {
	if maxResults <= 0 {
		return nil, nil
	}

	hits, err := s.searcher.Search(ctx, q+" "+s.scope, maxResults*overfetch)
	if err != nil {
		return nil, fmt.Errorf("web search: %w", err)
	}

	records := make([]domain.Record, 0, min(len(hits), maxResults))
	seen := make(map[string]struct{})

	for _, hit := range hits {
		id, ok := urlkey.Extract(hit.Link)
		if !ok || id.Platform != s.platform {
			s.logger.Debug("skipping non-content result", "url", hit.Link)
			continue
		}
		if _, dup := seen[id.Key]; dup {
			continue
		}
		seen[id.Key] = struct{}{}

		extra := map[string]any{
			"post_type": id.Kind,
			"via":       "web_search",
		}
		if id.Community != "" {
			extra["subreddit"] = id.Community
		}

		records = append(records, domain.Record{
			Key:      id.Key,
			Platform: id.Platform,
			Kind:     id.Kind,
			Title:    hit.Title,
			URL:      hit.Link,
			Author:   id.Author(),
			Snippet:  domain.Preview(hit.Snippet, domain.ExcerptLimit),
			Extra:    extra,
		})

		if len(records) >= maxResults {
			break
		}
	}

	return records, nil
}
