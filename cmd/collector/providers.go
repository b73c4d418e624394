package main

import (
	"log/slog"

	"review_collector/internal/catalog"
	"review_collector/internal/config"
	"review_collector/internal/domain"
	"review_collector/internal/service"
	"review_collector/internal/source/reddit"
	"review_collector/internal/source/social"
	"review_collector/internal/source/twitter"
	"review_collector/internal/source/youtube"
	"review_collector/internal/websearch"
)

// newSearcher returns Serper backed by Google Custom Search.
func newSearcher(cfg *config.Config, logger *slog.Logger) websearch.Searcher {
	serper := websearch.NewSerper(websearch.SerperConfig{
		APIKey:    cfg.Serper.APIKey,
		BaseURL:   cfg.Serper.BaseURL,
		Country:   cfg.Serper.Country,
		Locale:    cfg.Serper.Locale,
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.HTTP.Timeout,
	})
	google := websearch.NewGoogle(websearch.GoogleConfig{
		APIKey:    cfg.GoogleSearch.APIKey,
		EngineID:  cfg.GoogleSearch.EngineID,
		BaseURL:   cfg.GoogleSearch.BaseURL,
		UserAgent: cfg.HTTP.UserAgent,
		Timeout:   cfg.HTTP.Timeout,
	})
	return websearch.NewFallback(serper, google, logger.With("component", "websearch"))
}

func newFinder(cfg *config.Config, logger *slog.Logger) *catalog.Finder {
	return catalog.NewFinder(newSearcher(cfg, logger), logger)
}

func buildRegistry(cfg *config.Config, logger *slog.Logger) *service.Registry {
	searcher := newSearcher(cfg, logger)
	rel := cfg.Collect.Reliability
	registry := service.NewRegistry()

	registry.Register("youtube", service.Provider{
		Adapter: youtube.New(youtube.Config{
			APIKey:            cfg.YouTube.APIKey,
			BaseURL:           cfg.YouTube.BaseURL,
			RegionCode:        cfg.YouTube.RegionCode,
			RelevanceLanguage: cfg.YouTube.RelevanceLanguage,
			Order:             cfg.YouTube.Order,
			UserAgent:         cfg.HTTP.UserAgent,
			Timeout:           cfg.HTTP.Timeout,
		}, logger),
		Type:        domain.SourceVideo,
		Platform:    "youtube.com",
		Reliability: rel.Video,
	})

	registry.Register("twitter", service.Provider{
		Adapter:     social.NewTwitter(searcher, logger),
		Type:        domain.SourceSNS,
		Platform:    "twitter.com",
		Reliability: rel.SNS,
	})

	registry.Register("twitter-api", service.Provider{
		Adapter: twitter.New(twitter.Config{
			BearerToken: cfg.Twitter.BearerToken,
			BaseURL:     cfg.Twitter.BaseURL,
			Language:    cfg.Twitter.Language,
			UserAgent:   cfg.HTTP.UserAgent,
			Timeout:     cfg.HTTP.Timeout,
		}, logger),
		Type:        domain.SourceSNS,
		Platform:    "twitter.com",
		Reliability: rel.SNS,
	})

	var redditProvider service.Provider
	if cfg.Reddit.HasCredentials() {
		redditProvider.Adapter = reddit.New(reddit.Config{
			ClientID:     cfg.Reddit.ClientID,
			ClientSecret: cfg.Reddit.ClientSecret,
			UserAgent:    cfg.Reddit.UserAgent,
			AuthURL:      cfg.Reddit.AuthURL,
			BaseURL:      cfg.Reddit.BaseURL,
			Subreddits:   cfg.Reddit.Subreddits,
			Sort:         cfg.Reddit.Sort,
			TimeFilter:   cfg.Reddit.TimeFilter,
			Timeout:      cfg.HTTP.Timeout,
		}, logger)
	} else {
		redditProvider.Adapter = social.NewReddit(searcher, cfg.Reddit.WebSubreddits, logger)
	}
	redditProvider.Type = domain.SourceCommunity
	redditProvider.Platform = "reddit.com"
	redditProvider.Reliability = rel.Community
	registry.Register("reddit", redditProvider)

	registry.Alias("social", "twitter", "reddit")

	return registry
}
