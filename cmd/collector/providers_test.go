package main

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_collector/internal/config"
	"review_collector/internal/domain"
	"review_collector/internal/source/reddit"
	"review_collector/internal/source/social"
)

func testConfig(t *testing.T, yaml string) *config.Config {
	t.Helper()
	cfg, err := config.Parse([]byte(yaml))
	require.NoError(t, err)
	return cfg
}

func TestBuildRegistry(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	registry := buildRegistry(testConfig(t, "log_level: info\n"), logger)

	assert.Equal(t, []string{"reddit", "social", "twitter", "twitter-api", "youtube"}, registry.Names())

	resolved, err := registry.Resolve([]string{"youtube", "social"})
	require.NoError(t, err)
	require.Len(t, resolved, 3)

	assert.Equal(t, domain.SourceVideo, resolved[0].Type)
	assert.Equal(t, 0.8, resolved[0].Reliability)
	assert.Equal(t, "twitter", resolved[1].Name)
	assert.Equal(t, "twitter.com", resolved[1].Platform)
	assert.Equal(t, domain.SourceCommunity, resolved[2].Type)
	assert.IsType(t, &social.Source{}, resolved[2].Adapter)
}

func TestBuildRegistry_NativeRedditWithCredentials(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := testConfig(t, "reddit:\n  client_id: id\n  client_secret: secret\n")

	resolved, err := buildRegistry(cfg, logger).Resolve([]string{"reddit"})
	require.NoError(t, err)
	require.Len(t, resolved, 1)
	assert.IsType(t, &reddit.Source{}, resolved[0].Adapter)
	assert.Equal(t, "reddit.com", resolved[0].Platform)
}
