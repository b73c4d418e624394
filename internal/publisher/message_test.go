package publisher

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"review_collector/internal/domain"
)

func TestNewSourceMessage(t *testing.T) {
	now := time.Date(2024, 6, 1, 21, 0, 0, 0, time.FixedZone("JST", 9*60*60))
	shoe := domain.Shoe{ID: "shoe-1", Brand: "Nike", ModelName: "Pegasus 41"}
	src := domain.CuratedSource{
		ID:          "src-1",
		ShoeID:      "shoe-1",
		Type:        domain.SourceSNS,
		Platform:    "twitter.com",
		Title:       "tweet",
		URL:         "https://x.com/a/status/1",
		Author:      domain.Ptr("@a"),
		Language:    "ja",
		Country:     "JP",
		Reliability: 0.65,
	}

	msg := NewSourceMessage(shoe, src, now)

	assert.Equal(t, "create", msg.Action)
	assert.Equal(t, time.UTC, msg.Timestamp.Location())

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(body, &decoded))

	source := decoded["source"].(map[string]any)
	assert.Equal(t, "SNS", source["type"])
	assert.Equal(t, "@a", source["author"])
	assert.NotContains(t, source, "excerpt")
	assert.Equal(t, "Pegasus 41", decoded["shoe"].(map[string]any)["modelName"])
}
