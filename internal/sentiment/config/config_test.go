package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()

	assert.Equal(t, 900*time.Second, cfg.LiveFeed.Interval)
	assert.Equal(t, 15*time.Second, cfg.Collector.TargetDelay)
	assert.Equal(t, 20, cfg.Collector.MaxHeadlines)
	assert.Equal(t, 512, cfg.HuggingFace.MaxTextLength)
	assert.Equal(t, 3, cfg.HuggingFace.MaxAttempts)
	assert.Equal(t, 2*time.Second, cfg.HuggingFace.InitialBackoff)
	assert.Equal(t, 30*time.Second, cfg.NewsAPI.Timeout)
	assert.Len(t, cfg.Collector.Targets, 40)
}

func TestLoad_FromYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	yaml := `
app:
  name: sentiment-test
collector:
  target_delay: 1s
  targets:
    - ticker: AAPL
      name: Apple Inc.
      query: '"Apple Inc." AND (stock OR finance)'
    - ticker: MSFT
      name: Microsoft
live_feed:
  interval: 5m
  max_subscribers: 2
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sentiment-test", cfg.App.Name)
	assert.Equal(t, time.Second, cfg.Collector.TargetDelay)
	assert.Equal(t, 5*time.Minute, cfg.LiveFeed.Interval)
	assert.Equal(t, 2, cfg.LiveFeed.MaxSubscribers)
	require.Len(t, cfg.Collector.Targets, 2)
	assert.Equal(t, "AAPL", cfg.Collector.Targets[0].Ticker)

	target, ok := cfg.FindTarget("AAPL")
	require.True(t, ok)
	assert.Equal(t, `"Apple Inc." AND (stock OR finance)`, target.TickerQuery())

	_, ok = cfg.FindTarget("NOPE")
	assert.False(t, ok)
}

func TestDefaultTargets_AppleDisambiguated(t *testing.T) {
	for _, target := range DefaultTargets() {
		if target.Ticker == "AAPL" {
			assert.Equal(t, `"Apple Inc." AND (stock OR finance)`, target.SearchQuery())
			continue
		}
		assert.Equal(t, target.Name, target.SearchQuery())
		assert.Equal(t, target.Ticker, target.TickerQuery())
	}
}

func TestResolveTarget(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()

	apple := cfg.ResolveTarget(" aapl ")
	assert.Equal(t, "AAPL", apple.Ticker)
	assert.Equal(t, `"Apple Inc." AND (stock OR finance)`, apple.TickerQuery())

	unknown := cfg.ResolveTarget("zzzz")
	assert.Equal(t, "ZZZZ", unknown.Ticker)
	assert.Equal(t, "ZZZZ", unknown.TickerQuery())
}

func TestSetDefaults_MinTitleWords(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	assert.Equal(t, 3, cfg.LiveFeed.MinTitleWords)

	disabled := Config{LiveFeed: LiveFeed{MinTitleWords: -1}}
	disabled.SetDefaults()
	assert.Equal(t, -1, disabled.LiveFeed.MinTitleWords)
}
