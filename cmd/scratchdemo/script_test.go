package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gogpu/scratch"
)

const session = `
steps:
  - down: [50, 50]
  - move: [150, 50]
  - move: [250, 50]
  - up: true
  - snapshot: three-dots
  - lock: true
  - swipe: {from: [0, 100], to: [300, 100], steps: 10}
  - lock: false
  - set: {rewardText: "again"}
  - wait: 30ms
  - clear: true
  - wait: 500ms
`

func TestParseScript(t *testing.T) {
	s, err := parseScript([]byte(session))
	require.NoError(t, err)
	require.Len(t, s.Steps, 12)
	assert.Equal(t, Point{50, 50}, *s.Steps[0].Down)
	assert.True(t, s.Steps[3].Up)
	assert.Equal(t, "three-dots", s.Steps[4].Snapshot)
	assert.True(t, *s.Steps[5].Lock)
	assert.False(t, *s.Steps[7].Lock)
	assert.Equal(t, 10, s.Steps[6].Swipe.Steps)
	assert.Equal(t, "again", *s.Steps[8].Set.RewardText)
	assert.Nil(t, s.Steps[8].Set.CoverImage)
}

func TestParseScriptErrors(t *testing.T) {
	for _, data := range []string{
		"steps:\n  - {}\n",
		"steps:\n  - {up: true, clear: true}\n",
		"steps:\n  - wait: soon\n",
		"steps:\n  - jump: true\n",
	} {
		_, err := parseScript([]byte(data))
		assert.Error(t, err, data)
	}
}

func TestPlayerRun(t *testing.T) {
	clock := scratch.NewManualScheduler()
	var successes int
	card, err := scratch.New(scratch.FixedMount{},
		scratch.WithScheduler(clock),
		scratch.OnSuccess(func() { successes++ }),
	)
	require.NoError(t, err)
	defer card.Close()

	s, err := parseScript([]byte(session))
	require.NoError(t, err)

	out := t.TempDir()
	p := &player{card: card, clock: clock, out: out}
	require.NoError(t, p.run(s))

	assert.Zero(t, card.Punches(), "set starts a new cycle")
	assert.Equal(t, 1, successes)
	assert.Equal(t, scratch.StateCleared, card.State())
	assert.Equal(t, "again", card.Config().RewardText)
	assert.FileExists(t, filepath.Join(out, "three-dots.png"))
}

func TestDefaultScriptClearsCard(t *testing.T) {
	clock := scratch.NewManualScheduler()
	card, err := scratch.New(scratch.FixedMount{}, scratch.WithScheduler(clock))
	require.NoError(t, err)
	defer card.Close()

	cfg := card.Config()
	p := &player{card: card, clock: clock, out: t.TempDir()}
	require.NoError(t, p.run(defaultScript(cfg.Width, cfg.Height, cfg.Radius)))
	assert.Equal(t, scratch.StateCleared, card.State())
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "card.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("width = 120\nheight = 60\nradius = 10\n"), 0o600))

	require.NoError(t, run(cfg, "", dir, ""))
	for _, name := range []string{"cover.png", "reward.png", "composite.png"} {
		assert.FileExists(t, filepath.Join(dir, name))
	}
}
