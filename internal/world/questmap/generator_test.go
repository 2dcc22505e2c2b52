package questmap

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chosenoffset.com/questmap/internal/core/geom"
	"chosenoffset.com/questmap/internal/core/pathing"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(seed int64) Config {
	cfg := *DefaultConfig()
	cfg.Seed = seed
	return cfg
}

func TestEndpointsShareParity(t *testing.T) {
	for width := 2; width < 12; width++ {
		for height := 2; height < 12; height++ {
			start, end := Endpoints(width, height)
			assert.True(t, pathing.SameParity(start, end), "%dx%d", width, height)
			assert.Equal(t, height-1, start.Y)
			assert.Equal(t, 0, end.Y)
			assert.True(t, end.X >= 0 && end.X < width, "%dx%d end %v", width, height, end)
		}
	}
	start, end := Endpoints(15, 21)
	assert.Equal(t, geom.Pt(7, 20), start)
	assert.Equal(t, geom.Pt(7, 0), end)
}

func TestGenerateProducesStagedMap(t *testing.T) {
	portraits := &countingPortraits{}
	gen := NewGenerator(testConfig(42), WithLogger(quietLogger()), WithPortraits(portraits))

	m, err := gen.Generate()
	require.NoError(t, err)

	assert.Equal(t, int64(42), m.Seed)
	assert.Equal(t, m.Start, m.Graph.Start.Point)
	assert.Equal(t, m.End, m.Graph.End.Point)
	assert.GreaterOrEqual(t, len(m.Paths), 1)
	assert.Equal(t, m.Start, m.Paths[0][0])
	assert.Equal(t, m.End, m.Paths[0][len(m.Paths[0])-1])

	assert.Equal(t, []*MapNode{m.Graph.Start}, m.Reveal.NodeBatches[0])
	_, staged := m.Reveal.NodeStep(m.End)
	assert.True(t, staged, "boss must be staged")
	assert.True(t, m.Graph.End.IsBoss)
	assert.NotNil(t, m.Graph.End.Portrait)
	assert.Equal(t, len(m.Reveal.Encounters()), portraits.calls)

	for _, n := range m.Graph.Reachable() {
		if n != m.Graph.End {
			assert.NotEmpty(t, n.Children, "%v is a dead end", n.Point)
		}
	}
}

func TestGenerateIsDeterministic(t *testing.T) {
	summary := func(m *QuestMap) ([][]geom.Point, []geom.Point) {
		var encounters []geom.Point
		for _, n := range m.Reveal.Encounters() {
			encounters = append(encounters, n.Point)
		}
		return nodeBatchPoints(m.Reveal), encounters
	}

	a, err := NewGenerator(testConfig(7), WithLogger(quietLogger())).Generate()
	require.NoError(t, err)
	b, err := NewGenerator(testConfig(7), WithLogger(quietLogger())).Generate()
	require.NoError(t, err)

	batchesA, encA := summary(a)
	batchesB, encB := summary(b)
	assert.Equal(t, batchesA, batchesB)
	assert.Equal(t, encA, encB)
}

func TestGenerateWithoutDetours(t *testing.T) {
	cfg := testConfig(3)
	cfg.Detours = 0
	m, err := NewGenerator(cfg, WithLogger(quietLogger())).Generate()
	require.NoError(t, err)

	require.Len(t, m.Paths, 1)
	// one simple path gives one batch per path point
	assert.Equal(t, len(m.Paths[0]), m.Reveal.Steps())
	for _, batch := range m.Reveal.NodeBatches {
		assert.Len(t, batch, 1)
	}
}

func TestGenerateRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(1)
	cfg.Width = 1
	_, err := NewGenerator(cfg, WithLogger(quietLogger())).Generate()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestGenerateSmallestGrid(t *testing.T) {
	cfg := testConfig(5)
	cfg.Width, cfg.Height = 2, 2
	m, err := NewGenerator(cfg, WithLogger(quietLogger())).Generate()
	require.NoError(t, err)
	assert.Equal(t, [][]geom.Point{{geom.Pt(1, 1)}, {geom.Pt(0, 0)}}, nodeBatchPoints(m.Reveal))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"defaults", func(c *Config) {}, true},
		{"too narrow", func(c *Config) { c.Width = 1 }, false},
		{"too short", func(c *Config) { c.Height = 0 }, false},
		{"negative detours", func(c *Config) { c.Detours = -1 }, false},
		{"detours without attempts", func(c *Config) { c.MaxDetourAttempts = 0 }, false},
		{"no detours no attempts", func(c *Config) { c.Detours, c.MaxDetourAttempts = 0, 0 }, true},
		{"negative chance", func(c *Config) { c.Encounters.Step = -0.1 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}

func TestLoadConfigMissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "questmap.yaml")
	data := `
width: 9
height: 13
seed_phrase: daily-2026-10-18
encounters:
  base: 0.05
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Width)
	assert.Equal(t, 13, cfg.Height)
	assert.Equal(t, "daily-2026-10-18", cfg.SeedPhrase)
	assert.InDelta(t, 0.05, cfg.Encounters.Base, 1e-9)
	assert.InDelta(t, 0.1, cfg.Encounters.Step, 1e-9, "unset fields keep defaults")
	assert.Equal(t, 3, cfg.Detours)
	assert.True(t, cfg.PruneDeadEnds)
}

func TestLoadConfigBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: [1, 2"), 0o644))
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestResolveSeed(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Seed = 99
	cfg.SeedPhrase = "ignored"
	assert.Equal(t, int64(99), cfg.ResolveSeed())

	cfg.Seed = 0
	assert.Equal(t, SeedFromPhrase("ignored"), cfg.ResolveSeed())
	assert.Equal(t, SeedFromPhrase("abc"), SeedFromPhrase("abc"))
	assert.NotEqual(t, SeedFromPhrase("abc"), SeedFromPhrase("abd"))
}
