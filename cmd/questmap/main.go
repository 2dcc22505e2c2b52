package main

import (
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"chosenoffset.com/questmap/internal/placeholders"
	ebitenrender "chosenoffset.com/questmap/internal/render/ebiten"
	"chosenoffset.com/questmap/internal/world/mapexport"
	"chosenoffset.com/questmap/internal/world/portrait"
	"chosenoffset.com/questmap/internal/world/questmap"
)

var rootCmd = &cobra.Command{
	Use:   "questmap",
	Short: "Generate staged quest maps",
	Long: `questmap carves random diagonal routes across a weighted grid, merges them
into a start-to-boss graph and stages the reveal step by step.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a quest map and print its reveal steps",
	Args:  cobra.NoArgs,
	RunE:  runGenerate,
}

var portraitsCmd = &cobra.Command{
	Use:   "portraits",
	Short: "Write placeholder encounter portraits",
	Args:  cobra.NoArgs,
	RunE:  runPortraits,
}

var (
	configPath  string
	mapWidth    int
	mapHeight   int
	mapSeed     int64
	seedPhrase  string
	detours     int
	portraitDir string
	geojsonPath string
	verbose     bool

	portraitOut   string
	portraitCount int
	portraitSeed  int64
)

func init() {
	generateCmd.Flags().StringVar(&configPath, "config", "questmap.yaml", "Path to the YAML config file")
	generateCmd.Flags().IntVar(&mapWidth, "width", 0, "Grid columns (overrides config)")
	generateCmd.Flags().IntVar(&mapHeight, "height", 0, "Grid rows (overrides config)")
	generateCmd.Flags().Int64Var(&mapSeed, "seed", 0, "Random seed (overrides config)")
	generateCmd.Flags().StringVar(&seedPhrase, "phrase", "", "Seed phrase, hashed into a seed (overrides config)")
	generateCmd.Flags().IntVar(&detours, "detours", -1, "Extra routes through random waypoints (overrides config)")
	generateCmd.Flags().StringVar(&portraitDir, "portraits", "", "Directory of encounter portrait images")
	generateCmd.Flags().StringVar(&geojsonPath, "geojson", "", "Also write the map as GeoJSON to this file")
	generateCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Log generation details")

	portraitsCmd.Flags().StringVar(&portraitOut, "out", "portraits", "Output directory")
	portraitsCmd.Flags().IntVar(&portraitCount, "count", 12, "Number of portraits to write")
	portraitsCmd.Flags().Int64Var(&portraitSeed, "seed", 1, "Random seed")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(portraitsCmd)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	logger := newLogger(cmd.ErrOrStderr(), verbose)

	cfg, err := questmap.LoadConfig(configPath)
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)
	cfg.Seed = cfg.ResolveSeed()

	opts := []questmap.Option{questmap.WithLogger(logger)}
	var provider *portrait.Provider
	if cfg.PortraitDir != "" {
		catalog, err := portrait.LoadCatalog(cfg.PortraitDir, cfg.PortraitGlob)
		if err != nil {
			return err
		}
		logger.Debug("portrait catalog", "dir", cfg.PortraitDir, "count", len(catalog))

		provider = portrait.NewProvider(catalog, ebitenrender.NewResourceLoader(), rand.New(rand.NewSource(cfg.Seed)))
		defer func() {
			if err := provider.Close(); err != nil {
				logger.Debug("portrait cleanup", "err", err)
			}
		}()
		opts = append(opts, questmap.WithPortraits(provider))
	}

	m, err := questmap.NewGenerator(*cfg, opts...).Generate()
	if err != nil {
		return err
	}
	if provider != nil {
		failed := waitPortraits(logger, m)
		logger.Debug("portraits loaded", "encounters", len(m.Reveal.Encounters()), "failed", failed)
	}
	printMap(cmd.OutOrStdout(), m)

	if geojsonPath != "" {
		if err := writeGeoJSON(geojsonPath, m); err != nil {
			return err
		}
		logger.Info("wrote geojson", "path", geojsonPath)
	}
	return nil
}

// waitPortraits blocks until every staged encounter's portrait is loaded
// and reports the ones that failed. Returns the number of failures.
func waitPortraits(logger *slog.Logger, m *questmap.QuestMap) int {
	failed := 0
	for _, n := range m.Reveal.Encounters() {
		if n.Portrait == nil {
			continue
		}
		if _, err := n.Portrait.Wait(); err != nil {
			failed++
			logger.Warn("portrait failed to load", "node", n.Key(), "boss", n.IsBoss, "path", n.Portrait.Path, "err", err)
		}
	}
	return failed
}

func writeGeoJSON(path string, m *questmap.QuestMap) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", path, cerr)
		}
	}()
	return mapexport.Write(f, m)
}

// applyFlags overlays the flags the user actually set onto cfg.
func applyFlags(cmd *cobra.Command, cfg *questmap.Config) {
	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = mapWidth
	}
	if flags.Changed("height") {
		cfg.Height = mapHeight
	}
	if flags.Changed("phrase") {
		cfg.SeedPhrase = seedPhrase
		cfg.Seed = 0
	}
	if flags.Changed("seed") {
		cfg.Seed = mapSeed
	}
	if flags.Changed("detours") {
		cfg.Detours = detours
	}
	if flags.Changed("portraits") {
		cfg.PortraitDir = portraitDir
	}
}

// printMap writes the start, the boss and every reveal step. Encounters
// are marked with * and the boss with !.
func printMap(w io.Writer, m *questmap.QuestMap) {
	fmt.Fprintf(w, "seed %d, %dx%d grid\n", m.Seed, m.Width, m.Height)
	fmt.Fprintf(w, "start %s\n", m.Start)
	fmt.Fprintf(w, "boss  %s\n", m.End)

	for step := range m.Reveal.NodeBatches {
		nodes := make([]string, 0, len(m.Reveal.NodeBatches[step]))
		for _, n := range m.Reveal.NodeBatches[step] {
			mark := ""
			switch {
			case n.IsBoss:
				mark = "!"
			case n.IsEncounter():
				mark = "*"
			}
			nodes = append(nodes, n.String()+mark)
		}
		edges := make([]string, 0, len(m.Reveal.EdgeBatches[step]))
		for _, seg := range m.Reveal.EdgeBatches[step] {
			edges = append(edges, seg.String())
		}
		fmt.Fprintf(w, "step %2d: nodes [%s] edges [%s]\n", step, strings.Join(nodes, " "), strings.Join(edges, " "))
	}
}

func runPortraits(cmd *cobra.Command, args []string) error {
	if portraitCount < 1 {
		return fmt.Errorf("--count must be at least 1")
	}
	paths, err := placeholders.GeneratePortraits(portraitOut, portraitCount, portraitSeed)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d portraits to %s\n", len(paths), portraitOut)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
