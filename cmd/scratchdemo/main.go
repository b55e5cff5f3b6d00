// Command scratchdemo replays a scratch card session offline and writes
// the resulting layers as PNG files.
//
// Usage:
//
//	scratchdemo [-config card.yaml] [-script session.yaml] [-out dir] [-v]
//
// Without a script it zig-zags across the card until the cover clears.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/gogpu/scratch"
	"github.com/gogpu/scratch/loader"
)

func main() {
	var (
		configPath = flag.String("config", "", "card config file (.yaml, .yml or .toml)")
		scriptPath = flag.String("script", "", "gesture script (.yaml)")
		outDir     = flag.String("out", ".", "output directory")
		baseDir    = flag.String("base", "", "directory relative image paths are resolved against")
		verbose    = flag.Bool("v", false, "log debug output to stderr")
	)
	flag.Parse()

	if *verbose {
		scratch.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(*configPath, *scriptPath, *outDir, *baseDir); err != nil {
		log.Fatal(err)
	}
}

func run(configPath, scriptPath, outDir, baseDir string) error {
	clock := scratch.NewManualScheduler()
	var successes int
	opts := []scratch.Option{
		scratch.WithScheduler(clock),
		scratch.WithLoader(loader.New(loader.WithBaseDir(baseDir))),
		scratch.OnReady(func() { log.Printf("ready") }),
		scratch.OnProgress(func(p float64) { scratch.Logger().Debug("progress", "percent", p) }),
		scratch.OnSuccess(func() {
			successes++
			log.Printf("success at %v", clock.Now())
		}),
	}
	if configPath != "" {
		f, err := scratch.LoadConfig(configPath)
		if err != nil {
			return err
		}
		opts = append(opts, f.Option())
	}

	card, err := scratch.New(scratch.FixedMount{}, opts...)
	if err != nil {
		return err
	}
	defer func() {
		_ = card.Close()
	}()
	card.Wait()

	script, err := loadScript(scriptPath, card.Config())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return err
	}

	p := &player{card: card, clock: clock, out: outDir}
	if err := p.run(script); err != nil {
		return err
	}

	if err := card.Cover().SavePNG(filepath.Join(outDir, "cover.png")); err != nil {
		return err
	}
	if err := card.Reward().SavePNG(filepath.Join(outDir, "reward.png")); err != nil {
		return err
	}
	if err := writeComposite(filepath.Join(outDir, "composite.png"), card.Reward(), card.Cover()); err != nil {
		return err
	}

	fmt.Printf("state=%s erased=%.2f%% punches=%d successes=%d damaged=%d\n",
		card.State(), card.Percent(), card.Punches(), successes, len(card.Cover().TakeDamage()))
	return nil
}

func loadScript(path string, cfg scratch.Config) (*Script, error) {
	if path == "" {
		return defaultScript(cfg.Width, cfg.Height, cfg.Radius), nil
	}
	data, err := os.ReadFile(path) //nolint:gosec // path is user-provided intentionally
	if err != nil {
		return nil, err
	}
	return parseScript(data)
}
