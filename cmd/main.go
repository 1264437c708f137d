package cmd

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"math/rand/v2"
	"os"
	"runtime/debug"
	"strings"
	"time"

	// note: cmd/gen/version.go is regenerated by 'go generate ./cmd'
	"github.com/MobRulesGames/tabletop/biome"
	"github.com/MobRulesGames/tabletop/cmd/gen"
	"github.com/MobRulesGames/tabletop/config"
	"github.com/MobRulesGames/tabletop/depth"
	"github.com/MobRulesGames/tabletop/editor"
	"github.com/MobRulesGames/tabletop/logging"
	"github.com/MobRulesGames/tabletop/perspective"
	"github.com/MobRulesGames/tabletop/refresh"
)

//go:generate go run github.com/MobRulesGames/tabletop/tools/genversion/cmd ../.git/HEAD ./gen/version.go

var errBiomeNotApplied = errors.New("biome was not applied")

type options struct {
	configPath string
	savePath   string
	pngPath    string
	pngScale   int
	biome      string
	seed       uint
	relief     float64
	roughness  float64
	water      float64
	angle      float64
	throttle   time.Duration
	useHint    bool
	list       bool
	version    bool
	tiles      bool
	logLevel   string

	explicit map[string]bool
}

func parseFlags(argv []string, stderr io.Writer, s *config.Settings) (*options, error) {
	o := &options{}
	fs := flag.NewFlagSet("tabletop", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.configPath, "config", "", "json settings file")
	fs.StringVar(&o.savePath, "save", "", "write the resulting board here as json")
	fs.StringVar(&o.pngPath, "png", "", "write a heightmap preview here")
	fs.IntVar(&o.pngScale, "png-scale", 8, "preview pixels per cell")
	fs.IntVar(&s.Rows, "rows", s.Rows, "board rows")
	fs.IntVar(&s.Cols, "cols", s.Cols, "board columns")
	fs.Float64Var(&s.ElevationUnit, "unit", s.ElevationUnit, "pixels per height level")
	fs.IntVar(&s.BatchSize, "batch", s.BatchSize, "cells redrawn per frame")
	fs.DurationVar(&o.throttle, "throttle", s.Throttle.Std(), "minimum time between redraw batches")
	fs.StringVar(&o.biome, "biome", "", "biome to generate; see -list")
	fs.UintVar(&o.seed, "seed", 0, "generation seed (random if unset)")
	fs.Float64Var(&o.relief, "relief", 1, "relief multiplier")
	fs.Float64Var(&o.roughness, "roughness", 1, "roughness multiplier")
	fs.Float64Var(&o.water, "water", 0, "water bias")
	fs.Float64Var(&o.angle, "orientation", 0, "orientation of directional features, in degrees")
	fs.BoolVar(&o.useHint, "hint", false, "use the biome's suggested elevation unit")
	fs.BoolVar(&o.list, "list", false, "list the known biomes and exit")
	fs.BoolVar(&o.version, "version", false, "print the build version and exit")
	fs.BoolVar(&o.tiles, "tiles", false, "print tiles in draw order instead of the height grid")
	fs.StringVar(&o.logLevel, "log-level", "info", "one of trace, debug, info, warn, error")

	if err := fs.Parse(argv); err != nil {
		return nil, err
	}
	o.explicit = map[string]bool{}
	fs.Visit(func(f *flag.Flag) {
		o.explicit[f.Name] = true
	})
	s.Throttle = config.Duration(o.throttle)
	return o, nil
}

func loadSettings(o *options, flagged *config.Settings) (*config.Settings, error) {
	if o.configPath == "" {
		return flagged, flagged.Validate()
	}
	fromFile, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	config.Merge(flagged, fromFile, o.explicit)
	return flagged, flagged.Validate()
}

func (o *options) biomeOptions() biome.Options {
	opts := biome.Options{
		Seed:      uint32(o.seed),
		Relief:    o.relief,
		Roughness: o.roughness,
		WaterBias: o.water,
	}
	if o.explicit["orientation"] {
		opts.Orientation = o.angle * math.Pi / 180
		opts.HasOrientation = true
	}
	return opts
}

func run(argv []string, stdout, stderr io.Writer) error {
	settings := config.Default()
	o, err := parseFlags(argv, stderr, settings)
	if err != nil {
		return err
	}

	lvl, err := logging.ParseLevel(o.logLevel)
	if err != nil {
		return fmt.Errorf("bad -log-level: %w", err)
	}
	defer logging.SetLoggingLevel(lvl)()
	defer logging.Redirect(stderr)()
	logging.Debug("version", "version", gen.Version())

	if o.version {
		fmt.Fprintln(stdout, gen.Version())
		return nil
	}
	if o.list {
		for _, key := range biome.Keys() {
			fmt.Fprintln(stdout, key)
		}
		return nil
	}

	settings, err = loadSettings(o, settings)
	if err != nil {
		return err
	}

	var drawn depth.DrawList[perspective.Tile]
	draw := func(t perspective.Tile) {
		drawn.Remove(func(it depth.Item[perspective.Tile]) bool {
			return it.Value.Cell == t.Cell
		})
		drawn.Insert(t.Key, depth.Solid, t)
	}
	sess, err := editor.NewSession(settings, refresh.NewFrameQueue(nil), draw)
	if err != nil {
		return err
	}
	if !o.explicit["seed"] {
		o.seed = uint(rand.Uint32())
	}

	if o.biome != "" {
		if o.useHint {
			sess.SetElevationUnit(sess.ScaleHint(o.biome))
		}
		logging.Info("generating", "biome", o.biome, "seed", o.seed, "rows", settings.Rows, "cols", settings.Cols)
		if !sess.SelectBiome(o.biome, o.biomeOptions()) {
			return fmt.Errorf("%q: %w", o.biome, errBiomeNotApplied)
		}
	} else if err := sess.ResetAll(settings.DefaultHeight); err != nil {
		return err
	}
	sess.FocusLost()

	if o.tiles {
		printTiles(stdout, drawn.Items())
	} else {
		printGrid(stdout, sess)
	}

	if o.savePath != "" {
		if err := sess.Save(o.savePath); err != nil {
			return fmt.Errorf("couldn't save board: %w", err)
		}
		logging.Info("saved board", "path", o.savePath)
	}
	if o.pngPath != "" {
		caption := "flat"
		if o.biome != "" {
			caption = fmt.Sprintf("%s seed %d", o.biome, o.seed)
		}
		if err := writePreview(o.pngPath, sess.Field(), o.pngScale, caption); err != nil {
			return fmt.Errorf("couldn't write preview: %w", err)
		}
		logging.Info("wrote preview", "path", o.pngPath)
	}
	return nil
}

func printGrid(w io.Writer, sess *editor.Session) {
	f := sess.Field()
	var sb strings.Builder
	for y := 0; y < f.Rows(); y++ {
		for x := 0; x < f.Cols(); x++ {
			fmt.Fprintf(&sb, "%4d", f.Get(x, y))
		}
		sb.WriteByte('\n')
	}
	io.WriteString(w, sb.String())
}

func printTiles(w io.Writer, items []depth.Item[perspective.Tile]) {
	for _, it := range items {
		t := it.Value
		fmt.Fprintf(w, "%6d (%d,%d) h=%d at %.1f,%.1f\n", it.Key, t.Cell.X, t.Cell.Y, t.Height, t.X, t.Y)
	}
}

func Main(argv []string) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("PANIC", "val", r, "stack", string(debug.Stack()))
			panic(r)
		}
	}()

	if err := run(argv, os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return
		}
		fmt.Fprintf(os.Stderr, "tabletop: %v\n", err)
		os.Exit(1)
	}
}
