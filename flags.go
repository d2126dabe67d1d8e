package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"wavelab/internal/config"
)

// cliFlags holds every command-line override. A flag only replaces the
// config file value when it was set explicitly.
type cliFlags struct {
	configPath    string
	width         int
	height        int
	scale         int
	forceMode     uint8
	intensityOnly bool
	pulse         int
	tps           int
	audio         bool
	logLevel      string
	cpuProfile    string
	stats         bool

	frames   int
	interval time.Duration
	snapshot string
	plot     bool
	clicks   []string
}

// bindCommonFlags registers the flags shared by the window and headless
// runs on the root command.
func bindCommonFlags(cmd *cobra.Command, f *cliFlags) {
	d := config.DefaultConfig()
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.configPath, "config", "", "config file path (yaml)")
	pf.IntVar(&f.width, "width", d.Width, "grid width in cells")
	pf.IntVar(&f.height, "height", d.Height, "grid height in cells")
	pf.Uint8Var(&f.forceMode, "force-mode", d.ForceMode, "damping shift forwarded to the engine (0 disables damping)")
	pf.BoolVar(&f.intensityOnly, "intensity-only", d.IntensityOnly, "render grayscale intensity instead of signed amplitude")
	pf.IntVar(&f.pulse, "pulse", d.Pulse, "side of the centred starting pulse (0 for a flat field)")
	pf.StringVar(&f.logLevel, "log-level", d.LogLevel, "log level: debug, info, warn or error")
	pf.StringVar(&f.cpuProfile, "cpuprofile", d.CPUProfile, "write a CPU profile to this file")
}

// bindWindowFlags registers flags that only matter with a window.
func bindWindowFlags(cmd *cobra.Command, f *cliFlags) {
	d := config.DefaultConfig()
	fs := cmd.Flags()
	fs.IntVar(&f.scale, "scale", d.Scale, "initial window scale per grid cell")
	fs.IntVar(&f.tps, "tps", d.TPS, "display ticks per second")
	fs.BoolVar(&f.audio, "audio", d.Audio, "play the norm as a tone")
	fs.BoolVar(&f.stats, "stats", false, "show TPS and force mode over the canvas")
}

// bindHeadlessFlags registers flags for the headless command.
func bindHeadlessFlags(cmd *cobra.Command, f *cliFlags) {
	d := config.DefaultConfig()
	fs := cmd.Flags()
	fs.IntVar(&f.frames, "frames", d.Headless.Frames, "frames to run (0 runs until interrupted)")
	fs.DurationVar(&f.interval, "interval", d.Headless.Interval, "time between frames")
	fs.StringVar(&f.snapshot, "snapshot", d.Headless.Snapshot, "write the final canvas as PNG")
	fs.BoolVar(&f.plot, "plot", d.Headless.Plot, "draw the norm history")
	fs.StringArrayVar(&f.clicks, "click", nil, "force a cell before starting, as x,y (repeatable)")
}

// resolveConfig loads the config file, if any, then applies explicitly set
// flags on top.
func resolveConfig(cmd *cobra.Command, f *cliFlags) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if f.configPath != "" {
		loaded, err := config.Load(f.configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	changed := cmd.Flags().Changed
	if changed("width") {
		cfg.Width = f.width
		if !changed("pulse") && f.configPath == "" {
			cfg.Pulse = f.width / 4
		}
	}
	if changed("height") {
		cfg.Height = f.height
	}
	if changed("force-mode") {
		cfg.ForceMode = f.forceMode
	}
	if changed("intensity-only") {
		cfg.IntensityOnly = f.intensityOnly
	}
	if changed("pulse") {
		cfg.Pulse = f.pulse
	}
	if changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if changed("cpuprofile") {
		cfg.CPUProfile = f.cpuProfile
	}
	if changed("scale") {
		cfg.Scale = f.scale
	}
	if changed("tps") {
		cfg.TPS = f.tps
	}
	if changed("audio") {
		cfg.Audio = f.audio
	}
	if changed("frames") {
		cfg.Headless.Frames = f.frames
	}
	if changed("interval") {
		cfg.Headless.Interval = f.interval
	}
	if changed("snapshot") {
		cfg.Headless.Snapshot = f.snapshot
	}
	if changed("plot") {
		cfg.Headless.Plot = f.plot
	}
	if changed("click") {
		clicks, err := parseClicks(f.clicks)
		if err != nil {
			return nil, err
		}
		cfg.Headless.Clicks = clicks
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseClicks(raw []string) ([][2]int, error) {
	out := make([][2]int, 0, len(raw))
	for _, s := range raw {
		var x, y int
		if _, err := fmt.Sscanf(s, "%d,%d", &x, &y); err != nil {
			return nil, fmt.Errorf("--click %q: want x,y: %w", s, err)
		}
		out = append(out, [2]int{x, y})
	}
	return out, nil
}
