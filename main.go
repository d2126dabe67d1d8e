package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"wavelab/internal/config"
	"wavelab/internal/engine"
	"wavelab/internal/headless"
	"wavelab/internal/lab"
	"wavelab/internal/logging"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var f cliFlags
	root := &cobra.Command{
		Use:          "wavelab",
		Short:        "interactive wave solver visualizer",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWindow(cmd, &f)
		},
	}
	bindCommonFlags(root, &f)
	bindWindowFlags(root, &f)

	headlessCmd := &cobra.Command{
		Use:   "headless",
		Short: "run the frame loop without a window and print a summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runHeadless(cmd, &f)
		},
	}
	bindHeadlessFlags(headlessCmd, &f)

	var force bool
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage config files",
	}
	initCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write the default config",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "wavelab.yaml"
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s exists (use --force to overwrite)", path)
			}
			if err := config.Save(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}
	initCmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	configCmd.AddCommand(initCmd)

	root.AddCommand(headlessCmd, configCmd)
	return root
}

// setup resolves the config, builds the logger and engine, and starts the
// CPU profile when asked. The returned stop func must always be called.
func setup(cmd *cobra.Command, f *cliFlags) (*config.Config, *slog.Logger, engine.Engine, func(), error) {
	cfg, err := resolveConfig(cmd, f)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	log, err := logging.New(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	stop := func() {}
	if cfg.CPUProfile != "" {
		stop, err = startCPUProfile(cfg.CPUProfile, log)
		if err != nil {
			return nil, nil, nil, nil, err
		}
	}
	eng, err := lab.New(cfg.Width, cfg.Height, lab.WithPulse(cfg.Pulse))
	if err != nil {
		stop()
		return nil, nil, nil, nil, err
	}
	log.Info("engine ready", slog.Int("width", cfg.Width), slog.Int("height", cfg.Height),
		slog.Int("force_mode", int(cfg.ForceMode)))
	return cfg, log, eng, stop, nil
}

func runWindow(cmd *cobra.Command, f *cliFlags) error {
	cfg, log, eng, stop, err := setup(cmd, f)
	if err != nil {
		return err
	}
	defer stop()

	g, err := newGame(cfg, eng, log, f.stats)
	if err != nil {
		return err
	}
	ebiten.SetWindowSize(cfg.Width*cfg.Scale+panelWidth, cfg.Height*cfg.Scale)
	ebiten.SetWindowTitle(windowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.TPS)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	log.Info("window closed", slog.Uint64("frames", g.session.State().FrameCount))
	return nil
}

func runHeadless(cmd *cobra.Command, f *cliFlags) error {
	cfg, log, eng, stop, err := setup(cmd, f)
	if err != nil {
		return err
	}
	defer stop()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()
	report, err := headless.Run(ctx, eng, headless.Options{
		Frames:        cfg.Headless.Frames,
		Interval:      cfg.Headless.Interval,
		Snapshot:      cfg.Headless.Snapshot,
		Clicks:        cfg.Headless.Clicks,
		ForceMode:     engine.ForceMode(cfg.ForceMode),
		IntensityOnly: cfg.IntensityOnly,
		Logger:        log,
	})
	if report != nil {
		if rerr := report.Render(cmd.OutOrStdout(), cfg.Headless.Plot); rerr != nil {
			return rerr
		}
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
