// Command gones is the host Frame Driver: an ebiten window (or a
// headless smoke-test loop) wrapped around internal/machine.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/golang/glog"
	"github.com/spf13/cobra"

	"gones/internal/emuconfig"
	"gones/internal/machine"
)

func main() {
	defer glog.Flush()

	if err := newRootCommand().Execute(); err != nil {
		glog.Errorf("gones: %v", err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	cfg := emuconfig.Default()

	cmd := &cobra.Command{
		Use:   "gones [rom]",
		Short: "A cycle-accurate NES core (NROM-only) with an ebiten front end",
		Args:  cobra.ExactArgs(1),
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			flag.Set("v", fmt.Sprintf("%d", cfg.LogLevel))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.ROMPath = args[0]
			return run(cfg)
		},
	}

	cmd.Flags().IntVar(&cfg.Scale, "scale", cfg.Scale, "integer window scale factor")
	cmd.Flags().BoolVar(&cfg.Headless, "headless", cfg.Headless, "run Frame in a loop without opening a window")
	cmd.Flags().IntVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "glog verbosity level")

	return cmd
}

func run(cfg emuconfig.Config) error {
	rom, err := os.ReadFile(cfg.ROMPath)
	if err != nil {
		return fmt.Errorf("gones: reading rom: %w", err)
	}

	m, err := machine.New(rom)
	if err != nil {
		return fmt.Errorf("gones: loading rom: %w", err)
	}

	if cfg.Headless {
		return runHeadless(m)
	}
	return runWindowed(m, cfg)
}

// runHeadless exercises the machine without a display, for smoke-testing
// a ROM from a script or CI job.
func runHeadless(m *machine.Machine) error {
	for i := 0; i < 60; i++ {
		if _, err := m.Frame(); err != nil {
			return fmt.Errorf("gones: frame %d: %w", i, err)
		}
	}
	glog.Infof("gones: ran 60 frames headless without error")
	return nil
}
