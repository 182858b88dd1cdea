// Package emuconfig holds the Frame Driver's runtime configuration,
// kept separate from cmd/gones so the CLI wiring there stays thin.
package emuconfig

// Config is the fully-resolved set of options the Frame Driver runs
// with, after flag parsing.
type Config struct {
	// ROMPath is the positional argument: the path to an iNES image.
	ROMPath string
	// Scale is the integer window scale factor applied to the native
	// 256x240 frame.
	Scale int
	// Headless runs Machine.Frame in a loop without opening a window,
	// for smoke-testing a ROM from a script or CI job.
	Headless bool
	// LogLevel is glog's verbosity level, bridged via flag.Set("v", ...).
	LogLevel int
}

// Default returns the Frame Driver's default configuration; only
// ROMPath must be filled in by the caller.
func Default() Config {
	return Config{
		Scale:    3,
		Headless: false,
		LogLevel: 0,
	}
}
