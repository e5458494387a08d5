package config

import "flag"

var (
	flagConfig  = flag.String("config", "", "Path to config file")
	flagDebug   = flag.Bool("debug", false, "Enable debug logging")
	flagDensity = flag.Float64("density", 0, "Override material density (kg/m^3)")
	flagHull    = flag.Bool("hull", false, "Force convex-hull graph construction")
)

// ParseFlags parses command-line flags. Call this early in main().
func ParseFlags() {
	flag.Parse()
}

// ConfigPath returns the explicit config path if provided via --config flag.
func ConfigPath() string {
	return *flagConfig
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if *flagDebug {
		cfg.Logging.Level = "debug"
	}
	if *flagDensity > 0 {
		cfg.Compile.Density = *flagDensity
	}
	if *flagHull {
		cfg.Compile.ConvexHull = true
	}
}
