// Package config handles mesh-compiler configuration loading and
// management: the per-run defaults that seed mesh.Options, plus logging
// settings, the same layered defaults-then-file-then-flags idiom the
// reference repo's internal/config package uses for the game client.
package config

// Config holds the compiler's run-wide settings.
type Config struct {
	Compile CompileConfig `yaml:"compile"`
	Logging LoggingConfig `yaml:"logging"`
}

// CompileConfig holds the defaults fed into mesh.Options when a caller
// does not override them explicitly.
type CompileConfig struct {
	Density          float64 `yaml:"density"`
	ExactMeshInertia bool    `yaml:"exact_mesh_inertia"`
	ConvexHull       bool    `yaml:"convex_hull"`
	StripPath        bool    `yaml:"strip_path"`
	FitAABB          bool    `yaml:"fit_aabb"`
	SmoothNormal     bool    `yaml:"smooth_normal"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Compile: CompileConfig{
			Density:          1000,
			ExactMeshInertia: true,
			ConvexHull:       false,
			StripPath:        false,
			FitAABB:          false,
			SmoothNormal:     false,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}
