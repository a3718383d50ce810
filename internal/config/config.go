package config

// Config represents the complete cstyle configuration.
// It can be loaded from .cstyle.yml with environment variable overrides.
type Config struct {
	Rules  RulesConfig  `yaml:"rules" mapstructure:"rules"`
	Paths  PathsConfig  `yaml:"paths" mapstructure:"paths"`
	Output OutputConfig `yaml:"output" mapstructure:"output"`
}

// RulesConfig holds the tunable rule parameters.
type RulesConfig struct {
	MaxFunctionLines int    `yaml:"max_function_lines" mapstructure:"max_function_lines"` // meaningful-line budget per function
	DebugGuard       string `yaml:"debug_guard" mapstructure:"debug_guard"`               // #ifdef guard excluded from counting
}

// PathsConfig defines which files to lint and which to skip.
type PathsConfig struct {
	Include        []string `yaml:"include" mapstructure:"include"`                 // glob patterns for C sources
	Ignore         []string `yaml:"ignore" mapstructure:"ignore"`                   // glob patterns to skip
	FollowIncludes bool     `yaml:"follow_includes" mapstructure:"follow_includes"` // follow quoted #include directives
}

// OutputConfig controls report presentation.
type OutputConfig struct {
	Quiet bool `yaml:"quiet" mapstructure:"quiet"` // disable progress bars and non-error output
}

// Default returns a configuration with the rulebook defaults.
func Default() *Config {
	return &Config{
		Rules: RulesConfig{
			MaxFunctionLines: 10,
			DebugGuard:       "DEBUG",
		},
		Paths: PathsConfig{
			Include: []string{
				"**/*.c",
				"**/*.h",
			},
			Ignore: []string{
				"**/build/**",
				"**/vendor/**",
			},
			FollowIncludes: true,
		},
		Output: OutputConfig{
			Quiet: false,
		},
	}
}
