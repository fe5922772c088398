package config

// GlobalConfig is the root configuration structure loaded from a YAML or JSON
// file.
type GlobalConfig struct {
	CompareConfig CompareConfig `json:"compare_config,omitempty" yaml:"compare_config,omitempty"`
	LogConfig     LogConfig     `json:"log_config,omitempty" yaml:"log_config,omitempty"`
}

// NewDefaultGlobalConfig creates a GlobalConfig with default values
func NewDefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		CompareConfig: NewDefaultCompareConfig(),
		LogConfig:     NewDefaultLogConfig(),
	}
}
