package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/diffscope/diffscope/internal/common/errorwrapper"
)

// GetConfigPath determines the configuration file path based on a
// command-line flag, the DIFFSCOPE_CONFIG_PATH environment variable, and
// default locations (config.yaml / config.json next to the working directory
// and the executable). Returns "" when nothing is found.
func GetConfigPath(configFilePathFlag string) string {
	if configFilePathFlag != "" {
		if _, err := os.Stat(configFilePathFlag); err == nil {
			return configFilePathFlag
		}
	}

	envPath := os.Getenv("DIFFSCOPE_CONFIG_PATH")
	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	cwd, errCwd := os.Getwd()
	exePath, errExe := os.Executable()
	exeDir := ""
	if errExe == nil {
		exeDir = filepath.Dir(exePath)
	}

	defaultFiles := []string{"config.yaml", "config.json"}
	locations := []string{}
	if errCwd == nil {
		locations = append(locations, cwd)
	}
	if exeDir != "" && (errCwd != nil || exeDir != cwd) {
		locations = append(locations, exeDir)
	}

	for _, loc := range locations {
		for _, file := range defaultFiles {
			path := filepath.Join(loc, file)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// LoadGlobalConfig reads, decodes, and validates a configuration file. An
// empty path yields the defaults.
func LoadGlobalConfig(path string) (*GlobalConfig, error) {
	cfg := NewDefaultGlobalConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errorwrapper.WrapError(err, "failed to read config file")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		if err := json.Unmarshal(data, cfg); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to parse JSON config")
		}
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, errorwrapper.WrapError(err, "failed to parse YAML config")
		}
	}

	cfg.CompareConfig.ApplyDefaults()

	if err := ValidateConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
