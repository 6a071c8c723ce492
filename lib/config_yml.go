package lib

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

// FileConfig holds the optional defaults read from
// ~/.ec2-clone/config.yml. Flags and env vars always win over it.
type FileConfig struct {
	PollInterval string `yaml:"poll-interval"`
	PollTimeout  string `yaml:"poll-timeout"`
	SentryDSN    string `yaml:"sentry-dsn"`
}

// ReadFileConfig loads the user config file, returning a zero value
// when the file is absent. Parse failures are returned so a broken
// config doesn't silently lose its settings.
func ReadFileConfig() (*FileConfig, error) {
	cfg := &FileConfig{}

	home, err := os.UserHomeDir()
	if err != nil {
		return cfg, nil
	}

	cfgPath := filepath.Join(home, ".ec2-clone", "config.yml")
	cfgBytes, err := os.ReadFile(cfgPath)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(cfgBytes, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
