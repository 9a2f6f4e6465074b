package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"mirra/internal/mirror"

	"github.com/spf13/viper"
)

type Config struct {
	DaemonPort    int      `mapstructure:"daemon_port"`
	DebounceMs    int      `mapstructure:"debounce_ms"`
	BufferSize    int      `mapstructure:"buffer_size"`
	TrashPatterns []string `mapstructure:"trash_patterns"`
	DBPath        string   `mapstructure:"db_path"`
	LogFile       string   `mapstructure:"log_file"`
}

var Default = Config{
	DaemonPort:    9400,
	DebounceMs:    500,
	BufferSize:    100,
	TrashPatterns: mirror.DefaultTrashPatterns,
	DBPath:        "mirra.db",
	LogFile:       "",
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home dir: %w", err)
	}

	configDir := filepath.Join(home, ".mirra")
	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configDir)

	viper.SetDefault("daemon_port", Default.DaemonPort)
	viper.SetDefault("debounce_ms", Default.DebounceMs)
	viper.SetDefault("buffer_size", Default.BufferSize)
	viper.SetDefault("trash_patterns", Default.TrashPatterns)
	viper.SetDefault("db_path", filepath.Join(configDir, Default.DBPath))
	viper.SetDefault("log_file", Default.LogFile)

	viper.SetEnvPrefix("MIRRA")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if ok := errors.As(err, &notFoundErr); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
