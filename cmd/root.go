package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mirra/internal/config"
	"mirra/internal/db"
	"mirra/internal/logger"

	"github.com/spf13/cobra"
)

var (
	cfg   *config.Config
	debug bool
)

var rootCmd = &cobra.Command{
	Use:   "mirra",
	Short: "A one-way directory mirroring tool",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}

		logger.Init(debug, cfg.LogFile)

		// Client commands only talk to a running daemon over HTTP.
		clientCmds := map[string]bool{
			"status": true, "stop": true,
			"install": true, "uninstall": true,
		}
		if !clientCmds[cmd.Name()] {
			if err := db.Init(cfg.DBPath); err != nil {
				return err
			}
		}

		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func daemonURL(path string) string {
	return fmt.Sprintf("http://localhost:%d%s", cfg.DaemonPort, path)
}

// resolvePaths turns the raw src/dst arguments into absolute, normalized,
// user-expanded paths and verifies the source exists. The engine itself
// assumes validated paths; a missing source is this layer's fatal error.
func resolvePaths(src, dst string) (string, string, error) {
	src, err := expandPath(src)
	if err != nil {
		return "", "", err
	}
	dst, err = expandPath(dst)
	if err != nil {
		return "", "", err
	}

	if _, err := os.Stat(src); err != nil {
		return "", "", fmt.Errorf("source path %s does not exist: %w", src, err)
	}

	return src, dst, nil
}

func expandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home dir: %w", err)
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("invalid path %s: %w", path, err)
	}

	return filepath.Clean(abs), nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug mode")
}
