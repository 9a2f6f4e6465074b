package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"mirra/internal/model"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "View daemon status",
	RunE: func(cmd *cobra.Command, args []string) error {
		resp, err := http.Get(daemonURL("/status"))
		if err != nil {
			return fmt.Errorf("daemon not running: %w", err)
		}

		defer func(Body io.ReadCloser) {
			_ = Body.Close()
		}(resp.Body)

		var snap model.DaemonSnapshot
		if err := json.NewDecoder(resp.Body).Decode(&snap); err != nil {
			return fmt.Errorf("failed to decode status response: %w", err)
		}

		lastRun := "-"
		if snap.LastRun != nil {
			lastRun = snap.LastRun.Format("2006-01-02 15:04:05")
		}

		uptime := time.Since(snap.StartedAt).Round(time.Second)

		fmt.Printf("%-10s %-30s %-30s %-6s %-6s %s\n",
			"STATUS", "SRC", "DST", "RUNS", "FAILED", "LAST RUN")
		fmt.Printf("%-10s %-30s %-30s %-6d %-6d %s\n",
			snap.Status, snap.Src, snap.Dst, snap.Runs, snap.Failed, lastRun)
		fmt.Printf("uptime: %s\n", uptime)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
