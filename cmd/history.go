package cmd

import (
	"fmt"

	"mirra/internal/repository"

	"github.com/spf13/cobra"
)

var historyN int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "View recent mirror runs",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo := repository.NewRunRepository()

		runs, err := repo.GetRecent(historyN)
		if err != nil {
			return err
		}

		if len(runs) == 0 {
			fmt.Println("no runs yet")
			return nil
		}

		for _, run := range runs {
			status := "✓"
			if run.Status == "FAILED" {
				status = "✗"
			}

			fmt.Printf("%s [%s] %-6s %3d warnings  %s -> %s\n",
				status,
				run.StartedAt.Format("2006-01-02 15:04:05"),
				run.Trigger,
				run.Warnings,
				run.SrcPath,
				run.DstPath,
			)
		}

		stats, err := repo.GetStats()
		if err != nil {
			return err
		}

		fmt.Printf("\ntotal: %d, success: %d, failed: %d\n",
			stats.Total, stats.Success, stats.Failed)

		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyN, "n", 20, "number of runs to show")
	rootCmd.AddCommand(historyCmd)
}
