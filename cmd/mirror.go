package cmd

import (
	"fmt"

	"mirra/internal/logger"
	"mirra/internal/mirror"
	"mirra/internal/model"
	"mirra/internal/repository"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var mirrorCmd = &cobra.Command{
	Use:   "mirror <src> <dst>",
	Short: "Mirror a source directory into a destination once",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		src, dst, err := resolvePaths(args[0], args[1])
		if err != nil {
			return err
		}

		m, err := mirror.New(src, dst, cfg.TrashPatterns)
		if err != nil {
			return err
		}

		rep := m.Run()

		fmt.Println()
		for _, p := range rep.Phases {
			fmt.Println(p)
		}
		fmt.Println()

		repo := repository.NewRunRepository()
		if err := repo.SaveReport(rep, model.TriggerManual); err != nil {
			logger.Log.Warn("failed to save run history",
				zap.Error(err))
		}

		if !rep.OK {
			return fmt.Errorf("mirror run failed at phase %d", len(rep.Phases))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(mirrorCmd)
}
