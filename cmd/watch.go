package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"mirra/internal/daemon"
	"mirra/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch <src> <dst>",
	Short: "Keep dst mirrored, re-running the full pipeline on source changes",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		defer logger.Sync()

		src, dst, err := resolvePaths(args[0], args[1])
		if err != nil {
			return err
		}

		d, err := daemon.New(src, dst, cfg)
		if err != nil {
			return err
		}

		if err := d.Start(); err != nil {
			return err
		}

		srv := daemon.NewServer(d, cfg.DaemonPort)
		srv.Start()

		logger.Log.Info("mirra daemon started",
			zap.String("src", src),
			zap.String("dst", dst),
			zap.Int("port", cfg.DaemonPort))

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			logger.Log.Info("shutting down",
				zap.String("signal", sig.String()))
		case <-srv.StopCh():
			logger.Log.Info("stop requested via API")
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Stop(ctx)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
