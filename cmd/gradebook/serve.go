package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ukaji3/gradebook-go/internal/logger"
	"github.com/ukaji3/gradebook-go/pkg/gradebook/lookup"
)

func newServeCmd() *cobra.Command {
	var (
		inputPath string
		addr      string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve record lookups over HTTP",
		Long: `serve exposes the grades document at /grades.json and single records at
/api/records/{id}. Send SIGHUP to reload the document after a new conversion.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("input") {
				cfg.Output = inputPath
			}
			if cmd.Flags().Changed("addr") {
				cfg.Listen = addr
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			log := logger.Named("serve")
			srv, err := lookup.NewServer(cfg.Output, cfg.Lookup, log)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			hup := make(chan os.Signal, 1)
			signal.Notify(hup, syscall.SIGHUP)
			defer signal.Stop(hup)
			go reloadOnSignal(ctx, hup, srv)

			return srv.ListenAndServe(ctx, cfg.Listen)
		},
	}

	cmd.Flags().StringVarP(&inputPath, "input", "i", "", "Grades JSON path (default: data/grades.json)")
	cmd.Flags().StringVar(&addr, "addr", ":8080", "Listen address")
	return cmd
}

func reloadOnSignal(ctx context.Context, sig <-chan os.Signal, srv *lookup.Server) {
	log := logger.Named("serve")
	for {
		select {
		case <-ctx.Done():
			return
		case <-sig:
			if err := srv.Reload(); err != nil {
				log.Error().Err(err).Msg("reload failed, keeping previous document")
			}
		}
	}
}
