// Package main is the process entrypoint: a single-command CLI that binds
// the CQL listener and runs until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/rickfast/tarrasque-go/server"
)

const (
	defaultListenAddress = "127.0.0.1:9042"
	defaultStorageDir    = "/tmp/x"
)

func main() {
	var storageDir string

	rootCmd := &cobra.Command{
		Use:   "tarrasque [bind-address]",
		Short: "A minimal CQL-compatible database server",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			listenAddress := defaultListenAddress
			if len(args) == 1 {
				listenAddress = args[0]
			}
			return run(listenAddress, storageDir)
		},
	}
	rootCmd.Flags().StringVar(&storageDir, "storage-dir", defaultStorageDir, "directory for persisted table data")

	if err := rootCmd.Execute(); err != nil {
		log.Error().Err(err).Msg("exiting")
		os.Exit(1)
	}
}

func run(listenAddress, storageDir string) error {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	srv, err := server.New(listenAddress, storageDir)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info().Msg("shutdown signal received")
		cancel()
	}()

	return srv.Start(ctx)
}
