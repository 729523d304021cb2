// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/doc-combiner/internal/merge"
	"github.com/pdiddy/doc-combiner/internal/summary"
	"github.com/pdiddy/doc-combiner/internal/web"
	"github.com/pdiddy/doc-combiner/pkg/types"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the upload, combine and download page",
	Long: `Serve starts a small web page for uploading files, combining them into
one PDF, optionally requesting a database summary, and downloading the
result as combined.pdf. Only the last result is kept, in memory.`,
	RunE: runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	if addr == "" {
		addr = viper.GetString("listen_addr")
	}
	maxUpload, _ := cmd.Flags().GetInt64("max-upload")

	logger := log.New(os.Stderr, "", log.LstdFlags)
	pipeline := merge.New(merge.WithLog(os.Stderr))
	requester := summary.New(summaryConfig(viper.GetViper(), loadedSecrets))
	if !requester.Available() {
		logger.Printf("[summary] driver %q not registered; summaries disabled", viper.GetString("db_driver"))
	}

	srv := web.New(pipeline, requester, types.ServerConfig{
		Addr:           addr,
		MaxUploadBytes: maxUpload,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.ListenAndServe(ctx)
}

func init() {
	serveCmd.Flags().String("addr", "", "listen address (default LISTEN_ADDR or :8501)")
	serveCmd.Flags().Int64("max-upload", 32<<20, "maximum in-memory upload size in bytes")

	rootCmd.AddCommand(serveCmd)
}
