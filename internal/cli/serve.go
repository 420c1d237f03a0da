package cli

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/daybook/internal/config"
	"github.com/lazypower/daybook/internal/images"
	"github.com/lazypower/daybook/internal/logging"
	"github.com/lazypower/daybook/internal/server"
	"github.com/lazypower/daybook/internal/service"
	"github.com/lazypower/daybook/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	log := logging.NewDefault()

	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}

	imgs, err := images.NewDir(cfg.Uploads.Dir)
	if err != nil {
		return fmt.Errorf("init upload dir: %w", err)
	}

	svc := service.New(st, imgs, log)
	srv := server.New(svc, imgs.Root(), log, VersionString())

	httpServer := &http.Server{
		Addr:    cfg.ListenAddr(),
		Handler: srv,
	}

	// Graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		fmt.Fprintf(os.Stderr, "daybook serving on %s\n", cfg.ListenAddr())
		fmt.Fprintf(os.Stderr, "  db: %s\n", cfg.Store.Path)
		fmt.Fprintf(os.Stderr, "  uploads: %s\n", imgs.Root())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "server error: %v\n", err)
			os.Exit(1)
		}
	}()

	<-done
	fmt.Fprintln(os.Stderr, "\nshutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return httpServer.Shutdown(ctx)
}
