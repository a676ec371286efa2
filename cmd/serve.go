package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/learnquest/learnquest/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the local HTTP API and live event stream",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		addr := a.cfg.Server.Addr
		if v, _ := cmd.Flags().GetString("addr"); v != "" {
			addr = v
		}
		aiTimeout, _ := cmd.Flags().GetDuration("ai-timeout")
		withMetrics, _ := cmd.Flags().GetBool("metrics")

		srv := api.NewServer(a.tracker, a.hub, a.log)
		srv.SetAITimeout(aiTimeout)
		if withMetrics {
			srv.EnableMetrics()
		}

		httpServer := &http.Server{
			Addr:        addr,
			Handler:     srv.Handler(),
			ReadTimeout: 30 * time.Second,
			IdleTimeout: 2 * time.Minute,
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		errCh := make(chan error, 1)
		go func() {
			errCh <- httpServer.ListenAndServe()
		}()

		fmt.Fprintf(cmd.OutOrStdout(), "LearnQuest serving on http://%s\n", addr)
		if withMetrics {
			fmt.Fprintf(cmd.OutOrStdout(), "  Metrics: http://%s/metrics\n", addr)
		}
		if !a.tracker.AIEnabled() {
			fmt.Fprintln(cmd.OutOrStdout(), "  AI features: disabled (no LLM provider configured)")
		}
		a.log.Info("server started", "addr", addr, "session", a.tracker.SessionID())

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("serve: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		a.log.Info("server stopped")
		return nil
	},
}

func init() {
	serveCmd.Flags().String("addr", "", "Listen address (overrides server.addr)")
	serveCmd.Flags().Duration("ai-timeout", 60*time.Second, "Deadline for requests that call the AI provider")
	serveCmd.Flags().Bool("metrics", true, "Expose Prometheus metrics on /metrics")
}
