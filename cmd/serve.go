package cmd

import (
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/arcanaland/diviner/internal/catalog"
	"github.com/arcanaland/diviner/internal/config"
	"github.com/arcanaland/diviner/internal/interpret"
	"github.com/arcanaland/diviner/internal/logger"
	"github.com/arcanaland/diviner/internal/server"
	"github.com/arcanaland/diviner/internal/writer"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web front end",
	Long: `Serve starts an HTTP server exposing the reading pipeline:
the home page lists spreads, /spread/{name} renders a reading, and
/api/spread/{name} returns it as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		log := logger.Setup(cfg.LogLevel)

		cat, err := catalog.Load()
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		// Interpretation is optional; run keyword-only when unavailable.
		var interp interpret.Interpreter
		if g, err := interpret.NewGemini(ctx, log, cfg.GeminiAPIKey, cfg.Model); err == nil {
			interp = g
		} else {
			log.Info("interpretation disabled", "reason", err)
		}

		srv, err := server.New(cfg, cat, interp, writer.New(cfg.SavePath), log)
		if err != nil {
			return err
		}

		if err := srv.ListenAndServe(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(serveCmd)
}
