package main

import (
	"os"
	"os/signal"
	"syscall"

	"github-portfolio-auditor/internal/adapter/httpapi"
	"github-portfolio-auditor/internal/config"
	"github-portfolio-auditor/internal/service"

	"github.com/spf13/cobra"
)

func serveCmd(a *app) *cobra.Command {
	var notify bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (POST /analyze, GET /health).",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg := a.cfg

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			svc, cleanup := buildService(ctx, cfg, cfg.Narrate)
			defer cleanup()

			srv := httpapi.New(svc, serverOptions(cfg, notify))
			return srv.ListenAndServe(ctx)
		},
	}

	flags := cmd.Flags()
	flags.Int("port", config.DefaultPort, "port to listen on")
	flags.Bool("narrate", false, "add an AI-written reviewer note to every report (needs GEMINI_API_KEY)")
	flags.BoolVar(&notify, "notify", false, "post every report to the Feishu webhook")

	return cmd
}

func serverOptions(cfg *config.Config, notify bool) httpapi.Options {
	return httpapi.Options{
		Port:            cfg.Port,
		Token:           cfg.GitHubToken,
		AnalysisTimeout: cfg.AnalysisTimeout,
		Publish:         service.PublishOptions{Narrate: cfg.Narrate, Notify: notify},
	}
}
