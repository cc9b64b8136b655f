package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github-portfolio-auditor/internal/adapter/httpapi"
	"github-portfolio-auditor/internal/adapter/outwriter"
	"github-portfolio-auditor/internal/common"
	"github-portfolio-auditor/internal/service"

	"github.com/spf13/cobra"
)

func analyzeCmd(a *app) *cobra.Command {
	var notify bool

	cmd := &cobra.Command{
		Use:   "analyze <username-or-profile-url>",
		Short: "Analyze one GitHub profile and print the report.",
		Long: `Fetch a user's profile and up to 10 recently updated non-fork repositories,
score them and print the portfolio report.

The argument can be a bare username, https://github.com/<user> or any URL
under github.com/<user>/.

Examples:
  auditor analyze octocat
  auditor analyze https://github.com/octocat --output yaml
  auditor analyze octocat --narrate --notify`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalyze(cmd, a, args[0], notify)
		},
	}

	flags := cmd.Flags()
	flags.StringP("output", "o", "text", "output format: text, json or yaml")
	flags.Bool("color", true, "colorize text output")
	flags.Bool("narrate", false, "add an AI-written reviewer note (needs GEMINI_API_KEY)")
	flags.BoolVar(&notify, "notify", false, "post the report to the Feishu webhook")

	return cmd
}

func runAnalyze(cmd *cobra.Command, a *app, input string, notify bool) error {
	cfg := a.cfg

	username, ok := httpapi.ExtractUsername(input)
	if !ok {
		return common.NewError(common.ErrCodeInvalidInput, common.MsgInvalidURL)
	}

	format, err := outwriter.ParseFormat(cfg.Output)
	if err != nil {
		return common.WrapError(common.ErrCodeInvalidInput, err.Error(), err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.AnalysisTimeout)
	defer cancel()

	svc, cleanup := buildService(ctx, cfg, cfg.Narrate)
	defer cleanup()

	result, err := svc.Analyze(ctx, username, cfg.GitHubToken)
	if err != nil {
		return err
	}

	svc.Publish(ctx, result, service.PublishOptions{Narrate: cfg.Narrate, Notify: notify})

	return outwriter.NewOutWriter(format, cfg.Color).WriteResult(cmd.OutOrStdout(), result)
}
