package main

import (
	"fmt"

	"github-portfolio-auditor/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// 子命令上可以覆盖配置的 flag
var commandKeys = []string{"output", "color", "narrate", "port"}

// app 在子命令之间共享配置
type app struct {
	v          *viper.Viper
	configFile string
	cfg        *config.Config
}

func newApp() *app {
	return &app{v: config.New()}
}

func newRootCmd(a *app) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "auditor",
		Short: "Score a GitHub developer portfolio and suggest improvements.",
		Long: `auditor inspects a user's public GitHub profile and most recently updated
repositories, then reports a 0-100 portfolio score, a letter grade, six
per-dimension metrics, strengths, red flags and prioritized recommendations.

Examples:
  # Analyze a user by name
  auditor analyze octocat

  # Analyze a profile URL and print JSON
  auditor analyze https://github.com/octocat --output json

  # Start the HTTP API on port 8080
  auditor serve --port 8080`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// 子命令各自的 flag 同名，只绑定当前执行的那一个
			for _, name := range commandKeys {
				if f := cmd.Flags().Lookup(name); f != nil {
					a.bind(f)
				}
			}
			return a.load()
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "config file (default is ./.auditor.yaml or $HOME/.auditor.yaml)")
	flags.String("github-token", "", "GitHub token (also read from GITHUB_TOKEN)")
	flags.Int("workers", config.DefaultWorkers, "number of repositories assessed concurrently")
	flags.Duration("repo-timeout", config.DefaultRepoTimeout, "timeout for the detail lookups of one repository")
	flags.Duration("analysis-timeout", config.DefaultAnalysisTimeout, "timeout for a whole analysis")
	flags.Int("retries", config.DefaultRetries, "retries for transient GitHub errors on profile and repository fetches")
	flags.Bool("verbose", false, "log which repositories are skipped")

	a.bind(flags.Lookup("github-token"), flags.Lookup("workers"), flags.Lookup("repo-timeout"),
		flags.Lookup("analysis-timeout"), flags.Lookup("retries"), flags.Lookup("verbose"))

	rootCmd.AddCommand(analyzeCmd(a), serveCmd(a))
	return rootCmd
}

// load 合并默认值、配置文件、环境变量和命令行参数
func (a *app) load() error {
	cfg, err := config.Load(a.v, a.configFile)
	if err != nil {
		return err
	}
	a.cfg = cfg
	return nil
}

// bind 把 flag 绑定到同名的配置项上
func (a *app) bind(flags ...*pflag.Flag) {
	for _, f := range flags {
		if err := a.v.BindPFlag(f.Name, f); err != nil {
			panic(fmt.Sprintf("bind flag %s: %v", f.Name, err))
		}
	}
}
