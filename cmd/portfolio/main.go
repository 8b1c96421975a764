package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/missingred/portfolio/internal/config"
	"github.com/missingred/portfolio/internal/observability"
)

type rootOptions struct {
	apiURL  string
	token   string
	verbose bool
}

// newRootCmd builds the command tree. Each call returns a fresh tree so
// tests can run commands without sharing flag state.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "portfolio",
		Short: "Terminal client for the portfolio backend",
		Long: `portfolio talks to a running portfolio API or directly to the transcript store.

Run without arguments to start the chat widget in the terminal.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(); err != nil {
				return err
			}
			level := "warn"
			if opts.verbose {
				level = "debug"
			}
			observability.Configure(cmd.ErrOrStderr(), level, "text")

			if opts.apiURL == "" {
				opts.apiURL = envOr("PORTFOLIO_API_URL", "http://localhost:8080")
			}
			if opts.token == "" {
				opts.token = os.Getenv("ADMIN_TOKEN")
			}
			observability.Logger().WithFields(logrus.Fields{"api": opts.apiURL}).Debug("cli configured")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}

	root.PersistentFlags().StringVar(&opts.apiURL, "api-url", "", "Portfolio API base URL (or set PORTFOLIO_API_URL)")
	root.PersistentFlags().StringVar(&opts.token, "token", "", "Admin token for the chats API (or set ADMIN_TOKEN)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable verbose logging")

	root.AddCommand(newChatCmd(opts))
	root.AddCommand(newSessionsCmd(opts))
	root.AddCommand(newAppendCmd(opts))
	root.AddCommand(newWatchCmd())

	return root
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
