package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/missingred/portfolio/internal/adapters/apiclient"
	"github.com/missingred/portfolio/internal/domain"
)

func newSessionsCmd(opts *rootOptions) *cobra.Command {
	var showEmpty bool

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List chat sessions, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := apiclient.New(opts.apiURL, opts.token)
			sessions, err := client.ListSessions(cmd.Context())
			if err != nil {
				return err
			}
			printSessions(cmd.OutOrStdout(), sessions, showEmpty)
			return nil
		},
	}
	cmd.Flags().BoolVar(&showEmpty, "all", false, "Include sessions without messages")
	return cmd
}

func newAppendCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "append <session-id> <text...>",
		Short: "Append an operator reply to a session",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			client := apiclient.New(opts.apiURL, opts.token)
			id := domain.SessionID(args[0])
			if err := client.Append(cmd.Context(), id, strings.Join(args[1:], " ")); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "appended to %s\n", id)
			return nil
		},
	}
}

func printSessions(out io.Writer, sessions []domain.Session, showEmpty bool) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tMESSAGES\tLAST")
	for _, s := range sessions {
		if len(s.Messages) == 0 && !showEmpty {
			continue
		}
		last := ""
		if m, ok := s.Last(); ok {
			last = truncate(m.Text, 48)
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", s.ID, s.CreatedAt.Format(time.RFC3339), len(s.Messages), last)
	}
	_ = tw.Flush()
}

func printTranscript(out io.Writer, s domain.Session) {
	fmt.Fprintf(out, "── %s (%s)\n", s.ID, s.CreatedAt.Format(time.RFC3339))
	printMessages(out, s.Messages)
}

func printMessages(out io.Writer, msgs []domain.Message) {
	for _, m := range msgs {
		fmt.Fprintf(out, "[%s] %s\n", m.Role, m.Text)
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
