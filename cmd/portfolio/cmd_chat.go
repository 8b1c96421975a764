package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/missingred/portfolio/internal/adapters/apiclient"
	"github.com/missingred/portfolio/internal/app/widget"
	"github.com/missingred/portfolio/internal/domain"
	"github.com/missingred/portfolio/internal/observability"
)

func newChatCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Chat with the portfolio assistant",
		Long: `Opens the chat widget in the terminal. Each line is sent to the assistant
relay; the transcript lives only for this run.

Type /exit or send EOF to quit.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runChat(cmd, opts)
		},
	}
}

func runChat(cmd *cobra.Command, opts *rootOptions) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	ctrl := widget.NewController(apiclient.New(opts.apiURL, opts.token))
	ctrl.Open()
	defer ctrl.Close()

	fmt.Fprintf(out, "NexIA: %s\n", widget.Greeting)

	scanner := bufio.NewScanner(cmd.InOrStdin())
	for tick := 0; ; tick++ {
		fmt.Fprintf(out, "(%s) > ", widget.Placeholder(tick))
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "/exit" {
			return nil
		}

		ctrl.SetInput(line)
		err := ctrl.Submit(ctx)
		if errors.Is(err, widget.ErrEmptyInput) {
			continue
		}
		if err != nil {
			observability.LoggerFromContext(ctx).WithError(err).Debug("chat turn failed")
		}
		printLast(out, ctrl.Messages())
	}
}

// printLast prints the assistant turn produced by the latest submit.
func printLast(out io.Writer, msgs []domain.Message) {
	if len(msgs) == 0 {
		return
	}
	last := msgs[len(msgs)-1]
	if last.Role != domain.RoleAssistant {
		return
	}
	fmt.Fprintf(out, "NexIA: %s\n", last.Text)
}
