package main

import (
	"context"
	"errors"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/missingred/portfolio/internal/app/conversation"
	"github.com/missingred/portfolio/internal/bootstrap"
	"github.com/missingred/portfolio/internal/config"
	"github.com/missingred/portfolio/internal/domain"
	"github.com/missingred/portfolio/internal/observability"
)

func newWatchCmd() *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow transcripts live from the configured store",
		Long: `Subscribes to the transcript store selected by STORAGE_BACKEND and prints
transcripts as they change.

Without --session the earliest session of the first non-empty snapshot is
selected and followed from then on.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			store, closer, err := bootstrap.NewTranscriptStore(ctx, cfg)
			if err != nil {
				return err
			}
			defer closer.Close()

			svc := conversation.NewService(store)
			if sessionID != "" {
				err = followSession(ctx, cmd.OutOrStdout(), svc, domain.SessionID(sessionID))
			} else {
				err = followSelected(ctx, cmd.OutOrStdout(), svc)
			}
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&sessionID, "session", "", "Follow only this session")
	return cmd
}

// followSelected prints the selected session whenever it changes.
func followSelected(ctx context.Context, out io.Writer, svc *conversation.Service) error {
	updates, err := svc.Watch(ctx)
	if err != nil {
		return err
	}

	var (
		lastID    domain.SessionID
		lastCount = -1
	)
	sel := conversation.NewSelector()
	return sel.Run(ctx, updates, func(sel *conversation.Selector) {
		cur, ok := sel.Selected()
		if !ok {
			return
		}
		if cur.ID == lastID && len(cur.Messages) == lastCount {
			return
		}
		observability.Logger().WithField("session_id", cur.ID).Debug("selected session changed")
		lastID, lastCount = cur.ID, len(cur.Messages)
		printTranscript(out, cur)
	})
}

// followSession prints only the messages added since the previous update.
func followSession(ctx context.Context, out io.Writer, svc *conversation.Service, id domain.SessionID) error {
	updates, err := svc.WatchMessages(ctx, id)
	if err != nil {
		return err
	}

	printed := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msgs, ok := <-updates:
			if !ok {
				return nil
			}
			if len(msgs) > printed {
				printMessages(out, msgs[printed:])
				printed = len(msgs)
			}
		}
	}
}
