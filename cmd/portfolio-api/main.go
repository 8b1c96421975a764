package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpadapter "github.com/missingred/portfolio/internal/adapters/http"
	"github.com/missingred/portfolio/internal/adapters/llm"
	"github.com/missingred/portfolio/internal/app/assistant"
	"github.com/missingred/portfolio/internal/app/conversation"
	"github.com/missingred/portfolio/internal/app/notify"
	"github.com/missingred/portfolio/internal/bootstrap"
	"github.com/missingred/portfolio/internal/config"
	"github.com/missingred/portfolio/internal/observability"
)

func main() {
	if err := config.LoadDotEnv(); err != nil {
		observability.Logger().WithError(err).Warn("ignoring .env")
	}

	cfg, err := config.Load()
	if err != nil {
		observability.Logger().WithError(err).Fatal("invalid configuration")
	}
	observability.Configure(os.Stdout, cfg.LogLevel, cfg.LogFormat)
	log := observability.Logger()

	ctx := context.Background()

	completer, err := bootstrap.NewCompleter(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("error initializing completion client")
	}

	store, closeStore, err := bootstrap.NewTranscriptStore(ctx, cfg)
	if err != nil {
		log.WithError(err).Fatal("error initializing transcript store")
	}
	defer closeStore.Close()

	mailer, err := bootstrap.NewMailer(cfg)
	if err != nil {
		log.WithError(err).Fatal("error initializing mailer")
	}

	assistantSvc := assistant.NewService(completer, assistant.NewConversation(llm.PersonaPreamble))
	notifySvc := notify.NewService(mailer, notify.Config{
		OperatorEmail: cfg.OperatorEmail,
		NoReplyEmail:  cfg.NoReplyEmail,
		CVPath:        cfg.CVPath,
	})
	chatSvc := conversation.NewService(store)

	handler := httpadapter.NewServer(assistantSvc, notifySvc, chatSvc, httpadapter.Options{
		AdminToken: cfg.AdminToken,
	})

	server := newHTTPServer(":"+cfg.Port, handler)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	go func() {
		log.WithField("port", cfg.Port).Info("portfolio API listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("error running HTTP server")
		}
	}()

	<-stop
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("server forced to shutdown")
	} else {
		log.Info("server stopped gracefully")
	}
}
