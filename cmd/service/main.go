package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gitlab.com/dirk.krummacker/contacts-web/internal/config"
	"gitlab.com/dirk.krummacker/contacts-web/internal/logger"
	"gitlab.com/dirk.krummacker/contacts-web/internal/service"
)

// Usage example on the command line:
// > CONTACTS_SERVER_PORT=3000 CONTACTS_STORE_BACKEND=mongo CONTACTS_MONGO_URI=mongodb://localhost:27017 go run main.go
// > CONTACTS_STORE_BACKEND=mysql CONTACTS_DATABASE_HOST=localhost:3306 CONTACTS_DATABASE_USER=dirk CONTACTS_DATABASE_PASSWORD=bullo92 go run main.go
func main() {
	cfg, err := config.Load()
	if err != nil {
		bootLog := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
		bootLog.Fatal().Err(err).Msg("could not load configuration")
	}
	log := logger.New(cfg.Log)
	gin.SetMode(cfg.Server.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	contacts, err := service.OpenStore(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Store.Backend).Msg("could not open store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := contacts.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("could not close store")
		}
	}()

	svc, err := service.New(contacts, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("could not set up service")
	}
	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      svc.SetupHttpRouter(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
		IdleTimeout:  cfg.Server.IdleTimeoutDuration(),
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("contacts web listening")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("contacts web stopped")
}
