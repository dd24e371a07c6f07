package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/coder/quartz"
	"github.com/gorilla/handlers"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"holdem-server/internal/config"
	"holdem-server/internal/jwt"
	"holdem-server/internal/mux"
	"holdem-server/internal/rng"
	"holdem-server/pkg/ai"
	"holdem-server/pkg/rank"
	"holdem-server/pkg/room"
	"holdem-server/pkg/store"
)

const readTimeout = time.Second * 5
const writeTimeout = time.Second * 10

// Version is the server version
var Version = "v0.0.0-dev"

var addr = flag.String("addr", ":5000", "the listen address")
var noTokens = flag.Bool("no-tokens", false, "do not issue seat tokens; participants identify themselves")

func main() {
	flag.Parse()
	setupLogger()

	cfg := config.Instance()

	// fail fast
	var keys *jwt.Keys
	if !*noTokens {
		var err error
		keys, err = jwt.LoadKeys(cfg.JWT.PublicKey, cfg.JWT.PrivateKey)
		if err != nil {
			logrus.WithError(err).Fatal("could not load seat token keys")
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, closeStore, err := store.Open(ctx, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("could not open store")
	}
	defer func() {
		if err := closeStore(); err != nil {
			logrus.WithError(err).Error("could not close store")
		}
	}()

	actor := ai.New(rank.Treys{}, rng.Crypto{})
	actor.RaiseIncrement = cfg.Table.RaiseIncrement

	pitBoss := room.NewPitBoss(room.Services{
		Store:         st,
		Oracle:        rank.Treys{},
		Actor:         actor,
		Clock:         quartz.NewReal(),
		Rand:          rng.Crypto{},
		Logger:        logrus.StandardLogger(),
		ThinkDelay:    time.Duration(cfg.Table.AIThinkDelay) * time.Millisecond,
		MaxSeats:      cfg.Table.MaxSeats,
		StartingStack: cfg.Table.StartingStack,
	})
	defer pitBoss.EndShift()

	c := cors.New(cors.Options{
		AllowedHeaders: []string{"Origin", "Accept", "Content-Type", "X-Requested-With", "Authorization"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	})

	srv := &http.Server{
		Addr:         *addr,
		Handler:      loggingHandler(cfg, c.Handler(mux.NewMux(Version, pitBoss, keys))),
		ReadTimeout:  readTimeout,
		WriteTimeout: writeTimeout,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), writeTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logrus.WithError(err).Error("could not shut down cleanly")
		}
	}()

	logrus.WithField("addr", srv.Addr).Info("listening")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logrus.WithError(err).Error("server stopped")
	}
}

func loggingHandler(cfg config.Config, next http.Handler) http.Handler {
	if cfg.Log.DisableAccessLogs {
		return next
	}

	return handlers.CombinedLoggingHandler(os.Stdout, next)
}

func setupLogger() {
	cfg := config.Instance()
	if lvl := cfg.Log.Level; lvl != "" {
		level, err := logrus.ParseLevel(lvl)
		if err != nil {
			logrus.WithError(err).Fatal("could not parse level")
		}

		logrus.SetLevel(level)
	}

	if strings.ToLower(os.Getenv("LOG_FORMAT")) == "json" || strings.ToLower(cfg.Log.Format) == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	}
}
