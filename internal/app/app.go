package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/fx"

	"github.com/dvnguyen/socialapp-client/internal/api"
	"github.com/dvnguyen/socialapp-client/internal/api/apiimpl"
	"github.com/dvnguyen/socialapp-client/internal/ratelimit"
	"github.com/dvnguyen/socialapp-client/internal/session"
	"github.com/dvnguyen/socialapp-client/internal/session/sessionimpl"
	"github.com/dvnguyen/socialapp-client/internal/uploader"
	"github.com/dvnguyen/socialapp-client/internal/uploader/uploaderimpl"
	"github.com/dvnguyen/socialapp-client/internal/watcher"
	"github.com/dvnguyen/socialapp-client/internal/watcher/watcherimpl"
	"github.com/dvnguyen/socialapp-client/pkg/config"
	"github.com/dvnguyen/socialapp-client/pkg/logger"
)

var App = fx.Options(
	fx.Provide(
		config.New,
		logger.FxOption,
		session.NewTokenStore,
		func(ts *session.TokenStore) api.TokenSource { return ts },
		func() ratelimit.Limiter {
			return ratelimit.NewInMemoryLimiter(10, time.Second, 20)
		},
	),
	fx.Provide(
		fx.Annotate(
			apiimpl.New,
			fx.As(new(api.Client)),
		), fx.Annotate(
			sessionimpl.New,
			fx.As(new(session.Manager)),
		), fx.Annotate(
			uploaderimpl.New,
			fx.As(new(uploader.Client)),
		),
		fx.Annotate(
			watcherimpl.New,
			fx.As(new(watcher.Client)),
		),
	),
	fx.Invoke(run),
)

func run(lc fx.Lifecycle, log logger.Logger, cfg *config.Config, sess session.Manager, wClient watcher.Client) {
	// Outlives OnStart and is cancelled on shutdown, so the watcher's
	// scheduler goroutine stops with the app.
	runCtx, cancel := context.WithCancel(context.Background())

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {

			go startHttpServer(log, cfg)

			if err := sess.Restore(runCtx); err != nil {
				log.Info("No session to restore, starting logged out", "reason", err)
			}

			if cfg.Watcher.Enabled {
				if err := wClient.Schedule(runCtx); err != nil {
					log.Error("Feed watcher error", "Error", err)
				}
			}

			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			return nil
		},
	})
}

func startHttpServer(log logger.Logger, cfg *config.Config) {
	http.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		healthCheckHandler(w, r, log)
	})

	log.Info(fmt.Sprintf("Starting server on :%d", cfg.App.Port))

	if err := http.ListenAndServe(fmt.Sprintf(":%d", cfg.App.Port), nil); err != nil {
		log.Error("Server failed to start: %v", err)
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request, logger logger.Logger) {
	logger.Info("Health check request received", "Method", r.Method, "URL", r.URL.String())
	w.Header().Set("Content-Type", "text/plain")
	if _, err := w.Write([]byte("ok")); err != nil {
		logger.Error("Failed to write response", "Error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}
