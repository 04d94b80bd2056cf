package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/getsentry/sentry-go"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/igotm1lk/slackbot/internal/cleanup"
	"github.com/igotm1lk/slackbot/internal/config"
	"github.com/igotm1lk/slackbot/internal/handler"
	"github.com/igotm1lk/slackbot/internal/psi"
	"github.com/igotm1lk/slackbot/internal/runner"
	"github.com/igotm1lk/slackbot/internal/slackmsg"
	"github.com/igotm1lk/slackbot/internal/storage"
)

func main() {
	ctx := context.Background()
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(log)

	cfg, err := config.Load()
	if err != nil {
		log.Error("invalid configuration", "err", err)
		os.Exit(1)
	}

	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.SentryDSN}); err != nil {
			log.Error("failed to initialize sentry", "err", err)
			os.Exit(1)
		}
		defer sentry.Flush(2 * time.Second)
	}

	if cfg.OTLPEndpoint != "" {
		shutdown, err := initTracer(ctx)
		if err != nil {
			log.Error("failed to initialize tracing", "err", err)
			os.Exit(1)
		}
		defer shutdown(ctx)
	}

	run := &runner.Runner{
		Fetcher: psi.NewClient(cfg.PagespeedAPIKey),
		Poster:  slackmsg.New(cfg.SlackBotToken),
		Log:     log,
	}

	if cfg.StorageEnabled() {
		store, err := storage.NewService(ctx, cfg)
		if err != nil {
			log.Error("failed to initialize screenshot storage", "err", err)
			os.Exit(1)
		}
		run.Screenshots = store
		cleanup.Start(store, cfg.ScreenshotTTL, log)
	} else {
		log.Info("screenshot storage not configured, reports will be text-only")
	}

	h := handler.NewHandler(cfg, run, log)

	mux := http.NewServeMux()
	mux.HandleFunc("POST /slack/command", h.HandleSlashCommand)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	var finalHandler http.Handler = mux
	finalHandler = otelhttp.NewHandler(finalHandler, "slackbot")
	finalHandler = recoverMiddleware(finalHandler, log)
	finalHandler = loggingMiddleware(finalHandler, log)

	log.Info("server starting", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, finalHandler); err != nil {
		log.Error("server failed", "err", err)
		os.Exit(1)
	}
}

func initTracer(ctx context.Context) (func(context.Context) error, error) {
	exp, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := resource.Merge(resource.Default(),
		resource.NewWithAttributes(semconv.SchemaURL, semconv.ServiceName("psi-slackbot")))
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	return tp.Shutdown, nil
}

func loggingMiddleware(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("request", "method", r.Method, "path", r.URL.Path, "took", time.Since(start))
	})
}

func recoverMiddleware(next http.Handler, log *slog.Logger) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if err := recover(); err != nil {
				sentry.CurrentHub().Recover(err)
				log.Error("panic while serving request", "path", r.URL.Path, "err", err)
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
