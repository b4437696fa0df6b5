package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"hotel-admin-service/internal/config"
	"hotel-admin-service/internal/service"
	"hotel-admin-service/internal/storage/minio"
	"hotel-admin-service/internal/storage/postgres"
	transport "hotel-admin-service/internal/transport/http"
	"hotel-admin-service/internal/version"
)

// Константы для определения окружения.
const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting application", "env", cfg.Env)

	// Корневой контекст по сигналам.
	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	// Подключение к БД c таймаутом.
	dbCtx, dbCancel := context.WithTimeout(rootCtx, 10*time.Second)
	str, err := postgres.New(dbCtx, cfg.DB.DatabaseURL)
	dbCancel()
	if err != nil {
		log.Error("postgres_connect_failed", slog.String("err", err.Error()))
		rootCancel()
		os.Exit(1)
	}
	log.Info("postgres_connected")

	// Реестры версий токенов: Redis при заданном REDIS_URL, иначе in-memory.
	access, refresh, closeRegistries, err := setupRegistries(cfg.Redis)
	if err != nil {
		log.Error("registry_init_failed", slog.String("err", err.Error()))
		rootCancel()
		str.Close()
		os.Exit(1)
	}

	// Сервис.
	srvc := service.New(str, access, refresh, cfg.Auth)

	// Хранилище изображений — опционально.
	if cfg.S3.Endpoint != "" {
		s3Ctx, s3Cancel := context.WithTimeout(rootCtx, 10*time.Second)
		images, err := minio.New(s3Ctx, cfg.S3, cfg.Uploads)
		s3Cancel()
		if err != nil {
			log.Error("minio_connect_failed", slog.String("err", err.Error()))
			rootCancel()
			closeRegistries()
			str.Close()
			os.Exit(1)
		}
		srvc.SetImageStorage(images)
		log.Info("minio_connected", slog.String("bucket", cfg.S3.Bucket))
	}
	log.Info("service_initialized")

	var ready int32 // 0 — not ready; 1 — ready
	opsAddr := cfg.Ops.Addr()

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	mux := http.NewServeMux()
	mux.HandleFunc("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if atomic.LoadInt32(&ready) == 1 {
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("ok"))
			return
		}
		http.Error(w, "not ready", http.StatusServiceUnavailable)
	})

	mux.Handle("/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))

	opsSrv := &http.Server{
		Addr:              opsAddr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Info("ops_listen_start", "addr", opsAddr)
		if err := opsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("ops_serve_failed", slog.String("err", err.Error()))
		}
	}()

	// Основной API-сервер.
	apiAddr := cfg.HTTP.Addr()
	api := transport.NewServer(srvc, 0)
	apiSrv := &http.Server{
		Addr:              apiAddr,
		Handler:           api.Router(log, promReg, cfg.Timeouts.Service),
		ReadHeaderTimeout: 5 * time.Second,
	}

	log.Info("http_listen_start", slog.String("addr", apiAddr))
	atomic.StoreInt32(&ready, 1)

	serveErrCh := make(chan error, 1)
	go func() {
		if err := apiSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	// Ожидание сигнала завершения или фатальной ошибки сервера.
	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	atomic.StoreInt32(&ready, 0)

	// Graceful stop с таймаутом.
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := apiSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_force_stop", slog.String("err", err.Error()))
	}

	_ = opsSrv.Shutdown(context.Background())

	// Явная очистка перед выходом.
	shutdownCancel()
	rootCancel()
	closeRegistries()
	str.Close()

	log.Info("service_stopped")
	os.Exit(0)
}

// setupRegistries создаёт пару реестров версий (access/refresh).
// Возвращаемая функция закрывает соединения при завершении.
func setupRegistries(cfg config.RedisConfig) (version.Registry, version.Registry, func(), error) {
	if cfg.RedisURL == "" {
		return version.NewMemory(), version.NewMemory(), func() {}, nil
	}

	access, err := version.NewRedis(cfg.RedisURL, version.Access)
	if err != nil {
		return nil, nil, nil, err
	}

	refresh, err := version.NewRedis(cfg.RedisURL, version.Refresh)
	if err != nil {
		_ = access.Close()
		return nil, nil, nil, err
	}

	closeAll := func() {
		_ = access.Close()
		_ = refresh.Close()
	}

	return access, refresh, closeAll, nil
}

// setupLogger настраивает slog по окружению.
func setupLogger(env string) *slog.Logger {
	var log *slog.Logger

	switch env {
	case envLocal:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	default:
		log = slog.New(
			slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	}

	return log
}
