package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"hms-service/internal/config"
	departmentAdd "hms-service/internal/http-server/handlers/departments/add"
	departmentGet "hms-service/internal/http-server/handlers/departments/get"
	patientAssign "hms-service/internal/http-server/handlers/patients/assign"
	patientBook "hms-service/internal/http-server/handlers/patients/book"
	patientDischarge "hms-service/internal/http-server/handlers/patients/discharge"
	patientGet "hms-service/internal/http-server/handlers/patients/get"
	patientHospitalize "hms-service/internal/http-server/handlers/patients/hospitalize"
	patientIntake "hms-service/internal/http-server/handlers/patients/intake"
	roomConfigure "hms-service/internal/http-server/handlers/rooms/configure"
	roomGet "hms-service/internal/http-server/handlers/rooms/get"
	roomUpdate "hms-service/internal/http-server/handlers/rooms/update"
	serviceCreate "hms-service/internal/http-server/handlers/services/create"
	serviceGet "hms-service/internal/http-server/handlers/services/get"
	staffCreate "hms-service/internal/http-server/handlers/staff/create"
	staffGet "hms-service/internal/http-server/handlers/staff/get"
	staffSchedule "hms-service/internal/http-server/handlers/staff/schedule"
	"hms-service/internal/lock"
	svc "hms-service/internal/service"
	"hms-service/internal/storage/memory"
	slogpretty "hms-service/pkg/handlers/slogPretty"
	"hms-service/pkg/middleware/mwLogger"
	"hms-service/pkg/sl"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/chi/v5"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Content-Type", "application/json; charset=utf-8")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func main() {

	cfg := config.MustLoad()

	log := setupLogger(cfg.Env)

	log.Info("Starting API", slog.String("env", cfg.Env))
	log.Debug("Debug messages are enabled")

	storage := memory.New()

	locker, err := setupLocker(cfg.RedisAddr)
	if err != nil {
		log.Error("Failed to init redis lock", sl.Err(err))
		os.Exit(1)
	}

	service := svc.NewService(storage, locker)

	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(mwLogger.New(log))
	router.Use(middleware.Recoverer)
	router.Use(middleware.URLFormat)
	router.Use(CORS)

	// Departments
	router.Post("/departments", departmentAdd.New(log, service))
	router.Get("/departments", departmentGet.New(log, service))

	// Hospital services
	router.Post("/services", serviceCreate.New(log, service))
	router.Get("/services", serviceGet.New(log, service))

	// Rooms
	router.Post("/rooms", roomConfigure.New(log, service))
	router.Get("/rooms", roomGet.New(log, service))
	router.Put("/rooms/{index}", roomUpdate.New(log, service))

	// Staff
	router.Post("/staff", staffCreate.New(log, service))
	router.Get("/staff", staffGet.New(log, service))
	router.Get("/staff/{index}", staffGet.New(log, service))
	router.Put("/staff/{index}/schedule", staffSchedule.New(log, service))

	// Patients
	router.Post("/patients", patientIntake.New(log, service))
	router.Get("/patients", patientGet.New(log, service))
	router.Get("/patients/{id}", patientGet.New(log, service))
	router.Put("/patients/{id}/department", patientAssign.New(log, service))
	router.Post("/patients/{id}/appointments", patientBook.New(log, service))
	router.Post("/patients/{id}/hospitalize", patientHospitalize.New(log, service))
	router.Post("/patients/discharge", patientDischarge.New(log, service))

	serv := &http.Server{
		Addr:         cfg.Address,
		Handler:      router,
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	serverErrCh := make(chan error, 1)

	go func() {
		log.Info("Starting HTTP server", slog.String("addr", cfg.Address))
		if err := serv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrCh <- err
		} else {
			serverErrCh <- nil
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info("Received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErrCh:
		if err != nil {
			log.Error("HTTP server stopped unexpectedly", sl.Err(err))
		} else {
			log.Info("HTTP server stopped gracefully")
		}
	}

	shutdownTimeout := cfg.HTTPServer.ShutdownTimeout

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	log.Info("Shutting down HTTP server", slog.String("timeout", shutdownTimeout.String()))

	if err := serv.Shutdown(ctx); err != nil {
		log.Error("Server shutdown failed", sl.Err(err))
	} else {
		log.Info("Server shutdown complete")
	}

	if err := storage.Close(); err != nil {
		log.Error("Failed to close storage", sl.Err(err))
	} else {
		log.Info("Storage closed")
	}

	if locker != nil {
		if err := locker.Close(); err != nil {
			log.Error("Failed to close locker", sl.Err(err))
		} else {
			log.Info("Locker closed")
		}
	}

	log.Info("Shutdown finished, server stopped")

}

// setupLocker picks redis when an address is configured, otherwise the
// in-process locker is enough for a single-operator session.
func setupLocker(redisAddr string) (lock.Locker, error) {
	if redisAddr == "" {
		return lock.NewLocalLock(), nil
	}

	return lock.NewRedisLock(redisAddr)
}

func setupLogger(env string) *slog.Logger {
	var log *slog.Logger
	switch env {
	case envLocal:
		log = setupPrettySlog()
	case envDev:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}),
		)
	case envProd:
		log = slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
		)
	}

	return log
}

func setupPrettySlog() *slog.Logger {
	opts := slogpretty.PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{
			Level: slog.LevelDebug,
		},
	}

	handler := opts.NewPrettyHandler(os.Stdout)

	return slog.New(handler)
}
