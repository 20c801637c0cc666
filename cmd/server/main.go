// main wires dependencies and runs the HTTP server plus the audit worker.
// Business logic lives in the internal services packages.
package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"kader/internal/audit"
	auditstore "kader/internal/audit/store"
	"kader/internal/auth/device"
	authhandler "kader/internal/auth/handler"
	authservice "kader/internal/auth/service"
	"kader/internal/auth/store/revocation"
	employeehandler "kader/internal/employee/handler"
	employeeservice "kader/internal/employee/service"
	employeestore "kader/internal/employee/store"
	httpapi "kader/internal/http"
	"kader/internal/jwttoken"
	"kader/internal/platform/config"
	"kader/internal/platform/httpserver"
	"kader/internal/platform/logger"
	"kader/internal/platform/postgres"
	platformredis "kader/internal/platform/redis"
)

func main() {
	log := logger.New()
	if err := run(log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(log *slog.Logger) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *sql.DB
	var employees employeestore.EmployeeStore
	var trail auditstore.Store
	probes := map[string]httpapi.HealthChecker{}

	if cfg.DatabaseURL != "" {
		db, err = postgres.Open(cfg.DatabaseURL)
		if err != nil {
			return err
		}
		defer db.Close()
		employees = employeestore.NewPostgresStore(db)
		trail = auditstore.NewPostgresStore(db)
		probes["database"] = dbProbe{db}
	} else {
		log.Warn("DATABASE_URL not set, using in-memory stores")
		employees = employeestore.NewInMemoryStore()
		trail = auditstore.NewInMemoryStore()
	}

	var revocations revocation.List
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		revocations = revocation.NewRedisList(redisClient.Client)
		probes["redis"] = redisClient
	} else {
		log.Warn("REDIS_URL not set, using in-memory revocation list")
		revocations = revocation.NewInMemoryList()
	}

	inbox := make(chan audit.Event, cfg.AuditBuffer)
	publisher := audit.NewPublisher(inbox, log)
	worker := audit.NewWorker(trail, inbox, log)

	tokens := jwttoken.NewService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.JWTAudience)

	employeeSvc := employeeservice.NewService(employees, revocations, publisher, log, cfg.BcryptCost, cfg.TokenTTL)
	authSvc := authservice.NewService(
		employees,
		tokens,
		revocations,
		publisher,
		device.NewService(cfg.DeviceFingerprints),
		log,
		cfg.BcryptCost,
		cfg.TokenTTL,
	)

	router := httpapi.NewRouter(httpapi.Deps{
		Auth:              authhandler.New(authSvc, log),
		Employees:         employeehandler.New(employeeSvc, trail, log),
		TokenValidator:    jwttoken.NewServiceAdapter(tokens),
		RevocationChecker: revocations,
		Probes:            probes,
		Logger:            log,
	})

	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)

	group.Go(func() error {
		log.Info("starting kader", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	group.Go(func() error {
		err := worker.Run(groupCtx)
		if errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	})

	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}

type dbProbe struct {
	db *sql.DB
}

func (p dbProbe) Health(ctx context.Context) error {
	return p.db.PingContext(ctx)
}
