package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"shopez/internal/catalog"
	"shopez/internal/platform/config"
	"shopez/internal/platform/httpserver"
	"shopez/internal/platform/logger"
	"shopez/internal/platform/metrics"
	"shopez/internal/session/service"
	"shopez/internal/session/store"
	"shopez/internal/sessiontoken"
	httptransport "shopez/internal/transport/http"
	"shopez/pkg/platform/audit/publisher"
	auditmemory "shopez/pkg/platform/audit/store/memory"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()
	m := metrics.New()

	auditStore := auditmemory.NewInMemoryStore()
	var auditOpts []publisher.Option
	if cfg.AuditBuffer > 0 {
		auditOpts = append(auditOpts, publisher.WithAsyncBuffer(cfg.AuditBuffer))
	}
	auditPub := publisher.NewPublisher(auditStore, auditOpts...)
	defer auditPub.Close()

	sessionStore := store.NewInMemory()
	m.RegisterSessionsLive(sessionStore.Len)

	sessions := service.New(sessionStore,
		service.WithLogger(log),
		service.WithMetrics(m),
		service.WithAuditPublisher(auditPub),
	)

	tokens := sessiontoken.NewIssuer(cfg.JWTSigningKey, "shopez", cfg.SessionTTL)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:   log,
		Metrics:  m,
		Sessions: sessions,
		Tokens:   tokens,
		Catalog:  catalog.Default(),
		Audit:    auditPub,
	})

	srv := httpserver.New(cfg.Addr, router)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting shopez", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
