package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/evgeniy-krivenko/mynotes/internal/api/health"
	notesapi "github.com/evgeniy-krivenko/mynotes/internal/api/notes"
	"github.com/evgeniy-krivenko/mynotes/internal/config"
	"github.com/evgeniy-krivenko/mynotes/internal/ctxtr"
	"github.com/evgeniy-krivenko/mynotes/internal/storage"
	"github.com/evgeniy-krivenko/mynotes/internal/usecase/notes"
	"github.com/evgeniy-krivenko/mynotes/internal/usecase/session"
	"github.com/evgeniy-krivenko/mynotes/pkg/grpcx"
	"github.com/evgeniy-krivenko/mynotes/pkg/gwserver"
	"github.com/evgeniy-krivenko/mynotes/pkg/logger/slogx"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("run app: %v", err)
	}
}

func run() error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg, err := config.Parse()
	if err != nil {
		return fmt.Errorf("parse cfg: %v", err)
	}

	if err := slogx.InitGlobal(os.Stdout, cfg.App.LogLevel, cfg.App.Pretty, ctxtr.LogHandler); err != nil {
		return fmt.Errorf("init logger: %v", err)
	}

	repo, closer, err := storage.Open(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer closer.Close()

	store, err := notes.New(notes.NewOptions(repo))
	if err != nil {
		return fmt.Errorf("init notes usecase: %v", err)
	}

	if cfg.App.Seed {
		if err := store.SeedIfEmpty(ctx); err != nil {
			return fmt.Errorf("seed storage: %w", err)
		}
	}

	sessions := session.NewRegistry(store, cfg.HTTP.SessionIdleTTL)

	api, err := notesapi.New(notesapi.NewOptions(store, sessions))
	if err != nil {
		return fmt.Errorf("init notes api: %v", err)
	}

	httpSrv, err := gwserver.New(gwserver.NewOptions(
		cfg.HTTP.Addr,
		api,
		gwserver.WithMiddlewares(
			gwserver.BearerAuth(cfg.HTTP.APIToken),
			slogx.LoggingMiddleware,
			ctxtr.Middleware,
		),
		gwserver.WithLogger(slogx.Default()),
	))
	if err != nil {
		return fmt.Errorf("init http server: %v", err)
	}

	healthSvc, err := health.New(health.NewOptions(
		store,
		health.WithInterval(cfg.GRPC.HealthProbeInterval),
	))
	if err != nil {
		return fmt.Errorf("init health service: %v", err)
	}

	grpcSrv, err := grpcx.New(grpcx.NewOptions(
		cfg.GRPC.Addr,
		grpcx.WithServices(healthSvc),
		grpcx.WithLogger(slogx.Default()),
		grpcx.WithUnaryInterceptors(ctxtr.UnaryRequestIDInterceptor),
		grpcx.WithUnaryInterceptors(slogx.UnaryServerInterceptors()...),
		grpcx.WithStreamInterceptors(slogx.StreamServerInterceptors()...),
		grpcx.WithTime(cfg.GRPC.KeepaliveTime),
		grpcx.WithTimeout(cfg.GRPC.KeepaliveTimeout),
	))
	if err != nil {
		return fmt.Errorf("init grpc server: %v", err)
	}

	eg, ctx := errgroup.WithContext(ctx)

	eg.Go(func() error { return httpSrv.Run(ctx) })
	eg.Go(func() error { return grpcSrv.Run(ctx) })
	eg.Go(func() error { return healthSvc.Run(ctx) })
	eg.Go(func() error { return sessions.Run(ctx) })

	slogx.Info(ctx, "mynotes server started")

	if err := eg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("wait app stop: %v", err)
	}

	return nil
}
