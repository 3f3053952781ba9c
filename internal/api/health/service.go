package health

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"

	"github.com/evgeniy-krivenko/mynotes/pkg/grpcx"
	"github.com/evgeniy-krivenko/mynotes/pkg/logger/slogx"
)

// StoreService is the health service name reported for note storage.
const StoreService = "mynotes.NoteStore"

var _ grpcx.Service = (*Service)(nil)

type pinger interface {
	Ping(ctx context.Context) error
}

//go:generate go run github.com/kazhuravlev/options-gen/cmd/options-gen@v0.55.3 -out-filename=service_options.gen.go -from-struct=Options
type Options struct {
	store    pinger        `option:"mandatory" validate:"required"`
	interval time.Duration `default:"10s" validate:"min=1ms"`
}

// Service reports storage reachability over grpc.health.v1.
type Service struct {
	Options
	hs *health.Server
}

func New(opts Options) (*Service, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("validate health service options: %v", err)
	}

	hs := health.NewServer()
	hs.SetServingStatus(StoreService, healthpb.HealthCheckResponse_NOT_SERVING)

	return &Service{Options: opts, hs: hs}, nil
}

// RegisterService implements grpcx.Service.
func (s *Service) RegisterService(r grpc.ServiceRegistrar) {
	healthpb.RegisterHealthServer(r, s.hs)
}

// Run probes storage until ctx is done.
func (s *Service) Run(ctx context.Context) error {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	last := s.Probe(ctx, healthpb.HealthCheckResponse_UNKNOWN)
	for {
		select {
		case <-ctx.Done():
			s.hs.Shutdown()
			return nil
		case <-ticker.C:
			last = s.Probe(ctx, last)
		}
	}
}

// Probe pings storage once and publishes the result; prev is used to log transitions only.
func (s *Service) Probe(
	ctx context.Context,
	prev healthpb.HealthCheckResponse_ServingStatus,
) healthpb.HealthCheckResponse_ServingStatus {
	status := healthpb.HealthCheckResponse_SERVING

	err := s.store.Ping(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return prev
		}
		status = healthpb.HealthCheckResponse_NOT_SERVING
	}

	s.hs.SetServingStatus(StoreService, status)
	s.hs.SetServingStatus("", status)

	if status != prev {
		attrs := []slog.Attr{slog.String("status", status.String())}
		if err != nil {
			slogx.Warn(ctx, "note storage unavailable", append(attrs, slogx.Err(err))...)
		} else {
			slogx.Info(ctx, "note storage reachable", attrs...)
		}
	}

	return status
}
