// Package app wires the configuration into a running dispatch desk service.
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/askilde/dispatchdesk/api/assignments"
	"github.com/askilde/dispatchdesk/config"
	"github.com/askilde/dispatchdesk/core/dispatch"
	coremetrics "github.com/askilde/dispatchdesk/core/metrics"
	"github.com/askilde/dispatchdesk/infra/backend"
	"github.com/askilde/dispatchdesk/infra/history"
	"github.com/askilde/dispatchdesk/infra/logger"
	"github.com/askilde/dispatchdesk/infra/metrics"
	"github.com/askilde/dispatchdesk/infra/notify"
)

// Service orchestrates the assignment session, the overview queries and the
// supporting infrastructure.
type Service struct {
	Session  *dispatch.Session
	Overview *dispatch.Overview
	Backend  *backend.Client

	bus      *dispatch.NotificationBus
	journal  *history.JSONLStore
	notifier *notify.Notifier
	log      logger.Logger

	promEnabled bool
	promPort    string
	apiEnabled  bool
	apiAddr     string
	apiToken    string
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	client := backend.New(cfg.Backend)

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.Sink
	switch len(sinks) {
	case 0:
		sink = coremetrics.NopSink{}
	case 1:
		sink = sinks[0]
	default:
		sink = metrics.NewMultiSink(sinks...)
	}

	journal, err := history.NewJSONLStore(cfg.History.Path)
	if err != nil {
		return nil, fmt.Errorf("history store: %w", err)
	}

	bus := dispatch.NewNotificationBus()
	svc := &Service{
		Session:     dispatch.NewSession(client, bus, journal, sink, logg),
		Overview:    dispatch.NewOverview(client, bus, sink, logg),
		Backend:     client,
		bus:         bus,
		journal:     journal,
		log:         logg,
		promEnabled: cfg.Metrics.PrometheusEnabled,
		promPort:    cfg.Metrics.PrometheusPort,
		apiEnabled:  cfg.API.Enabled,
		apiAddr:     cfg.API.Addr,
		apiToken:    cfg.API.Token,
	}

	if cfg.Notifier.Enabled {
		notifier, err := notify.New(cfg.Notifier)
		if err != nil {
			return nil, fmt.Errorf("notifier: %w", err)
		}
		svc.notifier = notifier
	}
	return svc, nil
}

// Run starts the background servers and blocks until the context is
// cancelled.
func (s *Service) Run(ctx context.Context) error {
	if s.promEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promPort, s.log); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	if s.apiEnabled {
		go func() {
			if err := s.serveHistoryAPI(ctx); err != nil {
				s.log.Errorf("history api: %v", err)
			}
		}()
	}
	if s.notifier != nil {
		go s.notifier.Run(ctx, s.bus.Subscribe())
	}
	go s.logNotifications(ctx)
	<-ctx.Done()
	return nil
}

func (s *Service) serveHistoryAPI(ctx context.Context) error {
	mux := http.NewServeMux()
	mux.Handle("/api/assignments/history", assignments.NewHistoryHandler(s.journal, s.apiToken))
	srv := &http.Server{Addr: s.apiAddr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Service) logNotifications(ctx context.Context) {
	ch := s.bus.Subscribe()
	for {
		select {
		case <-ctx.Done():
			return
		case note, ok := <-ch:
			if !ok {
				return
			}
			switch note.Severity {
			case dispatch.SeverityError:
				s.log.Errorf("%s", note.Message)
			case dispatch.SeverityAlert:
				s.log.Warnf("%s", note.Message)
			default:
				s.log.Infof("%s", note.Message)
			}
		}
	}
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.notifier != nil {
		s.notifier.Close()
	}
	s.bus.Close()
	return s.journal.Close()
}
