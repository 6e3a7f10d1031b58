package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gw0212/maplink-manager/internal/config"
	"github.com/gw0212/maplink-manager/internal/deeplink"
	"github.com/gw0212/maplink-manager/internal/handler"
	"github.com/gw0212/maplink-manager/internal/middleware"
	"github.com/gw0212/maplink-manager/internal/resolver"
	"github.com/gw0212/maplink-manager/internal/service"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 5 * time.Second

type App struct {
	config     *config.Config
	handler    http.Handler
	grpcServer *grpc.Server
}

func NewApp(cfg *config.Config) *App {
	deepLinkService := service.NewDeepLinkService(
		resolver.New(),
		deeplink.Builders(cfg.AppName),
	)

	httpHandler := handler.NewHandler(deepLinkService,
		handler.WithRequestTimeout(cfg.RequestTimeout),
		handler.WithGzip(cfg.EnableGzip),
	)

	a := &App{
		config:  cfg,
		handler: httpHandler.RegisterRoutes(),
	}

	if cfg.GRPCAddress != "" {
		a.grpcServer = grpc.NewServer(
			grpc.ChainUnaryInterceptor(middleware.UnaryRecoverer, middleware.UnaryLogger),
		)
		handler.RegisterDeepLinkServer(a.grpcServer, handler.NewDeepLinkGRPCServer(deepLinkService))
	}

	return a
}

// Run serves HTTP (and gRPC when configured) until ctx is cancelled or a server fails.
func (a *App) Run(ctx context.Context) error {
	httpServer := &http.Server{
		Addr:              a.config.ServerAddress,
		Handler:           a.handler,
		ReadHeaderTimeout: 5 * time.Second,
	}

	var grpcListener net.Listener
	if a.grpcServer != nil {
		lis, err := net.Listen("tcp", a.config.GRPCAddress)
		if err != nil {
			return err
		}
		grpcListener = lis
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Str("address", a.config.ServerAddress).Msg("Starting HTTP server")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	if grpcListener != nil {
		g.Go(func() error {
			log.Info().Str("address", a.config.GRPCAddress).Msg("Starting gRPC server")
			return a.grpcServer.Serve(grpcListener)
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if a.grpcServer != nil {
			a.grpcServer.GracefulStop()
		}
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
