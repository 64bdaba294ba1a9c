package fx

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"

	"github.com/amityadav/modsearch/internal/config"
	"github.com/amityadav/modsearch/internal/gateway"
	"github.com/amityadav/modsearch/internal/server"
	"go.uber.org/fx"
	"google.golang.org/grpc"
)

// ServerModule provides the HTTP and gRPC servers
var ServerModule = fx.Module("server",
	fx.Provide(
		NewHTTPServer,
		NewGRPCServer,
	),
	fx.Invoke(StartServers),
)

// NewHTTPServer creates the HTTP server for the REST gateway
func NewHTTPServer(cfg config.Config, d *gateway.Dispatcher) *http.Server {
	rest := server.CreateRESTHandler(d, cfg.ServiceName)
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           server.CreateHTTPHandler(rest),
		ReadHeaderTimeout: cfg.ReadTimeout,
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
	log.Printf("[FX] HTTP Server created (backend available: %v)", d.Available())
	return srv
}

// NewGRPCServer creates the gRPC health server
func NewGRPCServer(cfg config.Config) *grpc.Server {
	srv, _ := server.NewGRPCServer(cfg.ServiceName)
	log.Printf("[FX] gRPC Server created")
	return srv
}

// ServerParams groups dependencies for starting servers
type ServerParams struct {
	fx.In
	Lifecycle  fx.Lifecycle
	HTTPServer *http.Server
	GRPCServer *grpc.Server
	Config     config.Config
}

// StartServers starts HTTP and gRPC servers with lifecycle management
func StartServers(p ServerParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			httpLis, err := net.Listen("tcp", p.HTTPServer.Addr)
			if err != nil {
				return err
			}

			go func() {
				log.Printf("[FX] HTTP Server listening on %s", httpLis.Addr())
				if err := p.HTTPServer.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Printf("[FX] HTTP Server error: %v", err)
				}
			}()

			if p.Config.GRPCPort == 0 {
				log.Printf("[FX] gRPC Server disabled")
				return nil
			}

			grpcLis, err := net.Listen("tcp", fmt.Sprintf(":%d", p.Config.GRPCPort))
			if err != nil {
				p.HTTPServer.Close()
				return err
			}

			go func() {
				log.Printf("[FX] gRPC Server listening on %s", grpcLis.Addr())
				if err := p.GRPCServer.Serve(grpcLis); err != nil {
					log.Printf("[FX] gRPC Server error: %v", err)
				}
			}()

			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Printf("[FX] Shutting down servers...")
			err := p.HTTPServer.Shutdown(ctx)
			stopGRPC(ctx, p.GRPCServer)
			return err
		},
	})
}

// stopGRPC drains in-flight RPCs until ctx expires, then closes the rest.
// Open health Watch streams never finish on their own.
func stopGRPC(ctx context.Context, srv *grpc.Server) {
	done := make(chan struct{})
	go func() {
		srv.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
	case <-ctx.Done():
		log.Printf("[FX] gRPC graceful stop timed out, forcing")
		srv.Stop()
		<-done
	}
}
