package appbuilder

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/OluSmartDev/3mtt-module3-miniprojects/pkg/logger"

	"github.com/gin-gonic/gin"
)

const defaultShutdownTimeout = 10 * time.Second

type Application struct {
	Logger          *logger.Logger
	Addr            string
	WorkerServices  []WorkerService
	Engine          *gin.Engine
	ShutdownTimeout time.Duration

	closers []func() error
}

// Handler exposes the router so tests can drive it with httptest.
func (a *Application) Handler() http.Handler {
	return a.Engine
}

// Start runs worker services and the REST API until ctx is cancelled or the
// listener fails, then shuts everything down.
func (a *Application) Start(ctx context.Context) error {
	listener, err := net.Listen("tcp", a.Addr)
	if err != nil {
		a.release()
		return err
	}
	return a.Serve(ctx, listener)
}

func (a *Application) Serve(ctx context.Context, listener net.Listener) error {
	a.Logger.Info("Starting Application runtime...")

	for _, ws := range a.WorkerServices {
		a.Logger.Infof("Starting %s WorkerService", ws.GetServiceName())
		ws.StartService()
	}

	server := &http.Server{
		Handler:           a.Engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		a.Logger.Infof("REST API is now listening on: %s", listener.Addr())
		serveErr <- server.Serve(listener)
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.Logger.Info("Shutdown requested, stopping REST API...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			runErr = err
		}
	case err := <-serveErr:
		if !errors.Is(err, http.ErrServerClosed) {
			runErr = err
		}
	}

	for _, ws := range a.WorkerServices {
		a.Logger.Infof("Stopping %s WorkerService", ws.GetServiceName())
		ws.StopService()
	}
	a.release()

	return runErr
}

func (a *Application) release() {
	for _, closer := range a.closers {
		if err := closer(); err != nil {
			a.Logger.Error(err, "Failed to release resource")
		}
	}
	a.closers = nil
}
