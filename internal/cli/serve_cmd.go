package cli

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/curtisos/curtisos/internal/api"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func newServeCmd(load loader) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := load(cmd)
			if err != nil {
				return err
			}
			defer rt.Close()

			cfg := rt.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.Addr)
			if err != nil {
				return fmt.Errorf("listening on %s: %w", cfg.Addr, err)
			}

			srv := &http.Server{
				Handler: api.NewHandler(rt.Services, api.Options{
					Log:          rt.Log,
					MaxBodyBytes: cfg.MaxBodyBytes,
					DB:           rt.DB,
				}),
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       cfg.ReadTimeout,
				WriteTimeout:      cfg.WriteTimeout,
			}
			rt.Log.Info("server listening", zap.String("addr", ln.Addr().String()))
			return serve(ctx, srv, ln, cfg.ShutdownTimeout, rt.Log)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (overrides config)")
	return cmd
}

// serve runs srv on ln until ctx is done, then shuts it down within
// timeout. It returns the first error from either side.
func serve(ctx context.Context, srv *http.Server, ln net.Listener, timeout time.Duration, log *zap.Logger) error {
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving http: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down", zap.Duration("timeout", timeout))
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutting down: %w", err)
		}
		return nil
	})

	return g.Wait()
}
