package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"lifeboard/internal/metrics"
	"lifeboard/internal/server"
	"lifeboard/pkg/sims/life"
)

var (
	serveAddr  string
	serveStart bool
	serveCfg   = server.DefaultConfig()

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Serve the board over HTTP and websocket",
		RunE:  runServe,
	}
)

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveAddr, "addr", ":8080", "listen address")
	f.BoolVar(&serveStart, "start", false, "start ticking immediately")
	f.Float64Var(&serveCfg.MessagesPerSecond, "ws-rate", serveCfg.MessagesPerSecond, "websocket commands per second per client")
	f.IntVar(&serveCfg.MessageBurst, "ws-burst", serveCfg.MessageBurst, "websocket command burst per client")
	f.IntVar(&serveCfg.SendBuffer, "ws-send-buffer", serveCfg.SendBuffer, "queued frames per websocket client")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := boardConfig(cmd)
	if err != nil {
		return err
	}
	log, err := newLogger(false)
	if err != nil {
		return err
	}
	defer log.Close()

	engine, err := life.NewEngineFromConfig(cfg, life.Options{Logger: log.Logger})
	if err != nil {
		return err
	}
	defer engine.Stop()

	collector := metrics.New()
	defer collector.Attach(engine)()

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(engine, collector, log.Logger, serveCfg)
	httpServer := &http.Server{
		Addr:              serveAddr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		srv.Run(ctx)
		return nil
	})
	g.Go(func() error {
		log.Info("listening", "addr", serveAddr, "width", cfg.Width, "height", cfg.Height, "boundary", cfg.Boundary)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	if serveStart {
		engine.Start()
	}
	return g.Wait()
}
