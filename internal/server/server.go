// Package server exposes a Life engine over HTTP: JSON control routes, a
// websocket that streams every board change, and Prometheus metrics.
package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"lifeboard/internal/logging"
	"lifeboard/internal/metrics"
	"lifeboard/pkg/sims/life"
)

// Config tunes buffering and rate limits for websocket clients.
type Config struct {
	SendBuffer        int     `yaml:"send_buffer"`
	BroadcastBuffer   int     `yaml:"broadcast_buffer"`
	MessagesPerSecond float64 `yaml:"messages_per_second"`
	MessageBurst      int     `yaml:"message_burst"`
}

// DefaultConfig returns the standard websocket settings.
func DefaultConfig() Config {
	return Config{
		SendBuffer:        64,
		BroadcastBuffer:   256,
		MessagesPerSecond: 20,
		MessageBurst:      40,
	}
}

// Server routes HTTP and websocket requests to one engine.
type Server struct {
	engine  *life.Engine
	hub     *Hub
	metrics *metrics.Collector
	log     *slog.Logger
	cfg     Config
	router  *gin.Engine

	upgrader websocket.Upgrader
}

// New builds the router. Zero config fields take their defaults and m may
// be nil to leave /metrics unrouted.
func New(e *life.Engine, m *metrics.Collector, log *slog.Logger, cfg Config) *Server {
	if log == nil {
		log = logging.Discard()
	}
	def := DefaultConfig()
	if cfg.SendBuffer < 1 {
		cfg.SendBuffer = def.SendBuffer
	}
	if cfg.BroadcastBuffer < 1 {
		cfg.BroadcastBuffer = def.BroadcastBuffer
	}
	if cfg.MessagesPerSecond <= 0 {
		cfg.MessagesPerSecond = def.MessagesPerSecond
	}
	if cfg.MessageBurst < 1 {
		cfg.MessageBurst = def.MessageBurst
	}
	s := &Server{
		engine:  e,
		hub:     NewHub(log, cfg.BroadcastBuffer),
		metrics: m,
		log:     log,
		cfg:     cfg,
		upgrader: websocket.Upgrader{
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 64 * 1024,
		},
	}

	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	api := r.Group("/api")
	api.GET("/state", s.getState)
	api.GET("/params", s.getParams)
	api.POST("/start", s.simple("start"))
	api.POST("/stop", s.simple("stop"))
	api.POST("/step", s.simple("step"))
	api.POST("/clear", s.simple("clear"))
	api.POST("/toggle", s.postToggle)
	api.POST("/randomize", s.postRandomize)
	api.POST("/interval", s.postInterval)
	api.POST("/resize", s.postResize)

	r.GET("/ws", s.serveWS)
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	if m != nil {
		r.GET("/metrics", gin.WrapH(m.Handler()))
	}
	s.router = r
	return s
}

// Handler returns the HTTP handler for all routes.
func (s *Server) Handler() http.Handler { return s.router }

// Hub exposes the websocket hub.
func (s *Server) Hub() *Hub { return s.hub }

// Run forwards engine events to websocket clients until ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	cancel := s.engine.Subscribe(func(ev life.Event) {
		st := stateOf(s.engine)
		s.hub.Broadcast(Frame{Type: "state", Event: string(ev.Kind), State: &st})
	})
	defer cancel()
	s.hub.Run(ctx)
}

type toggleRequest struct {
	X *int `json:"x" binding:"required"`
	Y *int `json:"y" binding:"required"`
}

type randomizeRequest struct {
	Seed *int64 `json:"seed"`
}

type intervalRequest struct {
	Ms *int `json:"ms" binding:"required"`
}

type resizeRequest struct {
	Width  *int `json:"width" binding:"required"`
	Height *int `json:"height" binding:"required"`
}

func (s *Server) getState(c *gin.Context) {
	c.JSON(http.StatusOK, stateOf(s.engine))
}

func (s *Server) getParams(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"parameters": s.engine.Parameters(),
		"controls":   s.engine.ParameterControls(),
	})
}

func (s *Server) simple(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		s.run(c, Command{Action: action})
	}
}

func (s *Server) postToggle(c *gin.Context) {
	var req toggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.run(c, Command{Action: "toggle", X: *req.X, Y: *req.Y})
}

func (s *Server) postRandomize(c *gin.Context) {
	var req randomizeRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}
	s.run(c, Command{Action: "randomize", Seed: req.Seed})
}

func (s *Server) postInterval(c *gin.Context) {
	var req intervalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.run(c, Command{Action: "interval", Ms: *req.Ms})
}

func (s *Server) postResize(c *gin.Context) {
	var req resizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	s.run(c, Command{Action: "resize", Width: *req.Width, Height: *req.Height})
}

func (s *Server) run(c *gin.Context, cmd Command) {
	if err := apply(s.engine, cmd); err != nil {
		s.log.Debug("command rejected", "action", cmd.Action, "error", err)
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stateOf(s.engine))
}

func (s *Server) serveWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.log.Error("failed to upgrade websocket", "error", err)
		return
	}
	client := newClient(conn, s.cfg.SendBuffer, s.cfg.MessagesPerSecond, s.cfg.MessageBurst)

	st := stateOf(s.engine)
	hello, _ := json.Marshal(Frame{Type: "hello", ID: client.id, State: &st})
	client.send <- hello

	if !s.hub.Register(client) {
		conn.Close()
		return
	}
	go client.writePump()
	client.readPump(s.hub, s.engine)
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log.Debug("http request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"took", time.Since(start),
		)
	}
}
