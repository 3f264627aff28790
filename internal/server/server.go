package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"SwingScanner/internal/model"
	"SwingScanner/internal/runner"
	"SwingScanner/internal/strategy"
	"SwingScanner/internal/universe"
)

const writeWait = 10 * time.Second

// Server exposes scans over HTTP and streams progress over WebSocket.
type Server struct {
	runner   *runner.Manager
	universe *universe.Provider
	ctx      context.Context
	upgrader websocket.Upgrader
	engine   *gin.Engine
	http     *http.Server
}

type wsMessage struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// New builds the router. Scans started over HTTP live as long as ctx.
func New(ctx context.Context, rm *runner.Manager, up *universe.Provider, listen string) *Server {
	s := &Server{
		runner:   rm,
		universe: up,
		ctx:      ctx,
		upgrader: websocket.Upgrader{ReadBufferSize: 1024, WriteBufferSize: 1024},
	}

	r := gin.New()
	r.Use(gin.Recovery(), rateLimitMiddleware(rate.NewLimiter(50, 100)))

	r.GET("/healthz", s.handleHealthz)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/ws", s.handleWS)

	api := r.Group("/api")
	api.GET("/status", s.handleStatus)
	api.POST("/scans", s.handleStartScan)
	api.GET("/scans/latest", s.handleLatest)
	api.GET("/scans/latest/:symbol", s.handleResult)
	api.GET("/universe/:mode", s.handleUniverse)

	s.engine = r
	s.http = &http.Server{Addr: listen, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// ListenAndServe blocks until the server stops. A graceful shutdown is not an error.
func (s *Server) ListenAndServe() error {
	log.Info().Str("addr", s.http.Addr).Msg("http server listening")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.runner.Status())
}

func (s *Server) handleStartScan(c *gin.Context) {
	mode := c.DefaultQuery("mode", universe.ModeQuick)
	err := s.runner.Start(s.ctx, mode, func(report *model.ScanReport, err error) {
		if err != nil {
			log.Error().Err(err).Str("mode", mode).Msg("api scan failed")
		}
	})
	switch {
	case errors.Is(err, runner.ErrScanRunning):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, universe.ErrUnknownMode):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusAccepted, gin.H{"mode": mode, "status": "started"})
	}
}

// handleLatest returns the newest report. q keeps only symbols containing it.
func (s *Server) handleLatest(c *gin.Context) {
	report, ok := s.runner.Latest(c.Query("mode"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no completed scan"})
		return
	}
	if q := strings.ToUpper(strings.TrimSpace(c.Query("q"))); q != "" {
		filtered := *report
		filtered.Results = make([]model.ScoredResult, 0)
		for _, r := range report.Results {
			if strings.Contains(r.Symbol, q) {
				filtered.Results = append(filtered.Results, r)
			}
		}
		report = &filtered
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) handleResult(c *gin.Context) {
	report, ok := s.runner.Latest(c.Query("mode"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "no completed scan"})
		return
	}
	symbol := strings.ToUpper(c.Param("symbol"))
	for i := range report.Results {
		if r := &report.Results[i]; r.Symbol == symbol {
			c.JSON(http.StatusOK, gin.H{"result": r, "verdict": strategy.Verdict(r)})
			return
		}
	}
	c.JSON(http.StatusNotFound, gin.H{"error": "symbol not in latest results"})
}

func (s *Server) handleUniverse(c *gin.Context) {
	symbols, err := s.universe.ListSymbols(c.Param("mode"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"mode": c.Param("mode"), "symbols": symbols})
}

// handleWS sends the current status, then every progress update until the
// client goes away.
func (s *Server) handleWS(c *gin.Context) {
	conn, err := s.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	defer conn.Close()

	updates, unsubscribe := s.runner.Subscribe()
	defer unsubscribe()

	if err := writeJSON(conn, wsMessage{Type: "status", Data: s.runner.Status()}); err != nil {
		return
	}

	closed := make(chan struct{})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-closed:
			return
		case p, ok := <-updates:
			if !ok {
				return
			}
			if err := writeJSON(conn, wsMessage{Type: "progress", Data: p}); err != nil {
				log.Debug().Err(err).Msg("websocket write")
				return
			}
		}
	}
}

func writeJSON(conn *websocket.Conn, v any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(v)
}

func rateLimitMiddleware(limiter *rate.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
			return
		}
		c.Next()
	}
}
