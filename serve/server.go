// Package serve runs the daemon: a gin HTTP API around the pipeline,
// an optional cron schedule, and optional Kafka stage events.
package serve

import (
	"context"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"uqbar/config"
	"uqbar/serve/state"
)

// RunFunc executes one full pipeline run.
type RunFunc func(ctx context.Context) error

// Server exposes the run trigger and status endpoints.
type Server struct {
	cfg    *config.Config
	state  *state.Manager
	run    RunFunc
	engine *gin.Engine
	cron   *cron.Cron
}

func NewServer(cfg *config.Config, manager *state.Manager, run RunFunc) *Server {
	s := &Server{
		cfg:   cfg,
		state: manager,
		run:   run,
		cron:  cron.New(),
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	engine.POST("/run", s.handleRun)
	engine.GET("/status", s.handleStatus)
	engine.GET("/healthz", s.handleHealth)

	s.engine = engine
	return s
}

// Start blocks serving HTTP. The cron schedule, when configured, fires
// runs through the same guard as POST /run.
func (s *Server) Start() error {
	if s.cfg.CronSpec != "" {
		if _, err := s.cron.AddFunc(s.cfg.CronSpec, func() {
			log.Info("cron triggered pipeline run")
			s.tryRun()
		}); err != nil {
			return err
		}
		s.cron.Start()
		log.Info("cron schedule active", "spec", s.cfg.CronSpec)
	}

	addr := ":" + s.cfg.ServePort
	log.Info("serving", "addr", addr)
	return s.engine.Run(addr)
}

// tryRun starts a run unless one is active. Returns the run id.
func (s *Server) tryRun() (string, bool) {
	runID, ok := s.state.Begin()
	if !ok {
		return "", false
	}

	go func() {
		if err := s.run(context.Background()); err != nil {
			// The runner already reported the failure into state.
			log.Error("pipeline run failed", "run_id", runID, "err", err)
			return
		}
		s.state.Complete()
	}()

	return runID, true
}

func (s *Server) handleRun(c *gin.Context) {
	runID, ok := s.tryRun()
	if !ok {
		c.JSON(http.StatusConflict, gin.H{
			"error": "a pipeline run is already active",
			"state": s.state.State(),
		})
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "started", "run_id": runID})
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, s.state.GetStatus())
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Engine exposes the router for tests.
func (s *Server) Engine() *gin.Engine { return s.engine }
