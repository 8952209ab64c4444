// Package api exposes claim verification over HTTP.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/truthpulse/truthpulse/internal/explain"
	"github.com/truthpulse/truthpulse/internal/model"
	"github.com/truthpulse/truthpulse/internal/store"
	"github.com/truthpulse/truthpulse/internal/workflow"
)

// Runner executes the verification workflow for one claim
type Runner interface {
	Run(ctx context.Context, claim, userID string) workflow.State
}

// Recorder persists and retrieves verification records. A nil Recorder
// disables persistence; verify still works, history endpoints return 503.
type Recorder interface {
	Save(record store.Record) error
	Get(id string) (store.Record, error)
	List(limit int) ([]store.Record, error)
}

// Server is the HTTP front end
type Server struct {
	runner Runner
	store  Recorder
	cfg    model.ServerConfig
	log    *zap.Logger
}

// New creates a Server
func New(runner Runner, recorder Recorder, cfg model.ServerConfig, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{runner: runner, store: recorder, cfg: cfg, log: log}
}

// Router builds the HTTP routes
func (s *Server) Router() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:  s.cfg.AllowedOrigins,
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}))

	router.GET("/healthz", s.handleHealth)

	v1 := router.Group("/api/v1")
	v1.POST("/verify", s.handleVerify)
	v1.GET("/verifications", s.handleList)
	v1.GET("/verifications/:id", s.handleGet)

	return router
}

// Start serves until the context is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port),
		Handler: s.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "OK", "service": "truthpulse"})
}

type verifyRequest struct {
	Claim  string `json:"claim" binding:"required"`
	UserID string `json:"user_id"`
}

type verifyResponse struct {
	workflow.Response
	VerificationID string               `json:"verification_id"`
	Explanation    *explain.Explanation `json:"explanation,omitempty"`
}

func (s *Server) handleVerify(c *gin.Context) {
	var req verifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	state := s.runner.Run(c.Request.Context(), req.Claim, req.UserID)
	resp := verifyResponse{
		Response:       state.Response(),
		VerificationID: state.VerificationID,
	}

	if state.VerificationResult != nil {
		explanation := explain.Explain(*state.VerificationResult)
		resp.Explanation = &explanation
		s.persist(state)
	}

	c.JSON(http.StatusOK, resp)
}

// persist saves a completed verification, best effort
func (s *Server) persist(state workflow.State) {
	if s.store == nil {
		return
	}

	record := store.Record{
		ID:         state.VerificationID,
		UserID:     state.UserID,
		Claim:      state.Claim,
		Verdict:    state.VerificationResult.Verdict,
		Confidence: state.VerificationResult.Confidence,
		Rationale:  state.VerificationResult.Rationale,
		Evidence:   state.VerificationResult.Evidence,
		CreatedAt:  state.Timestamp,
	}
	if state.DetectionResult != nil {
		record.Notes = state.DetectionResult.Notes
	}

	if err := s.store.Save(record); err != nil {
		s.log.Warn("failed to persist verification",
			zap.String("id", state.VerificationID),
			zap.Error(err))
	}
}

func (s *Server) handleGet(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence not configured"})
		return
	}

	record, err := s.store.Get(c.Param("id"))
	if errors.Is(err, store.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "verification not found"})
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, record)
}

func (s *Server) handleList(c *gin.Context) {
	if s.store == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "persistence not configured"})
		return
	}

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = parsed
	}

	records, err := s.store.List(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if records == nil {
		records = []store.Record{}
	}

	c.JSON(http.StatusOK, gin.H{"verifications": records, "count": len(records)})
}
