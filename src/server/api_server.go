package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"stocks-api/src/interfaces"
	"stocks-api/src/logger"
	"stocks-api/src/models"

	"github.com/gin-gonic/gin"
)

// -----------------------------------------------------------------------------
// APIServer
// -----------------------------------------------------------------------------

type APIServer struct {
	Config *models.MConfig
	Logger *logger.Logger
	Store  interfaces.IStockTickLister

	engine     *gin.Engine
	httpServer *http.Server
}

// -----------------------------------------------------------------------------
// Constructor
// -----------------------------------------------------------------------------

func NewAPIServer(cfg *models.MConfig, logger *logger.Logger, store interfaces.IStockTickLister) *APIServer {
	// Set Gin mode
	if strings.ToLower(cfg.LogLevel) != "debug" && gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &APIServer{
		Config: cfg,
		Logger: logger,
		Store:  store,
		engine: gin.New(),
	}

	s.engine.Use(
		requestID(),
		accessLog(logger),
		recovery(logger),
		cors(cfg.CORSOrigins),
	)

	s.setupRoutes()

	s.httpServer = &http.Server{
		Addr:              fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// -----------------------------------------------------------------------------
// Route Setup
// -----------------------------------------------------------------------------

func (s *APIServer) setupRoutes() {
	api := s.engine.Group("/api")
	api.GET("/stocks", s.listStocks)
}

// Handler exposes the router, mostly for httptest
func (s *APIServer) Handler() http.Handler {
	return s.engine
}

// -----------------------------------------------------------------------------
// Server Lifecycle
// -----------------------------------------------------------------------------

// Start blocks until the listener fails or Stop is called.
func (s *APIServer) Start() error {
	s.Logger.Info("Server running on %s", s.httpServer.Addr)

	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// -----------------------------------------------------------------------------

func (s *APIServer) Stop(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// -----------------------------------------------------------------------------
// Route Handlers
// -----------------------------------------------------------------------------

// listStocks returns the whole collection. Store failures are reported as-is,
// without retry.
func (s *APIServer) listStocks(c *gin.Context) {
	ticks, err := s.Store.ListStockTicks(c.Request.Context())
	if err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": err.Error()})
		return
	}

	c.JSON(http.StatusOK, ticks)
}
