// Package server exposes the NLU pipeline over HTTP.
package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"nia-nlu/internal/common/logger"
	"nia-nlu/internal/common/observability"
	"nia-nlu/internal/nlu"
)

// Server wires the engine, the optional result cache and the HTTP
// routes.
type Server struct {
	engine *nlu.Engine
	cache  *ResultCache
	log    logger.Logger
	router *gin.Engine
}

// New builds the router. cache may be nil when result caching is
// disabled; obs may be nil in tests.
func New(engine *nlu.Engine, cache *ResultCache, log logger.Logger, obs *observability.Observability) *Server {
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), RequestLogger(log))
	if obs != nil {
		router.Use(Instrument(obs))
	}

	s := &Server{
		engine: engine,
		cache:  cache,
		log:    log,
		router: router,
	}

	router.GET("/health", s.handleHealth)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	ai := router.Group("/api/ai")
	{
		ai.POST("/parse-intent", s.handleParseIntent)
		ai.POST("/nlp/analyze", s.handleAnalyze)
		ai.POST("/model/retrain", s.handleRetrain)
		ai.GET("/model/status", s.handleModelStatus)
	}

	return s
}

// Router exposes the gin engine for http.Server and tests.
func (s *Server) Router() *gin.Engine {
	return s.router
}
