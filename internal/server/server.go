// Package server is the HTTP facade over the QA engine: a liveness
// endpoint, the ask endpoint, and Prometheus metrics. Pipeline errors
// are logged with full detail server-side and translated to generic
// client-visible responses.
package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/crimson-sun/aurora/internal/engine/synth"
)

// ServiceName is reported by the liveness endpoint.
const ServiceName = "Aurora Q&A System"

// Answerer runs the ask pipeline. Implemented by engine.Engine.
type Answerer interface {
	Answer(ctx context.Context, question string) (synth.Result, error)
}

// Server routes HTTP requests to the engine.
type Server struct {
	engine  Answerer
	router  *gin.Engine
	log     *logrus.Entry
	limiter *ipLimiter
}

// Option configures a Server.
type Option func(*Server)

// WithRateLimit enables per-client-IP rate limiting: perSecond refills,
// burst bucket size. Zero perSecond leaves limiting disabled.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(s *Server) {
		if perSecond > 0 {
			s.limiter = newIPLimiter(perSecond, burst)
		}
	}
}

// New creates a Server wrapping the given engine.
func New(ans Answerer, opts ...Option) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{
		engine: ans,
		router: gin.New(),
		log:    logrus.WithField("component", "server"),
	}
	for _, opt := range opts {
		opt(s)
	}
	registerMetrics()

	s.router.Use(gin.Recovery(), s.observe())
	if s.limiter != nil {
		s.router.Use(s.rateLimit())
	}

	s.router.GET("/", s.handleRoot)
	s.router.GET("/ask", s.handleAsk)
	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return s
}

// Handler exposes the router for embedding in an http.Server.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts serving on addr. Blocks until the listener fails.
func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
