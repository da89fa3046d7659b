package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/secmon-lab/riskcalc/pkg/domain/model"
	"github.com/secmon-lab/riskcalc/pkg/utils/errutil"
	"github.com/secmon-lab/riskcalc/pkg/utils/logging"
)

// DefaultBodyLimit caps the size of JSON request bodies
const DefaultBodyLimit int64 = 10 << 20

// DefaultAllowedOrigins are the browser origins accepted when none are configured
var DefaultAllowedOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
}

// RiskUseCase is the scoring surface the HTTP layer depends on
type RiskUseCase interface {
	Models() *model.ModelCatalog
	Calculate(req model.CalculateRequest) (*model.RiskResult, error)
	RunBatch(items []model.BatchItem) (*model.BatchResult, error)
}

type Server struct {
	router         *chi.Mux
	riskUC         RiskUseCase
	metrics        *Metrics
	allowedOrigins []string
	bodyLimit      int64
	now            func() time.Time
}

type Options func(*Server)

func WithMetrics(m *Metrics) Options {
	return func(s *Server) {
		s.metrics = m
	}
}

func WithAllowedOrigins(origins []string) Options {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

func WithBodyLimit(limit int64) Options {
	return func(s *Server) {
		s.bodyLimit = limit
	}
}

// WithClock overrides the time source of the health endpoint
func WithClock(now func() time.Time) Options {
	return func(s *Server) {
		s.now = now
	}
}

func New(riskUC RiskUseCase, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:         r,
		riskUC:         riskUC,
		allowedOrigins: DefaultAllowedOrigins,
		bodyLimit:      DefaultBodyLimit,
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", healthHandler(s.now))
		r.Route("/risks", func(r chi.Router) {
			r.Get("/models", modelsHandler(s.riskUC))
			r.Post("/calculate", calculateHandler(s.riskUC, s.metrics, s.bodyLimit))
			r.Post("/batch", batchHandler(s.riskUC, s.metrics, s.bodyLimit))
		})
	})

	if s.metrics != nil {
		r.Handle("/metrics", s.metrics.Handler())
	}

	// Unknown paths and methods share the JSON 404 envelope
	r.NotFound(notFoundHandler)
	r.MethodNotAllowed(notFoundHandler)

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
		ctx := logging.With(r.Context(), logger)

		defer func() {
			logger.Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r.WithContext(ctx))
	})
}

type notFoundResponse struct {
	Message string `json:"message"`
	Path    string `json:"path"`
	Method  string `json:"method"`
}

func notFoundHandler(w http.ResponseWriter, r *http.Request) {
	errutil.WriteJSON(r.Context(), w, http.StatusNotFound, notFoundResponse{
		Message: "Endpoint not found",
		Path:    r.URL.Path,
		Method:  r.Method,
	})
}
