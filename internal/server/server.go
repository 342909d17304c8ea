// Package server exposes any types.Service as a document store: named query
// and mutation functions served over HTTP by gin. The remote backend is its
// client.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"

	"github.com/mesh-intelligence/propai/internal/remote"
	"github.com/mesh-intelligence/propai/pkg/types"
)

// Indexer mirrors property writes into an external search index.
type Indexer interface {
	Put(p types.Property) error
	Remove(id string) error
}

// handler runs one function against decoded arguments.
type handler func(ctx context.Context, args json.RawMessage) (any, error)

// Server routes function calls to a Service.
type Server struct {
	svc       types.Service
	logger    *slog.Logger
	indexer   Indexer
	origins   []string
	queries   map[string]handler
	mutations map[string]handler
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the request and error logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) { s.logger = logger }
}

// WithIndexer mirrors property writes into idx. Index failures are logged
// and never fail the call.
func WithIndexer(idx Indexer) Option {
	return func(s *Server) { s.indexer = idx }
}

// WithAllowOrigins sets the CORS origins. The default allows any origin.
func WithAllowOrigins(origins ...string) Option {
	return func(s *Server) { s.origins = origins }
}

// New builds a server over svc, which must already be attached.
func New(svc types.Service, opts ...Option) *Server {
	s := &Server{
		svc:       svc,
		logger:    slog.Default(),
		queries:   make(map[string]handler),
		mutations: make(map[string]handler),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.registerProperties()
	s.registerUsers()
	s.registerMessages()
	s.registerCollections()
	s.registerAnalytics()
	return s
}

// Functions lists the registered query and mutation paths.
func (s *Server) Functions() (queries, mutations []string) {
	for path := range s.queries {
		queries = append(queries, path)
	}
	for path := range s.mutations {
		mutations = append(mutations, path)
	}
	return queries, mutations
}

// Router returns the gin engine serving /health, /api/query and /api/mutation.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), s.requestLogger())

	corsConfig := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
		MaxAge:       12 * time.Hour,
	}
	if len(s.origins) == 0 {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = s.origins
	}
	r.Use(cors.New(corsConfig))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.POST("/api/query", s.dispatch(s.queries))
	r.POST("/api/mutation", s.dispatch(s.mutations))
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("document store listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("document store shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) dispatch(table map[string]handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req remote.Request
		if err := c.ShouldBindJSON(&req); err != nil {
			fail(c, http.StatusBadRequest, remote.CodeInvalidArgument, err.Error())
			return
		}
		h, ok := table[req.Path]
		if !ok {
			fail(c, http.StatusNotFound, remote.CodeNotFoundFunction,
				fmt.Sprintf("function %q not found", req.Path))
			return
		}

		value, err := h(c.Request.Context(), req.Args)
		if err != nil {
			code, status := remote.CodeFor(err)
			if status >= http.StatusInternalServerError {
				s.logger.Error("function failed", "path", req.Path, "error", err)
			}
			fail(c, status, code, err.Error())
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": remote.StatusSuccess, "value": value})
	}
}

func fail(c *gin.Context, status int, code, message string) {
	c.JSON(status, remote.Response{
		Status:       remote.StatusError,
		ErrorMessage: message,
		ErrorData:    &remote.ErrorData{Code: code},
	})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}

// decode binds raw JSON args into A and runs its binding validation.
// A missing or null args object decodes as {}.
func decode[A any](raw json.RawMessage) (A, error) {
	var args A
	if len(raw) == 0 || string(raw) == "null" {
		raw = json.RawMessage("{}")
	}
	if err := binding.JSON.BindBody(raw, &args); err != nil {
		return args, fmt.Errorf("%w: %v", types.ErrInvalidData, err)
	}
	return args, nil
}

// register adds fn under path, decoding its arguments into A.
func register[A any](table map[string]handler, path string, fn func(ctx context.Context, args A) (any, error)) {
	table[path] = func(ctx context.Context, raw json.RawMessage) (any, error) {
		args, err := decode[A](raw)
		if err != nil {
			return nil, err
		}
		return fn(ctx, args)
	}
}

// index runs an indexer call and logs its failure.
func (s *Server) index(op string, fn func(Indexer) error) {
	if s.indexer == nil {
		return
	}
	if err := fn(s.indexer); err != nil {
		s.logger.Warn("search index update failed", "op", op, "error", err)
	}
}
