package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront-platform/internal/tenant"
)

// Server wraps the HTTP server setup.
type Server struct {
	httpServer *http.Server
	logger     *log.Logger
	db         *pgxpool.Pool
}

// New builds a Server. The gin engine is wrapped in a host-rewrite handler so
// subdomain storefront requests land on the same /:storeSlug route tree as
// path-addressed ones.
func New(addr string, logger *log.Logger, db *pgxpool.Pool, deps Deps) (*Server, error) {
	router := buildRouter(logger, db, deps)

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           &hostRewriteHandler{engine: router, platformDomain: deps.PlatformDomain},
		ReadHeaderTimeout: 5 * time.Second,
	}

	return &Server{
		httpServer: httpSrv,
		logger:     logger,
		db:         db,
	}, nil
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// hostRewriteHandler runs tenant resolution before gin routing. A request for
// blue-mugs.example.dev/products is rewritten to /blue-mugs/products; platform
// and path-mode requests pass through untouched. Rewriting must happen here,
// outside the engine, because gin middleware runs after route matching.
type hostRewriteHandler struct {
	engine         *gin.Engine
	platformDomain string
}

func (h *hostRewriteHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	res := tenant.Resolve(r.Host, r.URL.Path, h.platformDomain)
	if res.Storefront && res.Subdomain {
		path := r.URL.Path
		if path == "/" {
			path = ""
		}
		r2 := r.Clone(r.Context())
		r2.URL.Path = "/" + res.StoreSlug + path
		r2.URL.RawPath = ""
		h.engine.ServeHTTP(w, r2)
		return
	}
	h.engine.ServeHTTP(w, r)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
