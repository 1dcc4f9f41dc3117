// Wires routes, handlers, and middleware into one http.Handler.

package server

import (
	"net/http"

	"github.com/partsd/partsd/internal/catalog"
	"github.com/partsd/partsd/internal/config"
	"github.com/partsd/partsd/internal/server/dto"
	"github.com/partsd/partsd/internal/server/handlers"
	"github.com/partsd/partsd/internal/server/ratelimit"
)

// NewRouter creates and configures the HTTP router. The returned limiters
// are owned by the router; Close them on shutdown via the returned cleanup.
func NewRouter(store *catalog.Store, loader *catalog.Loader, cfg *config.Config, version string) (http.Handler, func()) {
	readTier := &ratelimit.Tier{
		Name:    "read",
		Limiter: ratelimit.NewLimiter(cfg.RateLimits.Read.Requests, cfg.RateLimits.Read.Window.Std(), cfg.RateLimits.Read.Burst),
	}
	reloadTier := &ratelimit.Tier{
		Name:    "reload",
		Limiter: ratelimit.NewLimiter(cfg.RateLimits.Reload.Requests, cfg.RateLimits.Reload.Window.Std(), cfg.RateLimits.Reload.Burst),
	}
	readLimit := readTier.Middleware(ClientIP)
	reloadLimit := reloadTier.Middleware(ClientIP)

	ph := handlers.NewPartsHandler(store, cfg.PageSize)
	ah := handlers.NewAdminHandler(loader)
	hh := handlers.NewHealthHandler(store, version)

	mux := &http.ServeMux{}
	mux.Handle("GET /{$}", readLimit(Wrap(hh.Health)))
	mux.Handle("GET /spare-parts", readLimit(Wrap(ph.List)))
	mux.Handle("GET /spare-parts/{id}", readLimit(Wrap(ph.Get)))
	mux.Handle("POST /reload", reloadLimit(Wrap(ah.Reload)))
	// Unmatched paths get the JSON error envelope instead of the mux default.
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, dto.NotFound("Route"))
	}))

	handler := Recover(RequestLogger(CORS(cfg.CORSOrigin)(mux)))
	cleanup := func() {
		readTier.Limiter.Close()
		reloadTier.Limiter.Close()
	}
	return handler, cleanup
}
