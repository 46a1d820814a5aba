package httpapi

import (
	"net/http"
	"runtime/debug"

	"github.com/riskibarqy/tournament-dashboard/internal/platform/logging"
)

// RouterOptions carries the deployment switches that shape the route table
// and middleware chain.
type RouterOptions struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
	InternalJobToken   string
}

// NewRouter wires every route behind tracing, access logging, CORS and panic
// recovery, outermost first.
func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.SwaggerEnabled)
	registerCatalogRoutes(mux, handler)
	registerStatisticsRoutes(mux, handler)
	registerInternalJobRoutes(mux, handler, opts.InternalJobToken)

	var chain http.Handler = mux
	chain = recoverPanic(logger, chain)
	chain = CORS(opts.CORSAllowedOrigins, chain)
	chain = RequestLogging(logger, chain)
	return RequestTracing(chain)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.ErrorContext(r.Context(), "panic recovered",
				"panic", rec,
				"method", r.Method,
				"path", r.URL.Path,
				"stack", string(debug.Stack()),
			)
			writeInternalError(r.Context(), w)
		}()
		next.ServeHTTP(w, r)
	})
}
