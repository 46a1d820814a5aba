package httpapi

import (
	_ "embed"
	"net/http"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

//go:embed openapi.yaml
var openAPIDocument []byte

var openAPIETag = `"` + strconv.FormatUint(xxhash.Sum64(openAPIDocument), 16) + `"`

// OpenAPI serves the embedded document and answers conditional requests
// with 304 once the client holds the current revision.
func (h *Handler) OpenAPI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.OpenAPI")
	defer span.End()

	w.Header().Set("ETag", openAPIETag)
	w.Header().Set("Cache-Control", "public, max-age=300")
	if r.Header.Get("If-None-Match") == openAPIETag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	w.Header().Set("Content-Type", "application/yaml; charset=utf-8")
	if _, err := w.Write(openAPIDocument); err != nil {
		h.logger.WarnContext(ctx, "write openapi document failed", "error", err)
	}
}

func (h *Handler) SwaggerUI(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SwaggerUI")
	defer span.End()

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(docsPage)); err != nil {
		h.logger.WarnContext(ctx, "write docs page failed", "error", err)
	}
}

const docsPage = `<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Tournament Dashboard API</title>
  <link rel="stylesheet" href="https://unpkg.com/swagger-ui-dist@5/swagger-ui.css">
</head>
<body>
  <div id="docs"></div>
  <script src="https://unpkg.com/swagger-ui-dist@5/swagger-ui-bundle.js"></script>
  <script>
    SwaggerUIBundle({ url: "/openapi.yaml", dom_id: "#docs", docExpansion: "list", tryItOutEnabled: true });
  </script>
</body>
</html>`
