package middleware

import (
	"compress/gzip"
	"io"
	"net/http"
	"strings"
)

// CompressionMiddleware gzips JSON API responses. Validation summaries for
// large mapping sets repeat the same suggestion strings many times and
// compress well.
func CompressionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("Accept-Encoding"), "gzip") {
			next.ServeHTTP(w, r)
			return
		}

		if !shouldCompress(r) {
			next.ServeHTTP(w, r)
			return
		}

		gz := gzip.NewWriter(w)
		defer gz.Close()

		w.Header().Set("Content-Encoding", "gzip")
		w.Header().Set("Vary", "Accept-Encoding")

		next.ServeHTTP(&gzipResponseWriter{ResponseWriter: w, writer: gz}, r)
	})
}

// gzipResponseWriter wraps http.ResponseWriter with gzip compression
type gzipResponseWriter struct {
	http.ResponseWriter
	writer io.Writer
}

func (gzw *gzipResponseWriter) Write(data []byte) (int, error) {
	return gzw.writer.Write(data)
}

// shouldCompress limits compression to the JSON API surface. The metrics
// endpoint negotiates its own encoding and must not be double-compressed.
func shouldCompress(r *http.Request) bool {
	if r.Header.Get("Content-Encoding") != "" {
		return false
	}
	if strings.HasPrefix(r.URL.Path, "/metrics") {
		return false
	}
	return strings.HasPrefix(r.URL.Path, "/api/")
}
