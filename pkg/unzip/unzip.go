// Package unzip inflates gzip-encoded request bodies.
package unzip

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/KretovDmitry/bank-account/internal/application/errs"
	"github.com/KretovDmitry/bank-account/pkg/logger"
)

// gzipBody reads the inflated stream and closes both the stream
// and the original body.
type gzipBody struct {
	body io.ReadCloser
	zr   *gzip.Reader
}

func newGzipBody(body io.ReadCloser) (*gzipBody, error) {
	zr, err := gzip.NewReader(body)
	if err != nil {
		return nil, err
	}
	return &gzipBody{body: body, zr: zr}, nil
}

func (b *gzipBody) Read(p []byte) (int, error) {
	return b.zr.Read(p)
}

func (b *gzipBody) Close() error {
	zerr := b.zr.Close()
	if err := b.body.Close(); err != nil {
		return fmt.Errorf("close request body: %w", err)
	}
	return zerr
}

// isGzip reports whether gzip is among the listed content codings.
func isGzip(contentEncoding string) bool {
	for _, coding := range strings.Split(contentEncoding, ",") {
		if strings.EqualFold(strings.TrimSpace(coding), "gzip") {
			return true
		}
	}
	return false
}

// Middleware replaces a gzip-encoded request body with the inflated one.
// A body that is not valid gzip is answered with 400.
func Middleware(logger logger.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isGzip(r.Header.Get("Content-Encoding")) {
				next.ServeHTTP(w, r)
				return
			}

			body, err := newGzipBody(r.Body)
			if err != nil {
				err = fmt.Errorf("%w: malformed gzip body: %w", errs.ErrInvalidRequest, err)
				logger.With(r.Context()).Error(err)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusBadRequest)
				_ = json.NewEncoder(w).Encode(errs.JSON{Error: err.Error()})
				return
			}
			defer body.Close()

			r.Body = body
			r.Header.Del("Content-Encoding")
			r.Header.Del("Content-Length")
			r.ContentLength = -1

			next.ServeHTTP(w, r)
		})
	}
}
