package accesslog_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KretovDmitry/bank-account/pkg/accesslog"
	"github.com/KretovDmitry/bank-account/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	var handler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, err := w.Write([]byte("test"))
		require.NoError(t, err)
	})

	tests := []struct {
		name      string
		requestID string
	}{
		{name: "given request id", requestID: "abc"},
		{name: "generated request id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, entries := logger.NewForTest()

			r := httptest.NewRequest(http.MethodGet, "/api/accounts/1000000000", nil)
			if tt.requestID != "" {
				r.Header.Set("X-Request-ID", tt.requestID)
			}
			w := httptest.NewRecorder()

			accesslog.Handler(l)(handler).ServeHTTP(w, r)

			require.Equal(t, 1, entries.Len())
			entry := entries.All()[0]
			assert.Equal(t, "GET /api/accounts/1000000000 HTTP/1.1 418 4", entry.Message)

			fields := entry.ContextMap()
			assert.EqualValues(t, http.StatusTeapot, fields["status"])

			got := w.Header().Get("X-Request-ID")
			assert.Equal(t, got, fields["request_id"])
			if tt.requestID != "" {
				assert.Equal(t, tt.requestID, got)
			} else {
				_, err := uuid.Parse(got)
				assert.NoError(t, err)
			}
		})
	}
}
