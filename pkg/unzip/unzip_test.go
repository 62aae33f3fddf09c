package unzip_test

import (
	"bytes"
	"compress/gzip"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/KretovDmitry/bank-account/pkg/logger"
	"github.com/KretovDmitry/bank-account/pkg/unzip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnzip(t *testing.T) {
	echo := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Content-Encoding"))
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		r.Body.Close()
		_, err = w.Write(body)
		require.NoError(t, err)
	})

	mockData := []byte(`{"amount":"25.50"}`)

	tests := []struct {
		name            string
		contentEncoding string
		payload         []byte
		wantStatus      int
		wantBody        string
	}{
		{
			name:            "gzip",
			contentEncoding: "gzip",
			payload:         compress(mockData),
			wantStatus:      http.StatusOK,
		},
		{
			name:            "gzip among codings",
			contentEncoding: "identity, GZIP",
			payload:         compress(mockData),
			wantStatus:      http.StatusOK,
		},
		{
			name:            "identity",
			contentEncoding: "",
			payload:         mockData,
			wantStatus:      http.StatusOK,
		},
		{
			name:            "broken gzip",
			contentEncoding: "gzip",
			payload:         mockData,
			wantStatus:      http.StatusBadRequest,
			wantBody:        `{"error":"invalid request: malformed gzip body: gzip: invalid header"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, _ := logger.NewForTest()

			r := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(tt.payload))
			r.Header.Set("Content-Encoding", tt.contentEncoding)
			w := httptest.NewRecorder()

			unzip.Middleware(l)(echo).ServeHTTP(w, r)

			result := w.Result()
			defer result.Body.Close()

			body, err := io.ReadAll(result.Body)
			require.NoError(t, err)

			assert.Equal(t, tt.wantStatus, result.StatusCode)
			if tt.wantStatus != http.StatusOK {
				assert.JSONEq(t, tt.wantBody, string(body))
				return
			}
			assert.Equal(t, mockData, body)
		})
	}
}

func compress(data []byte) []byte {
	var b bytes.Buffer
	wr := gzip.NewWriter(&b)
	_, err := wr.Write(data)
	if err != nil {
		panic(err)
	}
	wr.Close() // DO NOT DEFER HERE

	return b.Bytes()
}
