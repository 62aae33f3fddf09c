package rest

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/KretovDmitry/bank-account/internal/application/services"
	"github.com/KretovDmitry/bank-account/internal/config"
	"github.com/KretovDmitry/bank-account/internal/domain/entities"
	"github.com/KretovDmitry/bank-account/internal/infrastructure/db/memory"
	"github.com/KretovDmitry/bank-account/pkg/limiter"
	"github.com/KretovDmitry/bank-account/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testNumber entities.AccountNumber = 4_532_015_112

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	l, _ := logger.NewForTest()

	generate := func() entities.AccountNumber { return testNumber }
	service, err := services.NewAccountService(memory.NewAccountRepository(), &memory.Transactor{},
		generate, l, &config.Config{AccountNumberAttempts: 1})
	require.NoError(t, err)

	drl := limiter.NewDynamicRateLimiter(0, 1)
	t.Cleanup(drl.Stop)

	router := InitChi(l, drl)
	NewAccountController(service, ChiServerOptions{BaseURL: "/api", BaseRouter: router})

	ts := httptest.NewServer(router)
	t.Cleanup(ts.Close)

	return ts
}

func do(t *testing.T, ts *httptest.Server, method, path, contentType, body string) (int, string) {
	t.Helper()

	req, err := http.NewRequest(method, ts.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	data, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res.StatusCode, strings.TrimSpace(string(data))
}

func TestOpen(t *testing.T) {
	path := "/api/accounts"

	type want struct {
		statusCode int
		response   string
	}

	tests := []struct {
		name        string
		contentType string
		payload     string
		want        want
	}{
		{
			name:        "OK",
			contentType: "application/json",
			payload:     `{"first_name":"John","last_name":"Doe","national_id":"123-45-6789","balance":"100.0"}`,
			want: want{
				statusCode: http.StatusCreated,
				response:   `{"number":4532015112,"first_name":"John","last_name":"Doe","balance":"100"}`,
			},
		},
		{
			name:        "numeric balance",
			contentType: "application/json; charset=utf-8",
			payload:     `{"first_name":"Jane","last_name":"Roe","balance":-5.25}`,
			want: want{
				statusCode: http.StatusCreated,
				response:   `{"number":4532015112,"first_name":"Jane","last_name":"Roe","balance":"-5.25"}`,
			},
		},
		{
			name:        "invalid content type",
			contentType: "text/plain",
			payload:     `{}`,
			want: want{
				statusCode: http.StatusBadRequest,
				response:   `{"error":"invalid request: invalid content type"}`,
			},
		},
		{
			name:        "empty body",
			contentType: "application/json",
			payload:     "",
			want: want{
				statusCode: http.StatusBadRequest,
				response:   `{"error":"invalid request: empty body"}`,
			},
		},
		{
			name:        "invalid data type: first name is number",
			contentType: "application/json",
			payload:     `{"first_name":123}`,
			want: want{
				statusCode: http.StatusBadRequest,
				response:   `{"error":"invalid request: first_name must be of type string, got number"}`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts := newTestServer(t)

			code, body := do(t, ts, http.MethodPost, path, tt.contentType, tt.payload)

			assert.Equal(t, tt.want.statusCode, code)
			assert.JSONEq(t, tt.want.response, body)
		})
	}
}

func TestOpenConflict(t *testing.T) {
	ts := newTestServer(t)

	payload := `{"first_name":"John","last_name":"Doe"}`

	code, _ := do(t, ts, http.MethodPost, "/api/accounts", "application/json", payload)
	require.Equal(t, http.StatusCreated, code)

	// The generator always returns the same number.
	code, body := do(t, ts, http.MethodPost, "/api/accounts", "application/json", payload)
	assert.Equal(t, http.StatusConflict, code)
	assert.Contains(t, body, "data conflict")
}

func TestAccountOperations(t *testing.T) {
	ts := newTestServer(t)

	code, _ := do(t, ts, http.MethodPost, "/api/accounts", "application/json",
		`{"first_name":"John","last_name":"Doe","balance":"100"}`)
	require.Equal(t, http.StatusCreated, code)

	base := "/api/accounts/" + testNumber.String()

	// No history yet.
	code, _ = do(t, ts, http.MethodGet, base+"/operations", "", "")
	assert.Equal(t, http.StatusNoContent, code)

	steps := []struct {
		name         string
		path         string
		payload      string
		wantCode     int
		wantResponse string
	}{
		{
			name:         "withdraw",
			path:         base + "/withdraw",
			payload:      `{"amount":"50.0"}`,
			wantCode:     http.StatusOK,
			wantResponse: `{"operation":"WITHDRAWAL","status":"SUCCEEDED","amount":"50","balance":"50","message":"John Doe withdrew $50.00. Current Balance $50.00"}`,
		},
		{
			name:         "withdraw too much",
			path:         base + "/withdraw",
			payload:      `{"amount":"150.0"}`,
			wantCode:     http.StatusPaymentRequired,
			wantResponse: `{"operation":"WITHDRAWAL","status":"INSUFFICIENT_FUNDS","amount":"150","balance":"50","message":"Unable to withdraw 150.00 for John Doe due to insufficient funds."}`,
		},
		{
			name:         "deposit",
			path:         base + "/deposit",
			payload:      `{"amount":25.5}`,
			wantCode:     http.StatusOK,
			wantResponse: `{"operation":"DEPOSIT","status":"SUCCEEDED","amount":"25.5","balance":"75.5","message":"John Doe deposited $25.50. Current Balance $75.50"}`,
		},
		{
			name:         "negative deposit",
			path:         base + "/deposit",
			payload:      `{"amount":"-1"}`,
			wantCode:     http.StatusBadRequest,
			wantResponse: `{"error":"invalid amount: deposit of -1"}`,
		},
		{
			name:         "fraction of a cent",
			path:         base + "/deposit",
			payload:      `{"amount":"0.004"}`,
			wantCode:     http.StatusBadRequest,
			wantResponse: `{"error":"invalid amount: deposit of 0.004"}`,
		},
		{
			name:         "missing amount",
			path:         base + "/withdraw",
			payload:      `{}`,
			wantCode:     http.StatusBadRequest,
			wantResponse: `{"error":"invalid amount: withdrawal of 0"}`,
		},
		{
			name:         "unknown account",
			path:         "/api/accounts/1000000000/deposit",
			payload:      `{"amount":"1"}`,
			wantCode:     http.StatusNotFound,
			wantResponse: `{"error":"not found: account 1000000000"}`,
		},
		{
			name:         "malformed account number",
			path:         "/api/accounts/42/deposit",
			payload:      `{"amount":"1"}`,
			wantCode:     http.StatusBadRequest,
			wantResponse: `{"error":"invalid account number: 42 out of range"}`,
		},
		{
			name:         "signed account number",
			path:         "/api/accounts/+" + testNumber.String() + "/deposit",
			payload:      `{"amount":"1"}`,
			wantCode:     http.StatusBadRequest,
			wantResponse: `{"error":"invalid account number: \"+4532015112\""}`,
		},
	}

	for _, step := range steps {
		code, body := do(t, ts, http.MethodPost, step.path, "application/json", step.payload)
		assert.Equal(t, step.wantCode, code, step.name)
		assert.JSONEq(t, step.wantResponse, body, step.name)
	}

	code, body := do(t, ts, http.MethodGet, base, "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"number":4532015112,"first_name":"John","last_name":"Doe","balance":"75.5"}`, body)

	code, body = do(t, ts, http.MethodGet, base+"/operations", "", "")
	require.Equal(t, http.StatusOK, code)

	var history []struct {
		Operation string `json:"operation"`
		Status    string `json:"status"`
		Sum       string `json:"sum"`
	}
	require.NoError(t, json.Unmarshal([]byte(body), &history))
	require.Len(t, history, 3)
	assert.Equal(t, "DEPOSIT", history[0].Operation)
	assert.Equal(t, "INSUFFICIENT_FUNDS", history[1].Status)
	assert.Equal(t, "50", history[2].Sum)

	code, _ = do(t, ts, http.MethodGet, "/api/accounts/1000000000/operations", "", "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestGetAccountNotFound(t *testing.T) {
	ts := newTestServer(t)

	code, body := do(t, ts, http.MethodGet, "/api/accounts/1000000000", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.JSONEq(t, `{"error":"not found: account 1000000000"}`, body)

	code, _ = do(t, ts, http.MethodGet, "/api/accounts/abc", "", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestGenerateAccountNumber(t *testing.T) {
	ts := newTestServer(t)

	code, body := do(t, ts, http.MethodPost, "/api/account-numbers", "", "")
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"number":4532015112}`, body)
}

func TestGzipRequest(t *testing.T) {
	ts := newTestServer(t)

	var b bytes.Buffer
	zw := gzip.NewWriter(&b)
	_, err := zw.Write([]byte(`{"first_name":"John","last_name":"Doe","balance":"1"}`))
	require.NoError(t, err)
	require.NoError(t, zw.Close())

	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/accounts", &b)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Content-Encoding", "gzip")

	res, err := ts.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()

	assert.Equal(t, http.StatusCreated, res.StatusCode)
	assert.NotEmpty(t, res.Header.Get("X-Request-ID"))
}
