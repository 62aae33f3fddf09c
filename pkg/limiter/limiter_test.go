package limiter_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KretovDmitry/bank-account/pkg/limiter"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	drl := limiter.NewDynamicRateLimiter(time.Hour, 2)
	defer drl.Stop()

	handler := limiter.Middleware(drl)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		codes = append(codes, w.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestUnlimited(t *testing.T) {
	drl := limiter.NewDynamicRateLimiter(0, 1)
	defer drl.Stop()

	for i := 0; i < 1000; i++ {
		if !drl.Allow() {
			t.Fatalf("request %d rejected", i)
		}
	}
}

func TestUpdate(t *testing.T) {
	drl := limiter.NewDynamicRateLimiter(time.Hour, 1)
	defer drl.Stop()

	assert.True(t, drl.Allow())
	assert.False(t, drl.Allow())

	drl.Update(0, 1)

	assert.True(t, drl.Allow())
}
