package limiter

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/KretovDmitry/bank-account/internal/application/errs"
)

// Middleware rejects requests over the limit with 429 Too Many Requests.
func Middleware(drl *DynamicRateLimiter) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		f := func(w http.ResponseWriter, r *http.Request) {
			if !drl.Allow() {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusTooManyRequests)
				errJSON := errs.JSON{Error: fmt.Sprintf("%s: try again later", errs.ErrRateLimit)}
				if err := json.NewEncoder(w).Encode(errJSON); err != nil {
					http.Error(w, err.Error(), http.StatusInternalServerError)
				}
				return
			}

			next.ServeHTTP(w, r)
		}
		return http.HandlerFunc(f)
	}
}
