package rest

import (
	"net/http"

	"github.com/KretovDmitry/bank-account/pkg/accesslog"
	"github.com/KretovDmitry/bank-account/pkg/limiter"
	"github.com/KretovDmitry/bank-account/pkg/logger"
	"github.com/KretovDmitry/bank-account/pkg/unzip"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nanmu42/gzip"
)

func InitChi(logger logger.Logger, drl *limiter.DynamicRateLimiter) *chi.Mux {
	router := chi.NewRouter()
	router.Use(accesslog.Handler(logger))
	router.Use(middleware.Recoverer)
	router.Use(limiter.Middleware(drl))
	router.Use(gzip.DefaultHandler().WrapHandler)
	router.Use(unzip.Middleware(logger))

	return router
}

type (
	MiddlewareFunc func(http.Handler) http.Handler

	ChiServerOptions struct {
		BaseRouter  chi.Router
		BaseURL     string
		Middlewares []MiddlewareFunc
	}
)
