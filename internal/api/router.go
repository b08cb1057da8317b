// Luxboard - AR Beacon Interaction Analytics
// Copyright 2026 The Luxboard Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/luxboard/luxboard

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	"github.com/luxboard/luxboard/internal/middleware"
)

// chiMiddleware adapts http.HandlerFunc middleware to chi's
// func(http.Handler) http.Handler so the shared middleware package
// works with r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Router assembles the HTTP routing tree.
type Router struct {
	handler *Handler
	mw      *Middleware
}

// NewRouter creates a router from a handler and middleware factory. A
// nil middleware factory falls back to the secure defaults.
func NewRouter(handler *Handler, mw *Middleware) *Router {
	if mw == nil {
		mw = NewMiddleware(nil)
	}
	return &Router{handler: handler, mw: mw}
}

// SetupChi configures all HTTP routes.
//
// Middleware layering: request IDs, real IP extraction, panic recovery,
// and CORS run globally (CORS must be global so OPTIONS preflight is
// answered before routing). Each route group then adds its own rate
// limit, security headers, and Prometheus instrumentation.
func (rt *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(RequestIDWithLogging())
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.mw.CORS())

	r.Route("/health", func(r chi.Router) {
		r.Use(rt.mw.RateLimitHealth())
		r.Use(APISecurityHeaders())
		r.Get("/", rt.handler.Health)
		r.Get("/live", rt.handler.HealthLive)
		r.Get("/ready", rt.handler.HealthReady)
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(APISecurityHeaders())
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		if rt.handler.perfMon != nil {
			r.Use(rt.handler.perfMon.Middleware)
		}

		r.With(rt.mw.RateLimit()).Get("/status", rt.handler.Status)

		r.Route("/analytics", func(r chi.Router) {
			r.Use(rt.mw.RateLimitAnalytics())
			r.Use(chiMiddleware(middleware.Compression))

			r.Get("/trends", rt.handler.AnalyticsTrends)
			r.Get("/dayparting", rt.handler.AnalyticsDayparting)
			r.Get("/funnel", rt.handler.AnalyticsFunnel)
			r.Get("/clicks/ranking", rt.handler.AnalyticsClickRanking)
			r.Get("/sessions/insights", rt.handler.AnalyticsSessionInsights)
			r.Get("/cohorts", rt.handler.AnalyticsCohorts)
			r.Get("/objects/{id}/marketing", rt.handler.AnalyticsObjectMarketing)
			r.Get("/scenes/comparison", rt.handler.AnalyticsSceneComparison)
			r.Get("/lights/performance", rt.handler.AnalyticsLightPerformance)
			r.Get("/performance/merged", rt.handler.AnalyticsMergedPerformance)
		})

		r.Route("/events", func(r chi.Router) {
			r.Use(rt.mw.RateLimitIngest())
			r.Post("/{kind}", rt.handler.IngestEvent)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(rt.mw.RateLimitWrite())
			r.Post("/reload", rt.handler.ReloadSnapshot)
			r.Get("/performance", rt.handler.PerformanceStats)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	return r
}
