package controllers

import (
	"net/http"

	"github.com/emberworks/storefront-backend/api/responses"
	"github.com/emberworks/storefront-backend/internal/analytics"
	pkgerrors "github.com/emberworks/storefront-backend/pkg/errors"
	"github.com/emberworks/storefront-backend/pkg/logger"
)

// AnalyticsSummary returns the dashboard headline counters. Admin only.
func AnalyticsSummary(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		summary, err := svc.Summary(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// AnalyticsDailySales returns the trailing seven day series. Admin only.
func AnalyticsDailySales(svc analytics.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "analytics service unavailable"))
			return
		}

		series, err := svc.DailySales(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, series)
	}
}
