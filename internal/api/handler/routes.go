package handler

import (
	"net/http"

	"github.com/vfg2006/stock-insight-api/internal/api/handler/router"
	"github.com/vfg2006/stock-insight-api/internal/observability/metrics"
	"github.com/vfg2006/stock-insight-api/internal/usecases/analyzing"
	"github.com/vfg2006/stock-insight-api/internal/usecases/referencing"
	"github.com/vfg2006/stock-insight-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Metrics(path string) []router.Route {
	return []router.Route{
		{
			Path:    path,
			Method:  http.MethodGet,
			Handler: metrics.Handler(),
		},
	}
}

func ReferenceProducts(service referencing.ReferenceService, maxUploadBytes int64) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reference-products/validate-password",
			Method:  http.MethodPost,
			Handler: ValidatePassword(service),
		},
		{
			Path:    "/v1/reference-products",
			Method:  http.MethodGet,
			Handler: ListReferenceProducts(service),
		},
		{
			Path:        "/v1/reference-products",
			Method:      http.MethodPost,
			Handler:     ImportReferenceProducts(service, maxUploadBytes),
			Middlewares: []func(http.Handler) http.Handler{middleware.PasswordGate(service)},
		},
	}
}

func Sales(service analyzing.AnalysisService, opts SalesUploadOptions) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/sales/upload",
			Method:  http.MethodPost,
			Handler: UploadSales(service, opts),
		},
	}
}

func Stock(service analyzing.AnalysisService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/stock/analysis",
			Method:  http.MethodPost,
			Handler: AnalyzeStock(service),
		},
		{
			Path:    "/v1/stock/analysis/export",
			Method:  http.MethodPost,
			Handler: ExportIncorrectStock(service),
		},
	}
}

func CronJobs(services CronJobServices, gate referencing.ReferenceService) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/run/:type",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.PasswordGate(gate)},
		},
		{
			Path:    "/v1/cron/status",
			Method:  http.MethodGet,
			Handler: GetCronStatus(services),
		},
	}
}
