package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"log/slog"

	"github.com/diwise/iot-sensor-monitor/internal/pkg/application/alerts"
	"github.com/diwise/iot-sensor-monitor/internal/pkg/application/monitoring"
	"github.com/diwise/iot-sensor-monitor/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-sensor-monitor/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("iot-sensor-monitor/api")

func RegisterHandlers(ctx context.Context, router *chi.Mux, alertSvc alerts.AlertService, monitor monitoring.Monitor, thresholds monitoring.ThresholdProvider) (*chi.Mux, error) {

	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Handle("/metrics", promhttp.Handler())

	log := logging.GetFromContext(ctx)

	router.Route("/api/v0", func(r chi.Router) {
		r.Route("/alerts", func(r chi.Router) {
			r.Get("/", queryAlertsHandler(log, alertSvc))
			r.Get("/{alertID}", getAlertDetails(log, alertSvc))
		})

		r.Get("/thresholds", queryThresholdsHandler(log, thresholds))
		r.Post("/scans/{tenant}", triggerScanHandler(log, monitor))
	})

	return router, nil
}

type meta struct {
	Count        uint64 `json:"count"`
	Offset       uint64 `json:"offset"`
	Limit        uint64 `json:"limit"`
	TotalRecords uint64 `json:"totalRecords"`
}

type apiResponse[T any] struct {
	Data []T  `json:"data"`
	Meta meta `json:"meta"`
}

func newApiResponse[T any](c types.Collection[T]) apiResponse[T] {
	return apiResponse[T]{
		Data: c.Data,
		Meta: meta{
			Count:        c.Count,
			Offset:       c.Offset,
			Limit:        c.Limit,
			TotalRecords: c.TotalCount,
		},
	}
}

func queryAlertsHandler(log *slog.Logger, svc alerts.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-alerts")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		offset := parseUintParam(r, "offset", 0)
		limit := parseUintParam(r, "limit", 100)
		tenants := r.URL.Query()["tenant"]

		collection, err := svc.Query(ctx, offset, limit, tenants)
		if err != nil {
			requestLogger.Error("unable to fetch alerts", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		b, err := json.Marshal(newApiResponse(collection))
		if err != nil {
			requestLogger.Error("unable to marshal alerts", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	}
}

func getAlertDetails(log *slog.Logger, svc alerts.AlertService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "get-alert")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		alertID := chi.URLParam(r, "alertID")
		if alertID != "" {
			requestLogger = requestLogger.With(slog.String("alert_id", alertID))
		}

		tenants := r.URL.Query()["tenant"]

		alert, err := svc.GetByID(ctx, alertID, tenants)
		if errors.Is(err, alerts.ErrAlertNotFound) {
			requestLogger.Debug("alert not found")
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err != nil {
			requestLogger.Error("could not fetch alert", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		b, err := json.Marshal(alert)
		if err != nil {
			requestLogger.Error("unable to marshal alert", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	}
}

func queryThresholdsHandler(log *slog.Logger, provider monitoring.ThresholdProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "query-thresholds")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		conditions := []storage.ConditionFunc{
			storage.WithOffset(parseUintParam(r, "offset", 0)),
			storage.WithLimit(parseUintParam(r, "limit", 100)),
		}

		if tenants := r.URL.Query()["tenant"]; len(tenants) > 0 {
			conditions = append(conditions, storage.WithTenants(tenants))
		}

		collection, err := provider.QueryThresholds(ctx, conditions...)
		if err != nil {
			requestLogger.Error("unable to fetch thresholds", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		b, err := json.Marshal(newApiResponse(collection))
		if err != nil {
			requestLogger.Error("unable to marshal thresholds", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	}
}

func triggerScanHandler(log *slog.Logger, monitor monitoring.Monitor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var err error
		defer r.Body.Close()

		ctx, span := tracer.Start(r.Context(), "trigger-scan")
		defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()
		_, ctx, requestLogger := o11y.AddTraceIDToLoggerAndStoreInContext(span, log, ctx)

		tenant := chi.URLParam(r, "tenant")
		if tenant != "" {
			requestLogger = requestLogger.With(slog.String("tenant", tenant))
		}

		result, err := monitor.RunScan(ctx, tenant)
		if errors.Is(err, monitoring.ErrNoDatasource) {
			requestLogger.Debug("no datasource configured for tenant")
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if err != nil {
			requestLogger.Error("scan failed", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		b, err := json.Marshal(result)
		if err != nil {
			requestLogger.Error("unable to marshal scan result", "err", err.Error())
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.Header().Add("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(b)
	}
}

func parseUintParam(r *http.Request, name string, defaultValue int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return defaultValue
	}

	parsed, err := strconv.Atoi(v)
	if err != nil || parsed < 0 {
		return defaultValue
	}

	return parsed
}
