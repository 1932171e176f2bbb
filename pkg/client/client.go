package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/diwise/iot-sensor-monitor/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/tracing"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel"
)

var tracer = otel.Tracer("sensor-monitor-client")

type SensorMonitorClient interface {
	QueryAlerts(ctx context.Context, tenant string) ([]types.Alert, error)
	GetAlert(ctx context.Context, alertID string) (types.Alert, error)
	TriggerScan(ctx context.Context, tenant string) (types.ScanResult, error)
}

type monitorClient struct {
	url        string
	httpClient http.Client
}

func NewSensorMonitorClient(monitorUrl string) SensorMonitorClient {
	return &monitorClient{
		url: monitorUrl,
		httpClient: http.Client{
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}

func (c *monitorClient) QueryAlerts(ctx context.Context, tenant string) ([]types.Alert, error) {
	var err error
	ctx, span := tracer.Start(ctx, "query-alerts")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	requestUrl := c.url + "/api/v0/alerts"
	if tenant != "" {
		requestUrl += "?tenant=" + url.QueryEscape(tenant)
	}

	respBody, err := c.get(ctx, requestUrl)
	if err != nil {
		return nil, err
	}

	result := struct {
		Data []types.Alert `json:"data"`
	}{}

	err = json.Unmarshal(respBody, &result)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal response body: %w", err)
		return nil, err
	}

	return result.Data, nil
}

func (c *monitorClient) GetAlert(ctx context.Context, alertID string) (types.Alert, error) {
	var err error
	ctx, span := tracer.Start(ctx, "get-alert")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	respBody, err := c.get(ctx, c.url+"/api/v0/alerts/"+url.PathEscape(alertID))
	if err != nil {
		return types.Alert{}, err
	}

	alert := types.Alert{}

	err = json.Unmarshal(respBody, &alert)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal response body: %w", err)
		return types.Alert{}, err
	}

	return alert, nil
}

func (c *monitorClient) TriggerScan(ctx context.Context, tenant string) (types.ScanResult, error) {
	var err error
	ctx, span := tracer.Start(ctx, "trigger-scan")
	defer func() { tracing.RecordAnyErrorAndEndSpan(err, span) }()

	log := logging.GetFromContext(ctx)
	log.Debug("triggering scan", "tenant", tenant)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url+"/api/v0/scans/"+url.PathEscape(tenant), nil)
	if err != nil {
		err = fmt.Errorf("failed to create http request: %w", err)
		return types.ScanResult{}, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		err = fmt.Errorf("failed to trigger scan: %w", err)
		return types.ScanResult{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err = fmt.Errorf("scan request failed with status code %d", resp.StatusCode)
		return types.ScanResult{}, err
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		err = fmt.Errorf("failed to read response body: %w", err)
		return types.ScanResult{}, err
	}

	result := types.ScanResult{}

	err = json.Unmarshal(respBody, &result)
	if err != nil {
		err = fmt.Errorf("failed to unmarshal response body: %w", err)
		return types.ScanResult{}, err
	}

	return result, nil
}

func (c *monitorClient) get(ctx context.Context, requestUrl string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestUrl, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create http request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request failed with status code %d", resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return respBody, nil
}
