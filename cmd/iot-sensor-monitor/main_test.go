package main

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/matryer/is"
)

func TestParseExternalConfigFile(t *testing.T) {
	is := is.New(t)

	cfg, err := parseExternalConfigFile(context.Background(), io.NopCloser(bytes.NewBufferString(configYaml)))
	is.NoErr(err)

	is.Equal(45, cfg.AlertConfig.EscalateToMediumAfterMinutes)
	is.Equal(120, cfg.AlertConfig.EscalateToHighAfterMinutes)
	is.Equal(30, cfg.MonitoringConfig.WindowMinutes)
	is.Equal(1, cfg.MonitoringConfig.BucketMinutes)
	is.Equal(15, cfg.SchedulerConfig.ScanIntervalSeconds)
	is.Equal(5, cfg.QueryTimeoutSeconds)
}

func TestParseEmptyConfigFileUsesDefaults(t *testing.T) {
	is := is.New(t)

	cfg, err := parseExternalConfigFile(context.Background(), io.NopCloser(bytes.NewBufferString("")))
	is.NoErr(err)

	is.Equal(0, cfg.AlertConfig.EscalateToMediumAfterMinutes)
	is.Equal(0, cfg.SchedulerConfig.ScanIntervalSeconds)
}

const configYaml string = `
alerts:
  escalateToMediumAfterMinutes: 45
  escalateToHighAfterMinutes: 120
monitoring:
  windowMinutes: 30
  bucketMinutes: 1
scheduler:
  scanIntervalSeconds: 15
queryTimeoutSeconds: 5
`
