package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/diwise/iot-sensor-monitor/pkg/types"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/samber/lo"
)

// SeedThresholds loads monitored sensors from a semicolon separated file.
//
// thresholdID;tenant;deviceID;measurement;field;deviceColumn;upperLimit;lowerLimit;datasourceID;enabled
func SeedThresholds(ctx context.Context, s *Storage, r io.Reader, allowedTenants []string) error {
	log := logging.GetFromContext(ctx)

	reader := csv.NewReader(r)
	reader.Comma = ';'

	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("could not read thresholds file: %w", err)
	}

	strToFloatPtr := func(s string) *float64 {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil
		}
		return &f
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}

		if len(row) < 10 {
			log.Warn("skipping malformed threshold row", "row", i)
			continue
		}

		tenant := row[1]
		if !lo.Contains(allowedTenants, tenant) {
			log.Warn("tenant not in allowed list, skipping threshold", "tenant", tenant, "threshold_id", row[0])
			continue
		}

		enabled, _ := strconv.ParseBool(row[9])

		t := types.SensorThreshold{
			ID:           row[0],
			Tenant:       tenant,
			DeviceID:     row[2],
			Measurement:  row[3],
			Field:        row[4],
			DeviceColumn: row[5],
			UpperLimit:   strToFloatPtr(row[6]),
			LowerLimit:   strToFloatPtr(row[7]),
			DatasourceID: row[8],
			Enabled:      enabled,
		}

		err = s.AddTenant(ctx, tenant)
		if err != nil {
			return err
		}

		err = s.AddThreshold(ctx, t)
		if err != nil {
			return err
		}
	}

	return nil
}

// SeedDatasources loads time series store connections from a semicolon
// separated file.
//
// datasourceID;tenant;url;database;username;password;insecure
func SeedDatasources(ctx context.Context, s *Storage, r io.Reader, allowedTenants []string) error {
	log := logging.GetFromContext(ctx)

	reader := csv.NewReader(r)
	reader.Comma = ';'

	rows, err := reader.ReadAll()
	if err != nil {
		return fmt.Errorf("could not read datasources file: %w", err)
	}

	for i, row := range rows {
		if i == 0 {
			continue
		}

		if len(row) < 7 {
			log.Warn("skipping malformed datasource row", "row", i)
			continue
		}

		tenant := row[1]
		if !lo.Contains(allowedTenants, tenant) {
			log.Warn("tenant not in allowed list, skipping datasource", "tenant", tenant, "datasource_id", row[0])
			continue
		}

		insecure, _ := strconv.ParseBool(row[6])

		ds := types.Datasource{
			ID:                 row[0],
			Tenant:             tenant,
			URL:                row[2],
			Database:           row[3],
			Username:           row[4],
			Password:           row[5],
			InsecureSkipVerify: insecure,
		}

		err = s.AddTenant(ctx, tenant)
		if err != nil {
			return err
		}

		err = s.AddDatasource(ctx, ds)
		if err != nil {
			return err
		}
	}

	return nil
}
