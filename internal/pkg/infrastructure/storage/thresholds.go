package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/diwise/iot-sensor-monitor/pkg/types"
	"github.com/jackc/pgx/v5"
)

func (s *Storage) QueryThresholds(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.SensorThreshold], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	args := condition.NamedArgs()
	where := condition.Where()

	var offsetLimit string

	if condition.offset != nil {
		offsetLimit += fmt.Sprintf("OFFSET %d ", condition.Offset())
	}

	if condition.limit != nil {
		offsetLimit += fmt.Sprintf("LIMIT %d ", condition.Limit())
	}

	query := fmt.Sprintf(`
		SELECT threshold_id, tenant, device_id, measurement, field, device_column, upper_limit, lower_limit, datasource_id, enabled, count(*) OVER () AS count
		FROM sensor_thresholds
		%s
		ORDER BY threshold_id ASC
		%s
	`, where, offsetLimit)

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return types.Collection[types.SensorThreshold]{}, err
	}

	var (
		thresholdID, tenant, deviceID           string
		measurement, field, deviceColumn        string
		upperLimit, lowerLimit                  *float64
		datasourceID                            string
		enabled                                 bool
		count                                   int64
	)

	thresholds := make([]types.SensorThreshold, 0)

	_, err = pgx.ForEachRow(rows, []any{&thresholdID, &tenant, &deviceID, &measurement, &field, &deviceColumn, &upperLimit, &lowerLimit, &datasourceID, &enabled, &count}, func() error {
		thresholds = append(thresholds, types.SensorThreshold{
			ID:           thresholdID,
			Tenant:       tenant,
			DeviceID:     deviceID,
			Measurement:  measurement,
			Field:        field,
			DeviceColumn: deviceColumn,
			UpperLimit:   copyFloat(upperLimit),
			LowerLimit:   copyFloat(lowerLimit),
			DatasourceID: datasourceID,
			Enabled:      enabled,
		})
		return nil
	})
	if err != nil {
		return types.Collection[types.SensorThreshold]{}, err
	}

	return types.Collection[types.SensorThreshold]{
		Data:       thresholds,
		Count:      uint64(len(thresholds)),
		Offset:     uint64(condition.Offset()),
		Limit:      uint64(condition.Limit()),
		TotalCount: uint64(count),
	}, nil
}

func (s *Storage) AddThreshold(ctx context.Context, t types.SensorThreshold) error {
	if t.ID == "" {
		return ErrNoID
	}

	if t.Tenant == "" {
		return ErrMissingTenant
	}

	args := pgx.NamedArgs{
		"threshold_id":  t.ID,
		"tenant":        t.Tenant,
		"device_id":     t.DeviceID,
		"measurement":   t.Measurement,
		"field":         t.Field,
		"device_column": t.DeviceColumn,
		"upper_limit":   t.UpperLimit,
		"lower_limit":   t.LowerLimit,
		"datasource_id": t.DatasourceID,
		"enabled":       t.Enabled,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO sensor_thresholds (threshold_id, tenant, device_id, measurement, field, device_column, upper_limit, lower_limit, datasource_id, enabled)
		VALUES (@threshold_id, @tenant, @device_id, @measurement, @field, @device_column, @upper_limit, @lower_limit, @datasource_id, @enabled)
		ON CONFLICT (threshold_id) DO UPDATE
		SET upper_limit = EXCLUDED.upper_limit,
			lower_limit = EXCLUDED.lower_limit,
			datasource_id = EXCLUDED.datasource_id,
			enabled = EXCLUDED.enabled,
			modified_on = CURRENT_TIMESTAMP
	`, args)

	return err
}

func (s *Storage) GetDatasources(ctx context.Context, tenant string) ([]types.Datasource, error) {
	args := pgx.NamedArgs{"tenant": tenant}

	rows, err := s.pool.Query(ctx, `
		SELECT datasource_id, tenant, url, database_name, username, password, insecure
		FROM datasources
		WHERE tenant = @tenant
		ORDER BY datasource_id ASC
	`, args)
	if err != nil {
		return nil, err
	}

	var (
		datasourceID, dsTenant, url, database, username, password string
		insecure                                                  bool
	)

	datasources := make([]types.Datasource, 0)

	_, err = pgx.ForEachRow(rows, []any{&datasourceID, &dsTenant, &url, &database, &username, &password, &insecure}, func() error {
		datasources = append(datasources, types.Datasource{
			ID:                 datasourceID,
			Tenant:             dsTenant,
			URL:                url,
			Database:           database,
			Username:           username,
			Password:           password,
			InsecureSkipVerify: insecure,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return datasources, nil
}

func (s *Storage) AddDatasource(ctx context.Context, ds types.Datasource) error {
	if ds.ID == "" {
		return ErrNoID
	}

	if ds.Tenant == "" {
		return ErrMissingTenant
	}

	args := pgx.NamedArgs{
		"datasource_id": ds.ID,
		"tenant":        ds.Tenant,
		"url":           ds.URL,
		"database_name": ds.Database,
		"username":      ds.Username,
		"password":      ds.Password,
		"insecure":      ds.InsecureSkipVerify,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO datasources (datasource_id, tenant, url, database_name, username, password, insecure)
		VALUES (@datasource_id, @tenant, @url, @database_name, @username, @password, @insecure)
		ON CONFLICT (datasource_id) DO UPDATE
		SET url = EXCLUDED.url,
			database_name = EXCLUDED.database_name,
			username = EXCLUDED.username,
			password = EXCLUDED.password,
			insecure = EXCLUDED.insecure
	`, args)

	return err
}

func (s *Storage) AddTenant(ctx context.Context, tenant string) error {
	if tenant == "" {
		return ErrMissingTenant
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO tenants (tenant) VALUES (@tenant)
		ON CONFLICT (tenant) DO NOTHING
	`, pgx.NamedArgs{"tenant": tenant})

	return err
}

func (s *Storage) GetTenants(ctx context.Context) (types.Collection[string], error) {
	rows, err := s.pool.Query(ctx, `SELECT tenant FROM tenants WHERE active ORDER BY tenant ASC`)
	if err != nil {
		return types.Collection[string]{}, err
	}

	var tenant string
	tenants := make([]string, 0)

	_, err = pgx.ForEachRow(rows, []any{&tenant}, func() error {
		tenants = append(tenants, tenant)
		return nil
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Collection[string]{}, ErrNoRows
		}
		return types.Collection[string]{}, err
	}

	return types.Collection[string]{
		Data:       tenants,
		Count:      uint64(len(tenants)),
		TotalCount: uint64(len(tenants)),
	}, nil
}

func copyFloat(f *float64) *float64 {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}
