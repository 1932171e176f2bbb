package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/iot-sensor-monitor/pkg/types"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const uniqueViolation = "23505"

// AddAlert stores a new alert. A partial unique index on active statuses
// guarantees at most one open alert per threshold, so a concurrent insert
// for the same threshold surfaces as ErrAlreadyExists.
func (s *Storage) AddAlert(ctx context.Context, alert types.Alert) error {
	if alert.ID == "" || alert.ThresholdID == "" {
		return ErrNoID
	}

	if alert.Tenant == "" {
		return ErrMissingTenant
	}

	args := pgx.NamedArgs{
		"alert_id":               alert.ID,
		"threshold_id":           alert.ThresholdID,
		"tenant":                 alert.Tenant,
		"status":                 alert.Status,
		"breach_type":            alert.BreachType,
		"breach_value":           alert.BreachValue,
		"limit_value":            alert.LimitValue,
		"created_at":             alert.CreatedAt,
		"escalated_to_medium_at": alert.EscalatedToMediumAt,
		"escalated_to_high_at":   alert.EscalatedToHighAt,
		"resolved_at":            alert.ResolvedAt,
	}

	_, err := s.pool.Exec(ctx, `
		INSERT INTO alerts (alert_id, threshold_id, tenant, status, breach_type, breach_value, limit_value, created_at, escalated_to_medium_at, escalated_to_high_at, resolved_at)
		VALUES (@alert_id, @threshold_id, @tenant, @status, @breach_type, @breach_value, @limit_value, @created_at, @escalated_to_medium_at, @escalated_to_high_at, @resolved_at)
	`, args)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return ErrAlreadyExists
		}
		return err
	}

	return nil
}

func (s *Storage) UpdateAlert(ctx context.Context, alert types.Alert) error {
	if alert.ID == "" {
		return ErrNoID
	}

	args := pgx.NamedArgs{
		"alert_id":               alert.ID,
		"status":                 alert.Status,
		"breach_value":           alert.BreachValue,
		"escalated_to_medium_at": alert.EscalatedToMediumAt,
		"escalated_to_high_at":   alert.EscalatedToHighAt,
		"resolved_at":            alert.ResolvedAt,
	}

	tag, err := s.pool.Exec(ctx, `
		UPDATE alerts
		SET status = @status,
			breach_value = @breach_value,
			escalated_to_medium_at = @escalated_to_medium_at,
			escalated_to_high_at = @escalated_to_high_at,
			resolved_at = @resolved_at
		WHERE alert_id = @alert_id
	`, args)
	if err != nil {
		return err
	}

	if tag.RowsAffected() == 0 {
		return ErrNoRows
	}

	return nil
}

// GetActiveAlert returns the single open alert for a threshold, or ErrNoRows.
func (s *Storage) GetActiveAlert(ctx context.Context, thresholdID string) (types.Alert, error) {
	return s.GetAlert(ctx, WithThresholdID(thresholdID), WithActive(true))
}

func (s *Storage) GetAlert(ctx context.Context, conditions ...ConditionFunc) (types.Alert, error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	args := condition.NamedArgs()
	where := condition.Where()

	query := fmt.Sprintf(`
		SELECT alert_id, threshold_id, tenant, status, breach_type, breach_value, limit_value, created_at, escalated_to_medium_at, escalated_to_high_at, resolved_at
		FROM alerts
		%s
		ORDER BY created_at DESC
		LIMIT 1
	`, where)

	alert, err := scanAlert(s.pool.QueryRow(ctx, query, args))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return types.Alert{}, ErrNoRows
		}
		return types.Alert{}, err
	}

	return alert, nil
}

func (s *Storage) QueryAlerts(ctx context.Context, conditions ...ConditionFunc) (types.Collection[types.Alert], error) {
	condition := &Condition{}
	for _, f := range conditions {
		f(condition)
	}

	if condition.sortBy == "" {
		condition.sortBy = "created_at"
		condition.sortOrder = "DESC"
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
		SELECT alert_id, threshold_id, tenant, status, breach_type, breach_value, limit_value, created_at, escalated_to_medium_at, escalated_to_high_at, resolved_at, count(*) OVER () AS count
		FROM alerts
		%s
		ORDER BY %s %s
		%s
	`, where, condition.SortBy(), condition.SortOrder(), offsetLimit)

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return types.Collection[types.Alert]{}, err
	}

	var (
		alertID, thresholdID, tenant, status, breachType string
		breachValue, limitValue                          float64
		createdAt                                        time.Time
		escalatedToMediumAt, escalatedToHighAt, resolvedAt *time.Time
		count                                            int64
	)

	alerts := make([]types.Alert, 0)

	_, err = pgx.ForEachRow(rows, []any{&alertID, &thresholdID, &tenant, &status, &breachType, &breachValue, &limitValue, &createdAt, &escalatedToMediumAt, &escalatedToHighAt, &resolvedAt, &count}, func() error {
		alerts = append(alerts, types.Alert{
			ID:                  alertID,
			ThresholdID:         thresholdID,
			Tenant:              tenant,
			Status:              status,
			BreachType:          breachType,
			BreachValue:         breachValue,
			LimitValue:          limitValue,
			CreatedAt:           createdAt,
			EscalatedToMediumAt: copyTime(escalatedToMediumAt),
			EscalatedToHighAt:   copyTime(escalatedToHighAt),
			ResolvedAt:          copyTime(resolvedAt),
		})
		return nil
	})
	if err != nil {
		return types.Collection[types.Alert]{}, err
	}

	return types.Collection[types.Alert]{
		Data:       alerts,
		Count:      uint64(len(alerts)),
		Offset:     uint64(condition.Offset()),
		Limit:      uint64(condition.Limit()),
		TotalCount: uint64(count),
	}, nil
}

func scanAlert(row pgx.Row) (types.Alert, error) {
	var (
		alertID, thresholdID, tenant, status, breachType   string
		breachValue, limitValue                            float64
		createdAt                                          time.Time
		escalatedToMediumAt, escalatedToHighAt, resolvedAt *time.Time
	)

	err := row.Scan(&alertID, &thresholdID, &tenant, &status, &breachType, &breachValue, &limitValue, &createdAt, &escalatedToMediumAt, &escalatedToHighAt, &resolvedAt)
	if err != nil {
		return types.Alert{}, err
	}

	return types.Alert{
		ID:                  alertID,
		ThresholdID:         thresholdID,
		Tenant:              tenant,
		Status:              status,
		BreachType:          breachType,
		BreachValue:         breachValue,
		LimitValue:          limitValue,
		CreatedAt:           createdAt,
		EscalatedToMediumAt: escalatedToMediumAt,
		EscalatedToHighAt:   escalatedToHighAt,
		ResolvedAt:          resolvedAt,
	}, nil
}

// copyTime detaches a scanned timestamp pointer from the scan loop variables,
// which are reused between rows.
func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
