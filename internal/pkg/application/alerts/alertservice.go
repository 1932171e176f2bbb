package alerts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diwise/iot-sensor-monitor/internal/pkg/infrastructure/metrics"
	"github.com/diwise/iot-sensor-monitor/internal/pkg/infrastructure/storage"
	"github.com/diwise/iot-sensor-monitor/pkg/types"

	"github.com/diwise/messaging-golang/pkg/messaging"
	"github.com/diwise/service-chassis/pkg/infrastructure/o11y/logging"
	"github.com/google/uuid"
)

var (
	ErrAlertNotFound         = fmt.Errorf("alert not found")
	ErrAlreadyExists         = fmt.Errorf("an active alert already exists for this threshold")
	ErrNoLimitsConfigured    = fmt.Errorf("sensor threshold has no limits configured")
	ErrAlreadyResolved       = fmt.Errorf("alert is already resolved")
	ErrEscalationNotEligible = fmt.Errorf("alert is not eligible for escalation")
)

const (
	DefaultEscalateToMediumAfter = 60 * time.Minute
	DefaultEscalateToHighAfter   = 90 * time.Minute
)

type Config struct {
	EscalateToMediumAfterMinutes int `yaml:"escalateToMediumAfterMinutes"`
	EscalateToHighAfterMinutes   int `yaml:"escalateToHighAfterMinutes"`
}

func (c *Config) MediumAfter() time.Duration {
	if c == nil || c.EscalateToMediumAfterMinutes <= 0 {
		return DefaultEscalateToMediumAfter
	}
	return time.Duration(c.EscalateToMediumAfterMinutes) * time.Minute
}

func (c *Config) HighAfter() time.Duration {
	if c == nil || c.EscalateToHighAfterMinutes <= 0 {
		return DefaultEscalateToHighAfter
	}
	return time.Duration(c.EscalateToHighAfterMinutes) * time.Minute
}

// EligibleEscalation reports the status an active alert may be promoted to at
// the given time. Both gates are measured against the total age of the breach
// episode, so medium to high opens 90 minutes after creation rather than 90
// minutes after the previous promotion. Promotion is always a single step.
func EligibleEscalation(a types.Alert, now time.Time, cfg *Config) (string, bool) {
	if !a.Active() {
		return "", false
	}

	age := now.Sub(a.CreatedAt)

	switch a.Status {
	case types.AlertStatusInitial:
		if age >= cfg.MediumAfter() {
			return types.AlertStatusMedium, true
		}
	case types.AlertStatusMedium:
		if age >= cfg.HighAfter() {
			return types.AlertStatusHigh, true
		}
	}

	return "", false
}

//go:generate moq -rm -out alertservice_mock.go . AlertService
type AlertService interface {
	GetActive(ctx context.Context, thresholdID string) (types.Alert, error)
	Create(ctx context.Context, threshold types.SensorThreshold, breachType string, value, limit float64) (types.Alert, error)
	Escalate(ctx context.Context, alert types.Alert) (types.Alert, error)
	UpdateBreachValue(ctx context.Context, alert types.Alert, value float64) (types.Alert, error)
	Resolve(ctx context.Context, alert types.Alert) (types.Alert, error)

	Query(ctx context.Context, offset, limit int, tenants []string) (types.Collection[types.Alert], error)
	GetByID(ctx context.Context, alertID string, tenants []string) (types.Alert, error)

	Config() *Config
}

//go:generate moq -rm -out alertrepository_mock.go . AlertRepository
type AlertRepository interface {
	AddAlert(ctx context.Context, alert types.Alert) error
	UpdateAlert(ctx context.Context, alert types.Alert) error
	GetActiveAlert(ctx context.Context, thresholdID string) (types.Alert, error)
	GetAlert(ctx context.Context, conditions ...storage.ConditionFunc) (types.Alert, error)
	QueryAlerts(ctx context.Context, conditions ...storage.ConditionFunc) (types.Collection[types.Alert], error)
}

type alertSvc struct {
	storage   AlertRepository
	messenger messaging.MsgContext
	config    *Config
}

func New(s AlertRepository, m messaging.MsgContext, cfg *Config) AlertService {
	if cfg == nil {
		cfg = &Config{}
	}

	return &alertSvc{
		storage:   s,
		messenger: m,
		config:    cfg,
	}
}

func (svc *alertSvc) Config() *Config {
	return svc.config
}

func (svc *alertSvc) GetActive(ctx context.Context, thresholdID string) (types.Alert, error) {
	alert, err := svc.storage.GetActiveAlert(ctx, thresholdID)
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Alert{}, ErrAlertNotFound
		}
		return types.Alert{}, err
	}

	return alert, nil
}

func (svc *alertSvc) Create(ctx context.Context, threshold types.SensorThreshold, breachType string, value, limit float64) (types.Alert, error) {
	if !threshold.HasLimits() {
		return types.Alert{}, ErrNoLimitsConfigured
	}

	alert := types.Alert{
		ID:          uuid.NewString(),
		ThresholdID: threshold.ID,
		Tenant:      threshold.Tenant,
		Status:      types.AlertStatusInitial,
		BreachType:  breachType,
		BreachValue: value,
		LimitValue:  limit,
		CreatedAt:   time.Now().UTC(),
	}

	err := svc.storage.AddAlert(ctx, alert)
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return types.Alert{}, ErrAlreadyExists
		}
		return types.Alert{}, err
	}

	metrics.ActiveAlerts.WithLabelValues(alert.Tenant).Inc()

	svc.publish(ctx, &AlertCreated{
		Alert:     alert,
		Tenant:    alert.Tenant,
		Timestamp: alert.CreatedAt,
	})

	return alert, nil
}

// Escalate promotes an active alert one severity step. The escalation
// timestamp for the new status is set on the first transition only.
func (svc *alertSvc) Escalate(ctx context.Context, alert types.Alert) (types.Alert, error) {
	now := time.Now().UTC()

	next, ok := EligibleEscalation(alert, now, svc.config)
	if !ok {
		return alert, ErrEscalationNotEligible
	}

	alert.Status = next

	switch next {
	case types.AlertStatusMedium:
		if alert.EscalatedToMediumAt == nil {
			alert.EscalatedToMediumAt = &now
		}
	case types.AlertStatusHigh:
		if alert.EscalatedToHighAt == nil {
			alert.EscalatedToHighAt = &now
		}
	}

	err := svc.storage.UpdateAlert(ctx, alert)
	if err != nil {
		return types.Alert{}, err
	}

	svc.publish(ctx, &AlertEscalated{
		ID:        alert.ID,
		Status:    alert.Status,
		Tenant:    alert.Tenant,
		Timestamp: now,
	})

	return alert, nil
}

func (svc *alertSvc) UpdateBreachValue(ctx context.Context, alert types.Alert, value float64) (types.Alert, error) {
	if !alert.Active() {
		return alert, ErrAlreadyResolved
	}

	alert.BreachValue = value

	err := svc.storage.UpdateAlert(ctx, alert)
	if err != nil {
		return types.Alert{}, err
	}

	return alert, nil
}

func (svc *alertSvc) Resolve(ctx context.Context, alert types.Alert) (types.Alert, error) {
	if !alert.Active() {
		return alert, ErrAlreadyResolved
	}

	now := time.Now().UTC()
	alert.Status = types.AlertStatusResolved
	alert.ResolvedAt = &now

	err := svc.storage.UpdateAlert(ctx, alert)
	if err != nil {
		return types.Alert{}, err
	}

	metrics.ActiveAlerts.WithLabelValues(alert.Tenant).Dec()

	svc.publish(ctx, &AlertResolved{
		ID:        alert.ID,
		Tenant:    alert.Tenant,
		Timestamp: now,
	})

	return alert, nil
}

func (svc *alertSvc) Query(ctx context.Context, offset, limit int, tenants []string) (types.Collection[types.Alert], error) {
	alerts, err := svc.storage.QueryAlerts(ctx, storage.WithOffset(offset), storage.WithLimit(limit), storage.WithTenants(tenants))
	if err != nil {
		return types.Collection[types.Alert]{}, err
	}

	return alerts, nil
}

func (svc *alertSvc) GetByID(ctx context.Context, alertID string, tenants []string) (types.Alert, error) {
	alert, err := svc.storage.GetAlert(ctx, storage.WithAlertID(alertID), storage.WithTenants(tenants))
	if err != nil {
		if errors.Is(err, storage.ErrNoRows) {
			return types.Alert{}, ErrAlertNotFound
		}
		return types.Alert{}, err
	}

	return alert, nil
}

// publish sends a lifecycle event on the message bus. State changes are
// already persisted at this point, so a publish failure is logged and the
// state change stands.
func (svc *alertSvc) publish(ctx context.Context, msg messaging.TopicMessage) {
	err := svc.messenger.PublishOnTopic(ctx, msg)
	if err != nil {
		logging.GetFromContext(ctx).Error("failed to publish message", "topic", msg.TopicName(), "err", err.Error())
	}
}
