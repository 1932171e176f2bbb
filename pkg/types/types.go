package types

import (
	"time"
)

const (
	AlertStatusInitial  string = "initial"
	AlertStatusMedium   string = "medium"
	AlertStatusHigh     string = "high"
	AlertStatusResolved string = "resolved"
)

const (
	BreachTypeUpper string = "upper"
	BreachTypeLower string = "lower"
)

// ActiveAlertStatuses are the statuses an alert can have while its breach
// episode is still open. At most one alert per threshold may carry one of them.
var ActiveAlertStatuses = []string{AlertStatusInitial, AlertStatusMedium, AlertStatusHigh}

type Alert struct {
	ID          string `json:"id"`
	ThresholdID string `json:"thresholdID"`
	Tenant      string `json:"tenant"`

	Status      string  `json:"status"`
	BreachType  string  `json:"breachType"`
	BreachValue float64 `json:"breachValue"`
	LimitValue  float64 `json:"limitValue"`

	CreatedAt           time.Time  `json:"createdAt"`
	EscalatedToMediumAt *time.Time `json:"escalatedToMediumAt,omitempty"`
	EscalatedToHighAt   *time.Time `json:"escalatedToHighAt,omitempty"`
	ResolvedAt          *time.Time `json:"resolvedAt,omitempty"`
}

func (a Alert) Active() bool {
	return a.Status == AlertStatusInitial || a.Status == AlertStatusMedium || a.Status == AlertStatusHigh
}

// Duration returns the length of the breach episode, up until its resolution
// or the given time for alerts that are still active.
func (a Alert) Duration(now time.Time) time.Duration {
	if a.ResolvedAt != nil {
		return a.ResolvedAt.Sub(a.CreatedAt)
	}
	return now.Sub(a.CreatedAt)
}

type SensorThreshold struct {
	ID       string `json:"id"`
	Tenant   string `json:"tenant"`
	DeviceID string `json:"deviceID"`

	Measurement  string `json:"measurement"`
	Field        string `json:"field"`
	DeviceColumn string `json:"deviceColumn"`

	UpperLimit *float64 `json:"upperLimit,omitempty"`
	LowerLimit *float64 `json:"lowerLimit,omitempty"`

	DatasourceID string `json:"datasourceID"`
	Enabled      bool   `json:"enabled"`
}

func (t SensorThreshold) HasLimits() bool {
	return t.UpperLimit != nil || t.LowerLimit != nil
}

// Datasource holds the connection configuration for the external time series
// store that a tenant's sensor values are read from.
type Datasource struct {
	ID       string `json:"id" yaml:"id"`
	Tenant   string `json:"tenant" yaml:"tenant"`
	URL      string `json:"url" yaml:"url"`
	Database string `json:"database" yaml:"database"`
	Username string `json:"username" yaml:"username"`
	Password string `json:"-" yaml:"password"`

	InsecureSkipVerify bool `json:"insecureSkipVerify,omitempty" yaml:"insecureSkipVerify"`
}

// ScanResult summarises the outcome of one scan cycle for one tenant.
type ScanResult struct {
	Tenant    string        `json:"tenant"`
	StartedAt time.Time     `json:"startedAt"`
	Duration  time.Duration `json:"duration"`

	Created   int `json:"created"`
	Escalated int `json:"escalated"`
	Checked   int `json:"checked"`
	Resolved  int `json:"resolved"`
	Normal    int `json:"normal"`
	NoData    int `json:"noData"`
	Errors    int `json:"errors"`
}

func (r ScanResult) Total() int {
	return r.Created + r.Escalated + r.Checked + r.Resolved + r.Normal + r.NoData + r.Errors
}

type Collection[T any] struct {
	Data       []T
	Count      uint64
	Offset     uint64
	Limit      uint64
	TotalCount uint64
}
