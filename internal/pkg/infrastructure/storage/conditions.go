package storage

import (
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/samber/lo"
)

type ConditionFunc func(*Condition) *Condition

type Condition struct {
	AlertID     string
	ThresholdID string
	DeviceID    string

	Tenant  string
	Tenants []string

	Active   *bool
	Statuses []string
	Enabled  *bool

	sortBy    string
	sortOrder string

	offset *int
	limit  *int
}

func (c Condition) SortBy() string {
	return c.sortBy
}

func (c Condition) SortOrder() string {
	if c.sortOrder == "" {
		return "ASC"
	}
	return c.sortOrder
}

func (c Condition) Offset() int {
	if c.offset != nil {
		return *c.offset
	}
	return 0
}

func (c Condition) Limit() int {
	if c.limit != nil {
		return *c.limit
	}
	return 0
}

func (c Condition) NamedArgs() pgx.NamedArgs {
	args := pgx.NamedArgs{}

	if c.AlertID != "" {
		args["alert_id"] = c.AlertID
	}
	if c.ThresholdID != "" {
		args["threshold_id"] = c.ThresholdID
	}
	if c.DeviceID != "" {
		args["device_id"] = c.DeviceID
	}
	if c.Tenant != "" {
		args["tenant"] = c.Tenant
	}
	if c.Tenants != nil {
		args["tenants"] = c.Tenants
	}
	if len(c.Statuses) > 0 {
		args["statuses"] = c.Statuses
	}
	if c.Enabled != nil {
		args["enabled"] = *c.Enabled
	}

	return args
}

func (c Condition) Where() string {
	where := []string{}

	if c.AlertID != "" {
		where = append(where, "alert_id = @alert_id")
	}

	if c.ThresholdID != "" {
		where = append(where, "threshold_id = @threshold_id")
	}

	if c.DeviceID != "" {
		where = append(where, "device_id = @device_id")
	}

	if len(c.Tenant) > 0 && len(c.Tenants) > 0 && lo.Contains(c.Tenants, c.Tenant) {
		where = append(where, "tenant = @tenant")
	} else if len(c.Tenants) > 0 {
		where = append(where, "tenant = ANY(@tenants)")
	} else if c.Tenant != "" {
		where = append(where, "tenant = @tenant")
	}

	if c.Active != nil {
		if *c.Active {
			where = append(where, "status IN ('initial', 'medium', 'high')")
		} else {
			where = append(where, "status = 'resolved'")
		}
	}

	if len(c.Statuses) > 0 {
		where = append(where, "status = ANY(@statuses)")
	}

	if c.Enabled != nil {
		where = append(where, "enabled = @enabled")
	}

	if len(where) == 0 {
		return ""
	}

	return "WHERE " + strings.Join(where, " AND ")
}

func WithAlertID(alertID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.AlertID = alertID
		return c
	}
}

func WithThresholdID(thresholdID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.ThresholdID = thresholdID
		return c
	}
}

func WithDeviceID(deviceID string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.DeviceID = deviceID
		return c
	}
}

func WithTenant(tenant string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Tenants = lo.Uniq(append(c.Tenants, tenant))
		c.Tenant = tenant
		return c
	}
}

func WithTenants(tenants []string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Tenants = lo.Uniq(tenants)
		return c
	}
}

func WithActive(active bool) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Active = &active
		return c
	}
}

func WithStatus(statuses ...string) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Statuses = lo.Uniq(statuses)
		return c
	}
}

func WithEnabled(enabled bool) ConditionFunc {
	return func(c *Condition) *Condition {
		c.Enabled = &enabled
		return c
	}
}

func WithOffset(offset int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.offset = &offset
		return c
	}
}

func WithLimit(limit int) ConditionFunc {
	return func(c *Condition) *Condition {
		c.limit = &limit
		return c
	}
}

func WithSortBy(sortBy string) ConditionFunc {
	return func(c *Condition) *Condition {
		switch strings.ToLower(sortBy) {
		case "alert_id":
			c.sortBy = "alert_id"
		case "threshold_id":
			c.sortBy = "threshold_id"
		case "status":
			c.sortBy = "status"
		case "created_at":
			c.sortBy = "created_at"
		case "resolved_at":
			c.sortBy = "resolved_at"
		}
		return c
	}
}

func WithSortDesc(desc bool) ConditionFunc {
	return func(c *Condition) *Condition {
		if desc {
			c.sortOrder = "DESC"
		} else {
			c.sortOrder = "ASC"
		}
		return c
	}
}

// ParseConditions maps API query parameters onto storage conditions.
func ParseConditions(params map[string][]string) []ConditionFunc {
	conditions := make([]ConditionFunc, 0)

	for k, v := range params {
		switch strings.ToLower(k) {
		case "alert_id":
			conditions = append(conditions, WithAlertID(v[0]))
		case "threshold_id":
			conditions = append(conditions, WithThresholdID(v[0]))
		case "device_id":
			conditions = append(conditions, WithDeviceID(v[0]))
		case "tenant":
			conditions = append(conditions, WithTenant(v[0]))
		case "status":
			conditions = append(conditions, WithStatus(v...))
		case "active":
			active, _ := strconv.ParseBool(v[0])
			conditions = append(conditions, WithActive(active))
		case "limit":
			limit, _ := strconv.Atoi(v[0])
			conditions = append(conditions, WithLimit(limit))
		case "offset":
			offset, _ := strconv.Atoi(v[0])
			conditions = append(conditions, WithOffset(offset))
		case "sortby":
			conditions = append(conditions, WithSortBy(v[0]))
		case "sortorder":
			conditions = append(conditions, WithSortDesc(strings.EqualFold(v[0], "desc")))
		}
	}

	return conditions
}
