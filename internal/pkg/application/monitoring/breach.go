package monitoring

import (
	"github.com/diwise/iot-sensor-monitor/pkg/types"
)

// detectBreach classifies a value against a threshold's limits. The upper
// limit is evaluated first, so it wins if a misconfigured threshold has its
// upper limit below its lower limit.
func detectBreach(value float64, t types.SensorThreshold) (bool, string, float64) {
	if t.UpperLimit != nil && value > *t.UpperLimit {
		return true, types.BreachTypeUpper, *t.UpperLimit
	}

	if t.LowerLimit != nil && value < *t.LowerLimit {
		return true, types.BreachTypeLower, *t.LowerLimit
	}

	return false, "", 0
}
