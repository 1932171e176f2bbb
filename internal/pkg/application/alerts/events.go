package alerts

import (
	"encoding/json"
	"time"

	"github.com/diwise/iot-sensor-monitor/pkg/types"
)

type AlertCreated struct {
	Alert     types.Alert `json:"alert"`
	Tenant    string      `json:"tenant"`
	Timestamp time.Time   `json:"timestamp"`
}

func (a *AlertCreated) ContentType() string {
	return "application/json"
}
func (a *AlertCreated) TopicName() string {
	return "alerts.alertCreated"
}
func (a *AlertCreated) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}

type AlertEscalated struct {
	ID        string    `json:"id"`
	Status    string    `json:"status"`
	Tenant    string    `json:"tenant"`
	Timestamp time.Time `json:"timestamp"`
}

func (a *AlertEscalated) ContentType() string {
	return "application/json"
}
func (a *AlertEscalated) TopicName() string {
	return "alerts.alertEscalated"
}
func (a *AlertEscalated) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}

type AlertResolved struct {
	ID        string    `json:"id"`
	Tenant    string    `json:"tenant"`
	Timestamp time.Time `json:"timestamp"`
}

func (a *AlertResolved) ContentType() string {
	return "application/json"
}
func (a *AlertResolved) TopicName() string {
	return "alerts.alertResolved"
}
func (a *AlertResolved) Body() []byte {
	b, _ := json.Marshal(a)
	return b
}
