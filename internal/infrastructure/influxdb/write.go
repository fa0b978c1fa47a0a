package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// Recorder writes voice and bring-up events to InfluxDB for history
// dashboards. All writes are non-blocking; data is batched and sent
// asynchronously by the underlying client.
//
// A nil-safe zero value is not provided; callers that run without
// InfluxDB should simply not pass a Recorder.
type Recorder struct {
	client *Client
}

// NewRecorder creates an event recorder on top of a connected client.
func NewRecorder(client *Client) *Recorder {
	return &Recorder{client: client}
}

// RecordIntent records one recognised voice intent.
//
// Parameters:
//   - intent: The short intent name (e.g., "tonraumMusic")
//   - siteID: The site the intent was spoken at
func (r *Recorder) RecordIntent(intent, siteID string) {
	if !r.client.IsConnected() {
		return
	}

	point := write.NewPoint(
		"intents",
		map[string]string{
			"intent":  intent,
			"site_id": siteID,
		},
		map[string]interface{}{
			"count": 1,
		},
		time.Now(),
	)

	r.client.writeAPI.WritePoint(point)
}

// RecordBringUp records the outcome of one device bring-up step.
//
// Parameters:
//   - siteID: The site whose device was brought up
//   - op: The satellite operation ("deviceConnect" or "serviceStart")
//   - ok: Whether the step succeeded
func (r *Recorder) RecordBringUp(siteID, op string, ok bool) {
	if !r.client.IsConnected() {
		return
	}

	point := write.NewPoint(
		"bring_up",
		map[string]string{
			"site_id": siteID,
			"op":      op,
		},
		map[string]interface{}{
			"success": ok,
		},
		time.Now(),
	)

	r.client.writeAPI.WritePoint(point)
}

// WritePoint writes a custom point with full control over tags and fields.
//
// Use this for measurements that don't fit the recorder methods.
func (c *Client) WritePoint(measurement string, tags map[string]string, fields map[string]interface{}) {
	if !c.IsConnected() {
		return
	}

	point := write.NewPoint(measurement, tags, fields, time.Now())
	c.writeAPI.WritePoint(point)
}
