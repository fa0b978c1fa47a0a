// Package influxdb provides InfluxDB connectivity for Tonraum Core.
//
// It wraps the official influxdb-client-go v2 library with Tonraum-specific
// patterns for connection management, event writing, and health monitoring.
//
// # Purpose
//
// This package handles time-series history storage for:
//   - Recognised voice intents per site
//   - Device bring-up outcomes (bluetooth connect, service start)
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    URL:    "http://localhost:8086",
//	    Token:  "your-token",
//	    Org:    "tonraum",
//	    Bucket: "events",
//	}
//
//	client, err := influxdb.Connect(cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	recorder := influxdb.NewRecorder(client)
//	recorder.RecordIntent("tonraumMusic", "kitchen")
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are logged via a callback.
// Connection and health check errors are returned directly.
//
// # Performance
//
// Writes are batched according to config.yaml settings (batch_size, flush_interval).
// This keeps the intent-handling path free of network round trips.
package influxdb
