// Package mqtt provides MQTT client connectivity for Tonraum Core.
//
// This package manages:
//   - Connection to Mosquitto broker with auto-reconnect
//   - Message publishing with QoS guarantees
//   - Topic subscriptions with wildcard support
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Architecture
//
// Tonraum uses MQTT as the message bus connecting the Core to the voice
// front end (hermes topics) and to the per-site satellite agents that
// own the local squeezelite service and bluetooth hardware. The broker
// (Mosquitto) decouples Core from the site-local implementations.
//
//	Voice Front End ↔ MQTT Broker ↔ Tonraum Core ↔ MQTT Broker ↔ Site Satellites
//
// # Security Considerations
//
//   - TLS is required for production deployments (cfg.Broker.TLS=true)
//   - Credentials are validated against broker ACL
//   - Anonymous access is only for local development
//   - Message payloads are not encrypted beyond TLS transport
//
// # Performance Characteristics
//
//   - Connection: <1 second to local broker
//   - Publish latency: <10ms for QoS 1 to local broker
//   - Reconnect: Exponential backoff 1s-60s with jitter
//   - Message throughput: Broker-limited (typically 10K+ msg/sec)
//
// # Usage
//
//	client, err := mqtt.Connect(cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	// Subscribe to every recognised intent
//	err = client.Subscribe(mqtt.Topics{}.AllIntents(), 1,
//	    func(topic string, payload []byte) error {
//	        log.Printf("Received: %s = %s", topic, payload)
//	        return nil
//	    })
//
//	// Ask one site to start its squeezelite service
//	topic := mqtt.Topics{}.SiteRequest("kitchen", mqtt.OpServiceStart)
//	client.Publish(topic, payload, 1, false)
package mqtt
