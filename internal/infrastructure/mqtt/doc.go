// Package mqtt wraps the Eclipse Paho client for the smart home broker
// connection.
//
// The client publishes a retained online status on connect, registers a
// Last Will so the broker reports the service offline if it vanishes, and
// restores subscriptions after every reconnect. Handlers run on paho
// goroutines behind panic recovery.
//
// Topic names come from Topics, rooted at the configured prefix:
//
//	topics := mqtt.NewTopics(cfg.TopicPrefix)
//	client.Subscribe(topics.AllSensorReadings(), 1, handler)
//	client.PublishRetained(topics.ActuatorTarget(id), payload)
package mqtt
