// Package logging provides the structured logger used across the service.
//
// It wraps log/slog with JSON or text output, level filtering and default
// service/version attributes:
//
//	logging:
//	  level: "info"      # debug, info, warn, error
//	  format: "json"     # json, text
//	  output: "stdout"   # stdout, stderr
//
//	logger := logging.New(cfg.Logging, version)
//	logger.Component("mqtt").Info("connected", "broker", addr)
//
// Never log secrets, tokens or password hashes.
package logging
