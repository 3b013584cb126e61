// Package logger provides structured logging for the yttext project.
//
// Features:
//   - Log levels (DEBUG, INFO, WARN, ERROR)
//   - Component-based filtering
//   - Text and JSON output formats
//   - Thread-safe operations
//
// Usage:
//
//	log := logger.WithComponent(logger.ComponentCaptions)
//	log.Debug("selected track", map[string]interface{}{
//		"language": "en-US",
//		"asr":      false,
//	})
//
// Components:
//   - ComponentApp: high-level fetch flow
//   - ComponentClient: HTTP client
//   - ComponentInnerTube: InnerTube API calls
//   - ComponentCaptions: track parsing and selection
//   - ComponentTitle: watch-page title lookup
//   - ComponentOutput: file writing
package logger
