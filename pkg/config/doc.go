// Package config loads the process-wide tracing and logging configuration
// from environment variables, with optional .env file support and an optional
// YAML rules file for class-name matching lists.
//
// The configuration is parsed once per process and cached; every consumer
// sees the same read-only value.
//
// # Usage
//
//	import "github.com/deepin-autotest/funnylog2/pkg/config"
//
//	cfg, err := config.Load()
//	if err != nil {
//	    // Handle error
//	}
//	fmt.Println(cfg.LogDir, cfg.Level())
//
// # Environment variables
//
//   - TRACE_CLASS_NAME_STARTSWITH, TRACE_CLASS_NAME_ENDSWITH,
//     TRACE_CLASS_NAME_CONTAIN: comma-separated class-name matching rules.
//   - TRACE_LOG_LEVEL: minimum console severity (debug by default).
//   - TRACE_LOG_DIR: directory for the "logs" subdirectory with daily files.
//   - TRACE_HOST_IP, TRACE_SYS_ARCH: labels prepended to every log line.
//   - TRACE_RULES_FILE: optional YAML file merged into the matching rules.
package config
