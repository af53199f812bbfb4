// Package config loads the catlog CLI configuration using Viper.
//
// # Configuration File
//
// The default location is ~/.config/catlog/config.yaml. A config.yaml in the
// working directory takes precedence:
//
//	min_level: info
//	sinks: both
//	directory: /var/log/myapp
//	keep_old_logs: true
//	color: auto
//	webhook:
//	  url: https://chat.example.com/api/webhooks/123/abc
//	  min_level: error
//	  timeout: 10s
//	  rate_per_second: 1
//	  queue_size: 256
//
// Every key can be overridden from the environment with the CATLOG_ prefix,
// for example CATLOG_MIN_LEVEL or CATLOG_WEBHOOK_URL.
//
// # Loading Configuration
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	loggerCfg, err := cfg.LoggerConfig()
package config
