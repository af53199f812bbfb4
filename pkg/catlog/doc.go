// Package catlog provides a leveled logger that keeps every accepted record in
// memory and fans it out to a console, a rotating log file and a chat webhook.
//
// A [Logger] starts Uninitialized. Until [Logger.Initialize] succeeds every
// call to [Logger.Log] is dropped without side effects.
//
// # Basic Usage
//
//	l := catlog.New()
//	err := l.Initialize(catlog.Config{
//		MinLevel:    catlog.LevelInfo,
//		Sinks:       catlog.SinksBoth,
//		Directory:   "/var/log/bot",
//		KeepOldLogs: true,
//		WebhookURL:  os.Getenv("LOG_WEBHOOK"),
//	})
//	if err != nil {
//		return err
//	}
//	defer l.Close()
//
//	l.Log("commands", "registered 3 commands", catlog.LevelInfo)
//
// # Log File Layout
//
// The file sink keeps one file, [LatestFileName], inside the configured
// directory. It is rewritten with the full history on every record, oldest
// first, one record per line:
//
//	1700000000 : commands        registered 3 commands
//
// When KeepOldLogs is set, Initialize copies an existing latest file to a
// rotated name built from [RotatedFileTemplate] before the new history starts.
//
// # Remote Notifications
//
// Records at or above WebhookMinLevel are handed to a background dispatcher
// and posted to the webhook without blocking the caller. Delivery failures are
// reported to the diagnostics logger and to [Metrics], never to the caller.
//
// # Passing the Logger Around
//
// Use [NewContext] and [FromContext] to hand the logger to request handlers.
// FromContext never returns nil.
package catlog
