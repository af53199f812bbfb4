// Package validator collects configuration issues and reports them.
//
// Checks append to a [Result]; a [Reporter] renders it as colored text or
// JSON:
//
//	result := &validator.Result{}
//	if cfg.Sinks == "" {
//		result.AddError("sinks", "is required", cfg.Sinks)
//	}
//	_ = validator.NewReporter(os.Stdout, validator.FormatText).Report(result)
package validator
