// Package logger wraps zap for the CLI:
//   - a global sugared logger writing console-formatted entries to stdout,
//   - context helpers (ToContext/FromContext/WithName/WithKV),
//   - level parsing and an atomic level shared by every derived logger,
//   - shorthands such as Infof or ErrorKV that read the logger from a context.
//
// Workflows narrate their progress through these helpers, so the step-by-step
// output and any structured fields come from one place.
package logger
