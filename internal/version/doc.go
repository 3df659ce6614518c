// Package version exposes build metadata.
//
// Version, Commit and BuildTime are set with -ldflags at release time. Local
// builds fall back to whatever the Go toolchain recorded in the binary.
package version
