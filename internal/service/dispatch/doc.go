// Package dispatch maps a positional argument list onto a workflow.
//
// The first argument names the command, compared case-insensitively, and the
// remaining ones must match the command's parameters exactly. Anything else
// prints the usage text and returns without error.
package dispatch
