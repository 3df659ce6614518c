// Package resource contains the domain types shared by the sync workflows.
//
// It defines the two remote resource kinds, the Resource and Delta shapes and
// the naming rules that turn a local file path into the remote name to look up.
package resource
