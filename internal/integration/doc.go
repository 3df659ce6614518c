// Package integration runs the commands end to end against an in-process
// Dataverse Web API stub.
package integration
