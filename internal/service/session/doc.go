// Package session owns the remote connection for one CLI run.
//
// A Session opens the connection on first use, derives the query context from
// it on demand and closes whatever it actually opened. Workflows depend on
// the Remote, Connection and QueryContext interfaces declared here.
package session
