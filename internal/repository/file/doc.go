// Package file implements the local file access used by the workflows.
//
// The Repository interface is what workflows depend on; FileRepository is the
// OS-backed implementation reading and writing whole files.
package file
