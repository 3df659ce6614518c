// Package solution exports an unmanaged solution package to a local file.
package solution
