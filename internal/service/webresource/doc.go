// Package webresource replaces the content of a web resource with a local file
// and publishes it. The web resource is found by a caller-supplied prefix followed
// by the file name, extension included.
//
// Publishing only happens after the update succeeded; a failed publish leaves the
// updated but unpublished content in place.
package webresource
