// Package transfer moves file contents between the local disk and remote records.
// Remote content columns hold standard base64 with padding.
package transfer
