package dataverse

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxErrorBody caps how much of a failed response is read for the error message.
const maxErrorBody = 64 << 10

// ErrClosed is returned when a closed client or query context is used.
var ErrClosed = errors.New("dataverse: connection is closed")

// Error is a failure reported by the Web API.
type Error struct {
	// StatusCode is the HTTP status of the response.
	StatusCode int
	// Code is the platform error code, e.g. "0x80040217".
	Code string
	// Message is the platform error message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("dataverse: %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
	}

	return fmt.Sprintf("dataverse: %d %s (%s): %s", e.StatusCode, http.StatusText(e.StatusCode), e.Code, e.Message)
}

// decodeError turns a non-success response into an *Error.
func decodeError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody)) //nolint:errcheck // Best effort; the status is enough.

	apiErr := &Error{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(body)),
	}

	var envelope struct {
		Error struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		} `json:"error"`
	}

	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error.Message != "" {
		apiErr.Code = envelope.Error.Code
		apiErr.Message = envelope.Error.Message
	}

	if apiErr.Message == "" {
		apiErr.Message = resp.Status
	}

	return apiErr
}
