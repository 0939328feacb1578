package client

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a failed catalog API call. The gateway never retries;
// the kind tells the caller whether a retry could even help.
type ErrorKind string

const (
	KindCaller     ErrorKind = "caller"
	KindConnection ErrorKind = "connection"
	KindTimeout    ErrorKind = "timeout"
	KindAuth       ErrorKind = "auth"
	KindNotFound   ErrorKind = "not_found"
	KindUpstream   ErrorKind = "upstream"
	KindDecode     ErrorKind = "decode"
)

// APIError is a classified failure from the catalog API transport.
type APIError struct {
	Kind       ErrorKind
	StatusCode int
	Endpoint   string
	Err        error
}

func (e *APIError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("catalog api %s error on /%s (status %d): %v", e.Kind, e.Endpoint, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("catalog api %s error on /%s: %v", e.Kind, e.Endpoint, e.Err)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// KindOf extracts the classification from an error chain, or "" when the
// error did not come from the transport.
func KindOf(err error) ErrorKind {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Kind
	}
	return ""
}

func kindForStatus(code int) ErrorKind {
	switch {
	case code == 401 || code == 403:
		return KindAuth
	case code == 404:
		return KindNotFound
	default:
		return KindUpstream
	}
}
