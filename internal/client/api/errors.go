package api

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// StatusError is a non-2xx HTTP response.
type StatusError struct {
	Code    int
	Message string
	Payload any
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("http %d: %s", e.Code, e.Message)
	}
	return fmt.Sprintf("http %d: %s", e.Code, http.StatusText(e.Code))
}

func (e *StatusError) Unwrap() error {
	switch e.Code {
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return ErrUnavailable
	default:
		return nil
	}
}

// StatusOf returns the HTTP status carried by err, if any.
func StatusOf(err error) (int, bool) {
	var se *StatusError
	if errors.As(err, &se) {
		return se.Code, true
	}
	return 0, false
}

// MessageOf returns the server-provided message for err, falling back to err.Error().
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var se *StatusError
	if errors.As(err, &se) && se.Message != "" {
		return se.Message
	}
	return err.Error()
}

// messageFrom pulls a human-readable message out of an error payload.
func messageFrom(payload any) string {
	switch p := payload.(type) {
	case map[string]any:
		for _, k := range []string{"message", "error", "msg"} {
			if s, ok := p[k].(string); ok && s != "" {
				return s
			}
		}
	case string:
		if len(p) <= 200 {
			return p
		}
	}
	return ""
}
