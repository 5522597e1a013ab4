package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrUnavailable  = errors.New("server unavailable")
	ErrUnauthorized = errors.New("unauthorized")
)

// ErrorBody is the structured error body returned by the API.
type ErrorBody struct {
	Message string
	Error   string
}

// parseErrorBody reads the string "message" and "error" fields of a JSON
// object. Non-string values and non-JSON bodies yield empty fields.
func parseErrorBody(data []byte) ErrorBody {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return ErrorBody{}
	}
	var body ErrorBody
	_ = json.Unmarshal(raw["message"], &body.Message)
	_ = json.Unmarshal(raw["error"], &body.Error)
	return body
}

// StatusError is a non-2xx response.
type StatusError struct {
	StatusCode int
	Body       ErrorBody
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d %s", e.StatusCode, http.StatusText(e.StatusCode))
}

// RequestError is the single error type returned by HTTPClient operations.
// Its message is already normalized; see ErrorMessage.
type RequestError struct {
	// Op names the failed operation, e.g. "get_product".
	Op string
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	Message    string

	unavailable  bool
	unauthorized bool
	canceled     bool
}

func newRequestError(op string, err error) *RequestError {
	re := &RequestError{Op: op, Message: ErrorMessage(err)}

	var se *StatusError
	switch {
	case errors.As(err, &se):
		re.StatusCode = se.StatusCode
		switch se.StatusCode {
		case http.StatusUnauthorized, http.StatusForbidden:
			re.unauthorized = true
		case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			re.unavailable = true
		}
	case errors.Is(err, context.Canceled):
		re.canceled = true
	default:
		re.unavailable = true
	}
	return re
}

func (e *RequestError) Error() string {
	return e.Message
}

// Is supports errors.Is(err, ErrUnauthorized), errors.Is(err, ErrUnavailable)
// and errors.Is(err, context.Canceled).
func (e *RequestError) Is(target error) bool {
	switch target {
	case ErrUnauthorized:
		return e.unauthorized
	case ErrUnavailable:
		return e.unavailable
	case context.Canceled:
		return e.canceled
	}
	return false
}
