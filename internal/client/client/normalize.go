package client

import "errors"

// GenericErrorMessage is reported when a failure carries no message at all.
const GenericErrorMessage = "Something went wrong"

// ErrorMessage maps any failure to a human-readable message. Priority: the
// response body "message" field, the body "error" field, the failure's own
// message, GenericErrorMessage. It never panics and accepts nil.
func ErrorMessage(err error) (msg string) {
	if err == nil {
		return GenericErrorMessage
	}
	defer func() {
		// typed nil errors panic inside Error()
		if recover() != nil {
			msg = GenericErrorMessage
		}
	}()

	var se *StatusError
	if errors.As(err, &se) {
		if se.Body.Message != "" {
			return se.Body.Message
		}
		if se.Body.Error != "" {
			return se.Body.Error
		}
	}

	if m := err.Error(); m != "" {
		return m
	}
	return GenericErrorMessage
}
