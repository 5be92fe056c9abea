package httpform

import (
	"errors"
	"net/http"
)

// HTTPError lets guard and props functions pick the response status.
type HTTPError interface {
	error
	StatusCode() int
}

// StatusError is the stock HTTPError.
type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

// ErrCSRFMismatch is reported when a POST does not echo the expected token.
var ErrCSRFMismatch = StatusError{Code: http.StatusForbidden, Err: errors.New("httpform: csrf token mismatch")}

func statusFor(err error, fallback int) int {
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		if code := httpErr.StatusCode(); code > 0 {
			return code
		}
	}
	return fallback
}

func writeError(w http.ResponseWriter, err error, fallback int) {
	code := statusFor(err, fallback)
	http.Error(w, http.StatusText(code), code)
}
