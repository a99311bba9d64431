package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

var (
	ErrAuth        = errors.New("authentication")     // 401, 403
	ErrValidation  = errors.New("validation")         // 400, 422
	ErrNotFound    = errors.New("not found")          // 404
	ErrConflict    = errors.New("conflict")           // 409
	ErrUnreachable = errors.New("server unreachable") // no response at all
)

// serverMessage pulls the server's own error text out of a rejected
// response body. The backend answers either {"error": ...} or
// {"message": ...}.
func serverMessage(body io.Reader) string {
	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(body).Decode(&payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Message
}

func statusError(status int, msg string) error {
	var sentinel error
	switch status {
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		sentinel = ErrValidation
	case http.StatusUnauthorized, http.StatusForbidden:
		sentinel = ErrAuth
	case http.StatusNotFound:
		sentinel = ErrNotFound
	case http.StatusConflict:
		sentinel = ErrConflict
	default:
		if msg == "" {
			return fmt.Errorf("server rejected request with status %d", status)
		}
		return fmt.Errorf("server rejected request with status %d: %s", status, msg)
	}
	if msg == "" {
		msg = fmt.Sprintf("status %d", status)
	}
	return fmt.Errorf("%w: %s", sentinel, msg)
}
