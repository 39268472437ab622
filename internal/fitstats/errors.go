package fitstats

import (
	"errors"
	"fmt"
	"net/http"

	log "github.com/sirupsen/logrus"
)

// Error classes every fitstats operation reports through. Callers match them
// with errors.Is; concrete errors wrap one of these.
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrStoreFailure    = errors.New("store failure")
)

// StoreError wraps an underlying persistence error. It matches
// ErrStoreFailure while keeping the cause reachable through Unwrap.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %s", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

func (e *StoreError) Is(target error) bool {
	return target == ErrStoreFailure
}

func StoreFailure(op string, err error) error {
	if err == nil {
		return nil
	}
	return &StoreError{Op: op, Err: err}
}

func InvalidInput(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidInput, fmt.Sprintf(format, args...))
}

// StatusCode maps an error class to the HTTP status reported to the client.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// HTTPError writes err with the status of its class. Store failures and
// unknown errors are opaque to the client and logged here instead.
func HTTPError(w http.ResponseWriter, err error) {
	status := StatusCode(err)
	switch status {
	case http.StatusUnauthorized:
		http.Error(w, "no can do", status)
	case http.StatusNotFound:
		http.Error(w, err.Error(), status)
	case http.StatusBadRequest:
		http.Error(w, err.Error(), status)
	default:
		log.Errorf("internal error: %s", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}
