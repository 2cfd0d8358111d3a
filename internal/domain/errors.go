// Package domain holds the error taxonomy shared by all layers. Errors are
// propagated as values and mapped to wire-level status codes at the handler
// layer via the HTTPError interface.
package domain

import "net/http"

// HTTPError is implemented by errors that carry a wire-level status code.
type HTTPError interface {
	error
	StatusCode() int
}

type (
	// ValidationError indicates malformed or missing request input.
	ValidationError struct {
		Message string
	}

	// DecodeError indicates a media attachment that could not be decoded.
	DecodeError struct {
		Message string
	}

	// AuthenticationError indicates no usable model credentials could be
	// resolved.
	AuthenticationError struct {
		Message string
	}

	// GenerationError indicates a failure of the upstream model call.
	GenerationError struct {
		Message string
	}

	// PersistenceError indicates the chat store was unavailable. It is
	// non-fatal to the user-visible answer.
	PersistenceError struct {
		Message string
	}

	// NotFoundError indicates a chat lookup miss.
	NotFoundError struct {
		Message string
	}
)

func (e *ValidationError) Error() string     { return e.Message }
func (e *DecodeError) Error() string         { return e.Message }
func (e *AuthenticationError) Error() string { return e.Message }
func (e *GenerationError) Error() string     { return e.Message }
func (e *PersistenceError) Error() string    { return e.Message }
func (e *NotFoundError) Error() string       { return e.Message }

func (e *ValidationError) StatusCode() int     { return http.StatusBadRequest }
func (e *DecodeError) StatusCode() int         { return http.StatusBadRequest }
func (e *AuthenticationError) StatusCode() int { return http.StatusInternalServerError }
func (e *GenerationError) StatusCode() int     { return http.StatusInternalServerError }
func (e *PersistenceError) StatusCode() int    { return http.StatusInternalServerError }
func (e *NotFoundError) StatusCode() int       { return http.StatusNotFound }
