package services

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrConnection marks failures to establish or use an external session.
	// These abort the whole pipeline.
	ErrConnection = errors.New("connection error")
	// ErrValidation marks malformed inputs or responses.
	ErrValidation = errors.New("validation error")
	// ErrConfiguration marks unusable client construction parameters.
	ErrConfiguration = errors.New("configuration error")
	// ErrNotFound marks lookups that completed but matched nothing.
	ErrNotFound = errors.New("not found")
	// ErrTransient marks per-call failures the resolvers absorb.
	ErrTransient = errors.New("transient failure")
)

// Wrap builds an error message that includes service context while tagging it
// with the provided marker for later classification. The marker should be one
// of the exported sentinel errors above.
func Wrap(marker error, service, operation, message string, err error) error {
	detail := buildDetail(service, operation, message)
	if marker == nil {
		marker = ErrTransient
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	}
	return fmt.Errorf("%w: %s", marker, detail)
}

// IsFatal reports whether the error must unwind past the resolver boundary
// instead of degrading a single window or task.
func IsFatal(err error) bool {
	return errors.Is(err, ErrConnection) || errors.Is(err, ErrConfiguration)
}

func buildDetail(service, operation, message string) string {
	parts := make([]string, 0, 3)
	if service = strings.TrimSpace(service); service != "" {
		parts = append(parts, service)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
