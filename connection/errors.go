package connection

import (
	"errors"
	"fmt"
)

// Message keys used by callers rendering localized errors.
const (
	NotFoundMessageKey      = "org.entando.error.connection.notFound"
	AlreadyExistsMessageKey = "org.entando.error.connection.alreadyExists"
	StrictLevelMessageKey   = "org.entando.error.connection.strictLevel"
	invalidConfigMessageKey = "org.entando.error.connection.invalid"
)

// Typed errors returned by every backend. Callers should rely on errors.Is
// against the exported values rather than string comparison.
var (
	// ErrNotFound is returned when the active backend has no record for a name.
	ErrNotFound = errors.New(NotFoundMessageKey)

	// ErrAlreadyExists is returned when adding a name that is already present.
	ErrAlreadyExists = errors.New(AlreadyExistsMessageKey)

	// ErrInvalidStrictOperation is returned for any mutation in Strict mode.
	ErrInvalidStrictOperation = errors.New(StrictLevelMessageKey)

	// ErrInvalidConfig is returned when a supplied config fails validation.
	ErrInvalidConfig = errors.New(invalidConfigMessageKey)
)

// NotFoundError wraps ErrNotFound with the connection name.
func NotFoundError(name string) error {
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}

// AlreadyExistsError wraps ErrAlreadyExists with the connection name.
func AlreadyExistsError(name string) error {
	return fmt.Errorf("%w: %s", ErrAlreadyExists, name)
}

func invalidConfigError(msg string) error {
	return fmt.Errorf("%w: %s", ErrInvalidConfig, msg)
}

// UpstreamError reports an unexpected status from the sidecar.
type UpstreamError struct {
	Op         string
	Name       string
	StatusCode int
	Body       string
}

func (e *UpstreamError) Error() string {
	msg := fmt.Sprintf("failed to %s connection config", e.Op)
	if e.Name != "" {
		msg += " " + e.Name
	}
	msg += fmt.Sprintf(": unexpected status %d", e.StatusCode)
	if e.Body != "" {
		msg += ": " + e.Body
	}
	return msg
}

// IsUpstream reports whether err carries an *UpstreamError.
func IsUpstream(err error) bool {
	var upstream *UpstreamError
	return errors.As(err, &upstream)
}
