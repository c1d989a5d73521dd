package connection

import (
	"fmt"
	"strings"
)

// SecurityLevel selects the backend serving reads and whether mutations are
// permitted. It is fixed for the lifetime of a Service.
type SecurityLevel string

const (
	// Strict serves reads from the mounted filesystem and rejects mutations.
	Strict SecurityLevel = "STRICT"
	// Lenient delegates every operation to the sidecar.
	Lenient SecurityLevel = "LENIENT"
)

// ParseSecurityLevel parses a level name case-insensitively. Empty means Strict.
func ParseSecurityLevel(value string) (SecurityLevel, error) {
	switch SecurityLevel(strings.ToUpper(strings.TrimSpace(value))) {
	case "", Strict:
		return Strict, nil
	case Lenient:
		return Lenient, nil
	}
	return "", fmt.Errorf("unsupported security level: %q", value)
}

func (l SecurityLevel) String() string {
	return string(l)
}
