package configuration

import (
	"fmt"
	"strings"
)

// NotFoundError is returned when a configuration item is referenced by an unknown id
type NotFoundError struct {
	Kind      string
	ID        string
	Available []string
}

func (e *NotFoundError) Error() string {
	if len(e.Available) <= 0 {
		return fmt.Sprintf("no %s with id '%s' found", e.Kind, e.ID)
	}
	return fmt.Sprintf("no %s with id '%s' found, available: %s", e.Kind, e.ID, strings.Join(e.Available, ", "))
}
