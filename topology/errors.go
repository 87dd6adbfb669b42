package topology

import "fmt"

// ConfigurationError is returned when a NetworkSpec cannot be built.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

func configErr(field, format string, args ...interface{}) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// StructuralInconsistencyError is returned when the layout would reference a
// neuron that does not exist or emit an edge twice.
type StructuralInconsistencyError struct {
	Reason string
}

func (e *StructuralInconsistencyError) Error() string {
	return "structural inconsistency: " + e.Reason
}

func structuralErr(format string, args ...interface{}) error {
	return &StructuralInconsistencyError{Reason: fmt.Sprintf(format, args...)}
}
