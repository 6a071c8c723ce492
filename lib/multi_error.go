package lib

import "strings"

// MultiError collects several errors behind a single error value,
// such as the result of validating a config.
type MultiError struct {
	Errors []error
}

// Error combines the messages of all collected errors
func (m *MultiError) Error() string {
	s := []string{}
	for _, err := range m.Errors {
		s = append(s, err.Error())
	}

	return strings.Join(s, ", ")
}

// Unwrap exposes the collected errors so errors.Is and errors.As
// can see through the aggregation.
func (m *MultiError) Unwrap() []error {
	return m.Errors
}
