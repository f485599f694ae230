package pool

import (
	"fmt"

	"github.com/leapstack-labs/docsql/pkg/core"
)

// UnknownSourceError is returned when a block selects a source name that the
// page configuration does not define.
type UnknownSourceError struct {
	Name string
}

func (e *UnknownSourceError) Error() string {
	return fmt.Sprintf("database configuration '%s' not found", e.Name)
}

// ConnectionError is returned when a source cannot be opened.
// Its message is the backend's message.
type ConnectionError struct {
	Source string
	Kind   core.Kind
	Err    error
}

func (e *ConnectionError) Error() string {
	return e.Err.Error()
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// QueryExecutionError is returned when a backend rejects a query.
// Its message is the backend's message.
type QueryExecutionError struct {
	Source string
	Query  string
	Err    error
}

func (e *QueryExecutionError) Error() string {
	return e.Err.Error()
}

func (e *QueryExecutionError) Unwrap() error {
	return e.Err
}
