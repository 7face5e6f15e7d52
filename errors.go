package fluentsql

import "errors"

var (
	ErrNilConnectionSource = errors.New("connection source is mandatory")

	ErrEmptyQuery = errors.New("sql query is mandatory")

	ErrBuilderClosed     = errors.New("this statement builder is already closed")
	ErrNoActiveStatement = errors.New("parameters can only be used with a prepared statement")
)

// ConnectionCloseError occurs when releasing the connection fails during
// Close. The original driver error is reachable through errors.Unwrap.
type ConnectionCloseError struct {
	Err error
}

func (e *ConnectionCloseError) Error() string {
	return "error closing connection: " + e.Err.Error()
}

func (e *ConnectionCloseError) Unwrap() error {
	return e.Err
}
