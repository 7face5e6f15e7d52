package fluentsql

// ConnectionSource hands out connection handles. A *Source over a sql.DB
// satisfies this, as do the driver-native sources in the subpackages.
type ConnectionSource interface {
	Connection() (Connection, error)
}

// Connection is one open channel to the database server. It is exclusively
// owned by a single StatementBuilder for its whole lifetime.
type Connection interface {
	// Prepare compiles the query into a statement bound to this connection.
	Prepare(query string) (Statement, error)

	// SetAutoCommit toggles the connection's auto-commit mode. Disabling it
	// groups subsequent statements into one explicit transaction.
	SetAutoCommit(enabled bool) error

	Commit() error
	Rollback() error
	Close() error
}

// Statement is a compiled, parameterizable, repeatedly executable
// representation of one query. Positions are 1-based.
type Statement interface {
	BindString(pos int, value string) error
	BindBool(pos int, value bool) error
	BindInt64(pos int, value int64) error
	BindInt32(pos int, value int32) error

	// Query executes the statement and returns a row cursor.
	Query() (Rows, error)
	// Exec executes the statement as a mutation and returns the number of
	// affected rows.
	Exec() (int64, error)

	Close() error
}

// Rows is the row cursor produced by Statement.Query. *sql.Rows satisfies it.
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close() error
}
