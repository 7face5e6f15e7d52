package fluentsql

// StatementBuilder sequences connection checkout, statement preparation,
// positional parameter binding, execution, and transaction control behind a
// single chained-call object.
//
// Parameters need to be added in the order their placeholders appear in the
// query; binding positions are a counter starting at 1 per statement.
//
// If you intend to run multiple statements with one builder, use
// ContinueWith between them. It releases the current statement and resets
// the parameter position.
//
// Chainable methods record the first error and turn every later call in the
// chain into a no-op; the error surfaces from the terminal methods
// (ResultSet, Update, Close) or from Err. At the end call Close to release
// the connection. After Close, any further call fails with ErrBuilderClosed.
//
// A StatementBuilder is not safe for concurrent use.
type StatementBuilder struct {
	conn Connection
	stmt Statement

	paramIndex int
	closed     bool

	err error
}

// NewStatementBuilder acquires a connection from source and returns a
// builder owning it. A nil source fails with ErrNilConnectionSource before
// any acquisition is attempted; an acquisition failure is passed through
// from the driver untouched.
func NewStatementBuilder(source ConnectionSource) (*StatementBuilder, error) {
	if source == nil {
		return nil, ErrNilConnectionSource
	}

	conn, err := source.Connection()
	if err != nil {
		return nil, err
	}

	return &StatementBuilder{conn: conn, paramIndex: 1}, nil
}

// Prepare compiles sqlQuery into a new statement on the builder's
// connection and resets the parameter position to 1. Any previously active
// statement is closed first, so preparing again without ContinueWith does
// not leak a driver handle.
func (b *StatementBuilder) Prepare(sqlQuery string) *StatementBuilder {
	if !b.ok() {
		return b
	}
	if sqlQuery == "" {
		b.err = ErrEmptyQuery
		return b
	}

	if b.stmt != nil {
		if err := b.stmt.Close(); err != nil {
			b.err = err
			return b
		}
		b.stmt = nil
	}

	stmt, err := b.conn.Prepare(sqlQuery)
	if err != nil {
		b.err = err
		return b
	}

	b.stmt = stmt
	b.paramIndex = 1

	return b
}

// WithString binds a text parameter at the current position.
func (b *StatementBuilder) WithString(parameter string) *StatementBuilder {
	if !b.okStatement() {
		return b
	}

	if err := b.stmt.BindString(b.paramIndex, parameter); err != nil {
		b.err = err
		return b
	}
	b.paramIndex++

	return b
}

// WithBool binds a boolean parameter at the current position.
func (b *StatementBuilder) WithBool(parameter bool) *StatementBuilder {
	if !b.okStatement() {
		return b
	}

	if err := b.stmt.BindBool(b.paramIndex, parameter); err != nil {
		b.err = err
		return b
	}
	b.paramIndex++

	return b
}

// WithInt64 binds a 64-bit integer parameter at the current position.
func (b *StatementBuilder) WithInt64(parameter int64) *StatementBuilder {
	if !b.okStatement() {
		return b
	}

	if err := b.stmt.BindInt64(b.paramIndex, parameter); err != nil {
		b.err = err
		return b
	}
	b.paramIndex++

	return b
}

// WithInt32 binds a 32-bit integer parameter at the current position.
func (b *StatementBuilder) WithInt32(parameter int32) *StatementBuilder {
	if !b.okStatement() {
		return b
	}

	if err := b.stmt.BindInt32(b.paramIndex, parameter); err != nil {
		b.err = err
		return b
	}
	b.paramIndex++

	return b
}

// ContinueWith closes the active statement and resets the parameter
// position, so a new statement can be prepared on the same connection.
// Calling it with no active statement is a no-op.
func (b *StatementBuilder) ContinueWith() *StatementBuilder {
	if !b.ok() {
		return b
	}

	if b.stmt != nil {
		if err := b.stmt.Close(); err != nil {
			b.err = err
			return b
		}
		b.stmt = nil
	}
	b.paramIndex = 1

	return b
}

// WithTransaction disables auto-commit on the connection, grouping the
// statements that follow into one explicit transaction. Idempotent.
func (b *StatementBuilder) WithTransaction() *StatementBuilder {
	if !b.ok() {
		return b
	}

	if err := b.conn.SetAutoCommit(false); err != nil {
		b.err = err
	}

	return b
}

// WithoutTransaction re-enables auto-commit on the connection. Idempotent.
func (b *StatementBuilder) WithoutTransaction() *StatementBuilder {
	if !b.ok() {
		return b
	}

	if err := b.conn.SetAutoCommit(true); err != nil {
		b.err = err
	}

	return b
}

// ResultSet executes the active statement as a query and returns its row
// cursor. The statement stays active and the parameter position is kept, so
// the same bound statement may be executed again.
func (b *StatementBuilder) ResultSet() (Rows, error) {
	if !b.okStatement() {
		return nil, b.err
	}

	return b.stmt.Query()
}

// Update executes the active statement as a mutation and returns the number
// of affected rows. Like ResultSet, it leaves the statement active.
func (b *StatementBuilder) Update() (int64, error) {
	if !b.okStatement() {
		return 0, b.err
	}

	return b.stmt.Exec()
}

// Commit commits the connection's current transaction.
func (b *StatementBuilder) Commit() *StatementBuilder {
	if !b.ok() {
		return b
	}

	if err := b.conn.Commit(); err != nil {
		b.err = err
	}

	return b
}

// Rollback discards the connection's current transaction.
func (b *StatementBuilder) Rollback() *StatementBuilder {
	if !b.ok() {
		return b
	}

	if err := b.conn.Rollback(); err != nil {
		b.err = err
	}

	return b
}

// Err reports the first error recorded by the chained calls, if any.
func (b *StatementBuilder) Err() error {
	return b.err
}

// Close marks the builder closed and releases its connection. The closed
// flag is recorded before the release, so the builder is permanently inert
// even when the release fails; that failure is returned as a
// *ConnectionCloseError with the driver error as its cause. A second Close
// returns nil without touching the connection again.
func (b *StatementBuilder) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true

	if err := b.conn.Close(); err != nil {
		return &ConnectionCloseError{Err: err}
	}

	return nil
}

// ok guards the chainable entry points: an already recorded error or a
// closed builder stops the chain here.
func (b *StatementBuilder) ok() bool {
	if b.err != nil {
		return false
	}
	if b.closed {
		b.err = ErrBuilderClosed
		return false
	}
	return true
}

func (b *StatementBuilder) okStatement() bool {
	if !b.ok() {
		return false
	}
	if b.stmt == nil {
		b.err = ErrNoActiveStatement
		return false
	}
	return true
}
