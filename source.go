package fluentsql

import (
	"context"
	"database/sql"
	"fmt"
)

// Source is a ConnectionSource over a database/sql pool. Each Connection
// call checks a dedicated *sql.Conn out of the pool; the builder owns it
// until Close hands it back.
type Source struct {
	db *sql.DB
}

var _ ConnectionSource = (*Source)(nil)

func NewSource(db *sql.DB) *Source {
	return &Source{db: db}
}

func (s *Source) Connection() (Connection, error) {
	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return nil, err
	}
	return &sqlConn{conn: conn}, nil
}

// sqlConn emulates the driver-level auto-commit flag, which database/sql
// does not expose, with a held transaction: disabling auto-commit begins
// one, and Commit/Rollback immediately begin the next so manual mode
// persists until auto-commit is re-enabled.
type sqlConn struct {
	conn *sql.Conn
	tx   *sql.Tx
}

var _ Connection = (*sqlConn)(nil)

func (c *sqlConn) Prepare(query string) (Statement, error) {
	// Always prepare on the connection, never on the held transaction. The
	// transaction runs on this same dedicated session, so conn-prepared
	// statements already execute inside it, and they survive Commit and
	// Rollback, which close any tx-owned statements.
	st, err := c.conn.PrepareContext(context.Background(), query)
	if err != nil {
		return nil, err
	}
	return &sqlStmt{st: st}, nil
}

func (c *sqlConn) SetAutoCommit(enabled bool) error {
	if enabled {
		if c.tx == nil {
			return nil
		}
		// Re-enabling auto-commit completes the pending transaction.
		err := c.tx.Commit()
		c.tx = nil
		return err
	}

	if c.tx != nil {
		return nil
	}
	tx, err := c.conn.BeginTx(context.Background(), nil)
	if err != nil {
		return err
	}
	c.tx = tx
	return nil
}

func (c *sqlConn) Commit() error {
	if c.tx == nil {
		// Auto-commit is on; committing is a no-op, matching driver
		// behavior for commit outside an explicit transaction.
		return nil
	}
	if err := c.tx.Commit(); err != nil {
		c.tx = nil
		return err
	}
	return c.begin()
}

func (c *sqlConn) Rollback() error {
	if c.tx == nil {
		return nil
	}
	if err := c.tx.Rollback(); err != nil {
		c.tx = nil
		return err
	}
	return c.begin()
}

// begin starts the next transaction after Commit/Rollback so manual-commit
// mode stays in effect.
func (c *sqlConn) begin() error {
	tx, err := c.conn.BeginTx(context.Background(), nil)
	if err != nil {
		c.tx = nil
		return err
	}
	c.tx = tx
	return nil
}

func (c *sqlConn) Close() error {
	var rbErr error
	if c.tx != nil {
		// Uncommitted work is discarded, like a driver closing a
		// connection in manual-commit mode.
		rbErr = c.tx.Rollback()
		c.tx = nil
	}
	if err := c.conn.Close(); err != nil {
		return err
	}
	return rbErr
}

// sqlStmt buffers positional binds into the args slice database/sql wants
// at execute time. Positions are 1-based.
type sqlStmt struct {
	st   *sql.Stmt
	args []any
}

var _ Statement = (*sqlStmt)(nil)

func (s *sqlStmt) BindString(pos int, value string) error { return s.bind(pos, value) }
func (s *sqlStmt) BindBool(pos int, value bool) error { return s.bind(pos, value) }
func (s *sqlStmt) BindInt64(pos int, value int64) error { return s.bind(pos, value) }
func (s *sqlStmt) BindInt32(pos int, value int32) error { return s.bind(pos, value) }

func (s *sqlStmt) bind(pos int, value any) error {
	if pos < 1 {
		return fmt.Errorf("bind position %d is out of range", pos)
	}
	for len(s.args) < pos {
		s.args = append(s.args, nil)
	}
	s.args[pos-1] = value
	return nil
}

func (s *sqlStmt) Query() (Rows, error) {
	rows, err := s.st.Query(s.args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *sqlStmt) Exec() (int64, error) {
	result, err := s.st.Exec(s.args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (s *sqlStmt) Close() error {
	return s.st.Close()
}
