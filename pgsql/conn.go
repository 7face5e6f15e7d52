package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/patka/fluentsql"
)

// pgConn emulates the auto-commit flag with a held pgx transaction, the same
// way the database/sql source does: disabling auto-commit begins one, and
// Commit/Rollback immediately begin the next so manual mode persists.
type pgConn struct {
	conn *pgxpool.Conn
	tx   pgx.Tx

	stmtSeq int
}

var _ fluentsql.Connection = (*pgConn)(nil)

func (c *pgConn) Prepare(query string) (fluentsql.Statement, error) {
	c.stmtSeq++
	name := fmt.Sprintf("fluentsql_stmt_%d", c.stmtSeq)

	if _, err := c.conn.Conn().Prepare(context.Background(), name, query); err != nil {
		return nil, err
	}
	return &pgStmt{conn: c, name: name}, nil
}

func (c *pgConn) SetAutoCommit(enabled bool) error {
	if enabled {
		if c.tx == nil {
			return nil
		}
		// Re-enabling auto-commit completes the pending transaction.
		err := c.tx.Commit(context.Background())
		c.tx = nil
		return err
	}

	if c.tx != nil {
		return nil
	}
	tx, err := c.conn.Begin(context.Background())
	if err != nil {
		return err
	}
	c.tx = tx
	return nil
}

func (c *pgConn) Commit() error {
	if c.tx == nil {
		return nil
	}
	if err := c.tx.Commit(context.Background()); err != nil {
		c.tx = nil
		return err
	}
	return c.begin()
}

func (c *pgConn) Rollback() error {
	if c.tx == nil {
		return nil
	}
	if err := c.tx.Rollback(context.Background()); err != nil {
		c.tx = nil
		return err
	}
	return c.begin()
}

func (c *pgConn) begin() error {
	tx, err := c.conn.Begin(context.Background())
	if err != nil {
		c.tx = nil
		return err
	}
	c.tx = tx
	return nil
}

func (c *pgConn) Close() error {
	if c.tx != nil {
		if err := c.tx.Rollback(context.Background()); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			c.conn.Release()
			return err
		}
		c.tx = nil
	}
	c.conn.Release()
	return nil
}

// pgStmt buffers positional binds and executes the named server-side
// statement through the transaction when one is open.
type pgStmt struct {
	conn *pgConn
	name string
	args []any
}

var _ fluentsql.Statement = (*pgStmt)(nil)

func (s *pgStmt) BindString(pos int, value string) error { return s.bind(pos, value) }
func (s *pgStmt) BindBool(pos int, value bool) error { return s.bind(pos, value) }
func (s *pgStmt) BindInt64(pos int, value int64) error { return s.bind(pos, value) }
func (s *pgStmt) BindInt32(pos int, value int32) error { return s.bind(pos, value) }

func (s *pgStmt) bind(pos int, value any) error {
	if pos < 1 {
		return fmt.Errorf("bind position %d is out of range", pos)
	}
	for len(s.args) < pos {
		s.args = append(s.args, nil)
	}
	s.args[pos-1] = value
	return nil
}

func (s *pgStmt) Query() (fluentsql.Rows, error) {
	var (
		pgRows pgx.Rows
		err    error
	)
	if s.conn.tx != nil {
		pgRows, err = s.conn.tx.Query(context.Background(), s.name, s.args...)
	} else {
		pgRows, err = s.conn.conn.Query(context.Background(), s.name, s.args...)
	}
	if err != nil {
		return nil, err
	}
	return &rows{rows: pgRows}, nil
}

func (s *pgStmt) Exec() (int64, error) {
	if s.conn.tx != nil {
		tag, err := s.conn.tx.Exec(context.Background(), s.name, s.args...)
		if err != nil {
			return 0, err
		}
		return tag.RowsAffected(), nil
	}
	tag, err := s.conn.conn.Exec(context.Background(), s.name, s.args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (s *pgStmt) Close() error {
	return s.conn.conn.Conn().Deallocate(context.Background(), s.name)
}

// rows adapts pgx.Rows, whose Close does not return an error.
type rows struct {
	rows pgx.Rows
}

var _ fluentsql.Rows = (*rows)(nil)

func (r *rows) Next() bool { return r.rows.Next() }
func (r *rows) Scan(dest ...any) error { return r.rows.Scan(dest...) }
func (r *rows) Err() error { return r.rows.Err() }

func (r *rows) Close() error {
	r.rows.Close()
	return nil
}
