// Package pgsql is a PostgreSQL connection source backed by pgx, registered
// under the type "pgsql". Statements are prepared server-side with
// generated names and deallocated when released.
package pgsql

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/patka/fluentsql"
)

func init() {
	fluentsql.RegisterFactory("pgsql", Open)
}

// Open connects a pgx pool to the server described by the Conf and verifies
// the connection with a ping.
func Open(conf *fluentsql.Conf) (fluentsql.ConnectionSource, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, DSN(conf))
	if err != nil {
		return nil, err
	}
	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	log.Println("[INFO] pgsql source initialized")
	return NewSource(pool), nil
}

// DSN assembles the key/value DSN for the Conf. Conf.DSN overrides it.
func DSN(conf *fluentsql.Conf) string {
	if conf.DSN != "" {
		return conf.DSN
	}
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		conf.Host,
		conf.Port,
		conf.User,
		conf.Password,
		conf.DB,
	)
}

// Source hands out connections acquired from a pgx pool.
type Source struct {
	pool *pgxpool.Pool
}

var _ fluentsql.ConnectionSource = (*Source)(nil)

func NewSource(pool *pgxpool.Pool) *Source {
	return &Source{pool: pool}
}

func (s *Source) Connection() (fluentsql.Connection, error) {
	conn, err := s.pool.Acquire(context.Background())
	if err != nil {
		return nil, err
	}
	return &pgConn{conn: conn}, nil
}
