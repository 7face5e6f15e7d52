// Package sqlite registers a sqlite-backed connection source factory under
// the type "sqlite3".
package sqlite

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3" // side-effect
	"github.com/patka/fluentsql"
)

func init() {
	fluentsql.RegisterFactory("sqlite3", Open)
}

// Open opens the sqlite database file named by the Conf.
func Open(conf *fluentsql.Conf) (fluentsql.ConnectionSource, error) {
	db, err := sql.Open("sqlite3", DSN(conf))
	if err != nil {
		return nil, err
	}
	return fluentsql.NewSource(db), nil
}

// DSN is the database file path; Conf.DSN overrides Conf.DB.
func DSN(conf *fluentsql.Conf) string {
	if conf.DSN != "" {
		return conf.DSN
	}
	return conf.DB
}
