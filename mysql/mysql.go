// Package mysql registers a MySQL-backed connection source factory under
// the type "mysql".
package mysql

import (
	"database/sql"
	"fmt"
	"log"
	"time"

	_ "github.com/go-sql-driver/mysql" // side-effect
	"github.com/patka/fluentsql"
)

func init() {
	fluentsql.RegisterFactory("mysql", Open)
}

// Open connects to the MySQL server described by the Conf and verifies the
// connection with a ping.
func Open(conf *fluentsql.Conf) (fluentsql.ConnectionSource, error) {
	db, err := sql.Open("mysql", DSN(conf))
	if err != nil {
		return nil, err
	}
	db.SetConnMaxLifetime(time.Minute * 3)
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	if err = db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	log.Println("[INFO] mysql source initialized")
	return fluentsql.NewSource(db), nil
}

// DSN assembles the go-sql-driver DSN for the Conf. Conf.DSN overrides it.
func DSN(conf *fluentsql.Conf) string {
	if conf.DSN != "" {
		return conf.DSN
	}
	return fmt.Sprintf(
		"%s:%s@tcp(%s:%d)/%s?parseTime=true",
		conf.User,
		conf.Password,
		conf.Host,
		conf.Port,
		conf.DB,
	)
}
