package mysql

import (
	"testing"

	"github.com/patka/fluentsql"
	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	conf := &fluentsql.Conf{
		Host:     "db.internal",
		Port:     3306,
		User:     "app",
		Password: "hunter2",
		DB:       "warren",
	}

	assert.Equal(t, "app:hunter2@tcp(db.internal:3306)/warren?parseTime=true", DSN(conf))
}

func TestDSNOverride(t *testing.T) {
	conf := &fluentsql.Conf{DSN: "root@unix(/tmp/mysql.sock)/warren"}

	assert.Equal(t, "root@unix(/tmp/mysql.sock)/warren", DSN(conf))
}
