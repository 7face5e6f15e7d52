package pgsql

import (
	"testing"

	"github.com/patka/fluentsql"
	"github.com/stretchr/testify/assert"
)

func TestDSN(t *testing.T) {
	conf := &fluentsql.Conf{
		Host:     "db.internal",
		Port:     5432,
		User:     "app",
		Password: "hunter2",
		DB:       "warren",
	}

	assert.Equal(
		t,
		"host=db.internal port=5432 user=app password=hunter2 dbname=warren sslmode=disable",
		DSN(conf),
	)
}

func TestDSNOverride(t *testing.T) {
	conf := &fluentsql.Conf{DSN: "postgres://app@db.internal/warren"}

	assert.Equal(t, "postgres://app@db.internal/warren", DSN(conf))
}
